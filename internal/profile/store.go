package profile

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ccp-p/langid/internal/kmer"
)

// slot 持有单个语言的 Profile，写入时独占 mu
type slot struct {
	mu      sync.Mutex
	profile *Profile
}

// Stats 汇总存储规模
type Stats struct {
	Languages int
	Kmers     int
}

// Store 是语言到 Profile 的映射，允许多个生产者并发写入。
//
// 生命周期分两个阶段：写入阶段 Add 可以任意并发；第一次 Prune 之后存储被封存，
// 只读，Add 返回 ErrStoreSealed。
type Store struct {
	mu     sync.RWMutex // 保护 slots 和 sealed；Add 持读锁，Prune 持写锁
	slots  map[Language]*slot
	sealed bool
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{slots: make(map[Language]*slot)}
}

// Add 为 lang 记录一次 k-mer 出现
func (s *Store) Add(id kmer.ID, lang Language) error {
	return s.AddBatch([]kmer.ID{id}, lang)
}

// AddBatch 为同一语言记录一组 k-mer 出现，整批在一次加锁内完成
func (s *Store) AddBatch(ids []kmer.ID, lang Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}

	s.mu.RLock()
	if s.sealed {
		s.mu.RUnlock()
		return ErrStoreSealed
	}
	if sl, ok := s.slots[lang]; ok {
		sl.mu.Lock()
		for _, id := range ids {
			sl.profile.Add(id)
		}
		sl.mu.Unlock()
		s.mu.RUnlock()
		return nil
	}
	s.mu.RUnlock()

	// 首次出现的语言：升级为写锁后再检查一次
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return ErrStoreSealed
	}
	sl, ok := s.slots[lang]
	if !ok {
		sl = &slot{profile: NewProfile()}
		s.slots[lang] = sl
	}
	// 持有写锁时没有其他写入者
	for _, id := range ids {
		sl.profile.Add(id)
	}
	return nil
}

// Prune 把每种语言的 Profile 替换为 TopN(limit) 并封存存储。
// 写锁保证替换期间没有进行中的 Add。相同 limit 重复调用结果不变。
func (s *Store) Prune(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sealed = true
	for _, sl := range s.slots {
		sl.profile = sl.profile.TopN(limit)
	}
}

// Sealed 报告是否已经裁剪
func (s *Store) Sealed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealed
}

// Languages 按标识顺序返回已记录的语言，包括裁剪后为空的语言
func (s *Store) Languages() []Language {
	s.mu.RLock()
	defer s.mu.RUnlock()

	langs := make([]Language, 0, len(s.slots))
	for lang := range s.slots {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// ProfileOf 返回 lang 的 Profile 快照，修改快照不影响存储
func (s *Store) ProfileOf(lang Language) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sl, ok := s.slots[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s 未加入存储", ErrUnknownLanguage, lang)
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.profile.clone(), nil
}

// Stats 返回语言数和 k-mer 总数
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Languages: len(s.slots)}
	for _, sl := range s.slots {
		sl.mu.Lock()
		st.Kmers += sl.profile.Len()
		sl.mu.Unlock()
	}
	return st
}
