package profile

import (
	"sort"

	"github.com/ccp-p/langid/internal/kmer"
)

// Profile 保存一种语言(或一段待测文本)的 k-mer 频率。
// 两个状态：未裁剪时保留全部 k-mer 且无排名；TopN 产生的副本带有连续排名。
// Profile 本身不加锁，并发写入由 Store 串行化。
type Profile struct {
	entries map[kmer.ID]*Entry
	ranked  bool
}

// NewProfile 创建空的未排名 Profile
func NewProfile() *Profile {
	return &Profile{entries: make(map[kmer.ID]*Entry)}
}

// Add 记录一次 k-mer 出现，不改变排名
func (p *Profile) Add(id kmer.ID) {
	if e, ok := p.entries[id]; ok {
		e.Frequency++
		return
	}
	p.entries[id] = &Entry{Kmer: id, Frequency: 1}
}

// Len 返回条目数量
func (p *Profile) Len() int {
	return len(p.entries)
}

// Ranked 报告排名是否有效
func (p *Profile) Ranked() bool {
	return p.ranked
}

// Get 查找单个 k-mer 的记录
func (p *Profile) Get(id kmer.ID) (Entry, bool) {
	e, ok := p.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries 按排名顺序返回全部条目的副本
func (p *Profile) Entries() []Entry {
	out := make([]Entry, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		return rankedBefore(out[i], out[j])
	})
	return out
}

// TopN 返回频率最高的至多 limit 个条目组成的新 Profile，并赋予 1..n 排名。
// 接收者不会被修改；limit <= 0 时返回空 Profile。
func (p *Profile) TopN(limit int) *Profile {
	if limit <= 0 {
		return &Profile{entries: make(map[kmer.ID]*Entry), ranked: true}
	}

	top := &Profile{entries: make(map[kmer.ID]*Entry, min(limit, len(p.entries))), ranked: true}
	for i, e := range p.Entries() {
		if i == limit {
			break
		}
		ranked := e
		ranked.Rank = i + 1
		top.entries[ranked.Kmer] = &ranked
	}
	return top
}

func (p *Profile) clone() *Profile {
	c := &Profile{entries: make(map[kmer.ID]*Entry, len(p.entries)), ranked: p.ranked}
	for id, e := range p.entries {
		copied := *e
		c.entries[id] = &copied
	}
	return c
}
