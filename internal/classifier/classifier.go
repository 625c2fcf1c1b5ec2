// Package classifier 用 out-of-place 排名距离把待测 Profile 匹配到最接近的语言。
package classifier

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ccp-p/langid/internal/profile"
)

// ErrNoLanguages 存储中没有可比较的语言
var ErrNoLanguages = errors.New("classifier: 没有可用的语言")

// Source 提供已排名的语言 Profile，*profile.Store 满足该接口
type Source interface {
	Languages() []profile.Language
	ProfileOf(lang profile.Language) (*profile.Profile, error)
}

// Result 是一种语言与待测文本的绝对距离
type Result struct {
	Language profile.Language `json:"language"`
	Distance int              `json:"distance"`
}

func (r Result) String() string {
	return fmt.Sprintf("[lang=%s, distance=%d]", r.Language, r.Distance)
}

// Option 配置 Classifier
type Option func(*Classifier)

// WithAbsoluteTerms 对每个匹配项取绝对值后再求和(教科书形式)。
// 默认对有符号差求和，只对总和取绝对值。
func WithAbsoluteTerms() Option {
	return func(c *Classifier) { c.absoluteTerms = true }
}

// Classifier 在只读的 Source 上做语言选择
type Classifier struct {
	source        Source
	absoluteTerms bool
}

// New 创建分类器
func New(source Source, opts ...Option) *Classifier {
	c := &Classifier{source: source}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Distance 计算 query 相对 subject 的有符号 out-of-place 距离：
// subject 中缺失的 k-mer 记 subject.Len()+1，存在的记 s.Rank - q.Rank。
func Distance(query, subject *profile.Profile) int {
	return distance(query, subject, false)
}

func distance(query, subject *profile.Profile, absoluteTerms bool) int {
	missing := subject.Len() + 1
	total := 0
	for _, q := range query.Entries() {
		s, ok := subject.Get(q.Kmer)
		if !ok {
			total += missing
			continue
		}
		d := s.Rank - q.Rank
		if absoluteTerms && d < 0 {
			d = -d
		}
		total += d
	}
	return total
}

// Distance 按分类器的配置计算距离
func (c *Classifier) Distance(query, subject *profile.Profile) int {
	return distance(query, subject, c.absoluteTerms)
}

// Rank 返回每种语言的绝对距离，按(距离, 语言标识)升序排列
func (c *Classifier) Rank(query *profile.Profile) ([]Result, error) {
	langs := c.source.Languages()
	if len(langs) == 0 {
		return nil, ErrNoLanguages
	}

	results := make([]Result, 0, len(langs))
	for _, lang := range langs {
		subject, err := c.source.ProfileOf(lang)
		if err != nil {
			return nil, fmt.Errorf("读取 %s 的 Profile 失败: %w", lang, err)
		}
		d := c.Distance(query, subject)
		if d < 0 {
			d = -d
		}
		results = append(results, Result{Language: lang, Distance: d})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Language < results[j].Language
	})
	return results, nil
}

// Classify 返回绝对距离最小的语言；平局时取标识(即名称字典序)最小者
func (c *Classifier) Classify(query *profile.Profile) (profile.Language, error) {
	results, err := c.Rank(query)
	if err != nil {
		return profile.Unknown, err
	}
	return results[0].Language, nil
}
