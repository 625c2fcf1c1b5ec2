// Package detect 把未知文本构造成临时 Profile 并交给分类器。
package detect

import (
	"github.com/ccp-p/langid/internal/classifier"
	"github.com/ccp-p/langid/internal/kmer"
	"github.com/ccp-p/langid/internal/profile"
)

// Detector 使用与训练相同的 k 和裁剪上限构建查询 Profile
type Detector struct {
	tokenizer  kmer.Tokenizer
	maxProfile int
	classifier *classifier.Classifier
}

// New 创建检测器；source 应当已经裁剪
func New(source classifier.Source, tok kmer.Tokenizer, maxProfileSize int, opts ...classifier.Option) *Detector {
	return &Detector{
		tokenizer:  tok,
		maxProfile: maxProfileSize,
		classifier: classifier.New(source, opts...),
	}
}

// QueryProfile 统计文本的 k-mer 并排名。
// 文本短于 k 时得到空 Profile，此时所有语言距离均为 0。
func (d *Detector) QueryProfile(text string) *profile.Profile {
	q := profile.NewProfile()
	d.tokenizer.Each(text, q.Add)
	return q.TopN(d.maxProfile)
}

// Detect 返回最接近的语言
func (d *Detector) Detect(text string) (profile.Language, error) {
	return d.classifier.Classify(d.QueryProfile(text))
}

// Explain 返回全部语言的距离排名
func (d *Detector) Explain(text string) ([]classifier.Result, error) {
	return d.classifier.Rank(d.QueryProfile(text))
}
