// Package report 渲染 Profile 存储和检测结果
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ccp-p/langid/internal/classifier"
	"github.com/ccp-p/langid/internal/pipeline"
	"github.com/ccp-p/langid/internal/profile"
)

// 彩色输出
var (
	infoColor    = color.New(color.FgCyan).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	dimColor     = color.New(color.Faint).SprintFunc()
)

// StoreView 是渲染所需的只读存储接口
type StoreView interface {
	Languages() []profile.Language
	ProfileOf(lang profile.Language) (*profile.Profile, error)
	Stats() profile.Stats
}

// LanguageReport 是单个语言 Profile 的 JSON 形式
type LanguageReport struct {
	Language string          `json:"language"`
	Size     int             `json:"size"`
	Entries  []profile.Entry `json:"entries,omitempty"`
}

// Printer 写出人类可读的报告
type Printer struct {
	w io.Writer
}

// NewPrinter 创建 Printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Store 按语言列出全部条目，最后输出汇总
func (p *Printer) Store(store StoreView) error {
	for _, lang := range store.Languages() {
		prof, err := store.ProfileOf(lang)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.w, "%s->\n", infoColor(lang))
		for _, e := range prof.Entries() {
			fmt.Fprintf(p.w, "\t%s\n", e)
		}
	}

	st := store.Stats()
	fmt.Fprintf(p.w, "共 %d 个 k-mer，%d 种语言\n", st.Kmers, st.Languages)
	return nil
}

// Result 输出检测结果和前 top 名的距离
func (p *Printer) Result(lang profile.Language, ranking []classifier.Result, top int) {
	fmt.Fprintf(p.w, "%s %s\n", infoColor("检测结果:"), successColor(lang))
	if top <= 0 || top > len(ranking) {
		top = len(ranking)
	}
	for i, r := range ranking[:top] {
		fmt.Fprintf(p.w, "  %2d. %-16s %s\n", i+1, r.Language, dimColor(fmt.Sprintf("距离 %d", r.Distance)))
	}
}

// Ingest 输出摄取统计
func (p *Printer) Ingest(st pipeline.Stats) {
	fmt.Fprintf(p.w, "%s 文件 %d，记录 %d，跳过 %d，k-mer %d\n",
		infoColor("摄取完成:"), st.Files, st.Records, st.Skipped, st.Kmers)
}

// Snapshot 生成存储的 JSON 结构；withEntries 为 false 时只含大小
func Snapshot(store StoreView, withEntries bool) ([]LanguageReport, error) {
	langs := store.Languages()
	out := make([]LanguageReport, 0, len(langs))
	for _, lang := range langs {
		prof, err := store.ProfileOf(lang)
		if err != nil {
			return nil, err
		}
		lr := LanguageReport{Language: lang.String(), Size: prof.Len()}
		if withEntries {
			lr.Entries = prof.Entries()
		}
		out = append(out, lr)
	}
	return out, nil
}

// JSON 以缩进格式写出 v
func JSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化报告失败: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
