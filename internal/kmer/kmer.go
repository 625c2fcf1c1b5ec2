// Package kmer 负责把文本切分成固定长度的连续子串(k-mer)并计算其标识。
package kmer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ID 是 k-mer 的整数标识，由子串内容决定
type ID uint64

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Hash 计算子串的 FNV-1a 64 位哈希，结果与 hash/fnv 的 New64a 相同。
// 直接遍历字符串字节，每个窗口不产生 []byte 转换和 hash.Hash 分配。
func Hash(s string) ID {
	hash := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		hash ^= uint64(s[i])
		hash *= fnvPrime64
	}
	return ID(hash)
}

// Tokenizer 按 rune 滑动窗口提取 k-mer
type Tokenizer struct {
	K        int  // 子串长度(按字符计)
	FoldCase bool // 是否先做大小写折叠
}

// normalize 统一 Unicode 组合形式，必要时折叠大小写
func (t Tokenizer) normalize(text string) string {
	text = norm.NFC.String(text)
	if t.FoldCase {
		// Caser 不能并发复用，每次新建
		text = cases.Fold().String(text)
	}
	return text
}

// Each 对文本中每个长度为 K 的窗口调用一次 fn
func (t Tokenizer) Each(text string, fn func(ID)) {
	t.walk(text, func(s string) { fn(Hash(s)) })
}

// Split 返回所有窗口的子串，主要用于诊断输出
func (t Tokenizer) Split(text string) []string {
	var out []string
	t.walk(text, func(s string) { out = append(out, s) })
	return out
}

// Count 返回文本会产生的窗口数量
func (t Tokenizer) Count(text string) int {
	n := 0
	t.walk(text, func(string) { n++ })
	return n
}

func (t Tokenizer) walk(text string, fn func(string)) {
	if t.K <= 0 {
		return
	}
	text = t.normalize(text)

	// 记录每个 rune 的起始字节偏移
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))

	runes := len(offsets) - 1
	for i := 0; i+t.K <= runes; i++ {
		fn(text[offsets[i]:offsets[i+t.K]])
	}
}
