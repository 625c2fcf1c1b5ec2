package profile

import (
	"fmt"

	"github.com/ccp-p/langid/internal/kmer"
)

// Entry 是某语言中单个 k-mer 的统计记录
type Entry struct {
	Kmer      kmer.ID `json:"kmer"`
	Frequency int     `json:"frequency"`
	Rank      int     `json:"rank"` // 未排名前为 0，排名后从 1 开始连续
}

// rankedBefore 定义排名顺序：频率降序，频率相同时按 Kmer 升序
func rankedBefore(a, b Entry) bool {
	if a.Frequency != b.Frequency {
		return a.Frequency > b.Frequency
	}
	return a.Kmer < b.Kmer
}

func (e Entry) String() string {
	return fmt.Sprintf("[%d/%d/%d]", e.Kmer, e.Frequency, e.Rank)
}
