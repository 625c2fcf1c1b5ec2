// Package pipeline 把带语言标签的语料逐行读入 Profile 存储。
//
// 语料每行一条记录，格式为 "样本<分隔符>语言"。不能恰好拆成两段的行被跳过；
// 未知语言标签默认终止摄取，宽松模式下记录警告并跳过。
// 所有文件读完之后才调用一次 Prune。
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ccp-p/langid/internal/kmer"
	"github.com/ccp-p/langid/internal/profile"
)

// DefaultMaxLineSize 默认单行上限，超长的行被跳过并计入 Skipped
const DefaultMaxLineSize = 1 << 20

// Sink 接收摄取结果，*profile.Store 满足该接口
type Sink interface {
	AddBatch(ids []kmer.ID, lang profile.Language) error
	Prune(limit int)
}

// Options 配置 Ingester
type Options struct {
	Tokenizer kmer.Tokenizer
	Separator string // 默认 "@"
	Workers   int    // 默认 GOMAXPROCS
	Lenient   bool
	Logger    *slog.Logger

	MaxLineSize int // 默认 DefaultMaxLineSize
}

// Stats 是摄取计数的快照
type Stats struct {
	Files   int64 `json:"files"`
	Records int64 `json:"records"`
	Skipped int64 `json:"skipped"`
	Kmers   int64 `json:"kmers"`
}

// Ingester 并行读取语料并写入 Sink
type Ingester struct {
	sink      Sink
	tokenizer kmer.Tokenizer
	separator string
	workers   int
	lenient   bool
	maxLine   int
	logger    *slog.Logger

	files   atomic.Int64
	records atomic.Int64
	skipped atomic.Int64
	kmers   atomic.Int64
}

// New 创建 Ingester
func New(sink Sink, opts Options) *Ingester {
	in := &Ingester{
		sink:      sink,
		tokenizer: opts.Tokenizer,
		separator: opts.Separator,
		workers:   opts.Workers,
		lenient:   opts.Lenient,
		maxLine:   opts.MaxLineSize,
		logger:    opts.Logger,
	}
	if in.maxLine <= 0 {
		in.maxLine = DefaultMaxLineSize
	}
	if in.separator == "" {
		in.separator = "@"
	}
	if in.workers <= 0 {
		in.workers = runtime.GOMAXPROCS(0)
	}
	if in.logger == nil {
		in.logger = slog.Default()
	}
	return in
}

// SplitRecord 把一行拆成样本和语言标签；格式不对时 ok 为 false
func SplitRecord(line, sep string) (text, tag string, ok bool) {
	record := strings.Split(strings.TrimSpace(line), sep)
	if len(record) != 2 || record[0] == "" || record[1] == "" {
		return "", "", false
	}
	return record[0], record[1], true
}

// IngestReader 逐行处理 r；name 只用于日志和错误信息
func (in *Ingester) IngestReader(ctx context.Context, name string, r io.Reader) error {
	reader := bufio.NewReaderSize(r, 64*1024)

	var ids []kmer.ID
	lineNo := 0
	for {
		line, tooLong, err := readLine(reader, in.maxLine)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("读取 %s 失败: %w", name, err)
		}

		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		if tooLong {
			in.logger.Warn("跳过超长行", "file", name, "line", lineNo, "limit", in.maxLine)
			in.skipped.Add(1)
			continue
		}

		text, tag, ok := SplitRecord(string(line), in.separator)
		if !ok {
			in.skipped.Add(1)
			continue
		}

		lang, err := profile.ParseLanguage(tag)
		if err != nil {
			if !in.lenient {
				return fmt.Errorf("%s:%d: %w", name, lineNo, err)
			}
			in.logger.Warn("跳过未知语言", "file", name, "line", lineNo, "tag", tag)
			in.skipped.Add(1)
			continue
		}

		ids = ids[:0]
		in.tokenizer.Each(text, func(id kmer.ID) { ids = append(ids, id) })
		if err := in.sink.AddBatch(ids, lang); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		in.records.Add(1)
		in.kmers.Add(int64(len(ids)))
	}
	return nil
}

// readLine 读取一整行(不含换行符)。超过 limit 字节时丢弃该行剩余内容，tooLong 为 true。
func readLine(reader *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			return line, tooLong, err
		}
		if !tooLong {
			if len(line)+len(chunk) > limit {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

// IngestFile 打开并处理单个文件
func (in *Ingester) IngestFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开语料失败: %w", err)
	}
	defer file.Close()

	if err := in.IngestReader(ctx, path, file); err != nil {
		return err
	}
	in.files.Add(1)
	in.logger.Debug("语料处理完成", "file", path)
	return nil
}

// IngestFiles 以 Workers 为并发上限处理全部文件，任一失败会取消其余文件
func (in *Ingester) IngestFiles(ctx context.Context, paths []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			return in.IngestFile(gctx, path)
		})
	}
	return g.Wait()
}

// Build 摄取全部文件，等所有 worker 返回后裁剪一次
func (in *Ingester) Build(ctx context.Context, paths []string, maxProfileSize int) error {
	if err := in.IngestFiles(ctx, paths); err != nil {
		return err
	}
	in.sink.Prune(maxProfileSize)

	st := in.Stats()
	in.logger.Info("语料摄取完成",
		"files", st.Files,
		"records", st.Records,
		"skipped", st.Skipped,
		"kmers", st.Kmers,
		"max_profile_size", maxProfileSize,
	)
	return nil
}

// Stats 返回当前计数
func (in *Ingester) Stats() Stats {
	return Stats{
		Files:   in.files.Load(),
		Records: in.records.Load(),
		Skipped: in.skipped.Load(),
		Kmers:   in.kmers.Load(),
	}
}
