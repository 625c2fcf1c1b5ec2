package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ccp-p/langid/internal/config"
	"github.com/ccp-p/langid/internal/finder"
	"github.com/ccp-p/langid/internal/kmer"
	"github.com/ccp-p/langid/internal/pipeline"
	"github.com/ccp-p/langid/internal/profile"
)

var errorColor = color.New(color.FgRed).SprintFunc()

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "langid",
		Short:         "基于 k-mer 排名距离的文本语言识别",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newServeCmd())

	// 全局参数，覆盖配置文件中的值
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "TOML 配置文件路径")
	flags.Int("k", config.DefaultK, "k-mer 长度")
	flags.Int("max", config.DefaultMaxProfileSize, "每种语言保留的 k-mer 数量")
	flags.Int("workers", 0, "并行处理的文件数(0 表示使用配置)")
	flags.String("corpus", "", "语料目录")
	flags.String("pattern", "", "语料文件名匹配模式(正则表达式)")
	flags.Bool("lenient", false, "跳过未知语言标签")
	flags.Bool("fold-case", false, "切分前折叠大小写")
	flags.BoolP("verbose", "v", false, "显示详细日志")
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorColor("错误"), err)
		os.Exit(1)
	}
}

// loadConfig 读取配置文件，再用显式给出的命令行参数覆盖
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("k") {
		cfg.K, _ = flags.GetInt("k")
	}
	if flags.Changed("max") {
		cfg.MaxProfileSize, _ = flags.GetInt("max")
	}
	if n, _ := flags.GetInt("workers"); n > 0 {
		cfg.Workers = n
	}
	if dir, _ := flags.GetString("corpus"); dir != "" {
		cfg.Corpus.Dir = dir
	}
	if pattern, _ := flags.GetString("pattern"); pattern != "" {
		cfg.Corpus.Pattern = pattern
	}
	if flags.Changed("lenient") {
		cfg.Lenient, _ = flags.GetBool("lenient")
	}
	if flags.Changed("fold-case") {
		cfg.FoldCase, _ = flags.GetBool("fold-case")
	}
	return cfg, cfg.Validate()
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func tokenizer(cfg config.Config) kmer.Tokenizer {
	return kmer.Tokenizer{K: cfg.K, FoldCase: cfg.FoldCase}
}

// buildStore 查找语料、并行摄取并裁剪
func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*profile.Store, pipeline.Stats, error) {
	start := time.Now()

	fileFinder, err := finder.NewFileFinder(cfg.Corpus.Pattern)
	if err != nil {
		return nil, pipeline.Stats{}, err
	}
	paths, err := fileFinder.FindFiles(ctx, cfg.Corpus.Dir)
	if err != nil {
		return nil, pipeline.Stats{}, err
	}
	if len(paths) == 0 {
		return nil, pipeline.Stats{}, fmt.Errorf("目录 %s 中没有匹配 %q 的语料文件", cfg.Corpus.Dir, cfg.Corpus.Pattern)
	}

	store := profile.NewStore()
	ingester := pipeline.New(store, pipeline.Options{
		Tokenizer: tokenizer(cfg),
		Separator: cfg.Separator,
		Workers:   cfg.Workers,
		Lenient:   cfg.Lenient,
		Logger:    logger,
	})
	if err := ingester.Build(ctx, paths, cfg.MaxProfileSize); err != nil {
		return nil, pipeline.Stats{}, err
	}

	logger.Debug("构建语言数据库", "elapsed", time.Since(start))
	return store, ingester.Stats(), nil
}
