// Package config 加载语言识别的运行参数
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ccp-p/langid/internal/finder"
)

// 默认参数
const (
	DefaultK              = 5
	DefaultMaxProfileSize = 300
	DefaultSeparator      = "@"
	DefaultAddr           = ":8080"
)

// ErrInvalid 配置值不合法
var ErrInvalid = errors.New("config: 配置不合法")

// Config 是完整的运行配置
type Config struct {
	K              int    `toml:"k"`                // k-mer 长度
	MaxProfileSize int    `toml:"max_profile_size"` // 每种语言保留的条目上限
	Workers        int    `toml:"workers"`          // 并行摄取的文件数
	Separator      string `toml:"separator"`        // 样本与语言标签的分隔符
	FoldCase       bool   `toml:"fold_case"`        // 切分前折叠大小写
	Lenient        bool   `toml:"lenient"`          // 跳过未知语言标签而不是报错

	Corpus CorpusConfig `toml:"corpus"`
	Server ServerConfig `toml:"server"`
}

// CorpusConfig 描述训练语料的位置
type CorpusConfig struct {
	Dir     string `toml:"dir"`
	Pattern string `toml:"pattern"`
}

// ServerConfig HTTP 服务设置
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default 返回默认配置
func Default() Config {
	return Config{
		K:              DefaultK,
		MaxProfileSize: DefaultMaxProfileSize,
		Workers:        runtime.GOMAXPROCS(0),
		Separator:      DefaultSeparator,
		Corpus: CorpusConfig{
			Dir:     ".",
			Pattern: finder.DefaultPattern,
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Load 在默认配置之上解码 TOML 文件；path 为空时只返回默认配置
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: 解析 TOML 失败: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("%s: %w: 未知配置项 %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate 检查取值范围
func (c Config) Validate() error {
	switch {
	case c.K <= 0:
		return fmt.Errorf("%w: k 必须大于 0，实际为 %d", ErrInvalid, c.K)
	case c.MaxProfileSize < 0:
		return fmt.Errorf("%w: max_profile_size 不能为负数，实际为 %d", ErrInvalid, c.MaxProfileSize)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers 必须大于 0，实际为 %d", ErrInvalid, c.Workers)
	case c.Separator == "":
		return fmt.Errorf("%w: separator 不能为空", ErrInvalid)
	}
	return nil
}
