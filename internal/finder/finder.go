package finder

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
)

// DefaultPattern 匹配语料文本文件
const DefaultPattern = `\.txt$`

// FileFinder 查找文件名匹配模式的语料文件
type FileFinder struct {
	pattern *regexp.Regexp
}

// NewFileFinder 创建文件查找器
func NewFileFinder(pattern string) (*FileFinder, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("编译文件名模式失败: %w", err)
	}
	return &FileFinder{pattern: regex}, nil
}

// FindFiles 遍历目录，按路径排序返回匹配的普通文件
func (f *FileFinder) FindFiles(ctx context.Context, directory string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		// 跳过目录
		if d.IsDir() {
			return nil
		}

		if d.Type().IsRegular() && f.pattern.MatchString(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("遍历目录 %s 失败: %w", directory, err)
	}

	// 排序保证摄取顺序确定
	sort.Strings(files)
	return files, nil
}
