package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccp-p/langid/internal/classifier"
	"github.com/ccp-p/langid/internal/detect"
	"github.com/ccp-p/langid/internal/report"
)

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [text...]",
		Short: "识别文本的语言(参数、--file 或标准输入)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			text, err := readQuery(cmd, args)
			if err != nil {
				return err
			}

			store, _, err := buildStore(cmd.Context(), cfg, newLogger(cmd))
			if err != nil {
				return err
			}

			var opts []classifier.Option
			if abs, _ := cmd.Flags().GetBool("absolute"); abs {
				opts = append(opts, classifier.WithAbsoluteTerms())
			}
			detector := detect.New(store, tokenizer(cfg), cfg.MaxProfileSize, opts...)

			ranking, err := detector.Explain(text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return report.JSON(out, map[string]any{
					"language": ranking[0].Language,
					"ranking":  ranking,
				})
			}
			top, _ := cmd.Flags().GetInt("top")
			report.NewPrinter(out).Result(ranking[0].Language, ranking, top)
			return nil
		},
	}

	cmd.Flags().String("file", "", "从文件读取待测文本")
	cmd.Flags().Int("top", 5, "显示距离最小的语言数量")
	cmd.Flags().Bool("json", false, "以 JSON 格式输出")
	cmd.Flags().Bool("absolute", false, "逐项取绝对值的距离")
	return cmd
}

// readQuery 依次尝试命令行参数、--file 和标准输入
func readQuery(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
