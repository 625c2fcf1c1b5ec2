package main

import (
	"github.com/spf13/cobra"

	"github.com/ccp-p/langid/internal/report"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "构建并输出各语言的 k-mer Profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, stats, err := buildStore(cmd.Context(), cfg, newLogger(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				snap, err := report.Snapshot(store, true)
				if err != nil {
					return err
				}
				return report.JSON(out, snap)
			}

			printer := report.NewPrinter(out)
			printer.Ingest(stats)
			return printer.Store(store)
		},
	}

	cmd.Flags().Bool("json", false, "以 JSON 格式输出")
	return cmd
}
