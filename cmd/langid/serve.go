package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccp-p/langid/internal/detect"
	"github.com/ccp-p/langid/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "构建语言数据库并提供 HTTP 检测接口",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logger := newLogger(cmd)
			store, stats, err := buildStore(ctx, cfg, logger)
			if err != nil {
				return err
			}

			detector := detect.New(store, tokenizer(cfg), cfg.MaxProfileSize)
			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           server.New(detector, store, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			logger.Info("API 服务器启动", "addr", cfg.Server.Addr, "records", stats.Records)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "监听地址(默认取配置)")
	return cmd
}
