package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	https_server "ContentFront/api/http"
	"ContentFront/internal/config"
	"ContentFront/internal/modules/content/infrastructure/upstream"
	"ContentFront/pkg/util/myjwt"
	"ContentFront/pkg/zlog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultConfigHint = config.DefaultPath
	shutdownTimeout   = 5 * time.Second
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(cmd.Flag("config").Value.String())
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load and validate configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config ok: %s (%s), upstream=%q\n",
				conf.MainConfig.AppName, conf.MainConfig.Environment, conf.UpstreamConfig.APIAddress)
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token key=value ...",
		Short: "Mint a session cookie value signed with the configured secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			session, err := parsePairs(args)
			if err != nil {
				return err
			}
			token, err := myjwt.SignSession(session, conf.SessionConfig.SecretKey, conf.SessionLifetime())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", conf.SessionConfig.CookieName, token)
			return nil
		},
	}
}

// parsePairs 把 key=value 参数转为会话数据
func parsePairs(args []string) (map[string]any, error) {
	session := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid session pair %q, want key=value", arg)
		}
		session[key] = value
	}
	return session, nil
}

func runServe(cmd *cobra.Command) error {
	// 1. 加载配置
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// 2. 初始化日志
	if err := zlog.Init(conf.LogConfig, conf.MainConfig.Environment); err != nil {
		return err
	}
	defer zlog.Sync()

	if conf.UpstreamConfig.APIAddress == "" {
		zlog.Warn("API_ADDRESS is not set, home page requests will fail")
	}

	// 3. 组装路由
	fetcher := upstream.NewContentClient(conf.UpstreamConfig.APIAddress, conf.UpstreamTimeout())
	engine, err := https_server.NewEngine(conf, fetcher)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              conf.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. 启动 HTTP 服务
	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("environment", conf.MainConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 5. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			zlog.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case sig := <-quit:
		zlog.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
		return err
	}

	zlog.Info("server stopped")
	return nil
}
