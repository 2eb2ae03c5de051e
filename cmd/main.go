package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"nft_tracker/internal/application"
	"nft_tracker/internal/config"
	"nft_tracker/pkg/contextx"
	"nft_tracker/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	logOut, closeLog, err := logWriter(cfg.App.LogFile)
	if err != nil {
		slog.Error("logWriter", logx.Error(err))
		os.Exit(1)
	}

	log := logx.NewLogger(logOut, cfg.App.LogLevel, cfg.Table.NoColor || cfg.App.LogFile != "").With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	err = application.Run(ctx, cfg, os.Stdout)
	if err != nil {
		log.Error("application failed", logx.Error(err))
	} else {
		log.Info("application stopped")
	}

	closeLog()

	if err != nil {
		os.Exit(1) //nolint:gocritic
	}
}

// logWriter keeps logs off the table when LOG_FILE is set.
func logWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("os.OpenFile: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}
