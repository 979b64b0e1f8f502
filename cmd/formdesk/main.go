package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/formdesk/formdesk/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if err = bootstrap.ValidateConfig(&cfg); err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting formdesk",
		"addr", cfg.HTTP.Addr,
		"auth_mode", cfg.Auth.Mode,
		"record_api", cfg.RecordAPI.BaseURL)

	redisClient, err := bootstrap.ConnectRedis(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	login, err := bootstrap.BuildLoginProvider(&cfg)
	if err != nil {
		return err
	}
	api, err := bootstrap.BuildRecordAPI(&cfg, logger)
	if err != nil {
		return err
	}

	return bootstrap.RunServer(ctx, &bootstrap.ServiceDeps{
		Config:   &cfg,
		Sessions: bootstrap.BuildSessionStore(redisClient, &cfg, logger),
		API:      api,
		Login:    login,
		Logger:   logger,
	})
}
