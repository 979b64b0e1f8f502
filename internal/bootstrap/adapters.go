package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/formdesk/formdesk/config"
	"github.com/formdesk/formdesk/internal/adapters/devauth"
	"github.com/formdesk/formdesk/internal/adapters/memstore"
	"github.com/formdesk/formdesk/internal/adapters/oauthlogin"
	"github.com/formdesk/formdesk/internal/adapters/recordapi"
	"github.com/formdesk/formdesk/internal/adapters/redisstore"
	domainauth "github.com/formdesk/formdesk/internal/domain/auth"
	"github.com/formdesk/formdesk/internal/ports"
)

// ConnectRedis connects the optional Redis client for durable sessions.
// Returns nil when no Redis address is configured.
//
//nolint:ireturn // redis.UniversalClient keeps sentinel/cluster support flexible.
func ConnectRedis(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis after ping failure", "error", cerr)
		}
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// BuildSessionStore selects the session store adapter: Redis when a
// client is provided, otherwise the in-memory register.
//
//nolint:ireturn // callers depend on the port, not a concrete store.
func BuildSessionStore(redisClient redis.UniversalClient, cfg *config.AppConfig, logger *slog.Logger) ports.SessionStore {
	if redisClient != nil {
		logger.Info("using redis session store", "addr", cfg.Redis.Addr)
		return redisstore.NewWithPrefix(redisClient, cfg.Redis.KeyPrefix)
	}
	logger.Info("using in-memory session store")
	return memstore.New()
}

// BuildLoginProvider selects the login URL builder for the configured
// auth mode.
//
//nolint:ireturn // callers depend on the port, not a concrete provider.
func BuildLoginProvider(cfg *config.AppConfig) (ports.LoginURLBuilder, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		role, _ := domainauth.ParseRole(cfg.Auth.DevAuth.Role)
		return devauth.NewProvider(devauth.Config{
			UserID: cfg.Auth.DevAuth.UserID,
			Email:  cfg.Auth.DevAuth.Email,
			Role:   role,
		})
	case config.AuthModeOAuth:
		return oauthlogin.New(oauthlogin.Config{
			AuthURL:     cfg.Auth.OAuth.AuthURL,
			ClientID:    cfg.Auth.OAuth.ClientID,
			RedirectURL: cfg.Auth.OAuth.RedirectURL,
			Scope:       cfg.Auth.OAuth.Scope,
		})
	default:
		return nil, fmt.Errorf("unsupported auth mode: %q", cfg.Auth.Mode)
	}
}

// BuildRecordAPI constructs the record API client.
func BuildRecordAPI(cfg *config.AppConfig, logger *slog.Logger) (*recordapi.Client, error) {
	return recordapi.New(recordapi.Config{
		BaseURL: cfg.RecordAPI.BaseURL,
		Timeout: cfg.RecordAPI.Timeout,
		Logger:  logger,
	})
}
