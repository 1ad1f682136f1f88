package cli

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/viant/transcript/client"
	"github.com/viant/transcript/client/auth/store"
	"github.com/viant/transcript/internal/config"
	"github.com/viant/transcript/internal/logger"
	"go.uber.org/zap"
)

// NewClient creates transcript client from config
func NewClient(ctx context.Context, cfg *config.Config) (*client.Client, error) {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, err
	}
	return client.New(ctx, cfg.API.URL,
		client.WithStore(store.New(newBackend(cfg), store.WithLogger(log))),
		client.WithTimeout(cfg.API.Timeout),
		client.WithRenewMargin(cfg.Auth.Margin),
		client.WithRetryLimit(cfg.Auth.RetryLimit),
		client.WithLogger(log.With(zap.String("api", cfg.API.URL))),
	)
}

func newBackend(cfg *config.Config) store.Backend {
	if redisConfig := cfg.Store.Redis; redisConfig.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisConfig.Addr,
			Password: redisConfig.Password,
			DB:       redisConfig.DB,
		})
		return store.NewRedisBackend(rdb, redisConfig.Prefix)
	}
	return store.NewFileBackend(cfg.Store.URL)
}
