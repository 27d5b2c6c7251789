package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shantum/COH-ERP2-sub001/internal/application/inventory"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/config"
	"go.uber.org/zap"
)

// BalanceCacheFactory creates balance caches based on configuration
type BalanceCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	pingTimeout           time.Duration
}

// BalanceCacheFactoryOption is a functional option for configuring the factory
type BalanceCacheFactoryOption func(*BalanceCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) BalanceCacheFactoryOption {
	return func(f *BalanceCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-process cache. Default is true.
func WithInMemoryFallback(allow bool) BalanceCacheFactoryOption {
	return func(f *BalanceCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// WithPingTimeout bounds the startup connectivity check
func WithPingTimeout(d time.Duration) BalanceCacheFactoryOption {
	return func(f *BalanceCacheFactory) {
		f.pingTimeout = d
	}
}

// NewBalanceCacheFactory creates a new factory
func NewBalanceCacheFactory(cfg config.RedisConfig, opts ...BalanceCacheFactoryOption) *BalanceCacheFactory {
	f := &BalanceCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		pingTimeout:           5 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache connects to Redis and returns a cache plus its closer
func (f *BalanceCacheFactory) CreateRedisCache(ctx context.Context) (*RedisBalanceCache, func() error, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, f.pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisBalanceCache(client, "", f.redisConfig.BalanceTTL), client.Close, nil
}

// CreateCache returns the Redis cache when enabled and reachable, otherwise
// the in-memory cache. The closer is always safe to call.
func (f *BalanceCacheFactory) CreateCache(ctx context.Context) (inventory.BalanceCache, func() error, error) {
	noop := func() error { return nil }

	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory balance cache")
		return NewMemoryBalanceCache(f.redisConfig.BalanceTTL), noop, nil
	}

	c, closer, err := f.CreateRedisCache(ctx)
	if err == nil {
		f.logger.Info("using Redis balance cache", zap.String("addr", f.redisConfig.Addr()))
		return c, closer, nil
	}

	if !f.allowInMemoryFallback {
		return nil, nil, fmt.Errorf("Redis required for balance cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory balance cache. "+
		"Balances cached by other instances will not be invalidated by this one.",
		zap.Error(err),
	)
	return NewMemoryBalanceCache(f.redisConfig.BalanceTTL), noop, nil
}
