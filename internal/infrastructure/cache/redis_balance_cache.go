package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shantum/COH-ERP2-sub001/internal/application/inventory"
)

const (
	// DefaultBalanceTTL bounds how long a balance may outlive a missed invalidation
	DefaultBalanceTTL = 10 * time.Minute

	defaultKeyPrefix = "returns:balance:"
)

// setIfGeneration writes KEYS[1] only while the generation counter at KEYS[2]
// still equals ARGV[2]. A missing counter reads as generation 0.
var setIfGeneration = redis.NewScript(`
local gen = redis.call('GET', KEYS[2])
if (gen or '0') == ARGV[2] then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
	return 1
end
return 0
`)

// RedisBalanceCache implements BalanceCache on Redis so that every instance
// sees the same balances and generations.
type RedisBalanceCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisBalanceCache creates a balance cache on an existing client
func NewRedisBalanceCache(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisBalanceCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultBalanceTTL
	}
	return &RedisBalanceCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (c *RedisBalanceCache) balanceKey(id uuid.UUID) string {
	return c.keyPrefix + id.String()
}

func (c *RedisBalanceCache) generationKey(id uuid.UUID) string {
	return c.keyPrefix + "gen:" + id.String()
}

// GetMany fetches all balances with one MGET
func (c *RedisBalanceCache) GetMany(ctx context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(skuIDs))
	if len(skuIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(skuIDs))
	for i, id := range skuIDs {
		keys[i] = c.balanceKey(id)
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read balances: %w", err)
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		balance, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		out[skuIDs[i]] = balance
	}
	return out, nil
}

// Generations fetches generation counters with one MGET
func (c *RedisBalanceCache) Generations(ctx context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(skuIDs))
	if len(skuIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(skuIDs))
	for i, id := range skuIDs {
		keys[i] = c.generationKey(id)
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read balance generations: %w", err)
	}

	for i, v := range values {
		out[skuIDs[i]] = 0
		if s, ok := v.(string); ok {
			gen, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("corrupt generation for %s: %w", skuIDs[i], err)
			}
			out[skuIDs[i]] = gen
		}
	}
	return out, nil
}

// SetIfUnchanged runs the conditional set for every balance in one pipeline
func (c *RedisBalanceCache) SetIfUnchanged(ctx context.Context, balances map[uuid.UUID]int, generations map[uuid.UUID]int64) error {
	if len(balances) == 0 {
		return nil
	}

	ttl := strconv.FormatInt(c.ttl.Milliseconds(), 10)
	pipe := c.client.Pipeline()
	for id, balance := range balances {
		gen, ok := generations[id]
		if !ok {
			continue
		}
		setIfGeneration.Eval(ctx, pipe,
			[]string{c.balanceKey(id), c.generationKey(id)},
			strconv.Itoa(balance), strconv.FormatInt(gen, 10), ttl,
		)
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to store balances: %w", err)
	}
	return nil
}

// Invalidate deletes balances and increments generations atomically per call
func (c *RedisBalanceCache) Invalidate(ctx context.Context, skuIDs ...uuid.UUID) error {
	if len(skuIDs) == 0 {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range skuIDs {
			pipe.Del(ctx, c.balanceKey(id))
			pipe.Incr(ctx, c.generationKey(id))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate balances: %w", err)
	}
	return nil
}

var _ inventory.BalanceCache = (*RedisBalanceCache)(nil)
