// README: Flow result cache backed by Redis.
package flow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "flow:result:"

// ResultCache stores raw flow results. Get returns (nil, nil) on a miss.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) ResultCache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// CachingRunner serves repeated invocations of selected flows from the cache.
// Only successful results are cached; cache errors fall through to the runner.
type CachingRunner struct {
	next      Runner
	cache     ResultCache
	ttl       time.Duration
	cacheable map[string]bool
	logger    *zap.Logger
}

func NewCachingRunner(next Runner, cache ResultCache, ttl time.Duration, logger *zap.Logger, flows ...string) *CachingRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	set := make(map[string]bool, len(flows))
	for _, f := range flows {
		set[f] = true
	}
	return &CachingRunner{next: next, cache: cache, ttl: ttl, cacheable: set, logger: logger}
}

func (c *CachingRunner) RunFlow(ctx context.Context, flowID string, input json.RawMessage, opts RunOptions) (json.RawMessage, error) {
	if !c.cacheable[flowID] {
		return c.next.RunFlow(ctx, flowID, input, opts)
	}

	key := CacheKey(flowID, input, opts.Context)
	if hit, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("flow cache get", zap.String("flow", flowID), zap.Error(err))
	} else if hit != nil {
		return hit, nil
	}

	res, err := c.next.RunFlow(ctx, flowID, input, opts)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, res, c.ttl); err != nil {
		c.logger.Warn("flow cache set", zap.String("flow", flowID), zap.Error(err))
	}
	return res, nil
}

func (c *CachingRunner) ListFlows(ctx context.Context) (json.RawMessage, error) {
	return c.next.ListFlows(ctx)
}

// CacheKey hashes the flow id, input and context fields in a stable order.
func CacheKey(flowID string, input json.RawMessage, fc Context) string {
	h := sha256.New()
	h.Write([]byte(flowID))
	h.Write([]byte{0})
	h.Write(compact(input))
	keys := make([]string, 0, len(fc.Rest))
	for k := range fc.Rest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Write([]byte{0})
		h.Write([]byte(k))
		h.Write([]byte{'='})
		h.Write(compact(fc.Rest[k]))
	}
	return cacheKeyPrefix + flowID + ":" + hex.EncodeToString(h.Sum(nil))
}

// compact normalises whitespace; raw is returned as-is if it is not valid JSON.
func compact(raw json.RawMessage) []byte {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw
	}
	b, err := json.Marshal(v)
	if err != nil {
		return raw
	}
	return b
}
