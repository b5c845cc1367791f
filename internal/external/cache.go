package external

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/talentrail/internal/domain"
)

// StatsFetcher is the behaviour CachedSkillStats wraps.
type StatsFetcher interface {
	FetchStats(ctx context.Context, slugs []string) ([]domain.SkillStats, error)
}

// DefaultStatsTTL is used when no cache TTL is configured.
const DefaultStatsTTL = 10 * time.Minute

const statsKeyPrefix = "skillstats:"

// CachedSkillStats is a read-through Redis cache in front of a StatsFetcher.
// Cached slugs are served from Redis; the remaining slugs are fetched in one
// batch and written back. Redis failures never fail a lookup: the cache is
// bypassed and the first failure is logged.
type CachedSkillStats struct {
	next   StatsFetcher
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger

	warnedUnavailable atomic.Bool
}

// NewCachedSkillStats wraps next. A nil rdb disables caching entirely.
func NewCachedSkillStats(next StatsFetcher, rdb redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedSkillStats {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSkillStats{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// FetchStats returns the stats for slugs, consulting Redis first. When the
// provider fails for the cache misses, the cached hits are returned together
// with the error.
func (c *CachedSkillStats) FetchStats(ctx context.Context, slugs []string) ([]domain.SkillStats, error) {
	if c.rdb == nil || len(slugs) == 0 {
		return c.next.FetchStats(ctx, slugs)
	}

	hits, misses := c.lookup(ctx, slugs)
	if len(misses) == 0 {
		return hits, nil
	}

	fetched, err := c.next.FetchStats(ctx, misses)
	if err != nil {
		return hits, err
	}
	c.store(ctx, fetched)

	return append(hits, fetched...), nil
}

func (c *CachedSkillStats) lookup(ctx context.Context, slugs []string) ([]domain.SkillStats, []string) {
	keys := make([]string, len(slugs))
	for i, s := range slugs {
		keys[i] = statsKeyPrefix + s
	}

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.warnUnavailableOnce(err)
		return nil, slugs
	}

	var (
		hits   []domain.SkillStats
		misses []string
	)
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			misses = append(misses, slugs[i])
			continue
		}
		var st domain.SkillStats
		if err := json.Unmarshal([]byte(raw), &st); err != nil {
			misses = append(misses, slugs[i])
			continue
		}
		hits = append(hits, st)
	}
	return hits, misses
}

func (c *CachedSkillStats) store(ctx context.Context, stats []domain.SkillStats) {
	if len(stats) == 0 {
		return
	}
	_, err := c.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, st := range stats {
			b, err := json.Marshal(st)
			if err != nil {
				return err
			}
			p.Set(ctx, statsKeyPrefix+st.Slug, b, c.ttl)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		c.warnUnavailableOnce(err)
	}
}

func (c *CachedSkillStats) warnUnavailableOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		c.logger.Warn("redis unavailable, bypassing skill stats cache", "error", err)
	}
}
