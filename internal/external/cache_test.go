package external_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/talentrail/internal/domain"
	"github.com/pkordes/talentrail/internal/external"
)

// countingFetcher records every batch it is asked for.
type countingFetcher struct {
	mu    sync.Mutex
	calls [][]string
	stats map[string]domain.SkillStats
	err   error
}

func (f *countingFetcher) FetchStats(_ context.Context, slugs []string) ([]domain.SkillStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), slugs...))
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.SkillStats
	for _, s := range slugs {
		if st, ok := f.stats[s]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFetcher() *countingFetcher {
	return &countingFetcher{stats: map[string]domain.SkillStats{
		"java":   {Slug: "java", PopularityScore: 80, AverageSalary: 100000},
		"docker": {Slug: "docker", PopularityScore: 70, AverageSalary: 90000},
	}}
}

func TestCachedSkillStats_NilClientPassesThrough(t *testing.T) {
	f := newFetcher()
	c := external.NewCachedSkillStats(f, nil, time.Minute, discardLogger())

	for range 2 {
		stats, err := c.FetchStats(context.Background(), []string{"java"})
		require.NoError(t, err)
		require.Len(t, stats, 1)
	}
	assert.Len(t, f.calls, 2, "without redis every call reaches the provider")
}

func TestCachedSkillStats_UnreachableRedisIsBypassed(t *testing.T) {
	f := newFetcher()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := external.NewCachedSkillStats(f, rdb, time.Minute, discardLogger())

	stats, err := c.FetchStats(context.Background(), []string{"java", "docker"})

	require.NoError(t, err)
	assert.Len(t, stats, 2)
	assert.Len(t, f.calls, 1)
}

func TestCachedSkillStats_ProviderErrorPropagates(t *testing.T) {
	f := newFetcher()
	f.err = domain.ErrExternalService
	c := external.NewCachedSkillStats(f, nil, time.Minute, discardLogger())

	_, err := c.FetchStats(context.Background(), []string{"java"})

	assert.ErrorIs(t, err, domain.ErrExternalService)
}

// memoryRedis is a go-redis hook that answers MGET and SET from a map, so
// the cache can be exercised without a server.
type memoryRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(context.Context, string, string) (net.Conn, error) {
		return nil, errors.New("memoryRedis: no network")
	}
}

func (m *memoryRedis) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		m.apply(cmd)
		return nil
	}
}

func (m *memoryRedis) ProcessPipelineHook(redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(_ context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			m.apply(cmd)
		}
		return nil
	}
}

func (m *memoryRedis) apply(cmd redis.Cmder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	args := cmd.Args()
	switch c := cmd.(type) {
	case *redis.SliceCmd:
		vals := make([]interface{}, 0, len(args)-1)
		for _, k := range args[1:] {
			if v, ok := m.data[k.(string)]; ok {
				vals = append(vals, v)
			} else {
				vals = append(vals, nil)
			}
		}
		c.SetVal(vals)
	case *redis.StatusCmd:
		switch v := args[2].(type) {
		case []byte:
			m.data[args[1].(string)] = string(v)
		case string:
			m.data[args[1].(string)] = v
		}
		c.SetVal("OK")
	}
}

func newMemoryRedis(t *testing.T, seed map[string]string) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: "memory:0"})
	rdb.AddHook(&memoryRedis{data: seed})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestCachedSkillStats_ProviderErrorKeepsCachedHits(t *testing.T) {
	rdb := newMemoryRedis(t, map[string]string{
		"skillstats:java": `{"slug":"java","popularityScore":80,"averageSalary":100000}`,
	})
	f := newFetcher()
	f.err = domain.ErrExternalService
	c := external.NewCachedSkillStats(f, rdb, time.Minute, discardLogger())

	stats, err := c.FetchStats(context.Background(), []string{"java", "docker"})

	require.ErrorIs(t, err, domain.ErrExternalService)
	require.Len(t, stats, 1, "the cached entry survives the provider failure")
	assert.Equal(t, "java", stats[0].Slug)
	assert.Equal(t, 80, stats[0].PopularityScore)
	require.Len(t, f.calls, 1)
	assert.Equal(t, []string{"docker"}, f.calls[0])
}

func TestCachedSkillStats_MissesAreWrittenBack(t *testing.T) {
	rdb := newMemoryRedis(t, map[string]string{})
	f := newFetcher()
	c := external.NewCachedSkillStats(f, rdb, time.Minute, discardLogger())

	for range 2 {
		stats, err := c.FetchStats(context.Background(), []string{"java"})
		require.NoError(t, err)
		require.Len(t, stats, 1)
	}

	assert.Len(t, f.calls, 1, "the second lookup is served from the cache")
}

// TestCachedSkillStats_ServesHitsFromRedis needs a disposable Redis and
// skips unless TEST_REDIS_URL is set.
func TestCachedSkillStats_ServesHitsFromRedis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set; skipping redis integration test")
	}
	ctx := context.Background()
	rdb, err := external.NewRedisClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Del(ctx, "skillstats:java", "skillstats:docker").Err())

	f := newFetcher()
	c := external.NewCachedSkillStats(f, rdb, time.Minute, discardLogger())

	_, err = c.FetchStats(ctx, []string{"java"})
	require.NoError(t, err)
	stats, err := c.FetchStats(ctx, []string{"java", "docker"})
	require.NoError(t, err)

	assert.Len(t, stats, 2)
	require.Len(t, f.calls, 2)
	assert.Equal(t, []string{"docker"}, f.calls[1], "cached slugs are not fetched again")
}
