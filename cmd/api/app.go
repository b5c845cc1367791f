package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/talentrail/internal/auth"
	"github.com/pkordes/talentrail/internal/config"
	"github.com/pkordes/talentrail/internal/external"
	"github.com/pkordes/talentrail/internal/repo"
	"github.com/pkordes/talentrail/internal/service"
)

// app holds the dependencies shared by every subcommand.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// newApp loads configuration, sets up the JSON logger and connects to
// Postgres. Callers must call close.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		return nil, err
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// New() does not open connections; the ping below does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	return &app{cfg: cfg, logger: logger, pool: pool}, nil
}

func (a *app) close() {
	a.pool.Close()
}

// services is the wired service layer.
type services struct {
	guides     *service.GuideService
	skills     *service.SkillService
	trips      *service.TripService
	candidates *service.CandidateService
	auth       *service.AuthService
	tokens     *auth.TokenService
	closeFn    func()
}

// buildServices wires repos, outbound clients and services. The Redis cache
// is optional: an unset REDIS_URL, or a server that does not answer at
// startup, leaves skill stats uncached.
func (a *app) buildServices(ctx context.Context) *services {
	httpClient := external.NewHTTPClient(a.cfg.HTTPClientTimeout)

	// rdb stays a nil interface, not a typed nil, when Redis is off.
	var rdb redis.UniversalClient
	closeFn := func() {}
	if a.cfg.RedisURL != "" {
		client, err := external.NewRedisClient(ctx, a.cfg.RedisURL)
		if err != nil {
			a.logger.Warn("redis unavailable; skill stats will not be cached", "error", err)
		} else {
			rdb = client
			closeFn = func() { _ = client.Close() }
			a.logger.Info("skill stats cache enabled", "ttl", a.cfg.SkillStatsCacheTTL.String())
		}
	}

	stats := external.NewCachedSkillStats(
		external.NewSkillStatsClient(a.cfg.SkillStatsURL, httpClient),
		rdb, a.cfg.SkillStatsCacheTTL, a.logger,
	)
	packing := external.NewPackingClient(a.cfg.PackingURL, httpClient)
	enricher := service.NewEnricher(stats, packing, a.logger)

	guideRepo := repo.NewGuideRepo(a.pool)
	skillRepo := repo.NewSkillRepo(a.pool)
	tokens := auth.NewTokenService(a.cfg.JWTSecret, a.cfg.JWTTTL)

	return &services{
		guides:     service.NewGuideService(guideRepo),
		skills:     service.NewSkillService(skillRepo),
		trips:      service.NewTripService(repo.NewTripRepo(a.pool), enricher),
		candidates: service.NewCandidateService(repo.NewCandidateRepo(a.pool), enricher),
		auth:       service.NewAuthService(repo.NewUserRepo(a.pool), tokens),
		tokens:     tokens,
		closeFn:    closeFn,
	}
}

// shutdownTimeout bounds how long in-flight requests may finish after a
// termination signal.
const shutdownTimeout = 15 * time.Second
