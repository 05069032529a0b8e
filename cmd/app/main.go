package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osse101/GrandChallenge_Go/internal/bootstrap"
	"github.com/osse101/GrandChallenge_Go/internal/bracket"
	"github.com/osse101/GrandChallenge_Go/internal/config"
	"github.com/osse101/GrandChallenge_Go/internal/database"
	"github.com/osse101/GrandChallenge_Go/internal/directory"
	"github.com/osse101/GrandChallenge_Go/internal/server"
	"github.com/osse101/GrandChallenge_Go/internal/tournament"
)

const shutdownTimeout = 15 * time.Second

// @title GrandChallenge API
// @version 1.0
// @description Double-elimination bracket progression for GrandChallenge tournaments.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	initLogger(cfg)
	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}
	slog.Info(bootstrap.LogMsgStartingGrandChallenge,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"port", cfg.Port)

	sentryEnabled, err := bootstrap.InitSentry(cfg)
	if err != nil {
		// reporting is optional; keep serving
		slog.Error("Sentry initialization failed", "error", err)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, pool); err != nil {
		slog.Error("Failed to apply migrations", "error", err)
		pool.Close()
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(pool)
	players := directory.NewService(repos.Directory, directory.CacheConfig{
		Size: cfg.DirectoryCacheSize,
		TTL:  cfg.DirectoryCacheTTL,
	})
	if err := bootstrap.RegisterDirectoryMetrics(prometheus.DefaultRegisterer, players); err != nil {
		slog.Warn("Directory cache metrics unavailable", "error", err)
	}

	bracketCfg := bracket.Config{
		FinalRound:     cfg.FinalRound,
		LastFinalRound: cfg.LastFinalRound,
		MaxLosses:      cfg.MaxLosses,
	}
	if err := bracketCfg.Validate(); err != nil {
		slog.Error("Invalid bracket configuration", "error", err)
		pool.Close()
		os.Exit(1)
	}
	engine := bracket.NewEngine(bracketCfg)

	eventBus := bootstrap.InitializeEventSystem()
	announcer, err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		Names:    players,
		Config:   cfg,
	})
	if err != nil {
		// announcements are optional; keep serving
		slog.Error("Failed to register event handlers", "error", err)
	}

	views := tournament.NewViewBuilder(engine, players, cfg.DashboardLocale)
	tournamentService, err := tournament.NewService(repos.Tournament, engine, eventBus, views, cfg.SnapshotCacheSize)
	if err != nil {
		slog.Error("Failed to create tournament service", "error", err)
		pool.Close()
		os.Exit(1)
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		CORSOrigins:    cfg.CORSAllowedOrigins,
	}, pool, tournamentService)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Announcer: announcer,
		DBPool:    pool,
		Sentry:    sentryEnabled,
	})
}
