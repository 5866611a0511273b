package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"grantvet/internal/api"
	"grantvet/internal/api/handlers"
	"grantvet/internal/config"
	"grantvet/internal/domain/services/sanctions"
	"grantvet/internal/domain/services/vetting"
	"grantvet/internal/infrastructure/cache"
	"grantvet/internal/infrastructure/database"
	"grantvet/internal/infrastructure/database/repository"
	"grantvet/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting grantvet")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL is required; the whole vetting workflow persists there
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db.Pool()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional; without it we lose caching and rate limiting
	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	repos := repository.New(db.Pool())

	detector := vetting.NewDetector(log, customPatterns(cfg))
	analyzer := vetting.NewAnalyzer(log, detector, cfg.Analysis.StrictMode)

	var checkerCache sanctions.Cache
	if redisCache != nil {
		checkerCache = redisCache
	}
	checker := sanctions.NewChecker(sanctions.Config{
		SearchURL:  cfg.Sanctions.SearchURL,
		SDNListURL: cfg.Sanctions.SDNListURL,
		MinScore:   cfg.Sanctions.MinScore,
		Timeout:    cfg.Sanctions.Timeout,
		CacheTTL:   cfg.Sanctions.CacheTTL,
	}, checkerCache, log)

	vettingService := vetting.NewService(repos, analyzer, checker, log)

	h := handlers.NewHandlers(handlers.Dependencies{
		Config:  cfg,
		Vetting: vettingService,
		Checker: checker,
		Cache:   redisCache,
		Repos:   repos,
		Logger:  log,
	})

	router := api.NewRouter(cfg, h, redisCache, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// customPatterns converts configured extra keywords into detector entries
func customPatterns(cfg *config.Config) map[string][]vetting.PatternEntry {
	if len(cfg.Analysis.CustomKeywords) == 0 {
		return nil
	}
	out := make(map[string][]vetting.PatternEntry, len(cfg.Analysis.CustomKeywords))
	for category, entries := range cfg.Analysis.CustomKeywords {
		for _, e := range entries {
			out[category] = append(out[category], vetting.PatternEntry{
				Pattern:  e.Pattern,
				Severity: e.Severity,
			})
		}
	}
	return out
}
