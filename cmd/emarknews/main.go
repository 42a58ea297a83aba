package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"emarknews/internal/aggregate"
	"emarknews/internal/api"
	"emarknews/internal/cache"
	"emarknews/internal/config"
	"emarknews/internal/currency"
	"emarknews/internal/enrich"
	"emarknews/internal/feed"
	"emarknews/internal/fetcher"
	"emarknews/internal/logger"
	"emarknews/internal/scheduler"
	"emarknews/internal/scraper"
	"emarknews/internal/youtube"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	sources, err := fetcher.LoadSources(cfg.FeedsConfigPath)
	if err != nil {
		logger.Error("sources config load failed", "error", err)
		os.Exit(1)
	}

	store := cache.New(cfg.RedisURL)
	go store.Connect(context.Background())

	client := fetcher.NewClient(cfg.NewsAPIKey, cfg.PerSourceItems, cfg.SourceTimeout)
	agg := aggregate.New(client, sources, cfg.MaxArticles, cfg.NewsAPIKey != "")

	var provider enrich.Provider
	if cfg.GeminiAPIKey != "" {
		gemini, err := enrich.NewGeminiProvider(cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("Gemini init failed, AI enrichment disabled", "error", err)
		} else {
			defer gemini.Close()
			provider = gemini
		}
	} else {
		logger.Info("no GEMINI_API_KEY, AI enrichment disabled")
	}

	pipeline := enrich.NewPipeline(provider, scraper.New(cfg.SourceTimeout*3), enrich.Options{
		QualitySources: cfg.QualitySources,
		Concurrency:    cfg.EnrichConcurrency,
		BatchSize:      cfg.EnrichBatch,
		CallTimeout:    cfg.EnrichTimeout,
	})

	feeds := feed.NewService(agg, pipeline, store, cfg.CacheTTL)

	preload, err := scheduler.New(cfg.PreloadSpec, feeds)
	if err != nil {
		logger.Error("scheduler init failed", "error", err)
		os.Exit(1)
	}
	preload.Start()
	defer preload.Stop()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	server := api.NewServer(feeds, pipeline, currency.NewService(cfg.ExchangeRateAPIKey), youtube.NewService(), store)
	server.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
