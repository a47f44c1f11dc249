package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pantry-chef/internal/api"
	"pantry-chef/internal/api/handlers/health"
	"pantry-chef/internal/core/ai/openrouter"
	"pantry-chef/internal/core/ai/vision"
	"pantry-chef/internal/core/cache"
	"pantry-chef/internal/core/image"
	"pantry-chef/internal/core/lexicon"
	"pantry-chef/internal/core/recipe"
	"pantry-chef/internal/core/search"
	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/metrics"
	"pantry-chef/internal/pkg/common"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// logger needs the loaded level
	if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	metrics.RegisterPipelineMetrics()

	common.LogInfo("config loaded",
		zap.String("vision_api_key", config.MaskAPIKey(cfg.Vision.APIKey)),
		zap.Bool("vision_credentials_file", cfg.Vision.CredentialsFile != ""),
		zap.String("search_api_key", config.MaskAPIKey(cfg.Search.APIKey)),
		zap.String("generative_api_key", config.MaskAPIKey(cfg.Generative.APIKey)),
		zap.String("generative_model", cfg.Generative.Model),
		zap.Duration("watchdog", cfg.Pipeline.Watchdog),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	store, err := cache.New(cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	ctx := context.Background()
	var providers recipe.Providers
	configured := map[string]bool{
		recipe.ProviderVision: false,
		recipe.ProviderSearch: false,
		recipe.ProviderLLM:    false,
	}

	if cfg.Vision.Enabled() {
		labeler, err := vision.NewLabeler(ctx, cfg.Vision, store)
		if err != nil {
			// photo requests degrade to an empty pantry; override requests keep working
			common.LogError("Failed to initialize vision client", zap.Error(err))
		} else {
			defer labeler.Close()
			providers.Labeler = labeler
			configured[recipe.ProviderVision] = true
		}
	}
	if cfg.Search.APIKey != "" {
		providers.Searcher = search.NewClient(cfg.Search, store)
		configured[recipe.ProviderSearch] = true
	}
	if cfg.Generative.APIKey != "" {
		providers.Generator = openrouter.NewGenerator(cfg.Generative)
		configured[recipe.ProviderLLM] = true
	}

	suggester := recipe.NewSuggestionService(lexicon.Default(), providers, recipe.Options{
		Watchdog:          cfg.Pipeline.Watchdog,
		VisionTimeout:     cfg.Vision.Timeout,
		SearchTimeout:     cfg.Search.Timeout,
		GenerativeTimeout: cfg.Generative.Timeout,
		MaxRecipes:        cfg.Pipeline.MaxRecipes,
	})

	var stats health.StatsReporter
	if m, ok := store.(*cache.Manager); ok {
		stats = m
	}

	router := api.SetupRouter(cfg, api.Dependencies{
		Suggester: suggester,
		Images:    image.NewService(cfg.Image.MaxSizeBytes),
		Health:    health.NewHandler(cfg.App.Version, configured, stats),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Any("providers", configured),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// in-flight requests finish within the watchdog
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Pipeline.Watchdog+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
