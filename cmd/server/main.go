package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsrinivasan18/sarasai/internal/clientdata"
	"github.com/rsrinivasan18/sarasai/internal/clients/alphavantage"
	"github.com/rsrinivasan18/sarasai/internal/config"
	"github.com/rsrinivasan18/sarasai/internal/database"
	"github.com/rsrinivasan18/sarasai/internal/events"
	"github.com/rsrinivasan18/sarasai/internal/modules/gurus"
	gurushandlers "github.com/rsrinivasan18/sarasai/internal/modules/gurus/handlers"
	"github.com/rsrinivasan18/sarasai/internal/modules/metrics"
	metricshandlers "github.com/rsrinivasan18/sarasai/internal/modules/metrics/handlers"
	"github.com/rsrinivasan18/sarasai/internal/modules/news"
	newshandlers "github.com/rsrinivasan18/sarasai/internal/modules/news/handlers"
	"github.com/rsrinivasan18/sarasai/internal/modules/portfolio"
	portfoliohandlers "github.com/rsrinivasan18/sarasai/internal/modules/portfolio/handlers"
	"github.com/rsrinivasan18/sarasai/internal/modules/stocks"
	stockshandlers "github.com/rsrinivasan18/sarasai/internal/modules/stocks/handlers"
	"github.com/rsrinivasan18/sarasai/internal/scheduler"
	"github.com/rsrinivasan18/sarasai/internal/server"
	"github.com/rsrinivasan18/sarasai/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(logger.Config{Level: "info"})
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Sarasai server")

	// Cache database
	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	cacheRepo := clientdata.NewRepository(cacheDB.Conn())
	if err := cacheRepo.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache schema")
	}

	// Stock catalog
	catalog, err := stocks.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("Failed to load stock catalog")
	}
	log.Info().Int("symbols", catalog.Count()).Msg("Stock catalog loaded")

	// Alpha Vantage client - optional, without an API key everything runs
	// from the catalog and mock data.
	var avClient *alphavantage.Client
	dataSource := "catalog (CSV)"
	if cfg.AlphaVantageAPIKey != "" {
		avClient = alphavantage.NewClient(cfg.AlphaVantageAPIKey, cacheRepo, log)
		dataSource = "catalog (CSV) + alphavantage"
	} else {
		log.Warn().Msg("ALPHA_VANTAGE_API_KEY not set, live lookups disabled")
	}

	// Services. The typed-nil dance keeps optional interface fields truly nil.
	var stocksService *stocks.Service
	var metricsService *metrics.Service
	if avClient != nil {
		stocksService = stocks.NewService(catalog, avClient, log)
		metricsService = metrics.NewService(avClient, log)
	} else {
		stocksService = stocks.NewService(catalog, nil, log)
		metricsService = metrics.NewService(nil, log)
	}
	newsService := news.NewService(cacheRepo, log)
	gurusService := gurus.NewService(cacheRepo, stocksService, log)

	bus := events.NewBus()
	snapshots := portfolio.NewSnapshotStore(cacheRepo)
	portfolioService := portfolio.NewService(
		stocksService, metricsService, newsService, gurusService,
		snapshots, bus, log,
	)

	// Background jobs
	sched := scheduler.New(log)
	if err := registerJobs(sched, cacheRepo, avClient, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	var apiBudget server.BudgetReporter
	if avClient != nil {
		apiBudget = avClient
	}
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DevMode: cfg.DevMode,
		Modules: []server.RouteRegistrar{
			stockshandlers.NewHandler(stocksService, log),
			metricshandlers.NewHandler(metricsService, log),
			newshandlers.NewHandler(newsService, log),
			gurushandlers.NewHandler(gurusService, log),
			portfoliohandlers.NewHandler(portfolioService, log),
		},
		System: server.NewSystemHandlers(log, catalog, cacheRepo, apiBudget, dataSource),
		Events: server.NewEventsHandler(bus, log),
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(sched *scheduler.Scheduler, cacheRepo *clientdata.Repository,
	avClient *alphavantage.Client, log zerolog.Logger) error {
	if err := sched.AddJob("@hourly", clientdata.NewCleanupJob(cacheRepo, log)); err != nil {
		return err
	}
	if avClient != nil {
		if err := sched.AddJob("@midnight", alphavantage.NewResetJob(avClient, log)); err != nil {
			return err
		}
	}
	return nil
}
