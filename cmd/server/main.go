package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transitguide-service/internal/infrastructure/config"
	"transitguide-service/internal/infrastructure/dataset"
	"transitguide-service/internal/infrastructure/persistence"
	"transitguide-service/internal/interface/httpapi"
	"transitguide-service/internal/interface/provider"
	"transitguide-service/internal/interface/repository"
	"transitguide-service/internal/usecase"
	"transitguide-service/pkg/logger"
	"transitguide-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting TransitGuide Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the static city reference table; immutable for the life of
	// the process
	cities, err := dataset.LoadAirportData(cfg.AirportDataPath)
	if err != nil {
		log.Fatal("Failed to load airport data", "path", cfg.AirportDataPath, "error", err)
	}
	log.Info("Loaded airport data", "cities", len(cities))

	// Set up PostgreSQL connection and the idempotent store
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	travelRepo, err := repository.NewGormTravelRecordRepository(gormDB, cfg.QueryRowLimit, log)
	if err != nil {
		log.Fatal("Failed to initialize travel record store", "error", err)
	}

	// Set up MongoDB for rail staging
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	trainStaging := repository.NewMongoTrainStagingRepository(mongoDB)

	// Set up provider adapters
	adapters := []provider.Adapter{
		provider.NewTripadvisorAdapter(cfg.TripadvisorBaseURL, cfg.RapidAPIKey, cfg.ProviderTimeout, log),
		provider.NewSkyscannerAdapter(cfg.SkyscannerBaseURL, cfg.RapidAPIKey, cfg.ProviderTimeout, log),
		provider.NewPricelineAdapter(cfg.PricelineBaseURL, cfg.RapidAPIKey, cfg.USDToINRRate, cfg.ProviderTimeout, log),
		provider.NewRailAdapter(cfg.RailBaseURL, cfg.ProviderTimeout, log),
		provider.NewBusAdapter(cfg.BusBaseURL, cfg.ProviderTimeout, log),
	}

	appMetrics := metrics.NewMetrics("transitguide")
	resolver := usecase.NewCityResolver(cities, log)
	orchestrator := usecase.NewIngestOrchestrator(resolver, travelRepo, trainStaging, adapters, appMetrics, log)

	// Set up HTTP server
	mux := http.NewServeMux()
	httpapi.NewHandler(orchestrator, travelRepo, log).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("TransitGuide Service stopped")
}
