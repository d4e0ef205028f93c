// Command railsync replays the Mongo rail staging collection into the
// relational store. Safe to run repeatedly; the store deduplicates on
// the natural key.
package main

import (
	"context"
	"time"

	"transitguide-service/internal/infrastructure/config"
	"transitguide-service/internal/infrastructure/persistence"
	"transitguide-service/internal/interface/repository"
	"transitguide-service/internal/usecase"
	"transitguide-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	store, err := repository.NewGormTravelRecordRepository(gormDB, cfg.QueryRowLimit, log)
	if err != nil {
		log.Fatal("Failed to initialize travel record store", "error", err)
	}

	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(context.Background())

	staging := repository.NewMongoTrainStagingRepository(mongoDB)

	staged, inserted, err := usecase.NewRailSync(staging, store, log).Run(ctx)
	if err != nil {
		log.Fatal("Rail staging transfer failed", "staged", staged, "inserted", inserted, "error", err)
	}
	log.Info("Rail staging transfer finished", "staged", staged, "inserted", inserted)
}
