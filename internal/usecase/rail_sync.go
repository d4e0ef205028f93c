package usecase

import (
	"context"

	"transitguide-service/internal/domain/repository"
	"transitguide-service/pkg/logger"
)

// RailSync replays the Mongo rail staging collection into the
// relational store. The upsert's natural-key deduplication makes the
// replay safe to run any number of times.
type RailSync struct {
	staging repository.TrainStagingRepository
	store   repository.TravelRecordRepository
	logger  logger.Logger
}

// NewRailSync creates a new rail staging replay.
func NewRailSync(staging repository.TrainStagingRepository, store repository.TravelRecordRepository, log logger.Logger) *RailSync {
	return &RailSync{
		staging: staging,
		store:   store,
		logger:  log,
	}
}

// Run transfers every staged row and returns (staged row count,
// newly inserted count).
func (s *RailSync) Run(ctx context.Context) (int, int, error) {
	records, err := s.staging.FindAll(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(records) == 0 {
		s.logger.Info("No staged rail rows to transfer")
		return 0, 0, nil
	}

	inserted, err := s.store.Upsert(ctx, records)
	if err != nil {
		return len(records), inserted, err
	}

	s.logger.Info("Transferred staged rail rows",
		"staged", len(records), "inserted", inserted)
	return len(records), inserted, nil
}
