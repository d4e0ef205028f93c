package repository

import (
	"context"

	"transitguide-service/internal/domain/entity"
)

// TrainStagingRepository stages raw rail availability rows before the
// relational upsert, and feeds the railsync replay tool. Writes are
// deduplicated on (train number, travel date, class).
type TrainStagingRepository interface {
	Stage(ctx context.Context, records []entity.TravelRecord) (int, error)
	FindAll(ctx context.Context) ([]entity.TravelRecord, error)
}
