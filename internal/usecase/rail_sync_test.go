package usecase_test

import (
	"context"
	"errors"
	"testing"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/internal/interface/repository"
	"transitguide-service/internal/usecase"
	"transitguide-service/pkg/logger"
)

// fakeStaging serves canned staged rows.
type fakeStaging struct {
	records []entity.TravelRecord
	err     error
}

func (f *fakeStaging) Stage(ctx context.Context, records []entity.TravelRecord) (int, error) {
	f.records = append(f.records, records...)
	return len(records), nil
}

func (f *fakeStaging) FindAll(ctx context.Context) ([]entity.TravelRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func train(number, class string) entity.TravelRecord {
	return entity.TravelRecord{
		Provider:        entity.ProviderRail,
		Mode:            entity.ModeRail,
		SourceCode:      "NDLS",
		DestinationCode: "CSTM",
		TravelDate:      "2024-12-24",
		TripNumber:      number,
		ServiceClass:    class,
		Fare:            2310,
	}
}

func TestRailSyncRun(t *testing.T) {
	staging := &fakeStaging{records: []entity.TravelRecord{
		train("12952", "3A"),
		train("12952", "2A"),
		train("12954", "3A"),
	}}
	store := repository.NewMemoryTravelRecordRepository(50)
	sync := usecase.NewRailSync(staging, store, logger.Nop())

	staged, inserted, err := sync.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if staged != 3 || inserted != 3 {
		t.Errorf("Run = (%d, %d), want (3, 3)", staged, inserted)
	}

	// Replaying is a no-op thanks to the natural-key dedup.
	staged, inserted, err = sync.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if staged != 3 || inserted != 0 {
		t.Errorf("replay Run = (%d, %d), want (3, 0)", staged, inserted)
	}
	if store.Len() != 3 {
		t.Errorf("stored rows = %d, want 3", store.Len())
	}
}

func TestRailSyncEmptyStaging(t *testing.T) {
	store := repository.NewMemoryTravelRecordRepository(50)
	sync := usecase.NewRailSync(&fakeStaging{}, store, logger.Nop())

	staged, inserted, err := sync.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if staged != 0 || inserted != 0 {
		t.Errorf("Run = (%d, %d), want (0, 0)", staged, inserted)
	}
}

func TestRailSyncStagingFailure(t *testing.T) {
	store := repository.NewMemoryTravelRecordRepository(50)
	sync := usecase.NewRailSync(&fakeStaging{err: errors.New("mongo down")}, store, logger.Nop())

	if _, _, err := sync.Run(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
}
