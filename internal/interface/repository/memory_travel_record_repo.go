package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/internal/domain/repository"
)

// MemoryTravelRecordRepository is an in-memory TravelRecordRepository
// with the same uniqueness semantics as the PostgreSQL one. It backs
// tests and local development without a database. Safe for concurrent
// use.
type MemoryTravelRecordRepository struct {
	mu       sync.RWMutex
	rows     map[string]entity.StoredTrip
	nextID   uint
	rowLimit int
}

// NewMemoryTravelRecordRepository creates an empty in-memory store.
func NewMemoryTravelRecordRepository(rowLimit int) *MemoryTravelRecordRepository {
	if rowLimit <= 0 {
		rowLimit = 50
	}
	return &MemoryTravelRecordRepository{
		rows:     make(map[string]entity.StoredTrip),
		rowLimit: rowLimit,
	}
}

// naturalKey mirrors the unique composite indexes of the relational
// tables.
func naturalKey(r entity.TravelRecord) string {
	switch r.Mode {
	case entity.ModeRail:
		return fmt.Sprintf("rail|%s|%s|%s", r.TripNumber, r.TravelDate, r.ServiceClass)
	case entity.ModeBus:
		return fmt.Sprintf("bus|%s|%s|%d|%s", r.SourceCity, r.DestinationCity, r.DepartureAt.UnixNano(), r.ServiceClass)
	default:
		return fmt.Sprintf("%s|%s|%s|%s|%s", r.Provider, r.TripNumber, r.TravelDate, r.SourceCode, r.DestinationCode)
	}
}

// Exists reports whether any row matches the route key.
func (m *MemoryTravelRecordRepository) Exists(ctx context.Context, key repository.RouteKey) (bool, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, trip := range m.rows {
		if trip.Mode == key.Mode &&
			trip.SourceCode == key.SourceCode &&
			trip.DestinationCode == key.DestinationCode &&
			trip.TravelDate == key.TravelDate {
			return true, nil
		}
	}
	return false, nil
}

// Upsert inserts records, skipping natural-key duplicates.
func (m *MemoryTravelRecordRepository) Upsert(ctx context.Context, records []entity.TravelRecord) (int, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	inserted := 0
	for _, record := range records {
		key := naturalKey(record)
		if _, ok := m.rows[key]; ok {
			continue
		}
		m.nextID++
		m.rows[key] = entity.StoredTrip{ID: m.nextID, TravelRecord: record}
		inserted++
	}
	return inserted, nil
}

// Query filters and orders stored rows like the relational store.
func (m *MemoryTravelRecordRepository) Query(ctx context.Context, filter repository.QueryFilter) ([]entity.StoredTrip, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()

	var trips []entity.StoredTrip
	for _, trip := range m.rows {
		if filter.Mode != "" && trip.Mode != filter.Mode {
			continue
		}
		if filter.SourceCode != "" && trip.SourceCode != filter.SourceCode {
			continue
		}
		if filter.DestinationCode != "" && trip.DestinationCode != filter.DestinationCode {
			continue
		}
		if filter.DateFrom != "" && trip.TravelDate < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && trip.TravelDate > filter.DateTo {
			continue
		}
		trips = append(trips, trip)
	}

	if filter.OrderBy == repository.OrderByFare {
		sort.Slice(trips, func(i, j int) bool { return trips[i].Fare < trips[j].Fare })
	} else {
		sort.Slice(trips, func(i, j int) bool { return trips[i].DepartureAt.Before(trips[j].DepartureAt) })
	}

	limit := filter.Limit
	if limit <= 0 || limit > m.rowLimit {
		limit = m.rowLimit
	}
	if len(trips) > limit {
		trips = trips[:limit]
	}
	return trips, nil
}

// Len reports the number of stored rows.
func (m *MemoryTravelRecordRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}
