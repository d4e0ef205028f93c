package repository

import (
	"context"

	"transitguide-service/internal/domain/entity"
)

// OrderBy choices for route queries.
const (
	OrderByFare      = "fare"
	OrderByDeparture = "departure"
)

// RouteKey identifies one fetch unit for idempotency purposes: the
// presence of any stored row for it is the "already fetched" marker.
type RouteKey struct {
	Mode            entity.TransportMode
	SourceCode      string
	DestinationCode string
	TravelDate      string
}

// QueryFilter narrows and orders route queries. Limit is capped by the
// repository; zero means the repository default.
type QueryFilter struct {
	Mode            entity.TransportMode
	SourceCode      string
	DestinationCode string
	DateFrom        string
	DateTo          string
	OrderBy         string
	Limit           int
}

// TravelRecordRepository is the idempotent store for normalized trips.
// Upsert never writes the same logical trip twice, even under concurrent
// calls for the same route: uniqueness is enforced by the storage engine
// on each table's natural key, not by application locking.
type TravelRecordRepository interface {
	// Exists reports whether at least one row is already stored for the
	// route key, across every provider table of the key's mode.
	Exists(ctx context.Context, key RouteKey) (bool, error)

	// Upsert inserts each record unless a row with the same natural key
	// already exists, skipping conflicts without error. The returned
	// count reflects only rows durably committed.
	Upsert(ctx context.Context, records []entity.TravelRecord) (int, error)

	// Query returns stored rows matching the filter, ordered ascending
	// by the requested column, capped at the repository's row limit.
	Query(ctx context.Context, filter QueryFilter) ([]entity.StoredTrip, error)
}
