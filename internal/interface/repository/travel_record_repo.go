package repository

import (
	"context"
	"fmt"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/internal/domain/repository"
	"transitguide-service/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTravelRecordRepository implements the TravelRecordRepository
// interface on PostgreSQL. Inserts go through ON CONFLICT DO NOTHING on
// each table's natural key, so re-ingestion and concurrent ingestion of
// the same route never store a logical trip twice.
type GormTravelRecordRepository struct {
	db       *gorm.DB
	rowLimit int
	logger   logger.Logger
}

// NewGormTravelRecordRepository creates a new GORM travel record
// repository and brings the schema up to date. Migration happens here,
// once, never on the per-request path.
func NewGormTravelRecordRepository(db *gorm.DB, rowLimit int, log logger.Logger) (repository.TravelRecordRepository, error) {
	err := db.AutoMigrate(
		&TripadvisorFlight{},
		&SkyscannerFlight{},
		&PricelineFlight{},
		&GlobalFlight{},
		&TrainDetail{},
		&Bus{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate travel tables: %w", err)
	}
	if rowLimit <= 0 {
		rowLimit = 50
	}
	return &GormTravelRecordRepository{
		db:       db,
		rowLimit: rowLimit,
		logger:   log,
	}, nil
}

// Exists reports whether any row is already stored for the route key.
func (r *GormTravelRecordRepository) Exists(ctx context.Context, key repository.RouteKey) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx)

	switch key.Mode {
	case entity.ModeRail:
		query = query.Model(&TrainDetail{}).
			Where("source_station_code = ? AND destination_station_code = ? AND travel_date = ?",
				key.SourceCode, key.DestinationCode, key.TravelDate)
	case entity.ModeBus:
		query = query.Model(&Bus{}).
			Where("source_city = ? AND destination_city = ? AND travel_date = ?",
				key.SourceCode, key.DestinationCode, key.TravelDate)
	default:
		query = query.Model(&GlobalFlight{}).
			Where("source_code = ? AND destination_code = ? AND travel_date = ?",
				key.SourceCode, key.DestinationCode, key.TravelDate)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, &entity.PersistenceError{Err: err}
	}
	return count > 0, nil
}

// Upsert inserts records one at a time so that a mid-batch failure
// keeps everything committed before it. Conflicts on the natural key
// are silent no-ops; the returned count reflects durable inserts only.
func (r *GormTravelRecordRepository) Upsert(ctx context.Context, records []entity.TravelRecord) (int, error) {
	inserted := 0
	doNothing := clause.OnConflict{DoNothing: true}

	for _, record := range records {
		var result *gorm.DB

		switch record.Provider {
		case entity.ProviderTripadvisor:
			row := flightFromRecord(record).asProviderRow()
			result = r.db.WithContext(ctx).Clauses(doNothing).Create(&row)
		case entity.ProviderSkyscanner:
			row := SkyscannerFlight(flightFromRecord(record).asProviderRow())
			result = r.db.WithContext(ctx).Clauses(doNothing).Create(&row)
		case entity.ProviderPriceline:
			row := PricelineFlight(flightFromRecord(record).asProviderRow())
			result = r.db.WithContext(ctx).Clauses(doNothing).Create(&row)
		case entity.ProviderRail:
			row := trainFromRecord(record)
			result = r.db.WithContext(ctx).Clauses(doNothing).Create(&row)
		case entity.ProviderBus:
			row := busFromRecord(record)
			result = r.db.WithContext(ctx).Clauses(doNothing).Create(&row)
		default:
			r.logger.Warn("Skipping record of unknown provider", "provider", record.Provider)
			continue
		}

		if result.Error != nil {
			return inserted, &entity.PersistenceError{Err: result.Error}
		}
		if result.RowsAffected > 0 {
			inserted++
		}

		// Flight rows are mirrored into the cross-provider table.
		if record.Mode == entity.ModeFlight {
			global := flightFromRecord(record)
			if err := r.db.WithContext(ctx).Clauses(doNothing).Create(&global).Error; err != nil {
				return inserted, &entity.PersistenceError{Err: err}
			}
		}
	}

	return inserted, nil
}

// Query returns stored rows for the filter, ordered ascending, capped.
func (r *GormTravelRecordRepository) Query(ctx context.Context, filter repository.QueryFilter) ([]entity.StoredTrip, error) {
	limit := filter.Limit
	if limit <= 0 || limit > r.rowLimit {
		limit = r.rowLimit
	}

	order := "departure_at asc"
	if filter.OrderBy == repository.OrderByFare {
		order = "fare asc"
	}

	switch filter.Mode {
	case entity.ModeRail:
		var rows []TrainDetail
		query := r.db.WithContext(ctx).Model(&TrainDetail{})
		query = applyRouteFilter(query, "source_station_code", "destination_station_code", filter)
		if err := query.Order(order).Limit(limit).Find(&rows).Error; err != nil {
			return nil, &entity.PersistenceError{Err: err}
		}
		trips := make([]entity.StoredTrip, 0, len(rows))
		for _, row := range rows {
			trips = append(trips, trainToTrip(row))
		}
		return trips, nil

	case entity.ModeBus:
		order = busOrder(filter.OrderBy)
		var rows []Bus
		query := r.db.WithContext(ctx).Model(&Bus{})
		query = applyRouteFilter(query, "source_city", "destination_city", filter)
		if err := query.Order(order).Limit(limit).Find(&rows).Error; err != nil {
			return nil, &entity.PersistenceError{Err: err}
		}
		trips := make([]entity.StoredTrip, 0, len(rows))
		for _, row := range rows {
			trips = append(trips, busToTrip(row))
		}
		return trips, nil

	default:
		var rows []GlobalFlight
		query := r.db.WithContext(ctx).Model(&GlobalFlight{})
		query = applyRouteFilter(query, "source_code", "destination_code", filter)
		if err := query.Order(order).Limit(limit).Find(&rows).Error; err != nil {
			return nil, &entity.PersistenceError{Err: err}
		}
		trips := make([]entity.StoredTrip, 0, len(rows))
		for _, row := range rows {
			trips = append(trips, flightToTrip(row))
		}
		return trips, nil
	}
}

// applyRouteFilter narrows a query by route and date range.
func applyRouteFilter(query *gorm.DB, srcCol, dstCol string, filter repository.QueryFilter) *gorm.DB {
	if filter.SourceCode != "" {
		query = query.Where(srcCol+" = ?", filter.SourceCode)
	}
	if filter.DestinationCode != "" {
		query = query.Where(dstCol+" = ?", filter.DestinationCode)
	}
	if filter.DateFrom != "" {
		query = query.Where("travel_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("travel_date <= ?", filter.DateTo)
	}
	return query
}

// busOrder maps the order choice onto the bus table's column names.
func busOrder(orderBy string) string {
	if orderBy == repository.OrderByFare {
		return "fare asc"
	}
	return "departure_time asc"
}

// asProviderRow strips the provider column so the shared flight column
// set can be copied into a per-provider table type.
func (f GlobalFlight) asProviderRow() TripadvisorFlight {
	return TripadvisorFlight{
		Airline:         f.Airline,
		FlightNumber:    f.FlightNumber,
		TravelDate:      f.TravelDate,
		SourceCode:      f.SourceCode,
		DestinationCode: f.DestinationCode,
		SourceCity:      f.SourceCity,
		DestinationCity: f.DestinationCity,
		DepartureAt:     f.DepartureAt,
		ArrivalAt:       f.ArrivalAt,
		Fare:            f.Fare,
		Currency:        f.Currency,
		ServiceClass:    f.ServiceClass,
		TripType:        f.TripType,
		DurationText:    f.DurationText,
		StopQuantity:    f.StopQuantity,
	}
}

func trainFromRecord(r entity.TravelRecord) TrainDetail {
	return TrainDetail{
		TrainNumber:     r.TripNumber,
		TravelDate:      r.TravelDate,
		ServiceClass:    r.ServiceClass,
		TrainName:       r.Carrier,
		SourceCode:      r.SourceCode,
		DestinationCode: r.DestinationCode,
		SourceCity:      r.SourceCity,
		DestinationCity: r.DestinationCity,
		DepartureAt:     r.DepartureAt,
		ArrivalAt:       r.ArrivalAt,
		Fare:            r.Fare,
		Currency:        r.Currency,
		DurationText:    r.DurationText,
	}
}

func busFromRecord(r entity.TravelRecord) Bus {
	return Bus{
		SourceCity:      r.SourceCity,
		DestinationCity: r.DestinationCity,
		DepartureAt:     r.DepartureAt,
		BusType:         r.ServiceClass,
		TravelDate:      r.TravelDate,
		ArrivalAt:       r.ArrivalAt,
		DurationText:    r.DurationText,
		Fare:            r.Fare,
		Currency:        r.Currency,
	}
}

func flightToTrip(row GlobalFlight) entity.StoredTrip {
	return entity.StoredTrip{
		ID: row.ID,
		TravelRecord: entity.TravelRecord{
			Provider:        entity.Provider(row.Provider),
			Mode:            entity.ModeFlight,
			SourceCode:      row.SourceCode,
			DestinationCode: row.DestinationCode,
			SourceCity:      row.SourceCity,
			DestinationCity: row.DestinationCity,
			DepartureAt:     row.DepartureAt,
			ArrivalAt:       row.ArrivalAt,
			TravelDate:      row.TravelDate,
			Fare:            row.Fare,
			Currency:        row.Currency,
			ServiceClass:    row.ServiceClass,
			Carrier:         row.Airline,
			TripNumber:      row.FlightNumber,
			TripType:        row.TripType,
			DurationText:    row.DurationText,
			StopQuantity:    row.StopQuantity,
		},
		CreatedAt: row.CreatedAt,
	}
}

func trainToTrip(row TrainDetail) entity.StoredTrip {
	return entity.StoredTrip{
		ID: row.ID,
		TravelRecord: entity.TravelRecord{
			Provider:        entity.ProviderRail,
			Mode:            entity.ModeRail,
			SourceCode:      row.SourceCode,
			DestinationCode: row.DestinationCode,
			SourceCity:      row.SourceCity,
			DestinationCity: row.DestinationCity,
			DepartureAt:     row.DepartureAt,
			ArrivalAt:       row.ArrivalAt,
			TravelDate:      row.TravelDate,
			Fare:            row.Fare,
			Currency:        row.Currency,
			ServiceClass:    row.ServiceClass,
			Carrier:         row.TrainName,
			TripNumber:      row.TrainNumber,
			DurationText:    row.DurationText,
		},
		CreatedAt: row.CreatedAt,
	}
}

func busToTrip(row Bus) entity.StoredTrip {
	return entity.StoredTrip{
		ID: row.ID,
		TravelRecord: entity.TravelRecord{
			Provider:        entity.ProviderBus,
			Mode:            entity.ModeBus,
			SourceCode:      row.SourceCity,
			DestinationCode: row.DestinationCity,
			SourceCity:      row.SourceCity,
			DestinationCity: row.DestinationCity,
			DepartureAt:     row.DepartureAt,
			ArrivalAt:       row.ArrivalAt,
			TravelDate:      row.TravelDate,
			Fare:            row.Fare,
			Currency:        row.Currency,
			ServiceClass:    row.BusType,
			TripType:        row.BusType,
			DurationText:    row.DurationText,
		},
		CreatedAt: row.CreatedAt,
	}
}
