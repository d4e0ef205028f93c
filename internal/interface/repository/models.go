package repository

import (
	"time"

	"transitguide-service/internal/domain/entity"
)

// GORM models for database mapping. One table per provider plus the
// cross-provider global flights table, each carrying a unique composite
// index over its natural key so that duplicate trips are rejected by
// the engine itself, even under concurrent writers.

// TripadvisorFlight GORM model for database mapping
type TripadvisorFlight struct {
	ID              uint      `gorm:"primaryKey"`
	Airline         string    `gorm:"column:airline"`
	FlightNumber    string    `gorm:"column:flight_number;uniqueIndex:ux_tripadvisor_trip"`
	TravelDate      string    `gorm:"column:travel_date;uniqueIndex:ux_tripadvisor_trip"`
	SourceCode      string    `gorm:"column:source_code;uniqueIndex:ux_tripadvisor_trip"`
	DestinationCode string    `gorm:"column:destination_code;uniqueIndex:ux_tripadvisor_trip"`
	SourceCity      string    `gorm:"column:source_city"`
	DestinationCity string    `gorm:"column:destination_city"`
	DepartureAt     time.Time `gorm:"column:departure_at"`
	ArrivalAt       time.Time `gorm:"column:arrival_at"`
	Fare            float64   `gorm:"column:fare"`
	Currency        string    `gorm:"column:currency"`
	ServiceClass    string    `gorm:"column:service_class"`
	TripType        string    `gorm:"column:equipment"`
	DurationText    string    `gorm:"column:duration_of_travel"`
	StopQuantity    int       `gorm:"column:stop_quantity"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (TripadvisorFlight) TableName() string {
	return "tripadvisor_flights"
}

// SkyscannerFlight GORM model for database mapping
type SkyscannerFlight struct {
	ID              uint      `gorm:"primaryKey"`
	Airline         string    `gorm:"column:airline"`
	FlightNumber    string    `gorm:"column:flight_number;uniqueIndex:ux_skyscanner_trip"`
	TravelDate      string    `gorm:"column:travel_date;uniqueIndex:ux_skyscanner_trip"`
	SourceCode      string    `gorm:"column:source_code;uniqueIndex:ux_skyscanner_trip"`
	DestinationCode string    `gorm:"column:destination_code;uniqueIndex:ux_skyscanner_trip"`
	SourceCity      string    `gorm:"column:source_city"`
	DestinationCity string    `gorm:"column:destination_city"`
	DepartureAt     time.Time `gorm:"column:departure_at"`
	ArrivalAt       time.Time `gorm:"column:arrival_at"`
	Fare            float64   `gorm:"column:fare"`
	Currency        string    `gorm:"column:currency"`
	ServiceClass    string    `gorm:"column:service_class"`
	TripType        string    `gorm:"column:equipment"`
	DurationText    string    `gorm:"column:duration_of_travel"`
	StopQuantity    int       `gorm:"column:stop_quantity"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (SkyscannerFlight) TableName() string {
	return "skyscanner_flights"
}

// PricelineFlight GORM model for database mapping
type PricelineFlight struct {
	ID              uint      `gorm:"primaryKey"`
	Airline         string    `gorm:"column:airline"`
	FlightNumber    string    `gorm:"column:flight_number;uniqueIndex:ux_priceline_trip"`
	TravelDate      string    `gorm:"column:travel_date;uniqueIndex:ux_priceline_trip"`
	SourceCode      string    `gorm:"column:source_code;uniqueIndex:ux_priceline_trip"`
	DestinationCode string    `gorm:"column:destination_code;uniqueIndex:ux_priceline_trip"`
	SourceCity      string    `gorm:"column:source_city"`
	DestinationCity string    `gorm:"column:destination_city"`
	DepartureAt     time.Time `gorm:"column:departure_at"`
	ArrivalAt       time.Time `gorm:"column:arrival_at"`
	Fare            float64   `gorm:"column:fare"`
	Currency        string    `gorm:"column:currency"`
	ServiceClass    string    `gorm:"column:service_class"`
	TripType        string    `gorm:"column:equipment"`
	DurationText    string    `gorm:"column:duration_of_travel"`
	StopQuantity    int       `gorm:"column:stop_quantity"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (PricelineFlight) TableName() string {
	return "priceline_flights"
}

// GlobalFlight is the normalized cross-provider flights table used for
// aggregate querying and the flight-mode idempotency check.
type GlobalFlight struct {
	ID              uint      `gorm:"primaryKey"`
	Provider        string    `gorm:"column:provider;uniqueIndex:ux_global_trip"`
	Airline         string    `gorm:"column:airline"`
	FlightNumber    string    `gorm:"column:flight_number;uniqueIndex:ux_global_trip"`
	TravelDate      string    `gorm:"column:travel_date;uniqueIndex:ux_global_trip;index:idx_global_route"`
	SourceCode      string    `gorm:"column:source_code;uniqueIndex:ux_global_trip;index:idx_global_route"`
	DestinationCode string    `gorm:"column:destination_code;uniqueIndex:ux_global_trip;index:idx_global_route"`
	SourceCity      string    `gorm:"column:source_city"`
	DestinationCity string    `gorm:"column:destination_city"`
	DepartureAt     time.Time `gorm:"column:departure_at"`
	ArrivalAt       time.Time `gorm:"column:arrival_at"`
	Fare            float64   `gorm:"column:fare"`
	Currency        string    `gorm:"column:currency"`
	ServiceClass    string    `gorm:"column:service_class"`
	TripType        string    `gorm:"column:equipment"`
	DurationText    string    `gorm:"column:duration_of_travel"`
	StopQuantity    int       `gorm:"column:stop_quantity"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (GlobalFlight) TableName() string {
	return "global_flights"
}

// TrainDetail GORM model for database mapping; one row per train and
// class on a travel date.
type TrainDetail struct {
	ID              uint      `gorm:"primaryKey"`
	TrainNumber     string    `gorm:"column:train_number;uniqueIndex:ux_train_trip"`
	TravelDate      string    `gorm:"column:travel_date;uniqueIndex:ux_train_trip;index:idx_train_route"`
	ServiceClass    string    `gorm:"column:service_class;uniqueIndex:ux_train_trip"`
	TrainName       string    `gorm:"column:train_name"`
	SourceCode      string    `gorm:"column:source_station_code;index:idx_train_route"`
	DestinationCode string    `gorm:"column:destination_station_code;index:idx_train_route"`
	SourceCity      string    `gorm:"column:source_city"`
	DestinationCity string    `gorm:"column:destination_city"`
	DepartureAt     time.Time `gorm:"column:departure_at"`
	ArrivalAt       time.Time `gorm:"column:arrival_at"`
	Fare            float64   `gorm:"column:fare"`
	Currency        string    `gorm:"column:currency"`
	DurationText    string    `gorm:"column:duration_of_travel"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (TrainDetail) TableName() string {
	return "train_details"
}

// Bus GORM model for database mapping. Buses carry no trip number, so
// route, departure time and bus type form the natural key.
type Bus struct {
	ID              uint      `gorm:"primaryKey"`
	SourceCity      string    `gorm:"column:source_city;uniqueIndex:ux_bus_trip"`
	DestinationCity string    `gorm:"column:destination_city;uniqueIndex:ux_bus_trip"`
	DepartureAt     time.Time `gorm:"column:departure_time;uniqueIndex:ux_bus_trip"`
	BusType         string    `gorm:"column:bus_type;uniqueIndex:ux_bus_trip"`
	TravelDate      string    `gorm:"column:travel_date;index:idx_bus_route"`
	ArrivalAt       time.Time `gorm:"column:arrival_time"`
	DurationText    string    `gorm:"column:total_travel_time"`
	Fare            float64   `gorm:"column:fare"`
	Currency        string    `gorm:"column:currency"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (Bus) TableName() string {
	return "buses"
}

// flightFromRecord builds the shared flight column set; provider tables
// embed it verbatim.
func flightFromRecord(r entity.TravelRecord) GlobalFlight {
	return GlobalFlight{
		Provider:        string(r.Provider),
		Airline:         r.Carrier,
		FlightNumber:    r.TripNumber,
		TravelDate:      r.TravelDate,
		SourceCode:      r.SourceCode,
		DestinationCode: r.DestinationCode,
		SourceCity:      r.SourceCity,
		DestinationCity: r.DestinationCity,
		DepartureAt:     r.DepartureAt,
		ArrivalAt:       r.ArrivalAt,
		Fare:            r.Fare,
		Currency:        r.Currency,
		ServiceClass:    r.ServiceClass,
		TripType:        r.TripType,
		DurationText:    r.DurationText,
		StopQuantity:    r.StopQuantity,
	}
}
