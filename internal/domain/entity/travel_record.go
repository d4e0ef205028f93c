package entity

import (
	"time"
)

// Provider identifies an upstream travel-data source.
type Provider string

const (
	ProviderTripadvisor Provider = "tripadvisor"
	ProviderSkyscanner  Provider = "skyscanner"
	ProviderPriceline   Provider = "priceline"
	ProviderRail        Provider = "rail"
	ProviderBus         Provider = "bus"
)

// TransportMode groups providers by the kind of trip they sell.
type TransportMode string

const (
	ModeFlight TransportMode = "flight"
	ModeRail   TransportMode = "rail"
	ModeBus    TransportMode = "bus"
)

// FareMissing is the sentinel stored when an upstream omits the fare.
// Negative so that fare-ascending queries can exclude it with a single
// comparison instead of dealing with NULLs.
const FareMissing = -1

// TravelRecord is the common flattened shape every provider adapter
// produces, one per bookable leg or trip.
type TravelRecord struct {
	Provider        Provider      `json:"provider"`
	Mode            TransportMode `json:"mode"`
	SourceCode      string        `json:"sourceCode"`
	DestinationCode string        `json:"destinationCode"`
	SourceCity      string        `json:"sourceCity,omitempty"`
	DestinationCity string        `json:"destinationCity,omitempty"`
	DepartureAt     time.Time     `json:"departureAt"`
	ArrivalAt       time.Time     `json:"arrivalAt"`
	TravelDate      string        `json:"travelDate"` // YYYY-MM-DD as requested by the caller
	Fare            float64       `json:"fare"`
	Currency        string        `json:"currency"`
	ServiceClass    string        `json:"serviceClass"`
	Carrier         string        `json:"carrier,omitempty"`
	TripNumber      string        `json:"tripNumber,omitempty"` // flight or train number; empty for buses
	TripType        string        `json:"tripType,omitempty"`   // bus type, equipment name and the like
	DurationText    string        `json:"duration,omitempty"`
	StopQuantity    int           `json:"stopQuantity,omitempty"`
}

// HasIdentity reports whether the record carries enough of a natural key
// to be stored. Flights and trains need a trip number; buses are keyed by
// route and departure time instead.
func (r TravelRecord) HasIdentity() bool {
	if r.Mode == ModeBus {
		return r.SourceCity != "" && r.DestinationCity != "" && !r.DepartureAt.IsZero()
	}
	return r.TripNumber != ""
}
