package entity

// ReferenceCity is one row of the static airport/station dataset. The
// table is loaded once at startup and never mutated afterwards.
type ReferenceCity struct {
	City        string
	AirportCode string
	StationCode string
}

// CityCodes is the outcome of resolving a free-text city name. Either
// code may be empty when the reference table has no entry for it; a city
// can have an airport but no railway station, or the other way around.
type CityCodes struct {
	City        string
	AirportCode string
	StationCode string
	Score       int
}
