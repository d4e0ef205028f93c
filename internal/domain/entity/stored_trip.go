package entity

import "time"

// StoredTrip is a TravelRecord as it lives in the store, with the
// synthetic primary key the storage layer assigned on insert.
type StoredTrip struct {
	ID uint `json:"id"`
	TravelRecord
	CreatedAt time.Time `json:"createdAt"`
}
