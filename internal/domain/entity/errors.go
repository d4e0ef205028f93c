package entity

import (
	"errors"
	"fmt"
)

// ErrCityNotFound is returned when the resolver cannot match a city name
// above the acceptance threshold, or when the matched city lacks the code
// the requested transport mode needs.
var ErrCityNotFound = errors.New("city not found")

// ErrInvalidDate is returned for a travel date that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid travel date")

// UpstreamError reports a failed provider call: a transport failure, a
// non-success status or an unparseable payload.
type UpstreamError struct {
	Provider Provider
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s upstream returned status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s upstream call failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a store write that failed for a reason other
// than the expected uniqueness conflict. Rows committed before the
// failure are retained.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
