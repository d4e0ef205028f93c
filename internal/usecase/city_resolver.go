package usecase

import (
	"strings"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/pkg/logger"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// matchThreshold is the minimum similarity score (0-100) for a fuzzy
// city match to be accepted. Deliberately lenient so that common
// misspellings ("Bumbai", "Hydrabad") still resolve.
const matchThreshold = 50

// CityResolver matches free-text city names against the static
// airport/station reference table. Pure over the loaded table; never
// errors, absence is an expected outcome.
type CityResolver struct {
	cities []entity.ReferenceCity
	titler cases.Caser
	logger logger.Logger
}

// NewCityResolver creates a resolver over the loaded reference table.
// The table is treated as immutable for the life of the process.
func NewCityResolver(cities []entity.ReferenceCity, log logger.Logger) *CityResolver {
	return &CityResolver{
		cities: cities,
		titler: cases.Title(language.English),
		logger: log,
	}
}

// Resolve returns the codes of the reference city closest to the input.
// The input is trimmed and title-cased, then scored against every city
// with the character-based similarity ratio. The single highest scorer
// wins; ties go to the city earliest in table order. A score below the
// threshold, or empty input, reports not found.
func (r *CityResolver) Resolve(raw string) (entity.CityCodes, bool) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return entity.CityCodes{}, false
	}
	input = r.titler.String(input)

	best := -1
	var bestCity entity.ReferenceCity
	for _, c := range r.cities {
		score := fuzzy.Ratio(input, c.City)
		if score > best {
			best = score
			bestCity = c
		}
	}

	r.logger.Debug("City resolution",
		"input", raw,
		"closestMatch", bestCity.City,
		"score", best)

	if best < matchThreshold {
		return entity.CityCodes{}, false
	}

	return entity.CityCodes{
		City:        bestCity.City,
		AirportCode: bestCity.AirportCode,
		StationCode: bestCity.StationCode,
		Score:       best,
	}, true
}
