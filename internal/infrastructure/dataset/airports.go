package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"transitguide-service/internal/domain/entity"
)

// LoadAirportData reads the static city/airport/station reference table.
// Expected header: city,airport_code,railway_station_code. Rows keep
// their file order, which the resolver relies on for tie-breaking.
func LoadAirportData(path string) ([]entity.ReferenceCity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open airport data: %w", err)
	}
	defer f.Close()

	return ParseAirportData(f)
}

// ParseAirportData parses the reference table from a reader.
func ParseAirportData(r io.Reader) ([]entity.ReferenceCity, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read airport data header: %w", err)
	}
	if len(header) != 3 || strings.TrimSpace(header[0]) != "city" {
		return nil, fmt.Errorf("unexpected airport data header: %v", header)
	}

	var cities []entity.ReferenceCity
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read airport data row: %w", err)
		}

		city := strings.TrimSpace(row[0])
		if city == "" {
			continue
		}
		cities = append(cities, entity.ReferenceCity{
			City:        city,
			AirportCode: strings.TrimSpace(row[1]),
			StationCode: strings.TrimSpace(row[2]),
		})
	}

	if len(cities) == 0 {
		return nil, fmt.Errorf("airport data is empty")
	}
	return cities, nil
}
