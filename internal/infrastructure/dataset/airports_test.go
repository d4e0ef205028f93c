package dataset_test

import (
	"strings"
	"testing"

	"transitguide-service/internal/infrastructure/dataset"
)

func TestParseAirportData(t *testing.T) {
	input := "city,airport_code,railway_station_code\n" +
		"Mumbai,BOM,CSTM\n" +
		"Delhi,DEL,NDLS\n" +
		"Mathura,,MTJ\n" +
		"Srinagar,SXR,\n"

	cities, err := dataset.ParseAirportData(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cities) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(cities))
	}
	if cities[0].City != "Mumbai" || cities[0].AirportCode != "BOM" || cities[0].StationCode != "CSTM" {
		t.Errorf("unexpected first row: %+v", cities[0])
	}
	if cities[2].AirportCode != "" {
		t.Errorf("expected Mathura to have no airport code, got %q", cities[2].AirportCode)
	}
	if cities[3].StationCode != "" {
		t.Errorf("expected Srinagar to have no station code, got %q", cities[3].StationCode)
	}
}

func TestParseAirportDataPreservesOrder(t *testing.T) {
	input := "city,airport_code,railway_station_code\n" +
		"Zirakpur,ZRK,ZRK\n" +
		"Agra,AGR,AGC\n"

	cities, err := dataset.ParseAirportData(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cities[0].City != "Zirakpur" || cities[1].City != "Agra" {
		t.Errorf("rows reordered: %+v", cities)
	}
}

func TestParseAirportDataSkipsBlankCity(t *testing.T) {
	input := "city,airport_code,railway_station_code\n" +
		"Mumbai,BOM,CSTM\n" +
		" ,XXX,YYY\n"

	cities, err := dataset.ParseAirportData(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cities) != 1 {
		t.Fatalf("expected blank city row to be skipped, got %d rows", len(cities))
	}
}

func TestParseAirportDataErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"bad header", "name,iata,irctc\nMumbai,BOM,CSTM\n"},
		{"header only", "city,airport_code,railway_station_code\n"},
		{"ragged row", "city,airport_code,railway_station_code\nMumbai,BOM\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := dataset.ParseAirportData(strings.NewReader(tt.input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
