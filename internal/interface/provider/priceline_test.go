package provider_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/internal/interface/provider"
	"transitguide-service/pkg/logger"
)

const pricelineBody = `{
  "data": {
    "listings": [
      {
        "totalPriceWithDecimal": {"price": 64.2},
        "slices": [
          {
            "durationInMinutes": 135,
            "segments": [
              {
                "marketingAirline": "SpiceJet",
                "flightNumber": 8709,
                "departInfo": {
                  "airport": {"name": "Indira Gandhi Intl", "code": "DEL"},
                  "time": {"dateTime": "2024-12-24T05:45:00"}
                },
                "arrivalInfo": {
                  "airport": {"name": "Chhatrapati Shivaji Intl", "code": "BOM"},
                  "time": {"dateTime": "2024-12-24T08:00:00"}
                },
                "duration": 135,
                "stopQuantity": 0,
                "equipmentName": "Boeing 737-800",
                "cabinClass": "COACH"
              }
            ]
          }
        ]
      }
    ]
  }
}`

func TestPricelineFetchConvertsFareToINR(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("numOfStops") != "0" {
			t.Errorf("expected nonstop search, got %q", r.URL.Query().Get("numOfStops"))
		}
		w.Write([]byte(pricelineBody))
	}))
	defer server.Close()

	adapter := provider.NewPricelineAdapter(server.URL, "test-key", 84.46, time.Second, logger.Nop())
	records, err := adapter.Fetch(context.Background(), "DEL", "BOM", "2024-12-24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(records))
	}

	record := records[0]
	want := 64.2 * 84.46
	if math.Abs(record.Fare-want) > 1e-9 {
		t.Errorf("fare = %v, want %v", record.Fare, want)
	}
	if record.Currency != "INR" {
		t.Errorf("unexpected currency %q", record.Currency)
	}
	if record.TripNumber != "8709" || record.Carrier != "SpiceJet" {
		t.Errorf("unexpected identity: %+v", record)
	}
	if record.TripType != "Boeing 737-800" {
		t.Errorf("unexpected equipment %q", record.TripType)
	}
	if record.SourceCode != "DEL" || record.DestinationCode != "BOM" {
		t.Errorf("unexpected route: %+v", record)
	}
}

func TestPricelineFetchMissingPrice(t *testing.T) {
	body := `{"data": {"listings": [{"totalPriceWithDecimal": {"price": 0}, "slices": [
	  {"segments": [{"flightNumber": 100,
	    "departInfo": {"airport": {"code": "DEL"}, "time": {"dateTime": "2024-12-24T05:45:00"}},
	    "arrivalInfo": {"airport": {"code": "BOM"}, "time": {"dateTime": "2024-12-24T08:00:00"}}}]}
	]}]}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	adapter := provider.NewPricelineAdapter(server.URL, "test-key", 84.46, time.Second, logger.Nop())
	records, err := adapter.Fetch(context.Background(), "DEL", "BOM", "2024-12-24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(records))
	}
	if records[0].Fare != entity.FareMissing {
		t.Errorf("expected missing fare sentinel, got %v", records[0].Fare)
	}
	if records[0].Carrier != "N/A" {
		t.Errorf("expected carrier placeholder, got %q", records[0].Carrier)
	}
	if records[0].ServiceClass != "ECONOMY" {
		t.Errorf("expected class fallback, got %q", records[0].ServiceClass)
	}
}

func TestPricelineFetchUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	adapter := provider.NewPricelineAdapter(server.URL, "test-key", 84.46, time.Second, logger.Nop())
	_, err := adapter.Fetch(context.Background(), "DEL", "BOM", "2024-12-24")

	var upstream *entity.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", upstream.Status)
	}
}
