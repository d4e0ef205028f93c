package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/internal/interface/provider"
	"transitguide-service/pkg/logger"
)

const skyscannerBody = `{
  "data": {
    "itineraries": [
      {
        "price": {"raw": 4890},
        "legs": [
          {
            "origin": {"city": "New Delhi", "name": "Indira Gandhi International", "displayCode": "DEL"},
            "destination": {"city": "Mumbai", "name": "Chhatrapati Shivaji International", "displayCode": "BOM"},
            "departure": "2024-12-24T07:00:00",
            "arrival": "2024-12-24T09:10:00",
            "durationInMinutes": 130,
            "stopCount": 0,
            "carriers": {"marketing": [{"name": "Air India"}]},
            "segments": [{"flightNumber": 805}]
          },
          {
            "origin": {"city": "Mumbai", "name": "Chhatrapati Shivaji International", "displayCode": "BOM"},
            "destination": {"city": "Goa", "name": "Dabolim", "displayCode": "GOI"},
            "departure": "2024-12-24T11:30:00",
            "arrival": "2024-12-24T12:45:00",
            "durationInMinutes": 75,
            "stopCount": 0,
            "carriers": {"marketing": []},
            "segments": []
          }
        ]
      }
    ]
  }
}`

func TestSkyscannerFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("currency") != "INR" {
			t.Errorf("expected INR currency param, got %q", r.URL.Query().Get("currency"))
		}
		w.Write([]byte(skyscannerBody))
	}))
	defer server.Close()

	adapter := provider.NewSkyscannerAdapter(server.URL, "test-key", time.Second, logger.Nop())
	records, err := adapter.Fetch(context.Background(), "DEL", "BOM", "2024-12-24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(records))
	}

	first := records[0]
	if first.Provider != entity.ProviderSkyscanner {
		t.Errorf("unexpected provider %q", first.Provider)
	}
	if first.SourceCode != "DEL" || first.DestinationCode != "BOM" {
		t.Errorf("unexpected route: %+v", first)
	}
	if first.TripNumber != "805" || first.Carrier != "Air India" {
		t.Errorf("unexpected identity: %+v", first)
	}
	if first.Fare != 4890 {
		t.Errorf("unexpected fare %v", first.Fare)
	}
	if first.DurationText != "130 minutes" {
		t.Errorf("unexpected duration %q", first.DurationText)
	}

	// The itinerary fare is shared by every leg; a leg without marketing
	// carriers or segments falls back to placeholders.
	second := records[1]
	if second.Fare != 4890 {
		t.Errorf("expected shared itinerary fare, got %v", second.Fare)
	}
	if second.Carrier != "N/A" {
		t.Errorf("expected carrier placeholder, got %q", second.Carrier)
	}
	if second.TripNumber != "" {
		t.Errorf("expected empty flight number, got %q", second.TripNumber)
	}
}

func TestSkyscannerFetchZeroPrice(t *testing.T) {
	body := `{"data": {"itineraries": [{"price": {"raw": 0}, "legs": [
	  {"origin": {"displayCode": "DEL"}, "destination": {"displayCode": "BOM"},
	   "departure": "2024-12-24T07:00:00", "arrival": "2024-12-24T09:10:00",
	   "carriers": {"marketing": [{"name": "Air India"}]}, "segments": [{"flightNumber": 805}]}
	]}]}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	adapter := provider.NewSkyscannerAdapter(server.URL, "test-key", time.Second, logger.Nop())
	records, err := adapter.Fetch(context.Background(), "DEL", "BOM", "2024-12-24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 leg, got %d", len(records))
	}
	if records[0].Fare != entity.FareMissing {
		t.Errorf("expected missing fare sentinel, got %v", records[0].Fare)
	}
}

func TestSkyscannerFetchUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	adapter := provider.NewSkyscannerAdapter(server.URL, "test-key", time.Second, logger.Nop())
	_, err := adapter.Fetch(context.Background(), "DEL", "BOM", "2024-12-24")

	var upstream *entity.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", upstream.Status)
	}
}
