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
	"transitguide-service/pkg/utils"
)

const railBody = `{
  "trainBtwnStnsList": [
    {
      "trainNumber": "12952",
      "trainName": "MUMBAI RAJDHANI",
      "frmStnCode": "NDLS",
      "frmStnCity": "Delhi",
      "toStnCode": "CSTM",
      "toStnCity": "Mumbai",
      "departureTime": "16:25",
      "arrivalTime": "08:15",
      "duration": "15:50",
      "tbsAvailability": [
        {"className": "3A", "totalFare": 2310},
        {"className": "2A", "totalFare": 3215}
      ]
    },
    {
      "trainNumber": "12954",
      "trainName": "AG KRANTI RJDHN",
      "frmStnCode": "NDLS",
      "frmStnCity": "Delhi",
      "toStnCode": "CSTM",
      "toStnCity": "Mumbai",
      "departureTime": "17:40",
      "arrivalTime": "10:00",
      "duration": "16:20",
      "tbsAvailability": [
        {"className": "", "totalFare": 0}
      ]
    }
  ]
}`

func TestRailFetch(t *testing.T) {
	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(railBody))
	}))
	defer server.Close()

	adapter := provider.NewRailAdapter(server.URL, time.Second, logger.Nop())
	records, err := adapter.Fetch(context.Background(), "NDLS", "CSTM", "2024-12-24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The date travels in the path compacted to YYYYMMDD.
	if gotPath != "/api/tbsWithAvailabilityAndRecommendation/NDLS/CSTM/20241224" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAgent == "" {
		t.Error("expected a User-Agent header")
	}

	// One record per (train, class).
	if len(records) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(records))
	}

	first := records[0]
	if first.Provider != entity.ProviderRail || first.Mode != entity.ModeRail {
		t.Errorf("unexpected provider/mode: %+v", first)
	}
	if first.TripNumber != "12952" || first.ServiceClass != "3A" || first.Fare != 2310 {
		t.Errorf("unexpected first row: %+v", first)
	}
	if records[1].TripNumber != "12952" || records[1].ServiceClass != "2A" || records[1].Fare != 3215 {
		t.Errorf("unexpected second row: %+v", records[1])
	}

	wantDeparture := time.Date(2024, 12, 24, 16, 25, 0, 0, utils.IST)
	if !first.DepartureAt.Equal(wantDeparture) {
		t.Errorf("departure = %v, want %v", first.DepartureAt, wantDeparture)
	}

	// Missing class and fare fall back to placeholders.
	third := records[2]
	if third.ServiceClass != "N/A" {
		t.Errorf("expected class placeholder, got %q", third.ServiceClass)
	}
	if third.Fare != entity.FareMissing {
		t.Errorf("expected missing fare sentinel, got %v", third.Fare)
	}
}

func TestRailFetchRejectsBadDate(t *testing.T) {
	adapter := provider.NewRailAdapter("http://127.0.0.1:0", time.Second, logger.Nop())
	_, err := adapter.Fetch(context.Background(), "NDLS", "CSTM", "24-12-2024")

	var upstream *entity.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestRailFetchUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := provider.NewRailAdapter(server.URL, time.Second, logger.Nop())
	_, err := adapter.Fetch(context.Background(), "NDLS", "CSTM", "2024-12-24")

	var upstream *entity.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", upstream.Status)
	}
}
