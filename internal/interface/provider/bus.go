package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/pkg/logger"
	"transitguide-service/pkg/utils"
)

// BusAdapter fetches bus trips between two cities from the Zingbus
// marketplace. The upstream streams newline-delimited JSON documents,
// each carrying a trips list; departure and arrival come as epoch
// milliseconds and are normalized to IST. Buses carry no trip number,
// so route, departure time and bus type form the identity.
type BusAdapter struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewBusAdapter creates a bus adapter against the given base URL.
func NewBusAdapter(baseURL string, timeout time.Duration, log logger.Logger) *BusAdapter {
	return &BusAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}
}

func (a *BusAdapter) Name() entity.Provider {
	return entity.ProviderBus
}

func (a *BusAdapter) Mode() entity.TransportMode {
	return entity.ModeBus
}

type busDocument struct {
	Trips []struct {
		FromCity         string      `json:"fromCity"`
		ToCity           string      `json:"toCity"`
		Type             string      `json:"type"`
		StartTimeInMills int64       `json:"startTimeInMills"`
		EndTimeInMills   int64       `json:"endTimeInMills"`
		TimeDifference   string      `json:"timeDifference"`
		Fare             json.Number `json:"fare"`
	} `json:"trips"`
}

// Fetch retrieves bus trips between two display city names on the given
// date.
func (a *BusAdapter) Fetch(ctx context.Context, source, destination, date string) ([]entity.TravelRecord, error) {
	endpoint := fmt.Sprintf("%s/v1/search/zingbus/buses/?fromCity=%s&toCity=%s&tripDate=%s",
		a.baseURL, url.QueryEscape(source), url.QueryEscape(destination), date)

	body, err := getBody(ctx, a.client, a.Name(), endpoint, nil)
	if err != nil {
		return nil, err
	}

	// The upstream emits one JSON document per line; decode them all.
	decoder := json.NewDecoder(bytes.NewReader(body))
	var documents []busDocument
	for {
		var doc busDocument
		if err := decoder.Decode(&doc); err == io.EOF {
			break
		} else if err != nil {
			if len(documents) == 0 {
				return nil, &entity.UpstreamError{Provider: a.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
			}
			a.logger.Warn("Discarding trailing undecodable bus payload", "error", err)
			break
		}
		documents = append(documents, doc)
	}

	var records []entity.TravelRecord
	for _, doc := range documents {
		for _, trip := range doc.Trips {
			fare := float64(entity.FareMissing)
			if f, err := trip.Fare.Float64(); err == nil && f > 0 {
				fare = f
			}
			var departure, arrival time.Time
			if trip.StartTimeInMills > 0 {
				departure = utils.FromEpochMillis(trip.StartTimeInMills)
			}
			if trip.EndTimeInMills > 0 {
				arrival = utils.FromEpochMillis(trip.EndTimeInMills)
			}
			busType := trip.Type
			if busType == "" {
				busType = "N/A"
			}
			records = append(records, entity.TravelRecord{
				Provider:        a.Name(),
				Mode:            entity.ModeBus,
				SourceCode:      trip.FromCity,
				DestinationCode: trip.ToCity,
				SourceCity:      trip.FromCity,
				DestinationCity: trip.ToCity,
				DepartureAt:     departure,
				ArrivalAt:       arrival,
				TravelDate:      date,
				Fare:            fare,
				Currency:        "INR",
				ServiceClass:    busType,
				TripType:        busType,
				DurationText:    trip.TimeDifference,
			})
		}
	}

	a.logger.Info("Fetched bus trips",
		"source", source, "destination", destination, "date", date, "trips", len(records))
	return records, nil
}
