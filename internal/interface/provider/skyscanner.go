package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/pkg/logger"
	"transitguide-service/pkg/utils"
)

// SkyscannerAdapter fetches one-way flights from the Skyscanner search
// upstream. The response nests itineraries → legs; the fare lives at the
// itinerary level and is shared by each of its legs, and the flight
// number comes from the leg's first marketing segment.
type SkyscannerAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

// NewSkyscannerAdapter creates a Skyscanner flight adapter.
func NewSkyscannerAdapter(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *SkyscannerAdapter {
	return &SkyscannerAdapter{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}
}

func (a *SkyscannerAdapter) Name() entity.Provider {
	return entity.ProviderSkyscanner
}

func (a *SkyscannerAdapter) Mode() entity.TransportMode {
	return entity.ModeFlight
}

type skyscannerPlace struct {
	City        string `json:"city"`
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
}

type skyscannerResponse struct {
	Data struct {
		Itineraries []struct {
			Price struct {
				Raw float64 `json:"raw"`
			} `json:"price"`
			Legs []struct {
				Origin            skyscannerPlace `json:"origin"`
				Destination       skyscannerPlace `json:"destination"`
				Departure         string          `json:"departure"`
				Arrival           string          `json:"arrival"`
				DurationInMinutes int             `json:"durationInMinutes"`
				StopCount         int             `json:"stopCount"`
				Carriers          struct {
					Marketing []struct {
						Name string `json:"name"`
					} `json:"marketing"`
				} `json:"carriers"`
				Segments []struct {
					FlightNumber json.Number `json:"flightNumber"`
				} `json:"segments"`
			} `json:"legs"`
		} `json:"itineraries"`
	} `json:"data"`
}

// Fetch retrieves one-way economy flights between two airport codes.
func (a *SkyscannerAdapter) Fetch(ctx context.Context, source, destination, date string) ([]entity.TravelRecord, error) {
	endpoint := fmt.Sprintf(
		"%s/flights/search-one-way?fromEntityId=%s&toEntityId=%s&departDate=%s&currency=INR&cabinClass=economy",
		a.baseURL, source, destination, date)

	body, err := getBody(ctx, a.client, a.Name(), endpoint, rapidAPIHeaders(a.baseURL, a.apiKey))
	if err != nil {
		return nil, err
	}

	var response skyscannerResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &entity.UpstreamError{Provider: a.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	var records []entity.TravelRecord
	for _, itinerary := range response.Data.Itineraries {
		fare := float64(entity.FareMissing)
		if itinerary.Price.Raw > 0 {
			fare = itinerary.Price.Raw
		}

		for _, leg := range itinerary.Legs {
			carrier := "N/A"
			if len(leg.Carriers.Marketing) > 0 && leg.Carriers.Marketing[0].Name != "" {
				carrier = leg.Carriers.Marketing[0].Name
			}
			flightNumber := ""
			if len(leg.Segments) > 0 {
				flightNumber = leg.Segments[0].FlightNumber.String()
			}
			travelDate := date
			if d, _ := utils.SplitISODateTime(leg.Departure); d != "" {
				travelDate = d
			}
			records = append(records, entity.TravelRecord{
				Provider:        a.Name(),
				Mode:            entity.ModeFlight,
				SourceCode:      leg.Origin.DisplayCode,
				DestinationCode: leg.Destination.DisplayCode,
				SourceCity:      leg.Origin.City,
				DestinationCity: leg.Destination.City,
				DepartureAt:     parseISO(leg.Departure),
				ArrivalAt:       parseISO(leg.Arrival),
				TravelDate:      travelDate,
				Fare:            fare,
				Currency:        "INR",
				ServiceClass:    "ECONOMY",
				Carrier:         carrier,
				TripNumber:      flightNumber,
				DurationText:    utils.MinutesText(leg.DurationInMinutes),
				StopQuantity:    leg.StopCount,
			})
		}
	}

	a.logger.Info("Fetched skyscanner flights",
		"source", source, "destination", destination, "date", date, "legs", len(records))
	return records, nil
}
