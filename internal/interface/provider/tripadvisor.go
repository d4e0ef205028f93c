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

// TripadvisorAdapter fetches one-way flights from the TripAdvisor
// flight-search upstream. The response nests flights → segments → legs;
// one record is emitted per leg, all legs of a flight sharing the
// flight-level fare.
type TripadvisorAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

// NewTripadvisorAdapter creates a TripAdvisor flight adapter.
func NewTripadvisorAdapter(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *TripadvisorAdapter {
	return &TripadvisorAdapter{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}
}

func (a *TripadvisorAdapter) Name() entity.Provider {
	return entity.ProviderTripadvisor
}

func (a *TripadvisorAdapter) Mode() entity.TransportMode {
	return entity.ModeFlight
}

type tripadvisorResponse struct {
	Data struct {
		Flights []struct {
			Segments []struct {
				Legs []struct {
					OriginStationCode      string      `json:"originStationCode"`
					DestinationStationCode string      `json:"destinationStationCode"`
					FlightNumber           json.Number `json:"flightNumber"`
					DepartureDateTime      string      `json:"departureDateTime"`
					ArrivalDateTime        string      `json:"arrivalDateTime"`
					ClassOfService         string      `json:"classOfService"`
					MarketingCarrier       struct {
						DisplayName string `json:"displayName"`
					} `json:"marketingCarrier"`
					Equipment string `json:"equipmentId"`
				} `json:"legs"`
			} `json:"segments"`
			PurchaseLinks []struct {
				TotalPricePerPassenger float64 `json:"totalPricePerPassenger"`
				Currency               string  `json:"currency"`
			} `json:"purchaseLinks"`
		} `json:"flights"`
	} `json:"data"`
}

// Fetch retrieves one-way economy flights between two airport codes.
func (a *TripadvisorAdapter) Fetch(ctx context.Context, source, destination, date string) ([]entity.TravelRecord, error) {
	endpoint := fmt.Sprintf(
		"%s/api/v1/flights/searchFlights?sourceAirportCode=%s&destinationAirportCode=%s&date=%s"+
			"&itineraryType=ONE_WAY&sortOrder=ML_BEST_VALUE&numAdults=1&classOfService=ECONOMY"+
			"&pageNumber=1&nearby=yes&nonstop=yes&currencyCode=INR",
		a.baseURL, source, destination, date)

	body, err := getBody(ctx, a.client, a.Name(), endpoint, rapidAPIHeaders(a.baseURL, a.apiKey))
	if err != nil {
		return nil, err
	}

	var response tripadvisorResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &entity.UpstreamError{Provider: a.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	var records []entity.TravelRecord
	for _, flight := range response.Data.Flights {
		fare := float64(entity.FareMissing)
		currency := "INR"
		if len(flight.PurchaseLinks) > 0 {
			if price := flight.PurchaseLinks[0].TotalPricePerPassenger; price > 0 {
				fare = price
			}
			if flight.PurchaseLinks[0].Currency != "" {
				currency = flight.PurchaseLinks[0].Currency
			}
		}

		for _, segment := range flight.Segments {
			for _, leg := range segment.Legs {
				class := leg.ClassOfService
				if class == "" {
					class = "ECONOMY"
				}
				departure := parseISO(leg.DepartureDateTime)
				travelDate := date
				if d, _ := utils.SplitISODateTime(leg.DepartureDateTime); d != "" {
					travelDate = d
				}
				records = append(records, entity.TravelRecord{
					Provider:        a.Name(),
					Mode:            entity.ModeFlight,
					SourceCode:      leg.OriginStationCode,
					DestinationCode: leg.DestinationStationCode,
					DepartureAt:     departure,
					ArrivalAt:       parseISO(leg.ArrivalDateTime),
					TravelDate:      travelDate,
					Fare:            fare,
					Currency:        currency,
					ServiceClass:    class,
					Carrier:         leg.MarketingCarrier.DisplayName,
					TripNumber:      leg.FlightNumber.String(),
					TripType:        leg.Equipment,
				})
			}
		}
	}

	a.logger.Info("Fetched tripadvisor flights",
		"source", source, "destination", destination, "date", date, "legs", len(records))
	return records, nil
}
