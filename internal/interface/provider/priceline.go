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

// PricelineAdapter fetches one-way flights from the Priceline search
// upstream. The response nests listings → slices → segments; the fare
// lives at the listing level in USD and is converted to INR for display
// with a configured rate.
type PricelineAdapter struct {
	baseURL  string
	apiKey   string
	usdToInr float64
	client   *http.Client
	logger   logger.Logger
}

// NewPricelineAdapter creates a Priceline flight adapter. usdToInr is
// the display conversion rate applied to listing fares.
func NewPricelineAdapter(baseURL, apiKey string, usdToInr float64, timeout time.Duration, log logger.Logger) *PricelineAdapter {
	return &PricelineAdapter{
		baseURL:  baseURL,
		apiKey:   apiKey,
		usdToInr: usdToInr,
		client:   &http.Client{Timeout: timeout},
		logger:   log,
	}
}

func (a *PricelineAdapter) Name() entity.Provider {
	return entity.ProviderPriceline
}

func (a *PricelineAdapter) Mode() entity.TransportMode {
	return entity.ModeFlight
}

type pricelineAirportInfo struct {
	Airport struct {
		Name string `json:"name"`
		Code string `json:"code"`
	} `json:"airport"`
	Time struct {
		DateTime string `json:"dateTime"`
	} `json:"time"`
}

type pricelineResponse struct {
	Data struct {
		Listings []struct {
			TotalPriceWithDecimal struct {
				Price float64 `json:"price"`
			} `json:"totalPriceWithDecimal"`
			Slices []struct {
				DurationInMinutes int `json:"durationInMinutes"`
				Segments          []struct {
					MarketingAirline string               `json:"marketingAirline"`
					FlightNumber     json.Number          `json:"flightNumber"`
					DepartInfo       pricelineAirportInfo `json:"departInfo"`
					ArrivalInfo      pricelineAirportInfo `json:"arrivalInfo"`
					Duration         int                  `json:"duration"`
					StopQuantity     int                  `json:"stopQuantity"`
					EquipmentName    string               `json:"equipmentName"`
					CabinClass       string               `json:"cabinClass"`
				} `json:"segments"`
			} `json:"slices"`
		} `json:"listings"`
	} `json:"data"`
}

// Fetch retrieves nonstop one-way flights between two airport codes.
func (a *PricelineAdapter) Fetch(ctx context.Context, source, destination, date string) ([]entity.TravelRecord, error) {
	endpoint := fmt.Sprintf(
		"%s/flights/search-one-way?originAirportCode=%s&destinationAirportCode=%s&departureDate=%s&numOfStops=0",
		a.baseURL, source, destination, date)

	body, err := getBody(ctx, a.client, a.Name(), endpoint, rapidAPIHeaders(a.baseURL, a.apiKey))
	if err != nil {
		return nil, err
	}

	var response pricelineResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &entity.UpstreamError{Provider: a.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	var records []entity.TravelRecord
	for _, listing := range response.Data.Listings {
		fare := float64(entity.FareMissing)
		if usd := listing.TotalPriceWithDecimal.Price; usd > 0 {
			fare = usd * a.usdToInr
		}

		for _, slice := range listing.Slices {
			for _, segment := range slice.Segments {
				carrier := segment.MarketingAirline
				if carrier == "" {
					carrier = "N/A"
				}
				class := segment.CabinClass
				if class == "" {
					class = "ECONOMY"
				}
				travelDate := date
				if d, _ := utils.SplitISODateTime(segment.DepartInfo.Time.DateTime); d != "" {
					travelDate = d
				}
				records = append(records, entity.TravelRecord{
					Provider:        a.Name(),
					Mode:            entity.ModeFlight,
					SourceCode:      segment.DepartInfo.Airport.Code,
					DestinationCode: segment.ArrivalInfo.Airport.Code,
					SourceCity:      segment.DepartInfo.Airport.Name,
					DestinationCity: segment.ArrivalInfo.Airport.Name,
					DepartureAt:     parseISO(segment.DepartInfo.Time.DateTime),
					ArrivalAt:       parseISO(segment.ArrivalInfo.Time.DateTime),
					TravelDate:      travelDate,
					Fare:            fare,
					Currency:        "INR",
					ServiceClass:    class,
					Carrier:         carrier,
					TripNumber:      segment.FlightNumber.String(),
					TripType:        segment.EquipmentName,
					DurationText:    utils.MinutesText(segment.Duration),
					StopQuantity:    segment.StopQuantity,
				})
			}
		}
	}

	a.logger.Info("Fetched priceline flights",
		"source", source, "destination", destination, "date", date, "segments", len(records))
	return records, nil
}
