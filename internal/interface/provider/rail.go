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

// railUserAgent is required by the rail upstream; requests without it
// are rejected.
const railUserAgent = "Mozilla/5.0"

// RailAdapter fetches train availability between two station codes. The
// response lists trains, each with a per-class availability list; one
// record is emitted per (train, class) with that class's fare.
type RailAdapter struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewRailAdapter creates a rail adapter against the given base URL.
func NewRailAdapter(baseURL string, timeout time.Duration, log logger.Logger) *RailAdapter {
	return &RailAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}
}

func (a *RailAdapter) Name() entity.Provider {
	return entity.ProviderRail
}

func (a *RailAdapter) Mode() entity.TransportMode {
	return entity.ModeRail
}

type railResponse struct {
	TrainBtwnStnsList []struct {
		TrainNumber     string `json:"trainNumber"`
		TrainName       string `json:"trainName"`
		FrmStnCode      string `json:"frmStnCode"`
		FrmStnCity      string `json:"frmStnCity"`
		ToStnCode       string `json:"toStnCode"`
		ToStnCity       string `json:"toStnCity"`
		DepartureTime   string `json:"departureTime"`
		ArrivalTime     string `json:"arrivalTime"`
		Duration        string `json:"duration"`
		TbsAvailability []struct {
			ClassName string      `json:"className"`
			TotalFare json.Number `json:"totalFare"`
		} `json:"tbsAvailability"`
	} `json:"trainBtwnStnsList"`
}

// Fetch retrieves trains between two station codes on the given date.
func (a *RailAdapter) Fetch(ctx context.Context, source, destination, date string) ([]entity.TravelRecord, error) {
	compact, err := utils.CompactDate(date)
	if err != nil {
		return nil, &entity.UpstreamError{Provider: a.Name(), Err: err}
	}

	endpoint := fmt.Sprintf("%s/api/tbsWithAvailabilityAndRecommendation/%s/%s/%s",
		a.baseURL, source, destination, compact)

	body, err := getBody(ctx, a.client, a.Name(), endpoint, map[string]string{"User-Agent": railUserAgent})
	if err != nil {
		return nil, err
	}

	var response railResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &entity.UpstreamError{Provider: a.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	var records []entity.TravelRecord
	for _, train := range response.TrainBtwnStnsList {
		for _, availability := range train.TbsAvailability {
			fare := float64(entity.FareMissing)
			if f, err := availability.TotalFare.Float64(); err == nil && f > 0 {
				fare = f
			}
			class := availability.ClassName
			if class == "" {
				class = "N/A"
			}
			records = append(records, entity.TravelRecord{
				Provider:        a.Name(),
				Mode:            entity.ModeRail,
				SourceCode:      train.FrmStnCode,
				DestinationCode: train.ToStnCode,
				SourceCity:      train.FrmStnCity,
				DestinationCity: train.ToStnCity,
				DepartureAt:     clockOnDate(date, train.DepartureTime),
				ArrivalAt:       clockOnDate(date, train.ArrivalTime),
				TravelDate:      date,
				Fare:            fare,
				Currency:        "INR",
				ServiceClass:    class,
				Carrier:         train.TrainName,
				TripNumber:      train.TrainNumber,
				DurationText:    train.Duration,
			})
		}
	}

	a.logger.Info("Fetched rail availability",
		"source", source, "destination", destination, "date", date, "rows", len(records))
	return records, nil
}

// clockOnDate combines a YYYY-MM-DD date with an HH:MM clock string in
// IST, the timezone the rail upstream reports in.
func clockOnDate(date, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, utils.IST)
	if err != nil {
		return time.Time{}
	}
	return t
}
