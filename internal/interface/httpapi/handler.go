package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/internal/domain/repository"
	"transitguide-service/internal/usecase"
	"transitguide-service/pkg/logger"
)

// Handler exposes the ingestion trigger and the read-only route query.
type Handler struct {
	orchestrator *usecase.IngestOrchestrator
	store        repository.TravelRecordRepository
	logger       logger.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(orchestrator *usecase.IngestOrchestrator, store repository.TravelRecordRepository, log logger.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		store:        store,
		logger:       log,
	}
}

// Register attaches the API routes to a mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/ingest", h.ingest)
	mux.HandleFunc("GET /api/v1/routes", h.queryRoutes)
}

type ingestPayload struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Mode        string `json:"mode"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	var payload ingestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	mode, ok := parseMode(payload.Mode)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown mode: " + payload.Mode})
		return
	}

	summary, err := h.orchestrator.Ingest(r.Context(), usecase.IngestRequest{
		SourceCity:      payload.Source,
		DestinationCity: payload.Destination,
		TravelDate:      payload.Date,
		Mode:            mode,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entity.ErrCityNotFound) || errors.Is(err, entity.ErrInvalidDate) {
			status = http.StatusBadRequest
		}
		h.logger.Warn("Ingest request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) queryRoutes(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	mode, ok := parseMode(params.Get("mode"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown mode: " + params.Get("mode")})
		return
	}

	filter := repository.QueryFilter{
		Mode:            mode,
		SourceCode:      params.Get("source"),
		DestinationCode: params.Get("destination"),
		DateFrom:        params.Get("date_from"),
		DateTo:          params.Get("date_to"),
		OrderBy:         params.Get("order_by"),
	}
	if date := params.Get("date"); date != "" {
		filter.DateFrom = date
		filter.DateTo = date
	}
	if raw := params.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	trips, err := h.store.Query(r.Context(), filter)
	if err != nil {
		h.logger.Error("Route query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "query failed"})
		return
	}
	if trips == nil {
		trips = []entity.StoredTrip{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(trips),
		"results": trips,
	})
}

// parseMode maps the request's mode string onto a known transport
// mode. Empty defaults to flight; anything else unknown is rejected.
func parseMode(raw string) (entity.TransportMode, bool) {
	switch entity.TransportMode(raw) {
	case "":
		return entity.ModeFlight, true
	case entity.ModeFlight, entity.ModeRail, entity.ModeBus:
		return entity.TransportMode(raw), true
	default:
		return "", false
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
