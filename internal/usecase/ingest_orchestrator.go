package usecase

import (
	"context"
	"fmt"
	"time"

	"transitguide-service/internal/domain/entity"
	"transitguide-service/internal/domain/repository"
	"transitguide-service/internal/interface/provider"
	"transitguide-service/pkg/logger"
	"transitguide-service/pkg/metrics"
	"transitguide-service/pkg/utils"

	"github.com/google/uuid"
)

// IngestRequest is one user-initiated fetch: resolve the cities, check
// the store, and pull from every provider of the requested mode if the
// route has not been fetched yet.
type IngestRequest struct {
	SourceCity      string
	DestinationCity string
	TravelDate      string
	Mode            entity.TransportMode
}

// IngestOrchestrator drives an ingestion run through its states:
// resolving, checking, fetching, storing. Provider failures are
// recorded per provider and never abort the run; a partial result is a
// success from the caller's point of view.
type IngestOrchestrator struct {
	resolver *CityResolver
	store    repository.TravelRecordRepository
	staging  repository.TrainStagingRepository
	adapters map[entity.TransportMode][]provider.Adapter
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewIngestOrchestrator creates a new ingestion orchestrator. staging
// may be nil when no rail staging store is configured; m may be nil to
// disable metrics.
func NewIngestOrchestrator(
	resolver *CityResolver,
	store repository.TravelRecordRepository,
	staging repository.TrainStagingRepository,
	adapters []provider.Adapter,
	m *metrics.Metrics,
	log logger.Logger,
) *IngestOrchestrator {
	byMode := make(map[entity.TransportMode][]provider.Adapter)
	for _, adapter := range adapters {
		byMode[adapter.Mode()] = append(byMode[adapter.Mode()], adapter)
	}
	return &IngestOrchestrator{
		resolver: resolver,
		store:    store,
		staging:  staging,
		adapters: byMode,
		metrics:  m,
		logger:   log,
	}
}

// Ingest runs one fetch request to completion. The returned summary is
// always populated; the error is non-nil only for terminal failures
// (unresolvable city, bad date, store unavailable during the existence
// check), never for individual provider failures.
func (o *IngestOrchestrator) Ingest(ctx context.Context, req IngestRequest) (entity.IngestionSummary, error) {
	summary := entity.IngestionSummary{
		RequestID:       uuid.NewString(),
		Mode:            req.Mode,
		SourceCity:      req.SourceCity,
		DestinationCity: req.DestinationCity,
		TravelDate:      req.TravelDate,
	}
	log := o.logger.With("requestId", summary.RequestID, "mode", req.Mode)

	if o.metrics != nil {
		o.metrics.IngestsTotal.Inc()
	}

	if !utils.ValidDate(req.TravelDate) {
		return summary, fmt.Errorf("%w: %q", entity.ErrInvalidDate, req.TravelDate)
	}

	// Resolving: both cities must match above threshold and carry the
	// code this mode needs.
	source, dest, err := o.resolveRoute(req)
	if err != nil {
		log.Warn("City resolution failed",
			"source", req.SourceCity, "destination", req.DestinationCity, "error", err)
		return summary, err
	}
	summary.SourceCode = source
	summary.DestinationCode = dest
	log.Info("Route resolved", "sourceCode", source, "destinationCode", dest)

	// Checking: any stored row for this route+date is the
	// already-fetched marker. A zero-result fetch leaves no marker, so
	// such routes are retried on the next request.
	exists, err := o.store.Exists(ctx, repository.RouteKey{
		Mode:            req.Mode,
		SourceCode:      source,
		DestinationCode: dest,
		TravelDate:      req.TravelDate,
	})
	if err != nil {
		return summary, err
	}
	if exists {
		summary.Skipped = true
		if o.metrics != nil {
			o.metrics.IngestsSkipped.Inc()
		}
		log.Info("Route already ingested, skipping upstream calls")
		return summary, nil
	}

	// Fetching and storing, sequentially per provider, fail-soft.
	for _, adapter := range o.adapters[req.Mode] {
		summary.Providers = append(summary.Providers, o.runProvider(ctx, adapter, source, dest, req.TravelDate, log))
	}

	log.Info("Ingestion complete",
		"inserted", summary.TotalInserted(), "providers", len(summary.Providers))
	return summary, nil
}

// resolveRoute resolves both city names and picks the code kind the
// transport mode requires.
func (o *IngestOrchestrator) resolveRoute(req IngestRequest) (string, string, error) {
	sourceCodes, ok := o.resolver.Resolve(req.SourceCity)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", entity.ErrCityNotFound, req.SourceCity)
	}
	destCodes, ok := o.resolver.Resolve(req.DestinationCity)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", entity.ErrCityNotFound, req.DestinationCity)
	}

	source := codeForMode(sourceCodes, req.Mode)
	if source == "" {
		return "", "", fmt.Errorf("%w: %q has no %s code", entity.ErrCityNotFound, req.SourceCity, req.Mode)
	}
	dest := codeForMode(destCodes, req.Mode)
	if dest == "" {
		return "", "", fmt.Errorf("%w: %q has no %s code", entity.ErrCityNotFound, req.DestinationCity, req.Mode)
	}
	return source, dest, nil
}

// codeForMode picks the code a mode's upstreams are addressed by:
// airport codes for flights, station codes for rail, and the matched
// display city name for buses.
func codeForMode(codes entity.CityCodes, mode entity.TransportMode) string {
	switch mode {
	case entity.ModeRail:
		return codes.StationCode
	case entity.ModeBus:
		return codes.City
	default:
		return codes.AirportCode
	}
}

// runProvider fetches from one adapter and writes its records through
// the idempotent store, translating failures into the per-provider
// result instead of propagating them.
func (o *IngestOrchestrator) runProvider(ctx context.Context, adapter provider.Adapter, source, dest, date string, log logger.Logger) entity.ProviderResult {
	name := adapter.Name()
	result := entity.ProviderResult{Provider: name}

	start := time.Now()
	records, err := adapter.Fetch(ctx, source, dest, date)
	if o.metrics != nil {
		o.metrics.FetchDuration.WithLabelValues(string(name)).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if o.metrics != nil {
			o.metrics.ProviderErrors.WithLabelValues(string(name)).Inc()
		}
		log.Error("Provider fetch failed", "provider", name, "error", err)
		result.Error = err.Error()
		return result
	}
	result.Fetched = len(records)

	// Records with no identifying key at all cannot be deduplicated;
	// they are skipped and counted, the rest of the batch proceeds.
	storable := records[:0]
	for _, record := range records {
		if !record.HasIdentity() {
			result.Malformed++
			continue
		}
		storable = append(storable, record)
	}
	if result.Malformed > 0 {
		if o.metrics != nil {
			o.metrics.RecordsMalformed.WithLabelValues(string(name)).Add(float64(result.Malformed))
		}
		log.Warn("Skipped records without identifying fields",
			"provider", name, "skipped", result.Malformed)
	}

	if name == entity.ProviderRail && o.staging != nil {
		if staged, err := o.staging.Stage(ctx, storable); err != nil {
			log.Warn("Rail staging write failed", "error", err)
		} else {
			log.Info("Staged rail rows", "staged", staged)
		}
	}

	inserted, err := o.store.Upsert(ctx, storable)
	result.Inserted = inserted
	if err != nil {
		// Rows committed before the failure are retained; the count
		// reflects them.
		log.Error("Store upsert failed", "provider", name, "inserted", inserted, "error", err)
		result.Error = err.Error()
	}
	if o.metrics != nil && inserted > 0 {
		o.metrics.RecordsInserted.WithLabelValues(string(name)).Add(float64(inserted))
	}
	return result
}
