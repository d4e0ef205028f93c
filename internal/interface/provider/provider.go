package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"transitguide-service/internal/domain/entity"
)

// Adapter is the shared contract every upstream travel-data source
// implements. Fetch builds the provider-specific request, calls the
// upstream and flattens its nested response into normalized records.
// Idempotency is not the adapter's concern; it only returns data.
type Adapter interface {
	Name() entity.Provider
	Mode() entity.TransportMode

	// Fetch retrieves trips for (source, destination, date). The code
	// kind depends on the mode: airport codes for flights, station
	// codes for rail, display city names for buses. A non-success
	// upstream status or transport failure is an *entity.UpstreamError.
	Fetch(ctx context.Context, source, destination, date string) ([]entity.TravelRecord, error)
}

// rapidAPIHeaders returns the header set the RapidAPI-hosted upstreams
// require; the host header is derived from the adapter's base URL.
func rapidAPIHeaders(baseURL, key string) map[string]string {
	host := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return map[string]string{
		"x-rapidapi-key":  key,
		"x-rapidapi-host": host,
	}
}

// getBody performs a GET against url and returns the raw body. Any
// non-2xx status is reported as an UpstreamError carrying the status.
func getBody(ctx context.Context, client *http.Client, name entity.Provider, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &entity.UpstreamError{Provider: name, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &entity.UpstreamError{Provider: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &entity.UpstreamError{Provider: name, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entity.UpstreamError{Provider: name, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return body, nil
}

// parseISO parses the datetime formats the flight upstreams emit:
// RFC 3339 with offset, or a bare local datetime.
func parseISO(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
