package entity

// ProviderResult is the per-provider outcome of one ingestion run.
type ProviderResult struct {
	Provider  Provider `json:"provider"`
	Inserted  int      `json:"inserted"`
	Fetched   int      `json:"fetched"`
	Malformed int      `json:"malformed"`
	Error     string   `json:"error,omitempty"`
}

// IngestionSummary is what the caller gets back from an ingestion run.
// Partial success (some providers failed) is still a summary, never an
// error.
type IngestionSummary struct {
	RequestID       string           `json:"requestId"`
	Mode            TransportMode    `json:"mode"`
	SourceCity      string           `json:"sourceCity"`
	DestinationCity string           `json:"destinationCity"`
	SourceCode      string           `json:"sourceCode"`
	DestinationCode string           `json:"destinationCode"`
	TravelDate      string           `json:"travelDate"`
	Skipped         bool             `json:"skipped"`
	Providers       []ProviderResult `json:"providers,omitempty"`
}

// TotalInserted sums inserted rows across providers.
func (s IngestionSummary) TotalInserted() int {
	total := 0
	for _, p := range s.Providers {
		total += p.Inserted
	}
	return total
}
