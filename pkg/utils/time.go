package utils

import (
	"fmt"
	"time"
)

// IST is the fixed offset the bus upstream's epoch timestamps are
// presented in.
var IST = time.FixedZone("IST", int((5*time.Hour + 30*time.Minute).Seconds()))

// FromEpochMillis converts an epoch-milliseconds value to IST time.
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).In(IST)
}

// CompactDate reformats a YYYY-MM-DD date string into YYYYMMDD as the
// rail upstream expects. Returns an error for anything unparseable.
func CompactDate(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid travel date %q: %w", date, err)
	}
	return t.Format("20060102"), nil
}

// ValidDate reports whether date is a well-formed YYYY-MM-DD string.
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// MinutesText renders a duration-in-minutes field the way the flight
// upstreams describe it.
func MinutesText(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// SplitISODateTime splits an ISO-8601 datetime string into its date and
// time parts, tolerating missing time components.
func SplitISODateTime(s string) (date, clock string) {
	for i := 0; i < len(s); i++ {
		if s[i] == 'T' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
