package store

import (
	"fmt"
	"time"
)

// timestampLayout is how PostgREST renders timestamptz, e.g.
// "2026-10-18T10:00:00.123456+00:00".
const timestampLayout = time.RFC3339Nano

var fallbackLayouts = []string{
	"2006-01-02T15:04:05.999999",
	time.DateOnly,
}

func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	ts, err := time.Parse(timestampLayout, raw)
	if err == nil {
		return ts, nil
	}
	for _, layout := range fallbackLayouts {
		if ts, fallbackErr := time.Parse(layout, raw); fallbackErr == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", raw, err)
}
