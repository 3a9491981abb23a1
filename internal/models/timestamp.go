package models

import (
	"fmt"
	"time"
)

// Layouts accepted for sample timestamps. The backend serializes naive
// datetimes (no offset); those are read as plant wall-clock labelled UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a backend timestamp into a canonical instant.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// InstantKey is the canonical join key for a timestamp. Two timestamps that
// denote the same instant share a key regardless of zone or formatting.
func InstantKey(t time.Time) int64 {
	return t.UnixNano()
}
