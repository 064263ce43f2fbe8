// Package models defines client-side data models used by the sharder CLI.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FileRecord is the backend's description of a stored file. The client
// caches it as a read-only projection.
type FileRecord struct {
	// ID is the opaque backend-assigned identifier.
	ID string `json:"id"`

	// Name is the original filename; it doubles as the classification hint.
	Name string `json:"name"`

	// Size is the stored (encrypted) size in bytes.
	Size int64 `json:"size"`

	// HMAC is the backend integrity tag of the stored envelope.
	HMAC string `json:"hmac"`

	CreatedAt Timestamp `json:"created_at"`
}

// zonelessLayout is how the backend renders naive datetimes.
const zonelessLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a time.Time that also accepts ISO timestamps without a zone
// designator. Those are read as UTC.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTimestamp parses RFC 3339 or zone-less ISO 8601 timestamps.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(zonelessLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return ts, nil
}
