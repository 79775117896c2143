// Package models defines the wire shapes exchanged with the ballpark REST backend.
// File: models/time.go
package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Location is the wall-clock zone used for timestamps the backend sends without
// an offset. main sets it from configuration.
var Location = time.Local

const localLayout = "2006-01-02T15:04:05"

// LocalTime is a backend LocalDateTime. Values without an offset are read in
// Location; values with one are kept as sent.
type LocalTime struct {
	time.Time
}

// NewLocalTime wraps t.
func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t}
}

// ParseLocalTime accepts RFC 3339, "2006-01-02T15:04:05[.fff]" and
// "2006-01-02T15:04" (the HTML datetime-local format).
func ParseLocalTime(s string) (LocalTime, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return LocalTime{Time: t}, nil
	}
	var err error
	for _, layout := range []string{localLayout, "2006-01-02T15:04"} {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, Location); err == nil {
			return LocalTime{Time: t}, nil
		}
	}
	return LocalTime{}, err
}

// UnmarshalJSON implements json.Unmarshaler.
func (lt *LocalTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		lt.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		lt.Time = time.Time{}
		return nil
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}

// MarshalJSON writes the zone-less form the backend expects.
func (lt LocalTime) MarshalJSON() ([]byte, error) {
	if lt.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(lt.In(Location).Format(localLayout))
}

// FormLayout renders the value for an HTML datetime-local input.
func (lt LocalTime) FormLayout() string {
	if lt.IsZero() {
		return ""
	}
	return lt.In(Location).Format("2006-01-02T15:04")
}

// Display renders "2006-01-02 15:04".
func (lt LocalTime) Display() string {
	if lt.IsZero() {
		return ""
	}
	return lt.In(Location).Format("2006-01-02 15:04")
}
