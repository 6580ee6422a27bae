package model

import (
	"fmt"
	"strings"
	"time"
)

// localTimeLayout matches the backend's zone-less timestamp serialization
// (java LocalDateTime), e.g. "2026-03-14T09:30:00".
const localTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a timestamp without zone information, as exchanged with the
// backend. It round-trips the backend's layout and tolerates fractional
// seconds on input.
type LocalTime struct {
	time.Time
}

// NewLocalTime truncates t to second precision, matching the wire layout.
func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t.Truncate(time.Second)}
}

func (lt *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		lt.Time = time.Time{}
		return nil
	}
	// Drop fractional seconds; the backend emits them inconsistently.
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(localTimeLayout, s)
	if err != nil {
		return fmt.Errorf("parse local time %q: %w", s, err)
	}
	lt.Time = t
	return nil
}

func (lt LocalTime) MarshalJSON() ([]byte, error) {
	if lt.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + lt.Format(localTimeLayout) + `"`), nil
}

// String renders the wire layout, used by templates as a fallback when the
// backend supplies no display string.
func (lt LocalTime) String() string {
	if lt.IsZero() {
		return ""
	}
	return lt.Format(localTimeLayout)
}
