package model

import (
	"strings"
	"time"
)

// Layouts accepted for interval timestamps. The API sends minute precision
// with a literal Z; processed CSVs may carry RFC3339 or the space-separated
// form other tools write.
var timestampLayouts = []string{
	"2006-01-02T15:04Z",
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseUTC parses s as a UTC instant. Unparseable or empty input returns the
// zero time and false; callers treat that as missing.
func ParseUTC(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
