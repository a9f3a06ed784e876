package models

import (
	"fmt"
	"strings"
	"time"
)

// DateTime wraps time.Time so entity dates survive the backend's
// transport formats. The backend emits either full RFC3339 timestamps
// or bare dates; both are parsed at load time.
type DateTime struct {
	time.Time
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NewDateTime creates a DateTime from a time.Time
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// UnmarshalJSON parses a transport date string into a DateTime
func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized date format %q", s)
}

// MarshalJSON emits the date as RFC3339
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Time.Format(time.RFC3339) + `"`), nil
}
