package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"

	displayDate     = "Jan 2, 2006"
	displayDateTime = "Jan 2, 2006 15:04"
	displayLongDate = "January 2, 2006"

	notAvailable = "N/A"
)

// the fractional layout also matches whole seconds, so it must come before any other clock layout
var parseLayouts = []string{dateLayout, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04", time.RFC3339Nano}

// Date is a backend date or timestamp. The backend serialises them either as ISO
// strings or as [year, month, day, hour, minute, second] arrays; both are accepted.
// Values that cannot be parsed are kept verbatim and shown as they came.
type Date struct {
	Time     time.Time
	HasClock bool
	raw      string
	// layout the value was parsed with, kept so timestamps marshal back unchanged
	layout string
}

// NewDate returns a calendar date without a time component
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a form value in YYYY-MM-DD form. An empty value yields nil.
func ParseDate(value string) (*Date, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &Date{Time: t}, nil
}

func (d *Date) IsZero() bool {
	return d == nil || (d.Time.IsZero() && d.raw == "")
}

// Format renders the date for tables, optionally with the time of day
func (d *Date) Format(withTime bool) string {
	if d.IsZero() {
		return notAvailable
	}
	if d.Time.IsZero() {
		return d.raw
	}
	if withTime {
		return d.Time.Format(displayDateTime)
	}
	return d.Time.Format(displayDate)
}

// Long renders the date with the full month name, used on profile cards
func (d *Date) Long() string {
	if d.IsZero() {
		return "-"
	}
	if d.Time.IsZero() {
		return d.raw
	}
	return d.Time.Format(displayLongDate)
}

func (d *Date) String() string {
	if d.IsZero() {
		return ""
	}
	if d.Time.IsZero() {
		return d.raw
	}
	if d.layout != "" {
		return d.Time.Format(d.layout)
	}
	if d.HasClock {
		return d.Time.Format(dateTimeLayout)
	}
	return d.Time.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = parseDateString(s)
		return nil
	case '[':
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil || len(parts) < 3 {
			*d = Date{raw: string(data)}
			return nil
		}
		*d = dateFromParts(parts)
		return nil
	}

	*d = Date{raw: string(data)}
	return nil
}

func parseDateString(s string) Date {
	if s == "" {
		return Date{}
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == dateLayout {
				return Date{Time: t}
			}
			return Date{Time: t, HasClock: true, layout: layout}
		}
	}
	return Date{raw: s}
}

func dateFromParts(parts []int) Date {
	clock := make([]int, 3)
	copy(clock, parts[3:])
	t := time.Date(parts[0], time.Month(parts[1]), parts[2], clock[0], clock[1], clock[2], 0, time.UTC)
	return Date{Time: t, HasClock: len(parts) > 3}
}

// FormatSalary renders an optional salary, "-" when unset or zero
func FormatSalary(salary *float64) string {
	if salary == nil || *salary == 0 {
		return "-"
	}
	return strconv.FormatFloat(*salary, 'f', -1, 64)
}
