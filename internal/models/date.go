package models

import (
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the ISO calendar-date layout used on the wire and in the date picker.
const DateLayout = "2006-01-02"

// Date is a civil calendar date with no time-of-day or zone attached.
// The zero value means "unset".
type Date struct {
	civil.Date
}

// NewDate builds a normalized Date (e.g. Feb 30 rolls into March).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date{civil.DateOf(t)}
}

// ParseDate parses an ISO "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{d}, nil
}

// MustParseDate is ParseDate for constants and tests.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Date == civil.Date{}
}

// Time returns midnight of the date in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return d.In(loc)
}

// AddDays returns the date n days later (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{d.Date.AddDays(n)}
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Date.Before(o.Date):
		return -1
	case d.Date.After(o.Date):
		return 1
	}
	return 0
}

func (d Date) Before(o Date) bool { return d.Date.Before(o.Date) }
func (d Date) After(o Date) bool  { return d.Date.After(o.Date) }

// String formats the date as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Date.String()
}

// Label formats the date for table cells, e.g. "09 Mar".
func (d Date) Label() string {
	if d.IsZero() {
		return "--"
	}
	return d.In(time.UTC).Format("02 Jan")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts an ISO date string; "" leaves the date unset.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
