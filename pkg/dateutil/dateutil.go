package dateutil

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day or location.
// It is comparable and used as a map key for holiday lookups.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the normalized date for year, month and day
// (e.g. February 30 becomes March 1 or 2)
func NewDate(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar date of t in t's own location
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Date returns the year, month and day, the same shape as time.Time.Date
func (d Date) Date() (year int, month time.Month, day int) {
	return d.Year, d.Month, d.Day
}

// Time returns midnight UTC of the date
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days later (or earlier for negative n)
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly before other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly after other
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse(dateLayout, string(text))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", string(text), err)
	}
	*d = FromTime(t)
	return nil
}

// Dates returns every date from start to end inclusive.
// Returns nil if end is before start.
func Dates(start, end Date) []Date {
	if end.Before(start) {
		return nil
	}

	days := int(end.Time().Sub(start.Time()).Hours()/24) + 1
	result := make([]Date, 0, days)
	for d := start; !d.After(end); d = d.AddDays(1) {
		result = append(result, d)
	}
	return result
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		dateLayout,
		"20060102",
		"2006/01/02",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// ParseMonth parses a YYYY-MM string
func ParseMonth(monthStr string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", monthStr, err)
	}
	return t.Year(), t.Month(), nil
}

// Today returns today's date in the local timezone
func Today() Date {
	return FromTime(time.Now())
}
