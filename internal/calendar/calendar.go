package calendar

import (
	"time"

	"github.com/username/chinese-calendar/pkg/dateutil"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeCompensatoryWorkday
)

// String returns a lowercase name for the day type
func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeCompensatoryWorkday:
		return "compensatory_workday"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (t DayType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// DateLike is anything that can report a calendar date.
// Both time.Time and dateutil.Date satisfy it; for time.Time the
// time of day is ignored. Nil pointers are rejected with
// UnsupportedTypeError.
type DateLike interface {
	Date() (year int, month time.Month, day int)
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date      dateutil.Date `json:"date"`
	Weekday   string        `json:"weekday"`
	Type      DayType       `json:"type"`
	IsWorkday bool          `json:"is_workday"`
	IsHoliday bool          `json:"is_holiday"`
	Note      string        `json:"note,omitempty"`
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year                 int        `json:"year"`
	Month                time.Month `json:"month"`
	WorkDays             int        `json:"work_days"`
	Weekends             int        `json:"weekends"`
	Holidays             int        `json:"holidays"`
	CompensatoryWorkdays int        `json:"compensatory_workdays"`
	Days                 []DayInfo  `json:"days"`
}

// Calendar interface for checking working days
type Calendar interface {
	// IsWorkday checks if the given date is a working day
	IsWorkday(date DateLike) (bool, error)

	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date DateLike) (*DayInfo, error)

	// GetMonthInfo returns calendar info for the entire month
	GetMonthInfo(year int, month time.Month) (*MonthInfo, error)
}

// buildMonthInfo collects day info for every day of the month and tallies it
func buildMonthInfo(cal Calendar, year int, month time.Month) (*MonthInfo, error) {
	first := dateutil.Date{Year: year, Month: month, Day: 1}
	last := dateutil.NewDate(year, month+1, 0)

	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, last.Day),
	}

	for _, d := range dateutil.Dates(first, last) {
		dayInfo, err := cal.GetDayInfo(d)
		if err != nil {
			return nil, err
		}

		switch dayInfo.Type {
		case DayTypeWorkday:
			monthInfo.WorkDays++
		case DayTypeCompensatoryWorkday:
			monthInfo.WorkDays++
			monthInfo.CompensatoryWorkdays++
		case DayTypeWeekend:
			monthInfo.Weekends++
		case DayTypeHoliday:
			monthInfo.Holidays++
		}

		monthInfo.Days = append(monthInfo.Days, *dayInfo)
	}

	return monthInfo, nil
}
