package calendar

import (
	"reflect"
	"time"

	"github.com/username/chinese-calendar/internal/dataset"
	"github.com/username/chinese-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// Classifier implements Calendar over a static dataset of declared
// holidays and compensatory workdays. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	data   *dataset.Dataset
	logger *zap.Logger
}

// NewClassifier creates a Classifier backed by data
func NewClassifier(data *dataset.Dataset, logger *zap.Logger) *Classifier {
	return &Classifier{
		data:   data,
		logger: logger,
	}
}

// YearRange returns the supported year range
func (c *Classifier) YearRange() (minYear, maxYear int) {
	return c.data.YearRange()
}

// ValidateDate truncates input to its calendar date and checks that the
// dataset covers its year. Out-of-range fields such as September 31 are
// normalized first, so the lookup and the range check see the real date.
func (c *Classifier) ValidateDate(input DateLike) (dateutil.Date, error) {
	if input == nil {
		return dateutil.Date{}, &UnsupportedTypeError{Value: input}
	}
	if v := reflect.ValueOf(input); v.Kind() == reflect.Ptr && v.IsNil() {
		return dateutil.Date{}, &UnsupportedTypeError{Value: input}
	}

	date := dateutil.NewDate(input.Date())

	minYear, maxYear := c.data.YearRange()
	if date.Year < minYear || date.Year > maxYear {
		return dateutil.Date{}, &OutOfRangeError{Year: date.Year, MinYear: minYear, MaxYear: maxYear}
	}

	return date, nil
}

// IsWorkday checks if people work on the given date: either it is a
// compensatory workday, or a Monday-Friday that is not a declared holiday.
func (c *Classifier) IsWorkday(input DateLike) (bool, error) {
	date, err := c.ValidateDate(input)
	if err != nil {
		return false, err
	}

	if _, ok := c.data.Workday(date); ok {
		return true, nil
	}
	_, holiday := c.data.Holiday(date)
	return dateutil.IsWeekday(date.Time()) && !holiday, nil
}

// IsHoliday checks if people rest on the given date
func (c *Classifier) IsHoliday(input DateLike) (bool, error) {
	workday, err := c.IsWorkday(input)
	if err != nil {
		return false, err
	}
	return !workday, nil
}

// GetHolidayDetail reports whether the date is a day off and the name of
// the holiday it relates to. The name is empty for ordinary days.
// A compensatory workday reports false with the name of the holiday it
// makes up for.
func (c *Classifier) GetHolidayDetail(input DateLike) (bool, string, error) {
	date, err := c.ValidateDate(input)
	if err != nil {
		return false, "", err
	}

	// Workday table first; it wins if the tables ever overlap
	if label, ok := c.data.Workday(date); ok {
		return false, label, nil
	}
	if label, ok := c.data.Holiday(date); ok {
		return true, label, nil
	}
	return dateutil.IsWeekend(date.Time()), "", nil
}

// GetDayInfo returns detailed info for a specific day
func (c *Classifier) GetDayInfo(input DateLike) (*DayInfo, error) {
	date, err := c.ValidateDate(input)
	if err != nil {
		return nil, err
	}

	holiday, note, err := c.GetHolidayDetail(date)
	if err != nil {
		return nil, err
	}

	var dayType DayType
	if _, ok := c.data.Workday(date); ok {
		dayType = DayTypeCompensatoryWorkday
	} else if _, ok := c.data.Holiday(date); ok {
		dayType = DayTypeHoliday
	} else if holiday {
		dayType = DayTypeWeekend
	} else {
		dayType = DayTypeWorkday
	}

	return &DayInfo{
		Date:      date,
		Weekday:   date.Weekday().String(),
		Type:      dayType,
		IsWorkday: !holiday,
		IsHoliday: holiday,
		Note:      note,
	}, nil
}

// GetMonthInfo returns calendar info for the entire month
func (c *Classifier) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	monthInfo, err := buildMonthInfo(c, year, month)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Month info built",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("work_days", monthInfo.WorkDays),
		zap.Int("holidays", monthInfo.Holidays))

	return monthInfo, nil
}
