package calendar

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar with fallback strategy
// Primary: usually a calendar built from a user-supplied dataset
// Fallback: the bundled dataset
//
// Only out-of-range errors trigger the fallback; any other error from the
// primary is returned as is.
type CompositeCalendar struct {
	primary  Calendar
	fallback Calendar
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Calendar, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// IsWorkday checks if the given date is a working day
func (cc *CompositeCalendar) IsWorkday(date DateLike) (bool, error) {
	isWorkday, err := cc.primary.IsWorkday(date)
	if !errors.Is(err, ErrOutOfRange) {
		return isWorkday, err
	}

	cc.logger.Debug("Primary calendar has no data, falling back", zap.Error(err))
	return cc.fallback.IsWorkday(date)
}

// GetDayInfo returns detailed info for a specific day
func (cc *CompositeCalendar) GetDayInfo(date DateLike) (*DayInfo, error) {
	dayInfo, err := cc.primary.GetDayInfo(date)
	if !errors.Is(err, ErrOutOfRange) {
		return dayInfo, err
	}

	cc.logger.Debug("Primary calendar has no data, falling back", zap.Error(err))
	return cc.fallback.GetDayInfo(date)
}

// GetMonthInfo returns calendar info for the entire month
func (cc *CompositeCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	monthInfo, err := cc.primary.GetMonthInfo(year, month)
	if !errors.Is(err, ErrOutOfRange) {
		return monthInfo, err
	}

	cc.logger.Debug("Primary calendar has no data, falling back",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Error(err))
	return cc.fallback.GetMonthInfo(year, month)
}
