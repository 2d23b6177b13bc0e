package calendar

import (
	"github.com/username/chinese-calendar/pkg/dateutil"
)

// Holidays returns the days off between start and end inclusive.
// With includeWeekends false only declared holidays are returned, plain
// weekends are left out.
func Holidays(cal Calendar, start, end DateLike, includeWeekends bool) ([]dateutil.Date, error) {
	return collect(cal, start, end, func(day *DayInfo) bool {
		if includeWeekends {
			return day.IsHoliday
		}
		return day.Type == DayTypeHoliday
	})
}

// Workdays returns the working days between start and end inclusive.
// With includeWeekends false compensatory workdays on Saturday or Sunday
// are left out.
func Workdays(cal Calendar, start, end DateLike, includeWeekends bool) ([]dateutil.Date, error) {
	return collect(cal, start, end, func(day *DayInfo) bool {
		if includeWeekends {
			return day.IsWorkday
		}
		return day.IsWorkday && dateutil.IsWeekday(day.Date.Time())
	})
}

// FindWorkday walks from the given date to a workday.
//
// delta == 0: from itself if it is a workday, otherwise the next workday
// delta > 0: the delta-th workday after the one found for delta == 0
// delta < 0: the |delta|-th workday strictly before from
func FindWorkday(cal Calendar, delta int, from DateLike) (dateutil.Date, error) {
	info, err := cal.GetDayInfo(from)
	if err != nil {
		return dateutil.Date{}, err
	}
	date := info.Date

	// Counting remaining steps toward zero keeps math.MinInt and
	// math.MaxInt from overflowing; such walks end at OutOfRangeError.
	if delta >= 0 {
		if date, err = nextWorkday(cal, date, 1); err != nil {
			return dateutil.Date{}, err
		}
		for remaining := delta; remaining > 0; remaining-- {
			if date, err = nextWorkday(cal, date.AddDays(1), 1); err != nil {
				return dateutil.Date{}, err
			}
		}
		return date, nil
	}

	for remaining := delta; remaining < 0; remaining++ {
		if date, err = nextWorkday(cal, date.AddDays(-1), -1); err != nil {
			return dateutil.Date{}, err
		}
	}
	return date, nil
}

// nextWorkday returns date itself if it is a workday, otherwise walks in
// direction step until it finds one
func nextWorkday(cal Calendar, date dateutil.Date, step int) (dateutil.Date, error) {
	for {
		workday, err := cal.IsWorkday(date)
		if err != nil {
			return dateutil.Date{}, err
		}
		if workday {
			return date, nil
		}
		date = date.AddDays(step)
	}
}

func collect(cal Calendar, start, end DateLike, keep func(*DayInfo) bool) ([]dateutil.Date, error) {
	first, err := cal.GetDayInfo(start)
	if err != nil {
		return nil, err
	}
	last, err := cal.GetDayInfo(end)
	if err != nil {
		return nil, err
	}

	var result []dateutil.Date
	for _, d := range dateutil.Dates(first.Date, last.Date) {
		day, err := cal.GetDayInfo(d)
		if err != nil {
			return nil, err
		}
		if keep(day) {
			result = append(result, d)
		}
	}
	return result, nil
}
