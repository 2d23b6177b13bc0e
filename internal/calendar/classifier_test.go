package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/username/chinese-calendar/internal/dataset"
	"github.com/username/chinese-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

func day(y int, m time.Month, d int) dateutil.Date {
	return dateutil.Date{Year: y, Month: m, Day: d}
}

func newTestClassifier(t *testing.T) (*Classifier, *dataset.Dataset) {
	t.Helper()

	ds, err := dataset.Default(zap.NewNop())
	if err != nil {
		t.Fatalf("dataset.Default() error = %v", err)
	}
	return NewClassifier(ds, zap.NewNop()), ds
}

func TestClassifier_Scenarios(t *testing.T) {
	c, _ := newTestClassifier(t)

	tests := []struct {
		name        string
		date        dateutil.Date
		wantWorkday bool
		wantHoliday bool
		wantName    string
	}{
		{"National Day on a Tuesday", day(2024, time.October, 1), false, true, "National Day"},
		{"Saturday worked for National Day", day(2024, time.October, 12), true, false, "National Day"},
		{"Sunday worked for National Day", day(2024, time.September, 29), true, false, "National Day"},
		{"Dragon Boat Festival on a Monday", day(2024, time.June, 10), false, true, "Dragon Boat Festival"},
		{"Holiday falling on a Sunday", day(2023, time.January, 1), false, true, "New Year's Day"},
		{"Ordinary Tuesday", day(2024, time.October, 15), true, false, ""},
		{"Ordinary Sunday", day(2024, time.October, 13), false, true, ""},
		{"Ordinary Friday", day(2024, time.September, 13), true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workday, err := c.IsWorkday(tt.date)
			if err != nil {
				t.Fatalf("IsWorkday() error = %v", err)
			}
			if workday != tt.wantWorkday {
				t.Errorf("IsWorkday(%v) = %v, want %v", tt.date, workday, tt.wantWorkday)
			}

			holiday, err := c.IsHoliday(tt.date)
			if err != nil {
				t.Fatalf("IsHoliday() error = %v", err)
			}
			if holiday != !tt.wantWorkday {
				t.Errorf("IsHoliday(%v) = %v, want %v", tt.date, holiday, !tt.wantWorkday)
			}

			detailHoliday, name, err := c.GetHolidayDetail(tt.date)
			if err != nil {
				t.Fatalf("GetHolidayDetail() error = %v", err)
			}
			if detailHoliday != tt.wantHoliday || name != tt.wantName {
				t.Errorf("GetHolidayDetail(%v) = (%v, %q), want (%v, %q)",
					tt.date, detailHoliday, name, tt.wantHoliday, tt.wantName)
			}
		})
	}
}

func TestClassifier_TableProperties(t *testing.T) {
	c, ds := newTestClassifier(t)

	for _, e := range ds.Entries() {
		workday, err := c.IsWorkday(e.Date)
		if err != nil {
			t.Fatalf("IsWorkday(%v) error = %v", e.Date, err)
		}
		holiday, name, err := c.GetHolidayDetail(e.Date)
		if err != nil {
			t.Fatalf("GetHolidayDetail(%v) error = %v", e.Date, err)
		}

		switch e.Kind {
		case dataset.KindWorkday:
			if !workday || holiday || name != e.Label {
				t.Errorf("%v workday entry: IsWorkday=%v detail=(%v, %q)", e.Date, workday, holiday, name)
			}
		case dataset.KindHoliday:
			if workday || !holiday || name != e.Label {
				t.Errorf("%v holiday entry: IsWorkday=%v detail=(%v, %q)", e.Date, workday, holiday, name)
			}
		}
	}
}

func TestClassifier_EveryDayInRange(t *testing.T) {
	c, ds := newTestClassifier(t)
	minYear, maxYear := c.YearRange()

	dates := dateutil.Dates(day(minYear, time.January, 1), day(maxYear, time.December, 31))
	for _, d := range dates {
		workday, err := c.IsWorkday(d)
		if err != nil {
			t.Fatalf("IsWorkday(%v) error = %v", d, err)
		}
		holiday, err := c.IsHoliday(d)
		if err != nil {
			t.Fatalf("IsHoliday(%v) error = %v", d, err)
		}
		if workday == holiday {
			t.Fatalf("IsWorkday(%v) == IsHoliday(%v) == %v", d, d, workday)
		}

		_, inHolidays := ds.Holiday(d)
		_, inWorkdays := ds.Workday(d)
		if !inHolidays && !inWorkdays && workday != dateutil.IsWeekday(d.Time()) {
			t.Errorf("IsWorkday(%v) = %v for a plain %v", d, workday, d.Weekday())
		}
	}
}

func TestClassifier_TimeInputTruncated(t *testing.T) {
	c, _ := newTestClassifier(t)
	shanghai := time.FixedZone("CST", 8*60*60)

	dates := []dateutil.Date{
		day(2024, time.October, 1),
		day(2024, time.October, 12),
		day(2024, time.October, 13),
		day(2024, time.October, 15),
	}

	for _, d := range dates {
		withTime := time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 0, shanghai)

		wantWorkday, _ := c.IsWorkday(d)
		gotWorkday, err := c.IsWorkday(withTime)
		if err != nil || gotWorkday != wantWorkday {
			t.Errorf("IsWorkday(%v) = (%v, %v), want %v", withTime, gotWorkday, err, wantWorkday)
		}

		wantHoliday, _ := c.IsHoliday(d)
		gotHoliday, err := c.IsHoliday(&withTime)
		if err != nil || gotHoliday != wantHoliday {
			t.Errorf("IsHoliday(%v) = (%v, %v), want %v", withTime, gotHoliday, err, wantHoliday)
		}

		wantOff, wantName, _ := c.GetHolidayDetail(d)
		gotOff, gotName, err := c.GetHolidayDetail(withTime)
		if err != nil || gotOff != wantOff || gotName != wantName {
			t.Errorf("GetHolidayDetail(%v) = (%v, %q, %v), want (%v, %q)",
				withTime, gotOff, gotName, err, wantOff, wantName)
		}

		validated, err := c.ValidateDate(withTime)
		if err != nil || validated != d {
			t.Errorf("ValidateDate(%v) = (%v, %v), want %v", withTime, validated, err, d)
		}
	}
}

func TestClassifier_OutOfRange(t *testing.T) {
	c, _ := newTestClassifier(t)

	for _, d := range []dateutil.Date{day(2022, time.December, 31), day(2027, time.January, 1)} {
		_, err := c.IsWorkday(d)

		var rangeErr *OutOfRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("IsWorkday(%v) error = %v, want *OutOfRangeError", d, err)
		}
		if rangeErr.Year != d.Year || rangeErr.MinYear != 2023 || rangeErr.MaxYear != 2026 {
			t.Errorf("OutOfRangeError = %+v", rangeErr)
		}
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("errors.Is(%v, ErrOutOfRange) = false", err)
		}
		if !strings.Contains(err.Error(), "[2023, 2026]") {
			t.Errorf("error message %q does not name the supported range", err.Error())
		}

		if _, err := c.IsHoliday(d); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("IsHoliday(%v) error = %v, want ErrOutOfRange", d, err)
		}
		if _, _, err := c.GetHolidayDetail(d); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("GetHolidayDetail(%v) error = %v, want ErrOutOfRange", d, err)
		}
	}

	// boundaries are inclusive
	for _, d := range []dateutil.Date{day(2023, time.January, 1), day(2026, time.December, 31)} {
		if _, err := c.ValidateDate(d); err != nil {
			t.Errorf("ValidateDate(%v) error = %v, want nil", d, err)
		}
	}
}

type customDate struct {
	year  int
	month time.Month
	day   int
}

func (d customDate) Date() (int, time.Month, int) {
	return d.year, d.month, d.day
}

func TestClassifier_UnsupportedType(t *testing.T) {
	c, _ := newTestClassifier(t)

	var nilTime *time.Time
	var nilDate *dateutil.Date
	var nilCustom *customDate

	inputs := []DateLike{nil, nilTime, nilDate, nilCustom}
	for _, input := range inputs {
		_, err := c.IsWorkday(input)

		var typeErr *UnsupportedTypeError
		if !errors.As(err, &typeErr) {
			t.Errorf("IsWorkday(%T) error = %v, want *UnsupportedTypeError", input, err)
		}
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("errors.Is(%v, ErrUnsupportedType) = false", err)
		}
		if _, _, err := c.GetHolidayDetail(input); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("GetHolidayDetail(%T) error = %v, want ErrUnsupportedType", input, err)
		}
	}
}

func TestClassifier_OverlapPrefersWorkday(t *testing.T) {
	d := day(2024, time.May, 11) // Saturday
	ds, err := dataset.New(
		map[dateutil.Date]string{d: "Labour Day (holiday)"},
		map[dateutil.Date]string{d: "Labour Day (workday)"},
	)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	c := NewClassifier(ds, zap.NewNop())

	workday, err := c.IsWorkday(d)
	if err != nil || !workday {
		t.Errorf("IsWorkday(%v) = (%v, %v), want true", d, workday, err)
	}

	holiday, name, err := c.GetHolidayDetail(d)
	if err != nil || holiday || name != "Labour Day (workday)" {
		t.Errorf("GetHolidayDetail(%v) = (%v, %q, %v), want (false, \"Labour Day (workday)\")", d, holiday, name, err)
	}

	info, err := c.GetDayInfo(d)
	if err != nil {
		t.Fatalf("GetDayInfo() error = %v", err)
	}
	if info.Type != DayTypeCompensatoryWorkday {
		t.Errorf("GetDayInfo(%v).Type = %v, want compensatory_workday", d, info.Type)
	}
}

func TestClassifier_GetDayInfo(t *testing.T) {
	c, _ := newTestClassifier(t)

	tests := []struct {
		date     dateutil.Date
		wantType DayType
		wantNote string
	}{
		{day(2024, time.October, 1), DayTypeHoliday, "National Day"},
		{day(2024, time.October, 12), DayTypeCompensatoryWorkday, "National Day"},
		{day(2024, time.October, 13), DayTypeWeekend, ""},
		{day(2024, time.October, 15), DayTypeWorkday, ""},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			info, err := c.GetDayInfo(tt.date)
			if err != nil {
				t.Fatalf("GetDayInfo() error = %v", err)
			}
			if info.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", info.Type, tt.wantType)
			}
			if info.Note != tt.wantNote {
				t.Errorf("Note = %q, want %q", info.Note, tt.wantNote)
			}
			if info.IsWorkday == info.IsHoliday {
				t.Errorf("IsWorkday and IsHoliday both %v", info.IsWorkday)
			}
			if info.Weekday != tt.date.Weekday().String() {
				t.Errorf("Weekday = %q, want %q", info.Weekday, tt.date.Weekday())
			}
		})
	}
}

func TestClassifier_GetMonthInfo(t *testing.T) {
	c, _ := newTestClassifier(t)

	// October 2024: 1-7 off, Saturday 12th worked
	monthInfo, err := c.GetMonthInfo(2024, time.October)
	if err != nil {
		t.Fatalf("GetMonthInfo() error = %v", err)
	}

	if len(monthInfo.Days) != 31 {
		t.Errorf("Days count = %d, want 31", len(monthInfo.Days))
	}
	if monthInfo.Holidays != 7 {
		t.Errorf("Holidays = %d, want 7", monthInfo.Holidays)
	}
	if monthInfo.CompensatoryWorkdays != 1 {
		t.Errorf("CompensatoryWorkdays = %d, want 1", monthInfo.CompensatoryWorkdays)
	}
	if monthInfo.WorkDays != 19 {
		t.Errorf("WorkDays = %d, want 19", monthInfo.WorkDays)
	}
	if monthInfo.Weekends != 5 {
		t.Errorf("Weekends = %d, want 5", monthInfo.Weekends)
	}

	if _, err := c.GetMonthInfo(2030, time.January); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("GetMonthInfo(2030) error = %v, want ErrOutOfRange", err)
	}
}

func TestClassifier_UnnormalizedDate(t *testing.T) {
	c, _ := newTestClassifier(t)

	// September 31 is October 1, National Day
	overflow := dateutil.Date{Year: 2024, Month: time.September, Day: 31}

	got, err := c.ValidateDate(overflow)
	if err != nil {
		t.Fatalf("ValidateDate(%v) error = %v", overflow, err)
	}
	if want := day(2024, time.October, 1); got != want {
		t.Errorf("ValidateDate(%v) = %v, want %v", overflow, got, want)
	}

	workday, err := c.IsWorkday(overflow)
	if err != nil {
		t.Fatalf("IsWorkday(%v) error = %v", overflow, err)
	}
	if workday {
		t.Errorf("IsWorkday(%v) = true, want false", overflow)
	}

	isHoliday, name, err := c.GetHolidayDetail(overflow)
	if err != nil || !isHoliday || name != "National Day" {
		t.Errorf("GetHolidayDetail(%v) = %v, %q, %v, want true, \"National Day\", nil", overflow, isHoliday, name, err)
	}

	// December 32 of the last supported year is outside the dataset
	pastEnd := dateutil.Date{Year: 2026, Month: time.December, Day: 32}
	_, err = c.ValidateDate(pastEnd)
	var rangeErr *OutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("ValidateDate(%v) error = %v, want *OutOfRangeError", pastEnd, err)
	}
	if rangeErr.Year != 2027 {
		t.Errorf("OutOfRangeError.Year = %d, want 2027", rangeErr.Year)
	}
}
