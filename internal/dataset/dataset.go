package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/username/chinese-calendar/pkg/dateutil"
)

// Kind distinguishes the two exception tables
type Kind int

const (
	KindHoliday Kind = iota + 1
	KindWorkday
)

// String returns the keyword used in dataset files
func (k Kind) String() string {
	switch k {
	case KindHoliday:
		return "holiday"
	case KindWorkday:
		return "workday"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entry is a single dataset row
type Entry struct {
	Date  dateutil.Date
	Kind  Kind
	Label string
}

// ErrNoHolidays is returned when a dataset has no holiday entries,
// so no supported year range can be derived.
var ErrNoHolidays = errors.New("dataset has no holiday entries")

// Dataset holds the declared holidays and compensatory workdays.
// It is immutable once built and safe for concurrent reads.
type Dataset struct {
	holidays map[dateutil.Date]string
	workdays map[dateutil.Date]string
	minYear  int
	maxYear  int
}

// New builds a Dataset from the two tables. The maps are copied.
// The supported year range is taken from the holiday table only.
func New(holidays, workdays map[dateutil.Date]string) (*Dataset, error) {
	if len(holidays) == 0 {
		return nil, ErrNoHolidays
	}

	ds := &Dataset{
		holidays: make(map[dateutil.Date]string, len(holidays)),
		workdays: make(map[dateutil.Date]string, len(workdays)),
	}

	first := true
	for date, label := range holidays {
		if label == "" {
			return nil, fmt.Errorf("holiday %s has an empty label", date)
		}
		ds.holidays[date] = label

		if first || date.Year < ds.minYear {
			ds.minYear = date.Year
		}
		if first || date.Year > ds.maxYear {
			ds.maxYear = date.Year
		}
		first = false
	}

	for date, label := range workdays {
		if label == "" {
			return nil, fmt.Errorf("workday %s has an empty label", date)
		}
		ds.workdays[date] = label
	}

	return ds, nil
}

// Merge returns a new Dataset with overlay entries replacing base entries for
// the same date. A date moved from one table to the other in the overlay is
// removed from its old table.
func Merge(base, overlay *Dataset) (*Dataset, error) {
	holidays := make(map[dateutil.Date]string, len(base.holidays)+len(overlay.holidays))
	workdays := make(map[dateutil.Date]string, len(base.workdays)+len(overlay.workdays))

	for d, l := range base.holidays {
		holidays[d] = l
	}
	for d, l := range base.workdays {
		workdays[d] = l
	}

	for d, l := range overlay.holidays {
		holidays[d] = l
		if _, ok := overlay.workdays[d]; !ok {
			delete(workdays, d)
		}
	}
	for d, l := range overlay.workdays {
		workdays[d] = l
		if _, ok := overlay.holidays[d]; !ok {
			delete(holidays, d)
		}
	}

	return New(holidays, workdays)
}

// Holiday returns the holiday label for date
func (ds *Dataset) Holiday(date dateutil.Date) (string, bool) {
	label, ok := ds.holidays[date]
	return label, ok
}

// Workday returns the compensatory workday label for date
func (ds *Dataset) Workday(date dateutil.Date) (string, bool) {
	label, ok := ds.workdays[date]
	return label, ok
}

// YearRange returns the minimum and maximum years in the holiday table
func (ds *Dataset) YearRange() (minYear, maxYear int) {
	return ds.minYear, ds.maxYear
}

// Len returns the number of holiday and workday entries
func (ds *Dataset) Len() (holidays, workdays int) {
	return len(ds.holidays), len(ds.workdays)
}

// Overlaps returns dates present in both tables, sorted
func (ds *Dataset) Overlaps() []dateutil.Date {
	var dates []dateutil.Date
	for d := range ds.workdays {
		if _, ok := ds.holidays[d]; ok {
			dates = append(dates, d)
		}
	}
	sortDates(dates)
	return dates
}

// Entries returns all rows sorted by date, holidays before workdays on the same date
func (ds *Dataset) Entries() []Entry {
	entries := make([]Entry, 0, len(ds.holidays)+len(ds.workdays))
	for d, l := range ds.holidays {
		entries = append(entries, Entry{Date: d, Kind: KindHoliday, Label: l})
	}
	for d, l := range ds.workdays {
		entries = append(entries, Entry{Date: d, Kind: KindWorkday, Label: l})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Kind < entries[j].Kind
	})
	return entries
}

func sortDates(dates []dateutil.Date) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}
