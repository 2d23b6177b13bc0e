package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType matches any *UnsupportedTypeError
	ErrUnsupportedType = errors.New("unsupported date type")

	// ErrOutOfRange matches any *OutOfRangeError
	ErrOutOfRange = errors.New("date out of supported range")
)

// UnsupportedTypeError is returned when the input carries no calendar date
type UnsupportedTypeError struct {
	Value interface{}
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %T, expected a date", e.Value)
}

// Is makes errors.Is(err, ErrUnsupportedType) work
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// OutOfRangeError is returned when the year has no data
type OutOfRangeError struct {
	Year    int
	MinYear int
	MaxYear int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("no available data for year %d, only year between [%d, %d] supported",
		e.Year, e.MinYear, e.MaxYear)
}

// Is makes errors.Is(err, ErrOutOfRange) work
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
