package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString is a wall-clock time of day in canonical "HH:MM" form.
// It is the wire and storage representation for slot start times.
type TimeString string

const (
	canonicalFormat = "15:04"
	displayFormat   = "3:04 PM"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format")

	// ErrNegativeMinutes возвращается при отрицательном значении минут
	ErrNegativeMinutes = errors.New("types: minutes value out of range")
)

// NewTimeString creates a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(canonicalFormat))
}

// NewTimeStringFromString parses either the canonical "HH:MM" form or the
// 12-hour display form ("2:00 PM") used by the booking UI.
func NewTimeStringFromString(s string) (TimeString, error) {
	if t, err := time.Parse(canonicalFormat, s); err == nil {
		return NewTimeString(t), nil
	}
	if t, err := time.Parse(displayFormat, s); err == nil {
		return NewTimeString(t), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// NewTimeStringFromMinutes converts minutes-since-midnight into a TimeString.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", fmt.Errorf("%w: %d", ErrNegativeMinutes, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String returns the canonical "HH:MM" form.
func (ts TimeString) String() string {
	return string(ts)
}

// Display returns the 12-hour form shown to customers, e.g. "2:00 PM".
func (ts TimeString) Display() string {
	t, err := time.Parse(canonicalFormat, string(ts))
	if err != nil {
		return string(ts)
	}
	return t.Format(displayFormat)
}

// IsZero reports whether the value is unset.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (ts TimeString) Validate() error {
	if _, err := time.Parse(canonicalFormat, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// Minutes returns the value as minutes since midnight.
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(canonicalFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes returns the time shifted forward by n minutes.
// Shifting past midnight is an error: slots never span days.
func (ts TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + n)
}

// IsBefore reports whether ts is strictly earlier than other.
func (ts TimeString) IsBefore(other TimeString) bool {
	a, err := ts.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether ts is strictly later than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(ts)
}

// Value implements driver.Valuer so TimeString can be bound directly in queries.
func (ts TimeString) Value() (driver.Value, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner. Postgres TIME columns come back as
// "HH:MM:SS"; the seconds part is dropped.
func (ts *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
	if len(raw) > 5 {
		raw = raw[:5]
	}
	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
