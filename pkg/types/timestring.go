package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" form.
// It is a plain string under the hood so it marshals naturally in JSON
// and compares lexicographically in time order.
type TimeString string

var (
	// ErrInvalidFormat is returned when a string is not a valid HH:MM time
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange is returned when arithmetic leaves the 00:00-23:59 day range
	ErrOutOfRange = errors.New("time string out of day range")
)

// NewTimeString builds a TimeString from the wall-clock part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses and validates an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate checks the HH:MM format and the 0-23 / 0-59 bounds
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
		}
	}
	hour := int(t[0]-'0')*10 + int(t[1]-'0')
	minute := int(t[3]-'0')*10 + int(t[4]-'0')
	if hour > 23 || minute > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return nil
}

// IsZero returns true for the empty value
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the "HH:MM" representation
func (t TimeString) String() string {
	return string(t)
}

// Hour returns the hour component. The value must be valid.
func (t TimeString) Hour() int {
	return int(t[0]-'0')*10 + int(t[1]-'0')
}

// Minute returns the minute component. The value must be valid.
func (t TimeString) Minute() int {
	return int(t[3]-'0')*10 + int(t[4]-'0')
}

// MinutesFromMidnight returns the time as minutes since 00:00
func (t TimeString) MinutesFromMidnight() int {
	return t.Hour()*60 + t.Minute()
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.MinutesFromMidnight() < other.MinutesFromMidnight()
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.MinutesFromMidnight() > other.MinutesFromMidnight()
}

// AddMinutes returns t shifted forward by the given number of minutes.
// Crossing midnight is an error: the scheduling domain never wraps days.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.MinutesFromMidnight() + minutes)
}
