// Package clock provides the wall-clock time shown on the panel.
package clock

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrUnavailable is returned while the wall clock has not been set.
var ErrUnavailable = errors.New("clock: time unavailable")

// TimeFields is a broken-down local time.
type TimeFields struct {
	Year, Month, Day int
	Hour, Min, Sec   int
}

// FromTime returns the fields of t in its location.
func FromTime(t time.Time) TimeFields {
	return TimeFields{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
		Hour:  t.Hour(),
		Min:   t.Minute(),
		Sec:   t.Second(),
	}
}

// Tick advances f by one second. The time of day wraps at midnight; the
// date is left alone.
func (f *TimeFields) Tick() {
	f.Sec++
	if f.Sec < 60 {
		return
	}
	f.Sec = 0
	f.Min++
	if f.Min < 60 {
		return
	}
	f.Min = 0
	f.Hour++
	if f.Hour == 24 {
		f.Hour = 0
	}
}

// Clock returns the time of day as HH:MM:SS.
func (f TimeFields) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d", f.Hour, f.Min, f.Sec)
}

// Date returns the date as YYYY-MM-DD.
func (f TimeFields) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", f.Year, f.Month, f.Day)
}

func (f TimeFields) String() string {
	return f.Date() + " " + f.Clock()
}

// Source yields the current time.
type Source interface {
	Now() (TimeFields, error)
}

// System reads the host clock.
type System struct {
	// Clock is the time source (default: the real clock).
	Clock clockwork.Clock
	// Location the fields are expressed in (default: time.Local).
	Location *time.Location
	// MinValid is the earliest time considered set. Boards without a
	// battery backed RTC boot in 1970 until NTP catches up.
	MinValid time.Time
}

// DefaultMinValid is used when System.MinValid is zero.
var DefaultMinValid = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Now implements Source.
func (s *System) Now() (TimeFields, error) {
	c := s.Clock
	if c == nil {
		c = clockwork.NewRealClock()
	}
	floor := s.MinValid
	if floor.IsZero() {
		floor = DefaultMinValid
	}
	t := c.Now()
	if t.Before(floor) {
		return TimeFields{}, fmt.Errorf("%w: clock reads %v", ErrUnavailable, t.UTC().Format(time.RFC3339))
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return FromTime(t.In(loc)), nil
}

// Fixed is a Source that always returns the same time.
type Fixed TimeFields

// Now implements Source.
func (f Fixed) Now() (TimeFields, error) {
	return TimeFields(f), nil
}
