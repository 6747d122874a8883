// Package validation checks proposed sprint and task states before they are
// persisted. Every check is a pure function of the current state, the proposed
// state and today's date.
package validation

import (
	"time"

	"github.com/yukikurage/scrum-board-api/internal/models"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the system time.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

type Validator struct {
	clock    Clock
	location *time.Location
}

// NewValidator returns a Validator computing "today" in loc. A nil clock uses
// the system clock and a nil location uses UTC.
func NewValidator(clock Clock, loc *time.Location) *Validator {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Validator{clock: clock, location: loc}
}

// Today is evaluated on every call.
func (v *Validator) Today() models.Date {
	return models.DateOf(v.clock.Now().In(v.location))
}
