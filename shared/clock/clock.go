// Package clock provides the time source used for references and audit fields.
package clock

import (
	"time"

	"kingdom/shared/timezone"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return timezone.Now()
}

func New() Clock {
	return systemClock{}
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return fixedClock{now: t}
}
