package clock

import "time"

// Clock supplies the current instant. The correction window and the
// future-day exclusion both depend on "now", so it is injected rather
// than read from the wall clock directly.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock { return systemClock{} }

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

// Fixed returns a clock frozen at t, for deterministic tests.
func Fixed(t time.Time) Clock { return fixedClock{now: t} }

// Midnight truncates t to the start of its UTC calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
