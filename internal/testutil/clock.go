package testutil

import "time"

// Clock provides deterministic, monotonically increasing timestamps.
//
// Pass [Clock.Now] wherever code accepts a func() time.Time. Every call
// advances the clock by Step, so a timed region bracketed by two calls
// always measures exactly Step.
type Clock struct {
	current time.Time
	Step    time.Duration
	calls   int
}

// NewClock returns a clock initialized to a fixed UTC start time.
func NewClock(step time.Duration) *Clock {
	return &Clock{
		current: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Step:    step,
	}
}

// Now advances the clock and returns the new time.
func (c *Clock) Now() time.Time {
	c.current = c.current.Add(c.Step)
	c.calls++

	return c.current
}

// Calls returns how many times Now was called.
func (c *Clock) Calls() int {
	return c.calls
}
