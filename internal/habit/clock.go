package habit

import "time"

// Clock supplies the current local calendar day. The now source is
// injectable so tests can simulate arbitrary time jumps, including multi-day
// jumps across a suspend, without real waiting.
type Clock struct {
	now func() time.Time
}

// NewClock returns a clock backed by the real local wall clock.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockAt returns a clock backed by now, for tests.
func NewClockAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Today returns the current local calendar day.
func (c *Clock) Today() Date {
	return DateOf(c.now().Local())
}
