package habit

import (
	"context"
	"time"
)

// Watcher owns the Reference Day: the day the session currently treats as
// "today". Capturing the day once at startup would freeze completion state
// and streaks for any session left open past midnight, so the watcher is
// checked periodically and dependents recompute when the day advances.
type Watcher struct {
	clock   *Clock
	current Date
}

// NewWatcher starts the reference day at the clock's actual day.
func NewWatcher(clock *Clock) *Watcher {
	return &Watcher{clock: clock, current: clock.Today()}
}

// Today returns the reference day.
func (w *Watcher) Today() Date {
	return w.current
}

// Check compares the reference day against the clock's actual local day and
// jumps straight to it, whether one midnight passed or several (the host may
// have been suspended between checks). It reports whether the day changed.
func (w *Watcher) Check() (Date, bool) {
	actual := w.clock.Today()
	if actual == w.current {
		return w.current, false
	}
	w.current = actual
	return w.current, true
}

// Run drives Check on a coarse periodic ticker, invoking onChange with the
// new reference day after each rollover. It blocks until ctx is canceled,
// so the ticker never leaks past the session.
func (w *Watcher) Run(ctx context.Context, interval time.Duration, onChange func(Date)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if day, changed := w.Check(); changed {
				onChange(day)
			}
		}
	}
}
