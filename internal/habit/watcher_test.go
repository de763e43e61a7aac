package habit

import (
	"context"
	"testing"
	"time"
)

// fakeNow is a mutable now-source for simulating time jumps.
type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func newFakeClock(t *testing.T, date string) (*Clock, *fakeNow) {
	t.Helper()
	d := day(t, date)
	f := &fakeNow{t: time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.Local)}
	return NewClockAt(f.now), f
}

func TestClockToday(t *testing.T) {
	clock, _ := newFakeClock(t, "2024-06-10")
	if clock.Today() != day(t, "2024-06-10") {
		t.Fatalf("expected 2024-06-10, got %s", clock.Today())
	}
}

func TestWatcherStable(t *testing.T) {
	clock, fake := newFakeClock(t, "2024-06-10")
	w := NewWatcher(clock)

	// Hours pass but midnight doesn't: no transition.
	fake.advance(6 * time.Hour)
	if _, changed := w.Check(); changed {
		t.Fatal("day did not change, watcher should stay stable")
	}
	if w.Today() != day(t, "2024-06-10") {
		t.Fatalf("reference day drifted to %s", w.Today())
	}
}

func TestWatcherRollsOverAtMidnight(t *testing.T) {
	clock, fake := newFakeClock(t, "2024-06-10")
	w := NewWatcher(clock)

	fake.advance(13 * time.Hour) // 12:00 -> 01:00 next day
	got, changed := w.Check()
	if !changed {
		t.Fatal("expected rollover")
	}
	if got != day(t, "2024-06-11") {
		t.Fatalf("expected 2024-06-11, got %s", got)
	}
	if w.Today() != got {
		t.Fatal("Today should report the new reference day")
	}

	// Subsequent checks on the same day are stable again.
	if _, changed := w.Check(); changed {
		t.Fatal("no further rollover expected")
	}
}

func TestWatcherJumpsMultipleDays(t *testing.T) {
	clock, fake := newFakeClock(t, "2024-06-10")
	w := NewWatcher(clock)

	// Host suspended across several midnights: jump straight to the
	// correct day, not one increment per check.
	fake.advance(72 * time.Hour)
	got, changed := w.Check()
	if !changed {
		t.Fatal("expected rollover after suspend")
	}
	if got != day(t, "2024-06-13") {
		t.Fatalf("expected 2024-06-13, got %s", got)
	}
}

func TestWatcherRunCancel(t *testing.T) {
	clock, fake := newFakeClock(t, "2024-06-10")
	w := NewWatcher(clock)

	fake.advance(24 * time.Hour)

	changes := make(chan Date, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, time.Millisecond, func(d Date) {
			select {
			case changes <- d:
			default:
			}
		})
	}()

	select {
	case d := <-changes:
		if d != day(t, "2024-06-11") {
			t.Fatalf("expected 2024-06-11, got %s", d)
		}
	case <-time.After(time.Second):
		t.Fatal("watcher never reported the rollover")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

// ============================================================
// End-to-end: log + watcher across midnights
// ============================================================

func TestSessionAcrossMidnights(t *testing.T) {
	clock, fake := newFakeClock(t, "2024-06-10")
	w := NewWatcher(clock)
	l := newTestLog(t)

	a, _ := l.AddHabit("A", "")
	for i := 0; i < 3; i++ {
		l.ToggleCompletion(a.ID, w.Today().AddDays(-i))
	}

	if got := l.Streak(a.ID, w.Today()); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
	if got := l.TotalCompletions(a.ID); got != 3 {
		t.Fatalf("expected total 3, got %d", got)
	}
	if !l.IsCompleted(a.ID, w.Today()) {
		t.Fatal("today should read as completed")
	}

	// Midnight passes with no toggle: grace keeps the streak alive but
	// "completed today" flips off.
	fake.advance(24 * time.Hour)
	w.Check()
	if got := l.Streak(a.ID, w.Today()); got != 3 {
		t.Fatalf("grace day: expected streak 3, got %d", got)
	}
	if l.IsCompleted(a.ID, w.Today()) {
		t.Fatal("new day should not read as completed")
	}

	// A second untouched midnight kills the streak.
	fake.advance(24 * time.Hour)
	w.Check()
	if got := l.Streak(a.ID, w.Today()); got != 0 {
		t.Fatalf("after a fully skipped day: expected streak 0, got %d", got)
	}
}
