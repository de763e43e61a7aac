package habit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/streakr/internal/persist"
)

// Log is the single source of truth for habits and their completion entries.
// It is in-memory and authoritative for the running session; every mutation
// writes the full state through to the persistence collaborator best-effort.
// Single logical writer, no locking.
type Log struct {
	kv      persist.KV
	habits  []Habit
	entries map[string]map[Date]struct{}
	subs    []func()
}

// NewLog loads persisted state from kv. Missing or malformed state is
// replaced with an empty log rather than failing the session.
func NewLog(kv persist.KV) *Log {
	l := &Log{
		kv:      kv,
		entries: make(map[string]map[Date]struct{}),
	}
	l.load()
	return l
}

func (l *Log) load() {
	if data, err := l.kv.Get(persist.KeyHabits); err == nil {
		var habits []Habit
		if err := json.Unmarshal(data, &habits); err == nil {
			l.habits = habits
		}
	}

	known := make(map[string]bool, len(l.habits))
	for _, h := range l.habits {
		known[h.ID] = true
	}

	if data, err := l.kv.Get(persist.KeyLogs); err == nil {
		var entries []LogEntry
		if err := json.Unmarshal(data, &entries); err == nil {
			for _, e := range entries {
				// Drop orphans: entries must reference a known habit.
				if !known[e.HabitID] {
					continue
				}
				l.dates(e.HabitID)[e.Date] = struct{}{}
			}
		}
	}
}

// flush serializes habits and logs as two independent values. Failures are
// swallowed: in-memory state stays authoritative for the session.
func (l *Log) flush() {
	if data, err := json.Marshal(l.habits); err == nil {
		_ = l.kv.Put(persist.KeyHabits, data)
	}
	if data, err := json.Marshal(l.Entries()); err == nil {
		_ = l.kv.Put(persist.KeyLogs, data)
	}
}

// Subscribe registers fn to be called after every successful mutation, so
// read-side projections know to recompute.
func (l *Log) Subscribe(fn func()) {
	l.subs = append(l.subs, fn)
}

func (l *Log) notify() {
	l.flush()
	for _, fn := range l.subs {
		fn()
	}
}

func (l *Log) dates(habitID string) map[Date]struct{} {
	set, ok := l.entries[habitID]
	if !ok {
		set = make(map[Date]struct{})
		l.entries[habitID] = set
	}
	return set
}

// AddHabit creates a habit with a fresh unique id.
func (l *Log) AddHabit(name, description string) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, fmt.Errorf("habit name must not be empty")
	}

	h := Habit{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
	l.habits = append(l.habits, h)
	l.notify()
	return h, nil
}

// DeleteHabit removes the habit and every log entry referencing it. Unknown
// ids are a no-op, not an error: the caller may race with a deletion.
func (l *Log) DeleteHabit(id string) {
	idx := -1
	for i, h := range l.habits {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	l.habits = append(l.habits[:idx], l.habits[idx+1:]...)
	delete(l.entries, id)
	l.notify()
}

// ToggleCompletion flips the presence of a log entry for (habitID, day).
// Two toggles in a row restore the original state. Unknown habit ids no-op.
func (l *Log) ToggleCompletion(habitID string, day Date) {
	if _, ok := l.Habit(habitID); !ok {
		return
	}

	set := l.dates(habitID)
	if _, done := set[day]; done {
		delete(set, day)
	} else {
		set[day] = struct{}{}
	}
	l.notify()
}

// IsCompleted reports whether a log entry exists for (habitID, day).
func (l *Log) IsCompleted(habitID string, day Date) bool {
	_, done := l.entries[habitID][day]
	return done
}

// Habits returns all habits in creation order. The slice is a copy.
func (l *Log) Habits() []Habit {
	return append([]Habit(nil), l.habits...)
}

// Habit looks up a habit by id.
func (l *Log) Habit(id string) (Habit, bool) {
	for _, h := range l.habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// Completed returns the set of days logged for a habit. The map is a copy;
// projections must not mutate store state.
func (l *Log) Completed(habitID string) map[Date]bool {
	set := l.entries[habitID]
	out := make(map[Date]bool, len(set))
	for d := range set {
		out[d] = true
	}
	return out
}

// Entries returns every log entry ordered by habit id, then date.
func (l *Log) Entries() []LogEntry {
	var out []LogEntry
	for habitID, set := range l.entries {
		for d := range set {
			out = append(out, LogEntry{HabitID: habitID, Date: d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].HabitID != out[j].HabitID {
			return out[i].HabitID < out[j].HabitID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
