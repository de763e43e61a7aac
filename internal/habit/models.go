package habit

import "time"

// Habit is a named recurring habit. The ID is opaque and immutable once
// assigned; everything else about a habit lives in its log entries.
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LogEntry records that a habit was completed on a given day. At most one
// entry exists per (habit, day) pair; presence is the signal, not a count.
type LogEntry struct {
	HabitID string `json:"habitId"`
	Date    Date   `json:"date"`
}
