package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/streakr/internal/habit"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHabits viewState = iota
	viewHeatmap
	viewStats
)

var viewNames = []string{"Habits", "Heatmap", "Stats"}

// rolloverInterval is how often the watcher is asked whether the local day
// has advanced. Coarse on purpose: the host may sleep between ticks and the
// watcher jumps to the correct day regardless.
const rolloverInterval = time.Minute

// --- Messages ---

type tickMsg time.Time

type dayChangedMsg struct {
	day habit.Date
}

type statusMsg struct {
	text    string
	isError bool
}

type habitAddedMsg struct {
	h habit.Habit
}

type habitDeletedMsg struct {
	name string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatStreak(n int) string {
	if n == 0 {
		return "—"
	}
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
