package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/streakr/internal/habit"
)

func ToCSV(habits []habit.Habit, entries []habit.LogEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Habit ID", "Habit", "Date"}); err != nil {
		return err
	}

	names := habitNames(habits)
	for _, e := range entries {
		name := names[e.HabitID]
		if name == "" {
			name = "Unknown"
		}
		if err := w.Write([]string{e.HabitID, name, e.Date.String()}); err != nil {
			return err
		}
	}

	return w.Error()
}

func habitNames(habits []habit.Habit) map[string]string {
	names := make(map[string]string, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
	}
	return names
}
