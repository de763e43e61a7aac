package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/streakr/internal/habit"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Habits     []jsonHabit `json:"habits"`
}

type jsonHabit struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Total       int      `json:"total_completions"`
	Dates       []string `json:"dates"`
}

func ToJSON(habits []habit.Habit, entries []habit.LogEntry, path string) error {
	byHabit := make(map[string][]string)
	for _, e := range entries {
		byHabit[e.HabitID] = append(byHabit[e.HabitID], e.Date.String())
	}

	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, h := range habits {
		dates := byHabit[h.ID]
		if dates == nil {
			dates = []string{}
		}
		export.Habits = append(export.Habits, jsonHabit{
			ID:          h.ID,
			Name:        h.Name,
			Description: h.Description,
			Total:       len(dates),
			Dates:       dates,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
