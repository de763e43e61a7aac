package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/streakr/internal/habit"
)

func testData(t *testing.T) ([]habit.Habit, []habit.LogEntry) {
	t.Helper()
	habits := []habit.Habit{
		{ID: "a", Name: "Run", Description: "every morning", CreatedAt: time.Now().UTC()},
		{ID: "b", Name: "Read", CreatedAt: time.Now().UTC()},
	}
	d := func(s string) habit.Date {
		parsed, err := habit.ParseDate(s)
		if err != nil {
			t.Fatalf("parse date: %v", err)
		}
		return parsed
	}
	entries := []habit.LogEntry{
		{HabitID: "a", Date: d("2024-06-09")},
		{HabitID: "a", Date: d("2024-06-10")},
		{HabitID: "b", Date: d("2024-06-10")},
	}
	return habits, entries
}

func TestToCSV(t *testing.T) {
	habits, entries := testData(t)
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := ToCSV(habits, entries, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 { // header + 3 entries
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "Habit ID" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Run" || rows[1][2] != "2024-06-09" {
		t.Fatalf("unexpected first entry row: %v", rows[1])
	}
}

func TestToCSVUnknownHabit(t *testing.T) {
	habits, entries := testData(t)
	entries = append(entries, habit.LogEntry{HabitID: "ghost", Date: entries[0].Date})
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := ToCSV(habits, entries, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "Unknown") {
		t.Fatal("entries without a habit should export as Unknown")
	}
}

func TestToJSON(t *testing.T) {
	habits, entries := testData(t)
	habits = append(habits, habit.Habit{ID: "c", Name: "Stretch", CreatedAt: time.Now().UTC()})
	path := filepath.Join(t.TempDir(), "out.json")

	if err := ToJSON(habits, entries, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		ExportedAt string `json:"exported_at"`
		Habits     []struct {
			ID    string   `json:"id"`
			Name  string   `json:"name"`
			Total int      `json:"total_completions"`
			Dates []string `json:"dates"`
		} `json:"habits"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at should be set")
	}
	if len(out.Habits) != 3 {
		t.Fatalf("expected 3 habits, got %d", len(out.Habits))
	}
	if out.Habits[0].Total != 2 || len(out.Habits[0].Dates) != 2 {
		t.Fatalf("unexpected totals for first habit: %+v", out.Habits[0])
	}
	if out.Habits[2].Total != 0 || out.Habits[2].Dates == nil {
		t.Fatal("habit with no entries should export an empty array, not null")
	}
}

func TestToCSVBadPath(t *testing.T) {
	habits, entries := testData(t)
	if err := ToCSV(habits, entries, "/no/such/dir/out.csv"); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestToJSONBadPath(t *testing.T) {
	habits, entries := testData(t)
	if err := ToJSON(habits, entries, "/no/such/dir/out.json"); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
