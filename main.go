package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/streakr/internal/habit"
	"github.com/sadopc/streakr/internal/persist"
	"github.com/sadopc/streakr/internal/tui"
)

func main() {
	dbPath, err := persist.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	kv, err := persist.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	log := habit.NewLog(kv)
	watcher := habit.NewWatcher(habit.NewClock())

	app := tui.NewApp(log, watcher)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
