package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/export"
	"github.com/sadopc/streakr/internal/habit"
)

// App is the root Bubble Tea model. It owns the reference day via the
// rollover watcher; every view reads the day from here, never from the wall
// clock directly.
type App struct {
	log     *habit.Log
	watcher *habit.Watcher
	today   habit.Date
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	habits  habitsModel
	heatmap heatmapModel
	stats   statsModel

	help   help.Model
	status string
}

func NewApp(log *habit.Log, watcher *habit.Watcher) App {
	h := help.New()
	h.ShowAll = false

	today := watcher.Today()
	return App{
		log:        log,
		watcher:    watcher,
		today:      today,
		activeView: viewHabits,
		habits:     newHabitsModel(log, today),
		heatmap:    newHeatmapModel(log, today),
		stats:      newStatsModel(log, today),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.habits.refresh(),
		rolloverTick(),
	)
}

// rolloverTick drives the watcher's periodic day check. Bubble Tea stops
// scheduling ticks at program exit, which tears the check down with the
// session.
func rolloverTick() tea.Cmd {
	return tea.Tick(rolloverInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.habits.setSize(a.width, contentHeight)
		a.heatmap.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		return a, a.refreshCurrentView()

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewHabits
			return a, a.habits.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewHeatmap
			return a, a.heatmap.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 3
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds := []tea.Cmd{rolloverTick()}
		if day, changed := a.watcher.Check(); changed {
			cmds = append(cmds, func() tea.Msg { return dayChangedMsg{day: day} })
		}
		return a, tea.Batch(cmds...)

	case dayChangedMsg:
		// Midnight (or several) passed: "completed today", streaks and the
		// grid are all stale. Re-point every view and recompute.
		a.today = msg.day
		a.habits.setToday(msg.day)
		a.heatmap.setToday(msg.day)
		a.stats.setToday(msg.day)
		a.status = "A new day: " + msg.day.String()
		return a, tea.Batch(
			a.habits.refresh(),
			a.heatmap.refresh(),
			a.stats.refresh(),
		)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case habitAddedMsg:
		a.status = fmt.Sprintf("Added %q", msg.h.Name)
		return a, nil

	case habitDeletedMsg:
		a.status = fmt.Sprintf("Deleted %q", msg.name)
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHabits:
		a.habits, cmd = a.habits.update(msg)
	case viewHeatmap:
		a.heatmap, cmd = a.heatmap.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.activeView == viewHabits && a.habits.formActive
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewHabits:
		return a.habits.refresh()
	case viewHeatmap:
		return a.heatmap.refresh()
	case viewStats:
		return a.stats.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHabits:
		content = a.habits.view()
	case viewHeatmap:
		content = a.heatmap.view()
	case viewStats:
		content = a.stats.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("streakr")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	dayInfo := highlightStyle.Render(" " + a.today.String())

	left := footerStyle.Render(helpView)
	right := dayInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	habits := a.log.Habits()
	entries := a.log.Entries()
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := a.today.String()

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("streakr-export-%s.csv", dateStr))
			if err := export.ToCSV(habits, entries, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("streakr-export-%s.json", dateStr))
			if err := export.ToJSON(habits, entries, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
