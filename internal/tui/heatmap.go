package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/habit"
)

var weekdayGutter = []string{"Mon", "", "Wed", "", "Fri", "", "Sun"}

type heatmapModel struct {
	log    *habit.Log
	today  habit.Date
	width  int
	height int

	habits   []habit.Habit
	habitIdx int
	grid     habit.Grid

	// Day inspection cursor, in grid coordinates.
	inspecting bool
	cursorWeek int
	cursorDay  int
}

func newHeatmapModel(log *habit.Log, today habit.Date) heatmapModel {
	return heatmapModel{log: log, today: today}
}

func (m *heatmapModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *heatmapModel) setToday(d habit.Date) {
	m.today = d
}

type heatmapDataMsg struct {
	habits []habit.Habit
	grid   habit.Grid
}

func (m heatmapModel) refresh() tea.Cmd {
	log, today, idx := m.log, m.today, m.habitIdx
	return func() tea.Msg {
		habits := log.Habits()
		if idx >= len(habits) {
			idx = max(0, len(habits)-1)
		}
		var grid habit.Grid
		if len(habits) > 0 {
			grid = log.Grid(habits[idx].ID, today)
		}
		return heatmapDataMsg{habits: habits, grid: grid}
	}
}

func (m heatmapModel) update(msg tea.Msg) (heatmapModel, tea.Cmd) {
	switch msg := msg.(type) {
	case heatmapDataMsg:
		m.habits = msg.habits
		m.grid = msg.grid
		if m.habitIdx >= len(m.habits) {
			m.habitIdx = max(0, len(m.habits)-1)
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.inspecting {
			return m.updateInspect(msg)
		}
		switch {
		case key.Matches(msg, keys.Left):
			if m.habitIdx > 0 {
				m.habitIdx--
				return m, m.refresh()
			}
		case key.Matches(msg, keys.Right):
			if m.habitIdx < len(m.habits)-1 {
				m.habitIdx++
				return m, m.refresh()
			}
		case key.Matches(msg, keys.Inspect), key.Matches(msg, keys.Enter):
			if len(m.grid.Weeks) > 0 {
				m.inspecting = true
				m.cursorWeek, m.cursorDay = m.todayCell()
			}
		}
	}
	return m, nil
}

func (m heatmapModel) updateInspect(msg tea.KeyMsg) (heatmapModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Inspect):
		m.inspecting = false
	case key.Matches(msg, keys.Left):
		if m.cursorWeek > 0 {
			m.cursorWeek--
		}
	case key.Matches(msg, keys.Right):
		if m.cursorWeek < len(m.grid.Weeks)-1 {
			m.cursorWeek++
		}
	case key.Matches(msg, keys.Up):
		if m.cursorDay > 0 {
			m.cursorDay--
		}
	case key.Matches(msg, keys.Down):
		if m.cursorDay < len(m.grid.Weeks[m.cursorWeek])-1 {
			m.cursorDay++
		}
	case key.Matches(msg, keys.Toggle):
		if len(m.habits) > 0 {
			cell := m.grid.Weeks[m.cursorWeek][m.cursorDay]
			if cell.Date.After(m.today) {
				return m, func() tea.Msg {
					return statusMsg{text: "Can't log the future", isError: true}
				}
			}
			m.log.ToggleCompletion(m.habits[m.habitIdx].ID, cell.Date)
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *heatmapModel) clampCursor() {
	if len(m.grid.Weeks) == 0 {
		m.inspecting = false
		m.cursorWeek, m.cursorDay = 0, 0
		return
	}
	if m.cursorWeek >= len(m.grid.Weeks) {
		m.cursorWeek = len(m.grid.Weeks) - 1
	}
	if m.cursorDay >= len(m.grid.Weeks[m.cursorWeek]) {
		m.cursorDay = len(m.grid.Weeks[m.cursorWeek]) - 1
	}
}

// todayCell locates today's cell in the grid.
func (m heatmapModel) todayCell() (int, int) {
	for w, week := range m.grid.Weeks {
		for i, cell := range week {
			if cell.Date == m.today {
				return w, i
			}
		}
	}
	return len(m.grid.Weeks) - 1, 0
}

func (m heatmapModel) view() string {
	w := m.width - 4

	if len(m.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Heatmap"),
			"",
			mutedStyle.Render("No habits yet. Press 1 to go to Habits and create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	h := m.habits[m.habitIdx]
	pos := mutedStyle.Render(fmt.Sprintf("(%d/%d)", m.habitIdx+1, len(m.habits)))
	title := titleStyle.Render("Heatmap") + "  " + highlightStyle.Render(h.Name) + " " + pos

	// Trim leading weeks when the terminal is too narrow for a full year.
	weeks := m.grid.Weeks
	offset := 0
	maxWeeks := (w - 8) / 2
	if maxWeeks > 0 && len(weeks) > maxWeeks {
		offset = len(weeks) - maxWeeks
		weeks = weeks[offset:]
	}

	labels := m.renderMonthLabels(weeks, offset)
	rows := m.renderCells(weeks, offset)
	detail := m.renderDetail(len(weeks))

	var nav string
	if m.inspecting {
		nav = mutedStyle.Render("  arrows: move  space: toggle day  esc: done")
	} else {
		nav = mutedStyle.Render("  ←/→: switch habit  i: inspect days")
	}

	body := []string{title, "", labels}
	body = append(body, rows...)
	body = append(body, "", detail, nav)

	style := panelStyle
	if m.inspecting {
		style = activePanelStyle
	}
	return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

// renderMonthLabels lays month names over their anchor columns.
func (m heatmapModel) renderMonthLabels(weeks [][]habit.DayCell, offset int) string {
	line := []rune(strings.Repeat(" ", len(weeks)*2))
	for _, lbl := range m.grid.MonthLabels {
		col := lbl.Week - offset
		if col < 0 {
			continue
		}
		for i, r := range lbl.Text {
			pos := col*2 + i
			if pos < len(line) {
				line[pos] = r
			}
		}
	}
	return "     " + mutedStyle.Render(string(line))
}

// renderCells draws the grid transposed: one row per weekday, one column per
// week, Monday first.
func (m heatmapModel) renderCells(weeks [][]habit.DayCell, offset int) []string {
	rows := make([]string, len(weekdayGutter))
	for dayIdx := range rows {
		var b strings.Builder
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%-4s ", weekdayGutter[dayIdx])))
		for wIdx, week := range weeks {
			cell := week[dayIdx]
			b.WriteString(m.renderCell(cell, offset+wIdx == m.cursorWeek && dayIdx == m.cursorDay))
			b.WriteString(" ")
		}
		rows[dayIdx] = b.String()
	}
	return rows
}

func (m heatmapModel) renderCell(cell habit.DayCell, underCursor bool) string {
	sym := "·"
	style := cellEmptyStyle
	if cell.Completed {
		sym = "■"
		style = cellDoneStyle
	}
	if cell.Date == m.today {
		style = cellTodayStyle
		if !cell.Completed {
			sym = "□"
		}
	}
	if m.inspecting && underCursor {
		style = cellCursorStyle
	}
	if cell.Date.After(m.today) {
		return " "
	}
	return style.Render(sym)
}

// renderDetail shows the inspected day. The Edge flag decides which side the
// detail anchors to, so it never points past the right edge of the grid.
func (m heatmapModel) renderDetail(visibleWeeks int) string {
	if !m.inspecting {
		return ""
	}
	cell := m.grid.Weeks[m.cursorWeek][m.cursorDay]
	status := mutedStyle.Render("not completed")
	if cell.Completed {
		status = successStyle.Render("completed ✓")
	}
	text := fmt.Sprintf("%s  %s", cell.Date, status)

	if cell.Edge {
		// Right-align so the overlay opens leftward near the grid's end.
		pad := visibleWeeks*2 + 5 - lipgloss.Width(text)
		if pad > 0 {
			return strings.Repeat(" ", pad) + text
		}
	}
	return "     " + text
}
