package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/habit"
)

const statsWeeks = 12

type statsModel struct {
	log    *habit.Log
	today  habit.Date
	width  int
	height int

	habits   []habit.Habit
	habitIdx int
	offset   int // 12-week blocks back from the current block (0 = current)

	completed map[habit.Date]bool
	streak    int
	total     int

	chart barchart.Model
}

func newStatsModel(log *habit.Log, today habit.Date) statsModel {
	return statsModel{
		log:   log,
		today: today,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *statsModel) setToday(d habit.Date) {
	m.today = d
}

type statsDataMsg struct {
	habits    []habit.Habit
	completed map[habit.Date]bool
	streak    int
	total     int
}

func (m statsModel) refresh() tea.Cmd {
	log, today, idx := m.log, m.today, m.habitIdx
	return func() tea.Msg {
		habits := log.Habits()
		if idx >= len(habits) {
			idx = max(0, len(habits)-1)
		}
		msg := statsDataMsg{habits: habits}
		if len(habits) > 0 {
			id := habits[idx].ID
			msg.completed = log.Completed(id)
			msg.streak = log.Streak(id, today)
			msg.total = log.TotalCompletions(id)
		}
		return msg
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.habits = msg.habits
		m.completed = msg.completed
		m.streak = msg.streak
		m.total = msg.total
		if m.habitIdx >= len(m.habits) {
			m.habitIdx = max(0, len(m.habits)-1)
		}
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			m.buildChart()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
				m.buildChart()
			}
		case key.Matches(msg, keys.Enter):
			if len(m.habits) > 0 {
				m.habitIdx = (m.habitIdx + 1) % len(m.habits)
				m.offset = 0
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

// weekRange returns the Mondays bounding the displayed block, oldest first.
func (m statsModel) weekRange() []habit.Date {
	thisMonday := m.today.AddDays(-m.today.WeekdayIndex())
	newest := thisMonday.AddDays(-7 * statsWeeks * m.offset)

	mondays := make([]habit.Date, statsWeeks)
	for i := range mondays {
		mondays[i] = newest.AddDays(-7 * (statsWeeks - 1 - i))
	}
	return mondays
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, monday := range m.weekRange() {
		count := 0
		for i := 0; i < 7; i++ {
			if m.completed[monday.AddDays(i)] {
				count++
			}
		}

		style := lipgloss.NewStyle().Foreground(colorSuccess)
		if count == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("%02d/%02d", int(monday.Month), monday.Day),
			Values: []barchart.BarValue{
				{Name: "completions", Value: float64(count), Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	if len(m.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Stats"),
			"",
			mutedStyle.Render("No habits yet. Press 1 to go to Habits and create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	h := m.habits[m.habitIdx]
	mondays := m.weekRange()
	rangeLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		mondays[0], mondays[len(mondays)-1].AddDays(6)))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ",
		highlightStyle.Render(h.Name), "  ",
		rangeLabel,
	)

	summary := fmt.Sprintf("  current streak: %s   total completions: %d",
		formatStreak(m.streak), m.total)

	nav := mutedStyle.Render("  ←/→: older/newer  enter: next habit")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", summary, "", nav,
		),
	)
}
