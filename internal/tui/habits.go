package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/streakr/internal/habit"
)

// habitRow is one habit plus its derived read-side values, recomputed from
// the log on every refresh.
type habitRow struct {
	habit     habit.Habit
	streak    int
	total     int
	doneToday bool
}

type habitsModel struct {
	log    *habit.Log
	today  habit.Date
	width  int
	height int

	rows   []habitRow
	cursor int

	formActive bool
	form       *huh.Form
	formMode   string // "new", "delete"

	// Form field pointers (survive value copies)
	formName    *string
	formDesc    *string
	formConfirm *bool

	deletingID   string
	deletingName string
}

func newHabitsModel(log *habit.Log, today habit.Date) habitsModel {
	name, desc, confirm := "", "", false
	return habitsModel{
		log:         log,
		today:       today,
		formName:    &name,
		formDesc:    &desc,
		formConfirm: &confirm,
	}
}

func (m *habitsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *habitsModel) setToday(d habit.Date) {
	m.today = d
}

type habitsDataMsg struct {
	rows []habitRow
}

func (m habitsModel) refresh() tea.Cmd {
	log, today := m.log, m.today
	return func() tea.Msg {
		habits := log.Habits()
		rows := make([]habitRow, 0, len(habits))
		for _, h := range habits {
			rows = append(rows, habitRow{
				habit:     h,
				streak:    log.Streak(h.ID, today),
				total:     log.TotalCompletions(h.ID),
				doneToday: log.IsCompleted(h.ID, today),
			})
		}
		return habitsDataMsg{rows: rows}
	}
}

func (m habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case habitsDataMsg:
		m.rows = msg.rows
		if m.cursor >= len(m.rows) {
			m.cursor = max(0, len(m.rows)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if len(m.rows) > 0 {
				m.log.ToggleCompletion(m.rows[m.cursor].habit.ID, m.today)
				return m, m.refresh()
			}
		case key.Matches(msg, keys.New):
			return m.showNewHabitForm()
		case key.Matches(msg, keys.Delete):
			if len(m.rows) > 0 {
				return m.showDeleteConfirm()
			}
		}
	}
	return m, nil
}

func (m habitsModel) showNewHabitForm() (habitsModel, tea.Cmd) {
	*m.formName = ""
	*m.formDesc = ""
	m.formMode = "new"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit Name").Value(m.formName),
			huh.NewInput().Title("Description (optional)").Value(m.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

// showDeleteConfirm asks before deleting: the log itself deletes
// unconditionally, confirmation is purely a UI concern.
func (m habitsModel) showDeleteConfirm() (habitsModel, tea.Cmd) {
	row := m.rows[m.cursor]
	*m.formConfirm = false
	m.formMode = "delete"
	m.deletingID = row.habit.ID
	m.deletingName = row.habit.Name

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q and all of its history?", row.habit.Name)).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.formConfirm),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formMode {
		case "new":
			h, err := m.log.AddHabit(*m.formName, *m.formDesc)
			if err != nil {
				return m, func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
			}
			return m, tea.Batch(
				m.refresh(),
				func() tea.Msg { return habitAddedMsg{h: h} },
			)
		case "delete":
			if *m.formConfirm {
				m.log.DeleteHabit(m.deletingID)
				name := m.deletingName
				return m, tea.Batch(
					m.refresh(),
					func() tea.Msg { return habitDeletedMsg{name: name} },
				)
			}
			return m, nil
		}
	}

	return m, cmd
}

func (m habitsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Habit")
		if m.formMode == "delete" {
			title = titleStyle.Render("Delete Habit")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	title := titleStyle.Render("Habits") + "  " + mutedStyle.Render(m.today.String())

	if len(m.rows) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-5s %-24s %-12s %8s", "Today", "Name", "Streak", "Total"))
	rows = append(rows, header)

	for i, row := range m.rows {
		check := mutedStyle.Render("[ ]")
		if row.doneToday {
			check = successStyle.Render("[✓]")
		}
		streak := formatStreak(row.streak)
		if row.streak > 0 && !row.doneToday {
			// Streak is riding on the grace day; nudge the user.
			streak = warningStyle.Render(streak + " !")
		}

		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := style.Render(fmt.Sprintf("%s%s   %-24s", cursor, check, row.habit.Name))
		line += fmt.Sprintf(" %-12s %8d", streak, row.total)
		rows = append(rows, line)
		if i == m.cursor && row.habit.Description != "" {
			rows = append(rows, mutedStyle.Render("          "+row.habit.Description))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle today  n: new  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
