package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusflow/internal/state"
	"github.com/sadopc/focusflow/internal/store"
)

var columnTitles = map[store.TaskStatus]string{
	store.StatusTodo:  "To Do",
	store.StatusDoing: "In Progress",
	store.StatusDone:  "Done",
}

type tasksModel struct {
	state  *state.State
	width  int
	height int

	columns [3][]store.Task
	col     int
	row     int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	// Form field pointers (survive value copies)
	formTitle   *string
	formSubject *string

	editingID string
}

func newTasksModel(st *state.State) tasksModel {
	title, subject := "", ""
	m := tasksModel{
		state:       st,
		formTitle:   &title,
		formSubject: &subject,
	}
	m.reload()
	return m
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *tasksModel) reload() {
	for i, status := range store.TaskStatuses {
		m.columns[i] = m.state.TasksByStatus(status)
	}
	m.clampCursor()
}

func (m *tasksModel) clampCursor() {
	n := len(m.columns[m.col])
	if m.row >= n {
		m.row = max(0, n-1)
	}
}

func (m tasksModel) selected() (store.Task, bool) {
	col := m.columns[m.col]
	if m.row < len(col) {
		return col[m.row], true
	}
	return store.Task{}, false
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dataChangedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.MoveLeft):
			return m.move(-1)
		case key.Matches(msg, keys.MoveRight):
			return m.move(1)
		case key.Matches(msg, keys.Left):
			if m.col > 0 {
				m.col--
				m.clampCursor()
			}
		case key.Matches(msg, keys.Right):
			if m.col < len(m.columns)-1 {
				m.col++
				m.clampCursor()
			}
		case key.Matches(msg, keys.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, keys.Down):
			if m.row < len(m.columns[m.col])-1 {
				m.row++
			}
		case key.Matches(msg, keys.New):
			return m.showNewForm()
		case key.Matches(msg, keys.Edit):
			if t, ok := m.selected(); ok {
				return m.showEditForm(t)
			}
		case key.Matches(msg, keys.Delete):
			if t, ok := m.selected(); ok {
				if err := m.state.RemoveTask(t.ID); err != nil {
					return m, errorCmd("Delete failed", err)
				}
				m.reload()
			}
		}
	}
	return m, nil
}

// move shifts the selected task one column and follows it.
func (m tasksModel) move(delta int) (tasksModel, tea.Cmd) {
	t, ok := m.selected()
	target := m.col + delta
	if !ok || target < 0 || target >= len(store.TaskStatuses) {
		return m, nil
	}
	if err := m.state.MoveTask(t.ID, store.TaskStatuses[target]); err != nil {
		return m, errorCmd("Move failed", err)
	}
	m.reload()
	m.col = target
	for i, x := range m.columns[target] {
		if x.ID == t.ID {
			m.row = i
		}
	}
	return m, nil
}

func (m tasksModel) subjectOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("General", "")}
	for _, s := range m.state.Subjects() {
		opts = append(opts, huh.NewOption(s.Name, s.ID))
	}
	return opts
}

func (m tasksModel) showNewForm() (tasksModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formSubject = ""
	m.formType = "new"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Placeholder("What needs doing?").Value(m.formTitle),
			huh.NewSelect[string]().Title("Subject").Options(m.subjectOptions()...).Value(m.formSubject),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) showEditForm(t store.Task) (tasksModel, tea.Cmd) {
	*m.formTitle = t.Title
	m.formType = "edit"
	m.editingID = t.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
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
		var err error
		switch m.formType {
		case "new":
			_, err = m.state.AddTask(*m.formTitle, store.TaskStatuses[m.col], *m.formSubject)
		case "edit":
			err = m.state.UpdateTaskTitle(m.editingID, *m.formTitle)
		}
		m.reload()
		// Blank titles are dropped without a message.
		if err != nil && !errors.Is(err, state.ErrEmptyTitle) {
			return m, errorCmd("Task not saved", err)
		}
		return m, nil
	}

	return m, cmd
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.formType == "edit" {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	colWidth := max(16, w/3-1)
	var cols []string
	for i, status := range store.TaskStatuses {
		cols = append(cols, m.renderColumn(i, status, colWidth))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	nav := mutedStyle.Render("  n: new  e: edit  d: delete  </>: move  ←/→ ↑/↓: select")

	return lipgloss.JoinVertical(lipgloss.Left, board, nav)
}

func (m tasksModel) renderColumn(i int, status store.TaskStatus, width int) string {
	tasks := m.columns[i]
	title := titleStyle.Render(columnTitles[status]) + mutedStyle.Render(fmt.Sprintf(" (%d)", len(tasks)))

	rows := []string{title, ""}
	if len(tasks) == 0 {
		rows = append(rows, mutedStyle.Render("empty"))
	}
	for j, t := range tasks {
		cursor := "  "
		style := normalItemStyle
		if i == m.col && j == m.row {
			cursor = "> "
			style = selectedItemStyle
		}
		if status == store.StatusDone {
			style = style.Strikethrough(true)
		}
		subj := m.state.Subject(t.SubjectID)
		label := m.state.TaskSubjectLabel(t)
		tag := mutedStyle.Render("  " + label)
		if t.SubjectID != "" {
			tag = "  " + dot(subj.Color) + mutedStyle.Render(" "+label)
		}
		rows = append(rows, style.Render(cursor+truncate(t.Title, width-6)), tag)
	}

	panel := panelStyle
	if i == m.col {
		panel = activePanelStyle
	}
	return panel.Width(width).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
