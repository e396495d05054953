package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusflow/internal/state"
	"github.com/sadopc/focusflow/internal/store"
	"github.com/sadopc/focusflow/internal/timer"
)

type timerViewModel struct {
	state  *state.State
	timer  *timer.Timer
	now    func() time.Time
	width  int
	height int

	subjects []store.Subject
}

func newTimerViewModel(st *state.State, tm *timer.Timer) timerViewModel {
	m := timerViewModel{state: st, timer: tm, now: time.Now}
	m.reload()
	return m
}

func (m *timerViewModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// reload re-reads the subjects and keeps the timer pointed at one that
// still exists, unless a run is in progress.
func (m *timerViewModel) reload() {
	m.subjects = m.state.Subjects()
	if len(m.subjects) == 0 || m.timer.Running() {
		return
	}
	if m.subjectIndex() < 0 {
		m.timer.SelectSubject(m.subjects[0].ID)
	}
}

func (m timerViewModel) subjectIndex() int {
	id := m.timer.SubjectID()
	return slices.IndexFunc(m.subjects, func(s store.Subject) bool { return s.ID == id })
}

func tickCmd(h timer.Handle) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{handle: h, at: t}
	})
}

func (m timerViewModel) update(msg tea.Msg) (timerViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dataChangedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Toggle):
			return m.toggle()
		case key.Matches(msg, keys.Pause):
			m.timer.Pause()
			return m, nil
		case key.Matches(msg, keys.Reset):
			m.timer.Reset()
			return m, nil
		case key.Matches(msg, keys.Left):
			return m.shiftSubject(-1), nil
		case key.Matches(msg, keys.Right):
			return m.shiftSubject(1), nil
		}
	}
	return m, nil
}

func (m timerViewModel) toggle() (timerViewModel, tea.Cmd) {
	sess, err := m.timer.Toggle()
	if err != nil {
		return m, errorCmd("Could not save session", err)
	}
	if m.timer.Running() {
		return m, tickCmd(m.timer.Handle())
	}
	if sess != nil {
		s := *sess
		return m, func() tea.Msg { return sessionRecordedMsg{session: s} }
	}
	return m, nil
}

func (m timerViewModel) shiftSubject(delta int) timerViewModel {
	if len(m.subjects) == 0 {
		return m
	}
	i := m.subjectIndex()
	if i < 0 {
		i = 0
	} else {
		i = (i + delta + len(m.subjects)) % len(m.subjects)
	}
	// Rejected with ErrRunning mid-run; the pill row already says so.
	_ = m.timer.SelectSubject(m.subjects[i].ID)
	return m
}

func (m timerViewModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderClock(w),
		m.renderGoal(w),
		m.renderSubjects(w),
	)
}

func (m timerViewModel) renderClock(w int) string {
	clock := formatSeconds(m.timer.Seconds())
	subj := m.state.Subject(m.timer.SubjectID())
	subjectLine := dot(subj.Color) + " " + highlightStyle.Render(subj.Name)

	var display, label, hint string
	panel := panelStyle
	switch m.timer.State() {
	case timer.Running:
		display = timerRunningStyle.Width(w - 6).Render(clock)
		label = successStyle.Render("●  ACTIVE SESSION")
		hint = mutedStyle.Render("space: stop & save  p: pause  r: reset")
		panel = activePanelStyle
	case timer.Paused:
		display = timerPausedStyle.Width(w - 6).Render(clock)
		label = warningStyle.Render("⏸  PAUSED")
		hint = mutedStyle.Render("space: resume  r: discard")
		panel = activePanelStyle
	default:
		display = timerStyle.Width(w - 6).Render(clock)
		label = mutedStyle.Render("■  STANDBY")
		hint = mutedStyle.Render("Press space to start focusing")
	}

	content := lipgloss.JoinVertical(lipgloss.Center, display, label, subjectLine, "", hint)
	return panel.Width(w).Render(content)
}

func (m timerViewModel) renderGoal(w int) string {
	now := m.now()
	today := m.state.TodaySeconds(now) + m.timer.Seconds()
	pct := m.state.GoalProgress(now, m.timer.Seconds())
	goal := m.state.DailyGoal()

	header := fmt.Sprintf("%s  %s", titleStyle.Render("Today"), highlightStyle.Render(formatSeconds(today)))
	line := fmt.Sprintf("%.1f%% %s", pct, mutedStyle.Render(fmt.Sprintf("to %s goal", formatGoalHours(goal))))
	bar := progressBar(pct, max(10, w-10))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", bar, line))
}

func (m timerViewModel) renderSubjects(w int) string {
	title := titleStyle.Render("Subject")
	selected := m.timer.SubjectID()

	var pills []string
	for _, s := range m.subjects {
		label := " " + s.Name + " "
		if s.ID == selected {
			pills = append(pills, lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#0f172a")).
				Background(lipgloss.Color(s.Color)).
				Render(label))
			continue
		}
		pills = append(pills, dot(s.Color)+normalItemStyle.Render(label))
	}

	hint := mutedStyle.Render("←/→: change subject")
	if m.timer.Running() {
		hint = mutedStyle.Render("subject is locked while the timer runs")
	}
	row := lipgloss.NewStyle().Width(w - 6).Render(strings.Join(pills, " "))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", row, "", hint))
}

// progressBar renders pct (0-100) as a bar of the given cell width.
func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return accentStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

// formatGoalHours prints 4h, 1.5h, 0.25h.
func formatGoalHours(secs int64) string {
	h := float64(secs) / 3600
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".")
	return s + "h"
}
