package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusflow/internal/catalog"
	"github.com/sadopc/focusflow/internal/state"
	"github.com/sadopc/focusflow/internal/store"
)

// heatColors maps catalog heat levels to cell backgrounds.
var heatColors = []lipgloss.Color{
	"",
	"#431407",
	"#7c2d12",
	"#c2410c",
	"#f97316",
	"#fb923c",
	"#fbbf24",
}

type calendarModel struct {
	state  *state.State
	width  int
	height int

	month    time.Time // first day of the shown month, local
	selected time.Time // selected day, always inside month
	days     map[string]*state.DayDetail
}

func newCalendarModel(st *state.State, now time.Time) calendarModel {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	m := calendarModel{
		state:    st,
		month:    time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		selected: today,
	}
	m.reload()
	return m
}

func (m *calendarModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *calendarModel) reload() {
	m.days = m.state.DailyDetail()
}

func (m calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dataChangedMsg, sessionRecordedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m = m.changeMonth(-1)
		case key.Matches(msg, keys.Right):
			m = m.changeMonth(1)
		case key.Matches(msg, keys.Up):
			m = m.moveDay(-1)
		case key.Matches(msg, keys.Down):
			m = m.moveDay(1)
		}
	}
	return m, nil
}

func (m calendarModel) changeMonth(delta int) calendarModel {
	m.month = m.month.AddDate(0, delta, 0)
	m.selected = m.month
	return m
}

// moveDay steps the selection, staying inside the shown month.
func (m calendarModel) moveDay(delta int) calendarModel {
	next := m.selected.AddDate(0, 0, delta)
	if next.Month() == m.month.Month() && next.Year() == m.month.Year() {
		m.selected = next
	}
	return m
}

func (m calendarModel) view() string {
	w := m.width - 4
	title := titleStyle.Render(m.month.Format("January")) + " " + mutedStyle.Render(m.month.Format("2006"))
	grid := m.renderGrid()
	legend := m.renderLegend()
	detail := m.renderDetail()
	nav := mutedStyle.Render("  ←/→: month  ↑/↓: day")

	left := lipgloss.JoinVertical(lipgloss.Left, title, "", grid, "", legend, "", m.renderSummary())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", detail)
	return lipgloss.JoinVertical(lipgloss.Left, panelStyle.Width(w).Render(body), nav)
}

func (m calendarModel) renderGrid() string {
	cell := lipgloss.NewStyle().Width(5).Align(lipgloss.Center)

	var header []string
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		header = append(header, cell.Foreground(colorMuted).Render(d))
	}
	rows := []string{strings.Join(header, "")}

	offset := int(m.month.Weekday())
	last := m.month.AddDate(0, 1, -1).Day()

	var week []string
	for i := 0; i < offset; i++ {
		week = append(week, cell.Render(""))
	}
	for day := 1; day <= last; day++ {
		date := time.Date(m.month.Year(), m.month.Month(), day, 0, 0, 0, 0, time.Local)
		week = append(week, m.renderDay(cell, date))
		if len(week) == 7 {
			rows = append(rows, strings.Join(week, ""))
			week = nil
		}
	}
	if len(week) > 0 {
		rows = append(rows, strings.Join(week, ""))
	}
	return strings.Join(rows, "\n")
}

func (m calendarModel) renderDay(cell lipgloss.Style, date time.Time) string {
	var total int64
	if d := m.days[store.LocalDate(date)]; d != nil {
		total = d.Total
	}
	level := catalog.HeatLevel(total)

	style := cell.Foreground(colorFg)
	if level > 0 {
		style = style.Background(heatColors[level])
		if level == len(heatColors)-1 {
			style = style.Foreground(lipgloss.Color("#0f172a")).Bold(true)
		}
	} else {
		style = style.Foreground(colorMuted)
	}
	if date.Equal(m.selected) {
		style = style.Underline(true).Bold(true).Foreground(colorPrimary)
	}
	return style.Render(fmt.Sprintf("%d", date.Day()))
}

func (m calendarModel) renderLegend() string {
	parts := []string{mutedStyle.Render("less ")}
	for _, c := range heatColors[1:] {
		parts = append(parts, lipgloss.NewStyle().Background(c).Render("  "))
	}
	parts = append(parts, mutedStyle.Render(" more"))
	return strings.Join(parts, "")
}

// renderSummary shows active days, whole hours in the shown month and the
// average session length in whole minutes.
func (m calendarModel) renderSummary() string {
	sum := m.state.MonthSummary(m.month.Year(), m.month.Month())
	stat := func(label, value string) string {
		return lipgloss.JoinVertical(lipgloss.Left, subtitleStyle.Render(label), highlightStyle.Bold(true).Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Study Streak", fmt.Sprintf("%d days", sum.ActiveDays)), "   ",
		stat("Monthly Focus", fmt.Sprintf("%dh", sum.MonthSeconds/3600)), "   ",
		stat("Avg Session", fmt.Sprintf("%dm", sum.AvgSession/60)),
	)
}

func (m calendarModel) renderDetail() string {
	date := store.LocalDate(m.selected)
	title := titleStyle.Render("Focus Time Sheet")
	rows := []string{title, mutedStyle.Render(date), ""}

	d := m.days[date]
	if d == nil {
		rows = append(rows, mutedStyle.Render("No sessions on this day"))
		return strings.Join(rows, "\n")
	}

	sessions := slices.Clone(d.Sessions)
	slices.SortFunc(sessions, func(a, b store.StudySession) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})
	for _, s := range sessions {
		subj := m.state.Subject(s.SubjectID)
		intensity := catalog.SubjectIntensity(s.Duration)
		name := lipgloss.NewStyle().Foreground(lipgloss.Color(subj.Color)).Faint(intensity < 0.5).Render(fmt.Sprintf("%-14s", subj.Name))
		rows = append(rows, fmt.Sprintf("%s  %s %s %s",
			mutedStyle.Render(s.Start().Format("15:04")), dot(subj.Color), name, FormatShort(s.Duration)))
	}

	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("%s %s   %s %d",
		mutedStyle.Render("Daily total"), highlightStyle.Render(FormatShort(d.Total)),
		mutedStyle.Render("Sessions"), len(d.Sessions)))

	var subjects []string
	for id := range d.BySubject {
		subjects = append(subjects, id)
	}
	slices.Sort(subjects)
	var dots []string
	for _, id := range subjects {
		dots = append(dots, dot(m.state.Subject(id).Color))
	}
	rows = append(rows, strings.Join(dots, " "))
	return strings.Join(rows, "\n")
}
