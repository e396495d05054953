package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusflow/internal/state"
)

type analysisModel struct {
	state  *state.State
	now    func() time.Time
	width  int
	height int

	breakdown []state.SubjectTotal
	total     int64
	count     int
	weekly    state.WeeklySummary

	chart barchart.Model
}

func newAnalysisModel(st *state.State) analysisModel {
	m := analysisModel{
		state: st,
		now:   time.Now,
		chart: barchart.New(60, 12),
	}
	m.reload()
	return m
}

func (m *analysisModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

func (m *analysisModel) reload() {
	m.breakdown = m.state.Breakdown()
	m.total = m.state.TotalSeconds()
	m.count = len(m.state.Sessions())
	m.weekly = m.state.WeeklySummary(m.now())
	m.buildChart()
}

func (m analysisModel) update(msg tea.Msg) (analysisModel, tea.Cmd) {
	switch msg.(type) {
	case dataChangedMsg, sessionRecordedMsg:
		m.reload()
	}
	return m, nil
}

func (m *analysisModel) buildChart() {
	chartWidth := m.width/2 - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, b := range m.breakdown {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Subject.Color))
		bars = append(bars, barchart.BarData{
			Label: truncate(b.Subject.Name, 6),
			Values: []barchart.BarValue{{
				Name:  b.Subject.Name,
				Value: float64(b.Seconds) / 3600.0,
				Style: style,
			}},
		})
	}
	if len(bars) == 0 {
		return
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m analysisModel) view() string {
	w := m.width - 4
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Analytics"), "  ", subtitleStyle.Render("Deep dive into your focus patterns"))

	distribution := m.renderDistribution()
	side := lipgloss.JoinVertical(lipgloss.Left, m.renderTotal(), "", m.renderWeekly())
	top := lipgloss.JoinHorizontal(lipgloss.Top, distribution, "    ", side)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", top, "", m.renderInsights()),
	)
}

func (m analysisModel) renderDistribution() string {
	title := accentStyle.Render("●") + " " + titleStyle.Render("Focus Distribution")
	if len(m.breakdown) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "",
			mutedStyle.Render("No sessions recorded yet."),
			mutedStyle.Render("Head back to the Timer to start your first session."))
	}

	rows := []string{title, "", m.chart.View(), ""}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-4s %-16s %10s %7s", "#", "Subject", "Time", "Share")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 40)))
	for i, b := range m.breakdown {
		share := float64(b.Seconds) / float64(m.total) * 100
		rows = append(rows, fmt.Sprintf("  %-4d %s %-14s %10s %6.1f%%",
			i+1, dot(b.Subject.Color), b.Subject.Name, FormatShort(b.Seconds), share))
	}
	return strings.Join(rows, "\n")
}

func (m analysisModel) renderTotal() string {
	title := mutedStyle.Render("TOTAL ACHIEVEMENT")
	big := accentStyle.Bold(true).Render(formatHours(m.total))
	sub := mutedStyle.Render(fmt.Sprintf("Accumulated over %d sessions", m.count))
	return activePanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, big, sub))
}

func (m analysisModel) renderWeekly() string {
	pct := float64(m.weekly.Total) / float64(state.WeeklyTarget) * 100
	rows := []string{
		mutedStyle.Render("7-DAY CONSISTENCY"),
		"",
		fmt.Sprintf("%s  %s", titleStyle.Render("Total focused"), accentStyle.Bold(true).Render(formatHours(m.weekly.Total))),
		progressBar(min(pct, 100), 24),
		"",
		fmt.Sprintf("%s %s   %s %d",
			mutedStyle.Render("Avg/day"), highlightStyle.Render(formatHours(int64(m.weekly.Avg))),
			mutedStyle.Render("Sessions"), m.weekly.Count),
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

func (m analysisModel) renderInsights() string {
	var growth string
	if len(m.breakdown) > 1 {
		top := m.breakdown[0]
		least := m.breakdown[len(m.breakdown)-1]
		growth = fmt.Sprintf("You've mastered %q with %s. Balance it out with more %q sessions.",
			top.Subject.Name, FormatShort(top.Seconds), least.Subject.Name)
	} else {
		growth = "Focusing on a single subject builds deep expertise, but don't forget to diversify."
	}
	milestone := fmt.Sprintf("You are only %s away from the \"Bronze Focus\" badge.",
		FormatShort(m.state.BadgeRemaining()))
	if m.state.BadgeRemaining() == 0 {
		milestone = successStyle.Render("Bronze Focus badge earned.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Growth")+"     "+normalItemStyle.Render(growth),
		titleStyle.Render("Milestone")+"  "+normalItemStyle.Render(milestone),
	)
}
