package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusflow/internal/export"
	"github.com/sadopc/focusflow/internal/logging"
	"github.com/sadopc/focusflow/internal/state"
	"github.com/sadopc/focusflow/internal/timer"
)

// App is the root Bubble Tea model.
type App struct {
	state     *state.State
	timer     *timer.Timer
	log       *slog.Logger
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	timerView timerViewModel
	tasks     tasksModel
	calendar  calendarModel
	analysis  analysisModel
	settings  settingsModel

	help    help.Model
	status  string
	isError bool
}

// NewApp builds the root model. Exports are written to exportDir, or the
// home directory when it is empty.
func NewApp(st *state.State, tm *timer.Timer, exportDir string) App {
	h := help.New()
	h.ShowAll = false

	if exportDir == "" {
		exportDir, _ = os.UserHomeDir()
	}
	applyTheme(st.Theme(), st.Wallpaper())

	return App{
		state:      st,
		timer:      tm,
		log:        logging.For("tui"),
		exportDir:  exportDir,
		activeView: viewTimer,
		timerView:  newTimerViewModel(st, tm),
		tasks:      newTasksModel(st),
		calendar:   newCalendarModel(st, time.Now()),
		analysis:   newAnalysisModel(st),
		settings:   newSettingsModel(st),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timerView.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.analysis.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
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
			a.shutdown()
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewCalendar
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewAnalysis
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		}

	case tickMsg:
		// Ticks from a cancelled run are dropped and not rescheduled.
		if a.timer.Tick(msg.handle) {
			return a, tickCmd(msg.handle)
		}
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.isError = msg.isError
		if msg.isError {
			a.log.Warn("status error", "text", msg.text)
		}
		return a, nil

	case sessionRecordedMsg:
		subj := a.state.Subject(msg.session.SubjectID)
		a.status = fmt.Sprintf("Saved %s of %s", FormatShort(msg.session.Duration), subj.Name)
		a.isError = false
		return a.broadcast(msg)

	case dataChangedMsg:
		applyTheme(a.state.Theme(), a.state.Wallpaper())
		return a.broadcast(msg)

	case resetRequestedMsg:
		a.timer.Reset()
		if err := a.state.ResetAll(); err != nil {
			return a, errorCmd("Reset failed", err)
		}
		a.status = "All data reset"
		a.isError = false
		return a, changedCmd

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.isError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// broadcast delivers a data message to every view, not only the active one.
func (a App) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.timerView, cmd = a.timerView.update(msg)
	cmds = append(cmds, cmd)
	a.tasks, cmd = a.tasks.update(msg)
	cmds = append(cmds, cmd)
	a.calendar, cmd = a.calendar.update(msg)
	cmds = append(cmds, cmd)
	a.analysis, cmd = a.analysis.update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timerView, cmd = a.timerView.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewAnalysis:
		a.analysis, cmd = a.analysis.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

// shutdown cancels the tick chain. An unfinished run is not saved.
func (a App) shutdown() {
	if a.timer.State() != timer.Idle && a.timer.Seconds() > 0 {
		a.log.Info("discarding unfinished run",
			"state", a.timer.State().String(),
			"subject", a.timer.SubjectID(),
			"seconds", a.timer.Seconds())
	}
	a.timer.Cancel()
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timerView.view()
	case viewTasks:
		content = a.tasks.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewAnalysis:
		content = a.analysis.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = contentStyle.
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

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("focusflow")
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
		style := mutedStyle
		if a.isError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Running indicator, shown while away from the Timer view
	timerInfo := ""
	if a.activeView != viewTimer {
		switch a.timer.State() {
		case timer.Running:
			timerInfo = successStyle.Render(" ● " + formatSeconds(a.timer.Seconds()))
		case timer.Paused:
			timerInfo = warningStyle.Render(" ⏸ " + formatSeconds(a.timer.Seconds()))
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d sessions to %s", len(a.state.Sessions()), a.exportDir)))
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+string(f)))
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
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format export.Format) tea.Cmd {
	sessions := a.state.Sessions()
	subjects := a.state.Subjects()
	path := filepath.Join(a.exportDir, export.FileName(format, time.Now()))
	return func() tea.Msg {
		if err := export.Write(format, sessions, subjects, path); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
