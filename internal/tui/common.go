package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/focusflow/internal/store"
	"github.com/sadopc/focusflow/internal/timer"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewTasks
	viewCalendar
	viewAnalysis
	viewSettings
)

var viewNames = []string{"Timer", "Tasks", "Calendar", "Analysis", "Settings"}

// --- Messages ---

// tickMsg carries the handle of the Running period that scheduled it.
type tickMsg struct {
	handle timer.Handle
	at     time.Time
}

type sessionRecordedMsg struct {
	session store.StudySession
}

type statusMsg struct {
	text    string
	isError bool
}

// dataChangedMsg asks every view to re-read state, e.g. after a reset.
type dataChangedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}

// FormatShort renders seconds as "2h 5m", "2h" or "45m". The stats command
// prints with it too.
func FormatShort(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

func errorCmd(prefix string, err error) tea.Cmd {
	return statusCmd(fmt.Sprintf("%s: %v", prefix, err), true)
}

func changedCmd() tea.Msg { return dataChangedMsg{} }
