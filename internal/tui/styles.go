package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusflow/internal/catalog"
)

// Color palette. colorPrimary and colorBg follow the chosen theme and
// wallpaper; see applyTheme.
var (
	colorPrimary   = lipgloss.Color(catalog.Themes[0].Accent)
	colorMuted     = lipgloss.Color("#64748b")
	colorSuccess   = lipgloss.Color("#10b981")
	colorWarning   = lipgloss.Color("#fbbf24")
	colorError     = lipgloss.Color("#ef4444")
	colorBg        = lipgloss.Color("")
	colorFg        = lipgloss.Color("#e2e8f0")
	colorSubtle    = lipgloss.Color("#334155")
	colorHighlight = lipgloss.Color("#94a3b8")
)

// Styles that do not depend on the theme.
var (
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	timerRunningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess).
				Align(lipgloss.Center)

	timerPausedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWarning).
				Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

// Themed styles, rebuilt by applyTheme.
var (
	activeTabStyle    lipgloss.Style
	activePanelStyle  lipgloss.Style
	timerStyle        lipgloss.Style
	accentStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	contentStyle      lipgloss.Style
)

func init() {
	applyTheme(catalog.Themes[0], catalog.WallpaperNone)
}

// applyTheme points the accent colour at the theme and the content
// background at the wallpaper tint, if it has one.
func applyTheme(theme catalog.Theme, wallpaper string) {
	colorPrimary = lipgloss.Color(theme.Accent)
	colorBg = lipgloss.Color("")
	if tint, ok := catalog.WallpaperTint(wallpaper); ok {
		colorBg = lipgloss.Color(tint)
	}

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	timerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Align(lipgloss.Center)

	accentStyle = lipgloss.NewStyle().
		Foreground(colorPrimary)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	contentStyle = lipgloss.NewStyle()
	if colorBg != "" {
		contentStyle = contentStyle.Background(colorBg)
	}
}

func dot(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
