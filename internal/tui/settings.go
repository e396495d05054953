package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/focusflow/internal/catalog"
	"github.com/sadopc/focusflow/internal/state"
)

type settingsAction int

const (
	actionGoal settingsAction = iota
	actionAddSubject
	actionRemoveSubject
	actionTheme
	actionWallpaper
	actionWallpaperImage
	actionReset
)

var settingsActions = []string{
	"Daily goal",
	"Add subject",
	"Remove subject",
	"Theme",
	"Wallpaper",
	"Wallpaper from image",
	"Reset all data",
}

// resetRequestedMsg asks the app to stop the timer and wipe everything.
type resetRequestedMsg struct{}

type settingsModel struct {
	state  *state.State
	width  int
	height int

	cursor     int
	formActive bool
	form       *huh.Form
	formType   settingsAction

	// Form values as pointers (survive value copies)
	goalHours *string
	name      *string
	color     *string
	choice    *string
	path      *string
	confirm   *bool
}

func newSettingsModel(st *state.State) settingsModel {
	gh, n, c, ch, p := "", "", "", "", ""
	ok := false
	return settingsModel{
		state:     st,
		goalHours: &gh,
		name:      &n,
		color:     &c,
		choice:    &ch,
		path:      &p,
		confirm:   &ok,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Down):
			if s.cursor < len(settingsActions)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.Enter):
			return s.showForm(settingsAction(s.cursor))
		}
	}
	return s, nil
}

func (s settingsModel) showForm(action settingsAction) (settingsModel, tea.Cmd) {
	s.formType = action
	var group *huh.Group

	switch action {
	case actionGoal:
		*s.goalHours = strconv.FormatFloat(float64(s.state.DailyGoal())/3600, 'f', -1, 64)
		group = huh.NewGroup(
			huh.NewInput().Title("Daily goal (hours)").Value(s.goalHours).Validate(validateHours),
		)

	case actionAddSubject:
		*s.name = ""
		*s.color = catalog.SubjectColors[0]
		colorOptions := make([]huh.Option[string], len(catalog.SubjectColors))
		for i, c := range catalog.SubjectColors {
			colorOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", dot(c), c), c)
		}
		group = huh.NewGroup(
			huh.NewInput().Title("Subject name").Value(s.name),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(s.color),
		)

	case actionRemoveSubject:
		subjects := s.state.Subjects()
		if len(subjects) <= 1 {
			return s, statusCmd("At least one subject is required", true)
		}
		*s.choice = ""
		var opts []huh.Option[string]
		for _, subj := range subjects {
			opts = append(opts, huh.NewOption(subj.Name, subj.ID))
		}
		group = huh.NewGroup(
			huh.NewSelect[string]().Title("Remove subject").
				Description("Past sessions keep their time").
				Options(opts...).Value(s.choice),
		)

	case actionTheme:
		*s.choice = s.state.Theme().ID
		var opts []huh.Option[string]
		for _, t := range catalog.Themes {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s %s", dot(t.Accent), t.Name), t.ID))
		}
		group = huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").Options(opts...).Value(s.choice),
		)

	case actionWallpaper:
		*s.choice = s.state.Wallpaper()
		var opts []huh.Option[string]
		for _, w := range catalog.Wallpapers {
			opts = append(opts, huh.NewOption(w.Name, w.Value))
		}
		group = huh.NewGroup(
			huh.NewSelect[string]().Title("Wallpaper").Options(opts...).Value(s.choice),
		)

	case actionWallpaperImage:
		*s.path = ""
		group = huh.NewGroup(
			huh.NewInput().Title("Image file").Placeholder("~/Pictures/desk.png").Value(s.path),
		)

	case actionReset:
		*s.confirm = false
		group = huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all data?").
				Description("Sessions, subjects, tasks and settings are wiped.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(s.confirm),
		)
	}

	s.form = huh.NewForm(group).WithShowHelp(true).WithShowErrors(true)
	s.formActive = true
	return s, s.form.Init()
}

func validateHours(v string) error {
	h, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || h <= 0 {
		return errors.New("enter a positive number of hours")
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.apply()
	}

	return s, cmd
}

// apply runs the mutation for the completed form.
func (s settingsModel) apply() tea.Cmd {
	var err error
	switch s.formType {
	case actionGoal:
		h, perr := strconv.ParseFloat(strings.TrimSpace(*s.goalHours), 64)
		if perr != nil {
			return nil
		}
		err = s.state.SetDailyGoalHours(h)
	case actionAddSubject:
		_, err = s.state.AddSubject(*s.name, *s.color)
	case actionRemoveSubject:
		err = s.state.RemoveSubject(*s.choice)
	case actionTheme:
		err = s.state.SetTheme(*s.choice)
	case actionWallpaper:
		err = s.state.SetWallpaper(*s.choice)
	case actionWallpaperImage:
		uri, ierr := catalog.EncodeImageFile(expandHome(*s.path))
		if ierr != nil {
			return errorCmd("Wallpaper", ierr)
		}
		err = s.state.SetWallpaper(uri)
	case actionReset:
		if *s.confirm {
			return func() tea.Msg { return resetRequestedMsg{} }
		}
		return nil
	}

	switch {
	case errors.Is(err, state.ErrEmptyName), errors.Is(err, state.ErrInvalidGoal):
		return nil
	case err != nil:
		return errorCmd("Settings", err)
	}
	return changedCmd
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	values := []string{
		formatGoalHours(s.state.DailyGoal()),
		fmt.Sprintf("%d subjects", len(s.state.Subjects())),
		"",
		s.state.Theme().Name,
		catalog.WallpaperName(s.state.Wallpaper()),
		wallpaperSize(s.state.Wallpaper()),
		"",
	}

	rows := []string{title, ""}
	for i, name := range settingsActions {
		cursor := "  "
		style := normalItemStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		label := lipgloss.NewStyle().Width(24).Render(style.Render(cursor + name))
		rows = append(rows, fmt.Sprintf("%s %s", label, highlightStyle.Render(values[i])))
	}

	rows = append(rows, "")
	rows = append(rows, s.renderSubjects())
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ↑/↓: select  enter: edit"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s settingsModel) renderSubjects() string {
	var parts []string
	for _, subj := range s.state.Subjects() {
		parts = append(parts, dot(subj.Color)+" "+subj.Name)
	}
	return "  " + strings.Join(parts, "  ")
}

// wallpaperSize describes a stored image wallpaper by its encoded size.
func wallpaperSize(v string) string {
	if catalog.ClassifyWallpaper(v) != catalog.WallpaperKindImage {
		return ""
	}
	return humanize.Bytes(uint64(len(v)))
}

func expandHome(p string) string {
	p = strings.TrimSpace(p)
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return p
}
