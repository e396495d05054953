// Package state owns the in-memory application state and the rules for
// changing it. Every mutation validates its input, writes the new value
// through the store, and only then swaps it into memory, so a failed write
// leaves memory untouched.
package state

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/sadopc/focusflow/internal/logging"
	"github.com/sadopc/focusflow/internal/store"
)

var (
	ErrEmptyName     = errors.New("subject name is empty")
	ErrLastSubject   = errors.New("cannot remove the last subject")
	ErrEmptyTitle    = errors.New("task title is empty")
	ErrInvalidStatus = errors.New("invalid task status")
	ErrInvalidGoal   = errors.New("daily goal must be positive")
	ErrEmptySession  = errors.New("session has no duration")
)

// Gateway is the persistence surface State needs. *store.Store satisfies it.
type Gateway interface {
	Sessions() []store.StudySession
	Subjects() []store.Subject
	Tasks() []store.Task
	DailyGoal() int64
	ThemeID() string
	Wallpaper() string

	SaveSession(store.StudySession) error
	SaveSubjects([]store.Subject) error
	SaveTasks([]store.Task) error
	SaveDailyGoal(int64) error
	SaveThemeID(string) error
	SaveWallpaper(string) error
	ClearAll() error
}

type State struct {
	gw  Gateway
	log *slog.Logger

	sessions  []store.StudySession
	subjects  []store.Subject
	tasks     []store.Task
	dailyGoal int64
	themeID   string
	wallpaper string
}

// Load reads every value once from gw.
func Load(gw Gateway) *State {
	s := &State{gw: gw, log: logging.For("state")}
	s.reload()
	return s
}

func (s *State) reload() {
	s.sessions = s.gw.Sessions()
	s.subjects = s.gw.Subjects()
	s.tasks = s.gw.Tasks()
	s.dailyGoal = s.gw.DailyGoal()
	s.themeID = s.gw.ThemeID()
	s.wallpaper = s.gw.Wallpaper()
	s.log.Debug("state loaded",
		"sessions", len(s.sessions), "subjects", len(s.subjects), "tasks", len(s.tasks))
}

// Accessors return copies; callers may not mutate state through them.

func (s *State) Sessions() []store.StudySession { return slices.Clone(s.sessions) }
func (s *State) Subjects() []store.Subject      { return slices.Clone(s.subjects) }
func (s *State) Tasks() []store.Task            { return slices.Clone(s.tasks) }
func (s *State) DailyGoal() int64               { return s.dailyGoal }
func (s *State) ThemeID() string                { return s.themeID }
func (s *State) Wallpaper() string              { return s.wallpaper }

// =============================================================================
// Subjects
// =============================================================================

func (s *State) AddSubject(name, color string) (store.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Subject{}, ErrEmptyName
	}
	subj := store.Subject{ID: store.NewID(), Name: name, Color: color}
	next := append(slices.Clone(s.subjects), subj)
	if err := s.gw.SaveSubjects(next); err != nil {
		return store.Subject{}, fmt.Errorf("add subject: %w", err)
	}
	s.subjects = next
	s.log.Info("subject added", "id", subj.ID, "name", subj.Name)
	return subj, nil
}

// RemoveSubject deletes a subject. Sessions and tasks that reference it are
// kept and render with the fallback label. Unknown ids are a no-op.
func (s *State) RemoveSubject(id string) error {
	if len(s.subjects) <= 1 {
		return ErrLastSubject
	}
	i := slices.IndexFunc(s.subjects, func(x store.Subject) bool { return x.ID == id })
	if i < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.subjects), i, i+1)
	if err := s.gw.SaveSubjects(next); err != nil {
		return fmt.Errorf("remove subject: %w", err)
	}
	s.subjects = next
	s.log.Info("subject removed", "id", id)
	return nil
}

// =============================================================================
// Tasks
// =============================================================================

func (s *State) AddTask(title string, status store.TaskStatus, subjectID string) (store.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Task{}, ErrEmptyTitle
	}
	if !status.Valid() {
		return store.Task{}, ErrInvalidStatus
	}
	task := store.Task{ID: store.NewID(), Title: title, Status: status, SubjectID: subjectID}
	next := append(slices.Clone(s.tasks), task)
	if err := s.gw.SaveTasks(next); err != nil {
		return store.Task{}, fmt.Errorf("add task: %w", err)
	}
	s.tasks = next
	return task, nil
}

func (s *State) UpdateTaskTitle(id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	return s.updateTask("update task", id, func(t *store.Task) { t.Title = title })
}

func (s *State) MoveTask(id string, status store.TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.updateTask("move task", id, func(t *store.Task) { t.Status = status })
}

func (s *State) RemoveTask(id string) error {
	next := slices.DeleteFunc(slices.Clone(s.tasks), func(t store.Task) bool { return t.ID == id })
	if err := s.gw.SaveTasks(next); err != nil {
		return fmt.Errorf("remove task: %w", err)
	}
	s.tasks = next
	return nil
}

func (s *State) updateTask(op, id string, fn func(*store.Task)) error {
	next := slices.Clone(s.tasks)
	for i := range next {
		if next[i].ID == id {
			fn(&next[i])
		}
	}
	if err := s.gw.SaveTasks(next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.tasks = next
	return nil
}

// =============================================================================
// Settings
// =============================================================================

func (s *State) SetDailyGoal(seconds int64) error {
	if seconds <= 0 {
		return ErrInvalidGoal
	}
	if err := s.gw.SaveDailyGoal(seconds); err != nil {
		return fmt.Errorf("set daily goal: %w", err)
	}
	s.dailyGoal = seconds
	return nil
}

// maxGoalHours is the largest hour count whose seconds fit in an int64.
const maxGoalHours = float64(math.MaxInt64 / 3600)

// SetDailyGoalHours sets the goal from a (possibly fractional) hour count.
func (s *State) SetDailyGoalHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours > maxGoalHours {
		return ErrInvalidGoal
	}
	return s.SetDailyGoal(int64(math.Round(hours * 3600)))
}

func (s *State) SetTheme(id string) error {
	if err := s.gw.SaveThemeID(id); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	s.themeID = id
	return nil
}

func (s *State) SetWallpaper(value string) error {
	if err := s.gw.SaveWallpaper(value); err != nil {
		return fmt.Errorf("set wallpaper: %w", err)
	}
	s.wallpaper = value
	return nil
}

// =============================================================================
// Sessions
// =============================================================================

// RecordSession persists a completed session and appends it to memory.
func (s *State) RecordSession(sess store.StudySession) error {
	if sess.Duration <= 0 {
		return ErrEmptySession
	}
	if err := s.gw.SaveSession(sess); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	s.sessions = append(s.sessions, sess)
	return nil
}

// ResetAll wipes persisted data and reloads the defaults.
func (s *State) ResetAll() error {
	if err := s.gw.ClearAll(); err != nil {
		return err
	}
	s.reload()
	s.log.Info("all data reset")
	return nil
}
