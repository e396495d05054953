package state

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sadopc/focusflow/internal/catalog"
	"github.com/sadopc/focusflow/internal/store"
	"github.com/sadopc/focusflow/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) (*State, *store.Store) {
	t.Helper()
	gw, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })
	return Load(gw), gw
}

// failingGateway wraps a real store and fails every write.
type failingGateway struct {
	*store.Store
}

var errWrite = errors.New("write failed")

func (failingGateway) SaveSession(store.StudySession) error { return errWrite }
func (failingGateway) SaveSubjects([]store.Subject) error   { return errWrite }
func (failingGateway) SaveTasks([]store.Task) error         { return errWrite }
func (failingGateway) SaveDailyGoal(int64) error            { return errWrite }
func (failingGateway) SaveThemeID(string) error             { return errWrite }
func (failingGateway) SaveWallpaper(string) error           { return errWrite }
func (failingGateway) ClearAll() error                      { return errWrite }

func session(subjectID string, duration int64, start time.Time) store.StudySession {
	return store.NewSession(subjectID, duration, start)
}

// =============================================================================
// Load
// =============================================================================

func TestLoadDefaults(t *testing.T) {
	s, _ := newTestState(t)
	require.Len(t, s.Subjects(), 5)
	assert.Equal(t, "math", s.Subjects()[0].ID)
	assert.Empty(t, s.Sessions())
	assert.Empty(t, s.Tasks())
	assert.Equal(t, int64(14400), s.DailyGoal())
	assert.Equal(t, "ypt", s.ThemeID())
	assert.Equal(t, "none", s.Wallpaper())
}

func TestAccessorsReturnCopies(t *testing.T) {
	s, _ := newTestState(t)
	subjects := s.Subjects()
	subjects[0].Name = "mutated"
	assert.Equal(t, "Mathematics", s.Subjects()[0].Name)
}

// =============================================================================
// Subjects
// =============================================================================

func TestAddSubject(t *testing.T) {
	s, gw := newTestState(t)

	subj, err := s.AddSubject("  Physics  ", "#06b6d4")
	require.NoError(t, err)
	assert.Equal(t, "Physics", subj.Name)
	assert.NotEmpty(t, subj.ID)
	require.Len(t, s.Subjects(), 6)
	assert.Equal(t, s.Subjects(), gw.Subjects(), "memory mirrors the store")

	_, err = s.AddSubject("   ", "#000000")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Len(t, s.Subjects(), 6)
}

func TestRemoveSubject(t *testing.T) {
	s, gw := newTestState(t)

	require.NoError(t, s.RemoveSubject("english"))
	assert.Len(t, s.Subjects(), 4)
	assert.Len(t, gw.Subjects(), 4)

	t.Run("unknown_id_is_noop", func(t *testing.T) {
		require.NoError(t, s.RemoveSubject("nope"))
		assert.Len(t, s.Subjects(), 4)
	})

	t.Run("last_subject_is_kept", func(t *testing.T) {
		for _, subj := range s.Subjects()[1:] {
			require.NoError(t, s.RemoveSubject(subj.ID))
		}
		require.Len(t, s.Subjects(), 1)
		err := s.RemoveSubject(s.Subjects()[0].ID)
		assert.ErrorIs(t, err, ErrLastSubject)
		assert.Len(t, s.Subjects(), 1)
	})
}

func TestRemovedSubjectResolvesToUnknown(t *testing.T) {
	s, _ := newTestState(t)
	require.NoError(t, s.RecordSession(session("design", 600, time.Now())))
	require.NoError(t, s.RemoveSubject("design"))

	require.Len(t, s.Sessions(), 1, "sessions are never cascaded")
	got := s.Subject("design")
	assert.Equal(t, catalog.UnknownSubjectName, got.Name)
	assert.Equal(t, catalog.UnknownSubjectColor, got.Color)

	assert.Empty(t, s.Breakdown(), "orphaned time is not attributed")
	assert.Equal(t, int64(600), s.TotalSeconds())
}

// =============================================================================
// Tasks
// =============================================================================

func TestTaskLifecycle(t *testing.T) {
	s, gw := newTestState(t)

	task, err := s.AddTask("Read chapter 3", store.StatusTodo, "math")
	require.NoError(t, err)
	assert.Equal(t, store.StatusTodo, task.Status)

	require.NoError(t, s.MoveTask(task.ID, store.StatusDoing))
	assert.Equal(t, store.StatusDoing, s.Tasks()[0].Status)
	require.NoError(t, s.MoveTask(task.ID, store.StatusDone))
	assert.Equal(t, store.StatusDone, s.Tasks()[0].Status)
	assert.Equal(t, store.StatusDone, gw.Tasks()[0].Status)

	require.Len(t, s.TasksByStatus(store.StatusDone), 1)
	assert.Empty(t, s.TasksByStatus(store.StatusTodo))

	require.NoError(t, s.RemoveTask(task.ID))
	assert.Empty(t, s.Tasks())
	assert.Empty(t, gw.Tasks())
}

func TestAddTaskValidation(t *testing.T) {
	s, _ := newTestState(t)

	_, err := s.AddTask("   ", store.StatusTodo, "")
	assert.ErrorIs(t, err, ErrEmptyTitle)
	_, err = s.AddTask("ok", store.TaskStatus("blocked"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, s.Tasks())

	task, err := s.AddTask("  trim me ", store.StatusDoing, "")
	require.NoError(t, err)
	assert.Equal(t, "trim me", task.Title)
	assert.Equal(t, catalog.GeneralSubjectName, s.TaskSubjectLabel(task))
}

func TestUpdateTaskTitle(t *testing.T) {
	s, _ := newTestState(t)
	task, err := s.AddTask("old", store.StatusTodo, "coding")
	require.NoError(t, err)

	require.NoError(t, s.UpdateTaskTitle(task.ID, " new "))
	assert.Equal(t, "new", s.Tasks()[0].Title)

	assert.ErrorIs(t, s.UpdateTaskTitle(task.ID, "  "), ErrEmptyTitle)
	assert.Equal(t, "new", s.Tasks()[0].Title)
	assert.Equal(t, "Coding", s.TaskSubjectLabel(s.Tasks()[0]))
}

func TestMoveTaskRejectsUnknownStatus(t *testing.T) {
	s, _ := newTestState(t)
	task, _ := s.AddTask("x", store.StatusTodo, "")
	assert.ErrorIs(t, s.MoveTask(task.ID, "archived"), ErrInvalidStatus)
	assert.Equal(t, store.StatusTodo, s.Tasks()[0].Status)
}

// =============================================================================
// Settings
// =============================================================================

func TestDailyGoal(t *testing.T) {
	s, gw := newTestState(t)

	require.NoError(t, s.SetDailyGoalHours(6))
	assert.Equal(t, int64(21600), s.DailyGoal())
	assert.Equal(t, int64(21600), gw.DailyGoal())

	require.NoError(t, s.SetDailyGoalHours(1.5))
	assert.Equal(t, int64(5400), s.DailyGoal())

	for _, bad := range []int64{0, -60} {
		assert.ErrorIs(t, s.SetDailyGoal(bad), ErrInvalidGoal)
	}
	assert.ErrorIs(t, s.SetDailyGoalHours(-1), ErrInvalidGoal)
	assert.Equal(t, int64(5400), s.DailyGoal())
}

func TestDailyGoalHoursOutOfRange(t *testing.T) {
	s, gw := newTestState(t)
	require.NoError(t, s.SetDailyGoalHours(6))

	for _, h := range []float64{3e15, math.MaxFloat64, math.Inf(1), math.NaN()} {
		assert.ErrorIs(t, s.SetDailyGoalHours(h), ErrInvalidGoal, "hours=%v", h)
	}
	assert.Equal(t, int64(21600), s.DailyGoal())
	assert.Equal(t, int64(21600), gw.DailyGoal())

	require.NoError(t, s.SetDailyGoalHours(maxGoalHours/2))
	assert.Positive(t, s.DailyGoal())
}

func TestThemeAndWallpaper(t *testing.T) {
	s, gw := newTestState(t)

	require.NoError(t, s.SetTheme("rose"))
	assert.Equal(t, "Cyber Rose", s.Theme().Name)
	assert.Equal(t, "rose", gw.ThemeID())

	require.NoError(t, s.SetTheme("retired-theme"))
	assert.Equal(t, catalog.Themes[0], s.Theme())

	grid := catalog.Wallpapers[3].Value
	require.NoError(t, s.SetWallpaper(grid))
	assert.Equal(t, grid, s.Wallpaper())
	assert.Equal(t, grid, gw.Wallpaper())
}

// =============================================================================
// Sessions and reset
// =============================================================================

func TestRecordSession(t *testing.T) {
	s, gw := newTestState(t)
	sess := session("coding", 125, time.Now())

	require.NoError(t, s.RecordSession(sess))
	assert.Equal(t, []store.StudySession{sess}, s.Sessions())
	assert.Equal(t, []store.StudySession{sess}, gw.Sessions())

	assert.ErrorIs(t, s.RecordSession(session("coding", 0, time.Now())), ErrEmptySession)
	assert.Len(t, s.Sessions(), 1)
}

func TestWriteFailureLeavesMemoryUntouched(t *testing.T) {
	backing, err := store.NewMemory()
	require.NoError(t, err)
	defer backing.Close()
	s := Load(failingGateway{backing})

	_, err = s.AddSubject("Art", "#ec4899")
	assert.ErrorIs(t, err, errWrite)
	assert.Len(t, s.Subjects(), 5)

	assert.ErrorIs(t, s.RemoveSubject("math"), errWrite)
	assert.Len(t, s.Subjects(), 5)

	_, err = s.AddTask("x", store.StatusTodo, "")
	assert.ErrorIs(t, err, errWrite)
	assert.Empty(t, s.Tasks())

	assert.ErrorIs(t, s.SetDailyGoal(60), errWrite)
	assert.Equal(t, int64(14400), s.DailyGoal())

	assert.ErrorIs(t, s.SetTheme("gold"), errWrite)
	assert.Equal(t, "ypt", s.ThemeID())

	assert.ErrorIs(t, s.RecordSession(session("math", 10, time.Now())), errWrite)
	assert.Empty(t, s.Sessions())

	assert.ErrorIs(t, s.ResetAll(), errWrite)
}

func TestResetAllIdempotent(t *testing.T) {
	s, gw := newTestState(t)
	_, err := s.AddSubject("Physics", "#06b6d4")
	require.NoError(t, err)
	_, err = s.AddTask("x", store.StatusTodo, "")
	require.NoError(t, err)
	require.NoError(t, s.RecordSession(session("math", 100, time.Now())))
	require.NoError(t, s.SetTheme("gold"))

	require.NoError(t, s.ResetAll())
	first := snapshot(s)
	require.NoError(t, s.ResetAll())
	assert.Equal(t, first, snapshot(s))

	assert.Len(t, first.subjects, 5)
	assert.Empty(t, first.sessions)
	assert.Empty(t, first.tasks)
	assert.Equal(t, "ypt", first.themeID)
	assert.Equal(t, store.DefaultSubjects(), gw.Subjects())
}

type stateSnapshot struct {
	sessions  []store.StudySession
	subjects  []store.Subject
	tasks     []store.Task
	dailyGoal int64
	themeID   string
	wallpaper string
}

func snapshot(s *State) stateSnapshot {
	return stateSnapshot{s.Sessions(), s.Subjects(), s.Tasks(), s.DailyGoal(), s.ThemeID(), s.Wallpaper()}
}

// =============================================================================
// End to end with the timer
// =============================================================================

func TestTimerScenario(t *testing.T) {
	s, gw := newTestState(t)
	require.Len(t, s.Subjects(), 5)

	clock := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	tm := timer.New(s, timer.WithClock(func() time.Time { return clock }))
	require.NoError(t, tm.SelectSubject("coding"))

	_, err := tm.Toggle()
	require.NoError(t, err)
	for i := 0; i < 125; i++ {
		tm.Tick(tm.Handle())
	}
	sess, err := tm.Toggle()
	require.NoError(t, err)
	require.NotNil(t, sess)

	require.Len(t, s.Sessions(), 1)
	assert.Equal(t, int64(125), s.Sessions()[0].Duration)
	assert.Equal(t, "coding", s.Sessions()[0].SubjectID)
	assert.Equal(t, s.Sessions(), gw.Sessions())

	task, err := s.AddTask("Ship it", store.StatusTodo, "coding")
	require.NoError(t, err)
	require.NoError(t, s.MoveTask(task.ID, store.StatusDoing))
	require.NoError(t, s.MoveTask(task.ID, store.StatusDone))
	assert.Equal(t, store.StatusDone, s.Tasks()[0].Status)

	require.NoError(t, s.SetDailyGoalHours(6))
	assert.Equal(t, int64(21600), gw.DailyGoal())

	// Reloading from the same store yields the same state.
	assert.Equal(t, snapshot(s), snapshot(Load(gw)))
}
