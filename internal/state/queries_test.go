package state

import (
	"testing"
	"time"

	"github.com/sadopc/focusflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayAndGoalProgress(t *testing.T) {
	s, _ := newTestState(t)
	now := time.Date(2026, 4, 2, 15, 0, 0, 0, time.Local)

	require.NoError(t, s.RecordSession(session("math", 3600, now.Add(-2*time.Hour))))
	require.NoError(t, s.RecordSession(session("math", 1800, now.AddDate(0, 0, -1))))

	assert.Equal(t, int64(3600), s.TodaySeconds(now))
	assert.InDelta(t, 25.0, s.GoalProgress(now, 0), 0.001)
	assert.InDelta(t, 50.0, s.GoalProgress(now, 3600), 0.001)
	assert.Equal(t, 100.0, s.GoalProgress(now, 100000), "capped")
}

func TestDailyDetail(t *testing.T) {
	s, _ := newTestState(t)
	day := time.Date(2026, 4, 2, 8, 0, 0, 0, time.Local)
	require.NoError(t, s.RecordSession(session("math", 600, day)))
	require.NoError(t, s.RecordSession(session("coding", 900, day.Add(time.Hour))))
	require.NoError(t, s.RecordSession(session("math", 300, day.Add(2*time.Hour))))
	require.NoError(t, s.RecordSession(session("math", 50, day.AddDate(0, 0, 1))))

	detail := s.DailyDetail()
	require.Len(t, detail, 2)
	d := detail["2026-04-02"]
	require.NotNil(t, d)
	assert.Equal(t, int64(1800), d.Total)
	assert.Equal(t, map[string]int64{"math": 900, "coding": 900}, d.BySubject)
	assert.Len(t, d.Sessions, 3)
	assert.Equal(t, int64(50), detail["2026-04-03"].Total)
}

func TestBreakdown(t *testing.T) {
	s, _ := newTestState(t)
	now := time.Now()
	require.NoError(t, s.RecordSession(session("english", 100, now)))
	require.NoError(t, s.RecordSession(session("coding", 500, now)))
	require.NoError(t, s.RecordSession(session("english", 200, now)))
	require.NoError(t, s.RecordSession(session("ghost", 999, now)))

	got := s.Breakdown()
	require.Len(t, got, 2)
	assert.Equal(t, "coding", got[0].Subject.ID)
	assert.Equal(t, int64(500), got[0].Seconds)
	assert.Equal(t, "english", got[1].Subject.ID)
	assert.Equal(t, int64(300), got[1].Seconds)

	assert.Equal(t, int64(1799), s.TotalSeconds())
	assert.Equal(t, BronzeBadgeSeconds-1799, s.BadgeRemaining())
}

func TestBadgeRemainingFloorsAtZero(t *testing.T) {
	s, _ := newTestState(t)
	require.NoError(t, s.RecordSession(session("math", 40000, time.Now())))
	assert.Zero(t, s.BadgeRemaining())
}

func TestMonthSummary(t *testing.T) {
	s, _ := newTestState(t)
	assert.Equal(t, MonthSummary{}, s.MonthSummary(2026, time.April))

	apr := time.Date(2026, 4, 2, 9, 0, 0, 0, time.Local)
	require.NoError(t, s.RecordSession(session("math", 3600, apr)))
	require.NoError(t, s.RecordSession(session("coding", 1800, apr.Add(time.Hour))))
	require.NoError(t, s.RecordSession(session("math", 5400, apr.AddDate(0, 0, 10))))
	require.NoError(t, s.RecordSession(session("english", 1200, apr.AddDate(0, 1, 0))))

	m := s.MonthSummary(2026, time.April)
	assert.Equal(t, 3, m.ActiveDays, "distinct dates across all months")
	assert.Equal(t, int64(10800), m.MonthSeconds)
	assert.Equal(t, int64(3000), m.AvgSession)

	assert.Equal(t, int64(1200), s.MonthSummary(2026, time.May).MonthSeconds)
	assert.Zero(t, s.MonthSummary(2025, time.April).MonthSeconds)
}

func TestWeeklySummary(t *testing.T) {
	s, _ := newTestState(t)
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.Local)
	require.NoError(t, s.RecordSession(session("math", 700, now)))
	require.NoError(t, s.RecordSession(session("math", 700, now.AddDate(0, 0, -6))))
	require.NoError(t, s.RecordSession(session("math", 5000, now.AddDate(0, 0, -7))))

	w := s.WeeklySummary(now)
	assert.Equal(t, int64(1400), w.Total)
	assert.Equal(t, 2, w.Count)
	assert.InDelta(t, 200.0, w.Avg, 0.001)
}

func TestTasksByStatusKeepsOrder(t *testing.T) {
	s, _ := newTestState(t)
	a, _ := s.AddTask("a", store.StatusTodo, "")
	_, _ = s.AddTask("b", store.StatusDoing, "")
	c, _ := s.AddTask("c", store.StatusTodo, "")

	todo := s.TasksByStatus(store.StatusTodo)
	require.Len(t, todo, 2)
	assert.Equal(t, a.ID, todo[0].ID)
	assert.Equal(t, c.ID, todo[1].ID)
}
