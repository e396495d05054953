package state

import (
	"slices"
	"strings"
	"time"

	"github.com/sadopc/focusflow/internal/catalog"
	"github.com/sadopc/focusflow/internal/store"
)

// BronzeBadgeSeconds is the lifetime total that earns the "Bronze Focus" badge.
const BronzeBadgeSeconds int64 = 36000

// WeeklyTarget is the 7-day total at which the weekly bar is full.
const WeeklyTarget int64 = 144000

// Subject resolves id, falling back to the Unknown placeholder.
func (s *State) Subject(id string) store.Subject {
	for _, subj := range s.subjects {
		if subj.ID == id {
			return subj
		}
	}
	return store.Subject{ID: id, Name: catalog.UnknownSubjectName, Color: catalog.UnknownSubjectColor}
}

// TaskSubjectLabel is the name shown on a task card.
func (s *State) TaskSubjectLabel(t store.Task) string {
	if t.SubjectID == "" {
		return catalog.GeneralSubjectName
	}
	return s.Subject(t.SubjectID).Name
}

func (s *State) Theme() catalog.Theme {
	return catalog.ThemeByID(s.themeID)
}

func (s *State) TasksByStatus(status store.TaskStatus) []store.Task {
	var out []store.Task
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// TodaySeconds sums the sessions dated on now's local calendar day.
func (s *State) TodaySeconds(now time.Time) int64 {
	today := store.LocalDate(now)
	var total int64
	for _, sess := range s.sessions {
		if sess.Date == today {
			total += sess.Duration
		}
	}
	return total
}

// GoalProgress returns today's progress towards the daily goal as a
// percentage in [0, 100], counting the seconds of the current run.
func (s *State) GoalProgress(now time.Time, running int64) float64 {
	goal := s.dailyGoal
	if goal <= 0 {
		goal = store.DefaultDailyGoal
	}
	pct := float64(s.TodaySeconds(now)+running) / float64(goal) * 100
	return min(pct, 100)
}

func (s *State) TotalSeconds() int64 {
	var total int64
	for _, sess := range s.sessions {
		total += sess.Duration
	}
	return total
}

type DayDetail struct {
	Total     int64
	BySubject map[string]int64
	Sessions  []store.StudySession
}

// DailyDetail groups sessions by their date.
func (s *State) DailyDetail() map[string]*DayDetail {
	days := make(map[string]*DayDetail)
	for _, sess := range s.sessions {
		d, ok := days[sess.Date]
		if !ok {
			d = &DayDetail{BySubject: make(map[string]int64)}
			days[sess.Date] = d
		}
		d.Total += sess.Duration
		d.BySubject[sess.SubjectID] += sess.Duration
		d.Sessions = append(d.Sessions, sess)
	}
	return days
}

type SubjectTotal struct {
	Subject store.Subject
	Seconds int64
}

// Breakdown totals time per known subject, most studied first. Subjects
// with no time and sessions of removed subjects are left out.
func (s *State) Breakdown() []SubjectTotal {
	totals := make(map[string]int64, len(s.subjects))
	for _, sess := range s.sessions {
		totals[sess.SubjectID] += sess.Duration
	}
	var out []SubjectTotal
	for _, subj := range s.subjects {
		if v := totals[subj.ID]; v > 0 {
			out = append(out, SubjectTotal{Subject: subj, Seconds: v})
		}
	}
	slices.SortStableFunc(out, func(a, b SubjectTotal) int {
		switch {
		case a.Seconds > b.Seconds:
			return -1
		case a.Seconds < b.Seconds:
			return 1
		}
		return 0
	})
	return out
}

type WeeklySummary struct {
	Total int64
	Avg   float64 // seconds per day over 7 days
	Count int
}

// WeeklySummary covers the 7 local days ending today.
func (s *State) WeeklySummary(now time.Time) WeeklySummary {
	from := store.LocalDate(now.AddDate(0, 0, -6))
	to := store.LocalDate(now)
	var w WeeklySummary
	for _, sess := range s.sessions {
		if sess.Date >= from && sess.Date <= to {
			w.Total += sess.Duration
			w.Count++
		}
	}
	w.Avg = float64(w.Total) / 7
	return w
}

// MonthSummary backs the row under the calendar grid. ActiveDays and
// AvgSession span all sessions; MonthSeconds covers only the shown month.
type MonthSummary struct {
	ActiveDays   int
	MonthSeconds int64
	AvgSession   int64
}

func (s *State) MonthSummary(year int, month time.Month) MonthSummary {
	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Format("2006-01") + "-"
	days := make(map[string]struct{})
	var m MonthSummary
	var total int64
	for _, sess := range s.sessions {
		days[sess.Date] = struct{}{}
		total += sess.Duration
		if strings.HasPrefix(sess.Date, prefix) {
			m.MonthSeconds += sess.Duration
		}
	}
	m.ActiveDays = len(days)
	if len(s.sessions) > 0 {
		m.AvgSession = total / int64(len(s.sessions))
	}
	return m
}

// BadgeRemaining is the time left until the Bronze Focus badge.
func (s *State) BadgeRemaining() int64 {
	return max(BronzeBadgeSeconds-s.TotalSeconds(), 0)
}
