package store

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// StudySession is a completed, timed block of focus on one subject.
type StudySession struct {
	ID        string `json:"id"`
	SubjectID string `json:"subjectId"`
	Duration  int64  `json:"duration"`  // seconds
	StartTime int64  `json:"startTime"` // epoch milliseconds
	Date      string `json:"date"`      // YYYY-MM-DD, local calendar
}

// Start returns StartTime as a local time.Time.
func (s StudySession) Start() time.Time {
	return time.UnixMilli(s.StartTime).Local()
}

type TaskStatus string

const (
	StatusTodo  TaskStatus = "todo"
	StatusDoing TaskStatus = "doing"
	StatusDone  TaskStatus = "done"
)

// TaskStatuses lists the board columns in display order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusDoing, StatusDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	SubjectID string     `json:"subjectId,omitempty"`
}

// NewID returns a random unique identifier.
func NewID() string {
	return uuid.NewString()
}

// LocalDate formats t's local calendar date as YYYY-MM-DD.
func LocalDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// NewSession builds a session started at start and lasting duration seconds.
// The date comes from the local calendar of start, not of the end instant.
func NewSession(subjectID string, duration int64, start time.Time) StudySession {
	return StudySession{
		ID:        NewID(),
		SubjectID: subjectID,
		Duration:  duration,
		StartTime: start.UnixMilli(),
		Date:      LocalDate(start),
	}
}
