// Package timer is the focus timer state machine.
//
// A run starts at the ignition instant and accumulates one second per tick
// while Running. Pausing keeps the seconds and the ignition instant; stopping
// a run with time on it materializes exactly one StudySession and hands it to
// the Recorder.
//
// Ticks are driven from outside (the UI event loop) and carry the Handle of
// the Running period that scheduled them. Leaving Running cancels the handle,
// so a tick that was already in flight is dropped instead of counted.
package timer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sadopc/focusflow/internal/logging"
	"github.com/sadopc/focusflow/internal/store"
)

type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "idle"
}

// ErrRunning is returned when the subject is changed mid-run.
var ErrRunning = errors.New("timer is running")

// Recorder persists a completed session.
type Recorder interface {
	RecordSession(store.StudySession) error
}

// Handle identifies one Running period. The zero Handle is never live.
type Handle uint64

type Timer struct {
	rec Recorder
	now func() time.Time
	log *slog.Logger

	state     State
	seconds   int64
	subjectID string
	ignition  time.Time

	handle Handle // live handle while Running, else 0
	issued Handle
}

type Option func(*Timer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

func New(rec Recorder, opts ...Option) *Timer {
	t := &Timer{
		rec: rec,
		now: time.Now,
		log: logging.For("timer"),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Timer) State() State        { return t.state }
func (t *Timer) Seconds() int64      { return t.seconds }
func (t *Timer) SubjectID() string   { return t.subjectID }
func (t *Timer) Ignition() time.Time { return t.ignition }
func (t *Timer) Running() bool       { return t.state == Running }
func (t *Timer) Paused() bool        { return t.state == Paused }

// Handle returns the live handle, or 0 when not Running.
func (t *Timer) Handle() Handle { return t.handle }

// SelectSubject sets the subject the next session is attributed to.
func (t *Timer) SelectSubject(id string) error {
	if t.state == Running {
		return ErrRunning
	}
	t.subjectID = id
	return nil
}

// Toggle starts an idle timer, resumes a paused one, or stops a running one.
// Stopping returns the recorded session, or nil when no time had accumulated.
func (t *Timer) Toggle() (*store.StudySession, error) {
	switch t.state {
	case Idle:
		t.ignition = t.now()
		t.start()
		t.log.Debug("timer started", "subject", t.subjectID)
	case Paused:
		t.start()
		t.log.Debug("timer resumed", "seconds", t.seconds)
	case Running:
		return t.stop()
	}
	return nil, nil
}

// Pause stops counting but keeps the accumulated seconds. A run with no
// seconds yet simply returns to Idle.
func (t *Timer) Pause() {
	if t.state != Running {
		return
	}
	t.Cancel()
	if t.seconds == 0 {
		t.clear()
		return
	}
	t.state = Paused
	t.log.Debug("timer paused", "seconds", t.seconds)
}

// Reset discards the current run without recording anything.
func (t *Timer) Reset() {
	t.Cancel()
	if t.seconds > 0 {
		t.log.Debug("timer reset", "discarded", t.seconds)
	}
	t.clear()
}

// Tick counts one second if h is the live handle. It reports whether the
// tick was counted, i.e. whether the caller should schedule the next one.
func (t *Timer) Tick(h Handle) bool {
	if t.state != Running || h == 0 || h != t.handle {
		return false
	}
	t.seconds++
	return true
}

// Cancel invalidates the live handle. It is safe to call repeatedly and does
// not change the state on its own.
func (t *Timer) Cancel() {
	t.handle = 0
}

func (t *Timer) start() {
	t.issued++
	t.handle = t.issued
	t.state = Running
}

func (t *Timer) stop() (*store.StudySession, error) {
	t.Cancel()
	if t.seconds == 0 {
		t.clear()
		return nil, nil
	}

	start := t.ignition
	if start.IsZero() {
		start = t.now()
		t.log.Warn("ignition instant missing, using stop time", "seconds", t.seconds)
	}
	sess := store.NewSession(t.subjectID, t.seconds, start)
	if err := t.rec.RecordSession(sess); err != nil {
		// Keep the time so the run can be resumed and stopped again.
		t.state = Paused
		return nil, fmt.Errorf("record session: %w", err)
	}
	t.log.Info("session recorded", "id", sess.ID, "subject", sess.SubjectID, "duration", sess.Duration, "date", sess.Date)
	t.clear()
	return &sess, nil
}

func (t *Timer) clear() {
	t.state = Idle
	t.seconds = 0
	t.ignition = time.Time{}
}
