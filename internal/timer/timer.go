package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"tagtime/internal/timelog"
)

var (
	ErrRunning    = errors.New("timer already running")
	ErrNotRunning = errors.New("timer not running")
)

// State is the persisted form of a running timer.
type State struct {
	Running   bool
	StartTime time.Time
	Tag       string
}

// Timer measures one session against a tag. Elapsed time is derived from
// the wall clock, so the display is correct after any pause in ticking.
type Timer struct {
	mu      sync.RWMutex
	running bool
	start   time.Time
	tag     string
}

func New() *Timer {
	return &Timer{}
}

func (t *Timer) Start(tag string, now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return ErrRunning
	}
	t.running = true
	t.start = now
	t.tag = tag
	return nil
}

// Stop ends the session and returns it as a log entry.
func (t *Timer) Stop(now time.Time) (timelog.Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return timelog.Entry{}, ErrNotRunning
	}
	entry := timelog.New(t.tag, t.start, now)
	t.running = false
	t.start = time.Time{}
	return entry, nil
}

func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = false
	t.start = time.Time{}
}

// Restore resumes a saved session. A stopped state resets the timer.
func (t *Timer) Restore(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = s.Running
	t.start = s.StartTime
	t.tag = s.Tag
	if !s.Running {
		t.start = time.Time{}
	}
}

func (t *Timer) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return State{Running: t.running, StartTime: t.start, Tag: t.tag}
}

func (t *Timer) Elapsed(now time.Time) time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.running {
		return 0
	}
	d := now.Sub(t.start)
	if d < 0 {
		return 0
	}
	return d
}

func (t *Timer) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}

// SetTag changes the tag of the next session.
func (t *Timer) SetTag(tag string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return ErrRunning
	}
	t.tag = tag
	return nil
}

func (t *Timer) Tag() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tag
}

// FormatElapsed renders d as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
