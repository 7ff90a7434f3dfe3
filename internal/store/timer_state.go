package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tagtime/internal/timer"
)

// MaxTimerAge bounds how old a saved running timer may be and still be
// restored.
const MaxTimerAge = 24 * time.Hour

func (r *Repository) SaveTimerState(s timer.State) error {
	if !s.Running {
		return r.ClearTimerState()
	}
	_, err := r.db.Exec(
		`INSERT INTO timer_state (id, running, started_at, tag) VALUES (1, 1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET running = excluded.running, started_at = excluded.started_at, tag = excluded.tag`,
		formatTime(s.StartTime), s.Tag,
	)
	if err != nil {
		return fmt.Errorf("save timer state: %w", err)
	}
	r.logger.Debug("timer state saved", zap.String("tag", s.Tag), zap.Time("start", s.StartTime))
	return nil
}

// LoadTimerState returns the saved running timer if it started less than
// MaxTimerAge before now. Older state is discarded.
func (r *Repository) LoadTimerState(now time.Time) (timer.State, bool, error) {
	var running int
	var startedAt, tagName string
	err := r.db.QueryRow("SELECT running, started_at, tag FROM timer_state WHERE id = 1").
		Scan(&running, &startedAt, &tagName)
	if errors.Is(err, sql.ErrNoRows) {
		return timer.State{}, false, nil
	}
	if err != nil {
		return timer.State{}, false, err
	}

	start, err := parseTime(startedAt)
	if err != nil {
		r.logger.Warn("discarding unreadable timer state", zap.Error(err))
		return timer.State{}, false, r.ClearTimerState()
	}
	if running != 1 || now.Sub(start) >= MaxTimerAge {
		r.logger.Info("discarding stale timer state", zap.Time("start", start))
		return timer.State{}, false, r.ClearTimerState()
	}

	return timer.State{Running: true, StartTime: start, Tag: tagName}, true, nil
}

func (r *Repository) ClearTimerState() error {
	if _, err := r.db.Exec("DELETE FROM timer_state"); err != nil {
		return fmt.Errorf("clear timer state: %w", err)
	}
	return nil
}
