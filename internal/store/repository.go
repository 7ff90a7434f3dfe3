package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tagtime/internal/tag"
	"tagtime/internal/timelog"

	_ "modernc.org/sqlite"
)

var ErrIndexOutOfRange = errors.New("log index out of range")

// Repository persists the tag catalog, the log collection and the timer
// state in a single SQLite file.
type Repository struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

func NewRepository(path string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set %q: %w", pragma, err)
		}
	}

	repo := &Repository{db: db, path: path, logger: logger}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return repo, nil
}

func (r *Repository) init() error {
	tagsQuery := `
	CREATE TABLE IF NOT EXISTS tags (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		color TEXT NOT NULL
	)
	`
	if _, err := r.db.Exec(tagsQuery); err != nil {
		return err
	}

	timeLogsQuery := `
	CREATE TABLE IF NOT EXISTS time_logs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		tag TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at TEXT NOT NULL,
		duration INTEGER NOT NULL
	)
	`
	if _, err := r.db.Exec(timeLogsQuery); err != nil {
		return err
	}

	timerStateQuery := `
	CREATE TABLE IF NOT EXISTS timer_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		running INTEGER NOT NULL DEFAULT 0,
		started_at TEXT NOT NULL,
		tag TEXT NOT NULL
	)
	`
	if _, err := r.db.Exec(timerStateQuery); err != nil {
		return err
	}

	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tags").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		_, err := r.db.Exec("INSERT INTO tags (name, color) VALUES (?, ?)", tag.Default.Name, tag.Default.Color)
		return err
	}
	return nil
}

// Path returns the database file location.
func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) ReadTags() ([]tag.Tag, error) {
	rows, err := r.db.Query("SELECT name, color FROM tags ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []tag.Tag
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.Name, &t.Color); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// AddTag appends t to the catalog after checking the catalog rules.
func (r *Repository) AddTag(t tag.Tag) error {
	tags, err := r.ReadTags()
	if err != nil {
		return err
	}
	if err := tag.CheckAdd(tags, t); err != nil {
		return err
	}
	if _, err := r.db.Exec("INSERT INTO tags (name, color) VALUES (?, ?)", t.Name, t.Color); err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	r.logger.Debug("tag added", zap.String("name", t.Name), zap.String("color", t.Color))
	return nil
}

// DeleteTag removes the named tag. Logs that reference it are kept.
func (r *Repository) DeleteTag(name string) error {
	tags, err := r.ReadTags()
	if err != nil {
		return err
	}
	if err := tag.CheckDelete(tags, name); err != nil {
		return err
	}
	if _, err := r.db.Exec("DELETE FROM tags WHERE name = ?", name); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	r.logger.Debug("tag deleted", zap.String("name", name))
	return nil
}

// ReadLogs returns every log in insertion order.
func (r *Repository) ReadLogs() ([]timelog.Entry, error) {
	rows, err := r.db.Query("SELECT id, tag, started_at, ended_at, duration FROM time_logs ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []timelog.Entry
	for rows.Next() {
		var l timelog.Entry
		var startedAt, endedAt string
		if err := rows.Scan(&l.ID, &l.Tag, &startedAt, &endedAt, &l.Duration); err != nil {
			return nil, err
		}
		if l.Start, err = parseTime(startedAt); err != nil {
			return nil, fmt.Errorf("log %s: start: %w", l.ID, err)
		}
		if l.End, err = parseTime(endedAt); err != nil {
			return nil, fmt.Errorf("log %s: end: %w", l.ID, err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// AppendLog validates and stores l at the end of the collection. The stored
// entry, with its new ID, is returned.
func (r *Repository) AppendLog(l timelog.Entry) (timelog.Entry, error) {
	if err := l.Validate(); err != nil {
		return l, err
	}
	l.ID = uuid.NewString()
	_, err := r.db.Exec(
		"INSERT INTO time_logs (id, tag, started_at, ended_at, duration) VALUES (?, ?, ?, ?, ?)",
		l.ID, l.Tag, formatTime(l.Start), formatTime(l.End), l.Duration,
	)
	if err != nil {
		return l, fmt.Errorf("insert log: %w", err)
	}
	r.logger.Debug("log appended",
		zap.String("id", l.ID),
		zap.String("tag", l.Tag),
		zap.Int("duration", l.Duration),
	)
	return l, nil
}

// UpdateLog rewrites the log at position index with l.
func (r *Repository) UpdateLog(index int, l timelog.Entry) error {
	if err := l.Validate(); err != nil {
		return err
	}
	id, err := r.idAt(index)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(
		"UPDATE time_logs SET tag = ?, started_at = ?, ended_at = ?, duration = ? WHERE id = ?",
		l.Tag, formatTime(l.Start), formatTime(l.End), l.Duration, id,
	)
	if err != nil {
		return fmt.Errorf("update log: %w", err)
	}
	r.logger.Debug("log updated", zap.Int("index", index), zap.String("id", id))
	return nil
}

// DeleteLog removes the log at position index.
func (r *Repository) DeleteLog(index int) error {
	id, err := r.idAt(index)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec("DELETE FROM time_logs WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	r.logger.Debug("log deleted", zap.Int("index", index), zap.String("id", id))
	return nil
}

func (r *Repository) idAt(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	var id string
	err := r.db.QueryRow("SELECT id FROM time_logs ORDER BY seq LIMIT 1 OFFSET ?", index).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return id, err
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}
