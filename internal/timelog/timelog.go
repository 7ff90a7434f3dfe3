package timelog

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tagtime/internal/validate"
)

var (
	ErrInvalidInterval = errors.New("end time must be after start time")
	ErrInvalidDuration = errors.New("duration must be at least one minute")
	ErrMissingTime     = errors.New("start and end time are required")
)

// Entry is one completed timer session. Duration is in whole minutes and is
// trusted as stored; it may diverge from End-Start after a manual edit.
type Entry struct {
	ID       string
	Tag      string    `validate:"required"`
	Start    time.Time
	End      time.Time
	Duration int
}

// New builds an entry for the interval [start, end) with its duration
// rounded to the nearest minute.
func New(tag string, start, end time.Time) Entry {
	return Entry{
		Tag:      tag,
		Start:    start,
		End:      end,
		Duration: Minutes(start, end),
	}
}

// Minutes returns the interval length rounded to the nearest whole minute.
func Minutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

func (e Entry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid log entry: %w", err)
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return ErrMissingTime
	}
	if !e.End.After(e.Start) {
		return ErrInvalidInterval
	}
	if e.Duration < 1 {
		return ErrInvalidDuration
	}
	return nil
}

// Edit returns a copy of e with all four editable fields replaced. The
// result is validated as a whole; on error e is left as it was.
func (e Entry) Edit(tag string, start, end time.Time, duration int) (Entry, error) {
	edited := Entry{
		ID:       e.ID,
		Tag:      tag,
		Start:    start,
		End:      end,
		Duration: duration,
	}
	if err := edited.Validate(); err != nil {
		return e, err
	}
	return edited, nil
}
