package timelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoundsDuration(t *testing.T) {
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 90, New("Work", start, start.Add(90*time.Minute)).Duration)
	assert.Equal(t, 2, New("Work", start, start.Add(90*time.Second)).Duration)
	assert.Equal(t, 1, New("Work", start, start.Add(89*time.Second)).Duration)
	assert.Equal(t, 0, New("Work", start, start.Add(20*time.Second)).Duration)
}

func TestValidate(t *testing.T) {
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	ok := New("Work", start, start.Add(time.Hour))
	assert.NoError(t, ok.Validate())

	backwards := Entry{Tag: "Work", Start: start, End: start, Duration: 10}
	assert.ErrorIs(t, backwards.Validate(), ErrInvalidInterval)

	short := New("Work", start, start.Add(10*time.Second))
	assert.ErrorIs(t, short.Validate(), ErrInvalidDuration)

	noTag := New("", start, start.Add(time.Hour))
	assert.Error(t, noTag.Validate())

	noStart := Entry{Tag: "Work", End: start, Duration: 10}
	assert.ErrorIs(t, noStart.Validate(), ErrMissingTime)
}

func TestEditRewritesAllFields(t *testing.T) {
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	e := New("Work", start, start.Add(time.Hour))
	e.ID = "abc"

	newStart := start.Add(2 * time.Hour)
	newEnd := newStart.Add(30 * time.Minute)
	edited, err := e.Edit("Play", newStart, newEnd, 45)
	require.NoError(t, err)

	assert.Equal(t, Entry{ID: "abc", Tag: "Play", Start: newStart, End: newEnd, Duration: 45}, edited)
}

func TestEditRejectsInvalid(t *testing.T) {
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	e := New("Work", start, start.Add(time.Hour))

	got, err := e.Edit("Work", start, start.Add(-time.Minute), 10)
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.Equal(t, e, got)

	_, err = e.Edit("Work", start, start.Add(time.Hour), 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}
