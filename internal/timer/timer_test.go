package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartStopProducesEntry(t *testing.T) {
	tm := New()
	start := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)

	require.NoError(t, tm.Start("Work", start))
	assert.True(t, tm.Running())
	assert.Equal(t, 90*time.Second, tm.Elapsed(start.Add(90*time.Second)))

	entry, err := tm.Stop(start.Add(25*time.Minute + 40*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "Work", entry.Tag)
	assert.Equal(t, start, entry.Start)
	assert.Equal(t, 26, entry.Duration)
	assert.False(t, tm.Running())
	assert.Zero(t, tm.Elapsed(start.Add(time.Hour)))
}

func TestStartTwiceFails(t *testing.T) {
	tm := New()
	now := time.Now()
	require.NoError(t, tm.Start("Work", now))
	assert.ErrorIs(t, tm.Start("Play", now), ErrRunning)
	assert.ErrorIs(t, tm.SetTag("Play"), ErrRunning)
	assert.Equal(t, "Work", tm.Tag())
}

func TestStopWhenIdleFails(t *testing.T) {
	_, err := New().Stop(time.Now())
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestRestoreAndState(t *testing.T) {
	start := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)
	tm := New()
	tm.Restore(State{Running: true, StartTime: start, Tag: "Play"})

	assert.Equal(t, State{Running: true, StartTime: start, Tag: "Play"}, tm.State())
	assert.Equal(t, time.Hour, tm.Elapsed(start.Add(time.Hour)))

	tm.Reset()
	assert.False(t, tm.Running())
	assert.Equal(t, "Play", tm.Tag())
}

func TestElapsedNeverNegative(t *testing.T) {
	tm := New()
	start := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)
	require.NoError(t, tm.Start("Work", start))
	assert.Zero(t, tm.Elapsed(start.Add(-time.Minute)))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatElapsed(0))
	assert.Equal(t, "00:01:05", FormatElapsed(65*time.Second))
	assert.Equal(t, "26:00:01", FormatElapsed(26*time.Hour+time.Second))
}

func TestConcurrentAccess(t *testing.T) {
	tm := New()
	now := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = tm.Start("Work", now)
		}()
		go func() {
			defer wg.Done()
			_ = tm.Elapsed(now)
			_ = tm.State()
		}()
	}
	wg.Wait()
	assert.True(t, tm.Running())
}
