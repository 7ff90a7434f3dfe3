package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tagtime/internal/tag"
	"tagtime/internal/timelog"
)

var kst = time.FixedZone("KST", 9*60*60)

var testTags = []tag.Tag{
	{Name: "Work", Color: "#e74c3c"},
	{Name: "Play", Color: "#f1c40f"},
	{Name: "Rest", Color: "#2ecc71"},
}

// at returns a KST wall-clock time.
func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, kst)
}

// entry builds a log entry whose end is start+minutes.
func entry(tagName string, start time.Time, minutes int) timelog.Entry {
	return timelog.Entry{
		Tag:      tagName,
		Start:    start,
		End:      start.Add(time.Duration(minutes) * time.Minute),
		Duration: minutes,
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h 0m", FormatMinutes(60))
	assert.Equal(t, "2h 5m", FormatMinutes(125))
}

func TestTagTotalsSortedStableOnTies(t *testing.T) {
	totals := newTagTotals()
	totals.add("B", 10)
	totals.add("A", 10)
	totals.add("C", 30)

	got := totals.sorted(newPalette(nil))
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	assert.Equal(t, []string{"C", "B", "A"}, names)
	assert.InDelta(t, 100.0, got[0].Percentage, 1e-9)
	assert.InDelta(t, 33.333, got[1].Percentage, 1e-3)
	assert.Equal(t, FallbackColor, got[0].Color)
}

func TestPercentageGuardsZero(t *testing.T) {
	assert.Equal(t, 0.0, percentage(10, 0))
	assert.Equal(t, 50.0, percentage(10, 20))
}

func TestEmptyCollectionGivesEmptyViews(t *testing.T) {
	now := at(2024, 3, 7, 18, 0)

	daily := Daily(nil, testTags, now, DefaultFormat)
	assert.True(t, daily.Empty)
	assert.Empty(t, daily.Entries)

	settle := Settle(nil, testTags, now)
	assert.True(t, settle.Empty)
	assert.Empty(t, settle.Tags)

	week := Week(nil, testTags, now, DefaultFormat)
	assert.True(t, week.Empty)
	assert.Empty(t, week.Days)
	assert.Empty(t, week.Tags)

	month := Month(nil, testTags, now, DefaultFormat)
	assert.True(t, month.Empty)
	assert.Empty(t, month.Weeks)
}

func TestDeletedTagFallsBackToDefaultColor(t *testing.T) {
	now := at(2024, 3, 7, 18, 0)
	entries := []timelog.Entry{
		entry("Gone", at(2024, 3, 7, 9, 0), 15),
	}

	daily := Daily(entries, testTags, now, DefaultFormat)
	assert.Len(t, daily.Entries, 1)
	assert.Equal(t, "Gone", daily.Entries[0].Tag)
	assert.Equal(t, FallbackColor, daily.Entries[0].Color)
	assert.Equal(t, LightText, daily.Entries[0].TextColor)

	settle := Settle(entries, testTags, now)
	assert.Equal(t, "Gone", settle.Tags[0].Name)
	assert.Equal(t, FallbackColor, settle.Tags[0].Color)

	week := Week(entries, testTags, now, DefaultFormat)
	assert.Equal(t, "Gone", week.Tags[0].Name)
	assert.Equal(t, FallbackColor, week.Tags[0].Color)
	assert.Equal(t, FallbackColor, week.Days[0].Tags[0].Color)
}

func TestAggregatorsDoNotMutateInput(t *testing.T) {
	now := at(2024, 3, 7, 18, 0)
	entries := []timelog.Entry{
		entry("Work", at(2024, 3, 7, 15, 0), 30),
		entry("Play", at(2024, 3, 7, 9, 0), 10),
	}
	tags := append([]tag.Tag(nil), testTags...)
	snapshot := append([]timelog.Entry(nil), entries...)

	Daily(entries, tags, now, DefaultFormat)
	Settle(entries, tags, now)
	Week(entries, tags, now, DefaultFormat)
	Month(entries, tags, now, DefaultFormat)

	assert.Equal(t, snapshot, entries)
	assert.Equal(t, testTags, tags)
}
