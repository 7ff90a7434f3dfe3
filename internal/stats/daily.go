package stats

import (
	"sort"
	"time"

	"tagtime/internal/tag"
	"tagtime/internal/timelog"
)

// DailyEntry is one row of the day view.
type DailyEntry struct {
	// Index is the entry's position in the collection passed to Daily.
	Index      int
	Tag        string
	Color      string
	TextColor  string
	Start      time.Time
	End        time.Time
	StartLabel string
	EndLabel   string
	Duration   int
	// Cumulative is the running total of this entry and every entry of
	// the day that started before it.
	Cumulative      int
	CumulativeLabel string
}

// DailyView lists the entries of one calendar day, most recent first.
type DailyView struct {
	Date         time.Time
	Empty        bool
	TotalMinutes int
	Entries      []DailyEntry
}

// Daily builds the view for the local calendar day containing day.
func Daily(entries []timelog.Entry, tags []tag.Tag, day time.Time, f Format) DailyView {
	loc := day.Location()
	key := dayKey(day, loc)
	view := DailyView{Date: dayOf(day, loc)}

	var positions []int
	for i, e := range entries {
		if dayKey(e.Start, loc) == key {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		view.Empty = true
		return view
	}

	sort.SliceStable(positions, func(a, b int) bool {
		return entries[positions[a]].Start.Before(entries[positions[b]].Start)
	})

	// Running totals live alongside the sorted positions, so two entries
	// that share a start instant keep separate totals.
	cumulative := make([]int, len(positions))
	for i, pos := range positions {
		prev := 0
		if i > 0 {
			prev = cumulative[i-1]
		}
		cumulative[i] = prev + entries[pos].Duration
	}
	view.TotalMinutes = cumulative[len(cumulative)-1]

	p := newPalette(tags)
	view.Entries = make([]DailyEntry, 0, len(positions))
	for i := len(positions) - 1; i >= 0; i-- {
		e := entries[positions[i]]
		color := p.color(e.Tag)
		view.Entries = append(view.Entries, DailyEntry{
			Index:           positions[i],
			Tag:             e.Tag,
			Color:           color,
			TextColor:       ContrastColor(color),
			Start:           e.Start,
			End:             e.End,
			StartLabel:      e.Start.In(loc).Format(f.Time),
			EndLabel:        e.End.In(loc).Format(f.Time),
			Duration:        e.Duration,
			Cumulative:      cumulative[i],
			CumulativeLabel: FormatMinutes(cumulative[i]),
		})
	}
	return view
}
