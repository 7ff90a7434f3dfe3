package stats

import (
	"time"

	"tagtime/internal/tag"
	"tagtime/internal/timelog"
)

// HistoryEntry is one row of the full log list.
type HistoryEntry struct {
	// Index is the entry's position in the collection passed to History.
	Index      int
	Tag        string
	Color      string
	TextColor  string
	Start      time.Time
	End        time.Time
	DateLabel  string
	StartLabel string
	EndLabel   string
	Duration   int
	Label      string
}

// History lists every entry, most recently added first. Times are shown
// in loc.
func History(entries []timelog.Entry, tags []tag.Tag, loc *time.Location, f Format) []HistoryEntry {
	p := newPalette(tags)
	rows := make([]HistoryEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		color := p.color(e.Tag)
		rows = append(rows, HistoryEntry{
			Index:      i,
			Tag:        e.Tag,
			Color:      color,
			TextColor:  ContrastColor(color),
			Start:      e.Start,
			End:        e.End,
			DateLabel:  e.Start.In(loc).Format(f.Date),
			StartLabel: e.Start.In(loc).Format(f.Time),
			EndLabel:   e.End.In(loc).Format(f.Time),
			Duration:   e.Duration,
			Label:      FormatMinutes(e.Duration),
		})
	}
	return rows
}
