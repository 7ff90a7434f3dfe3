package stats

import (
	"time"

	"tagtime/internal/tag"
	"tagtime/internal/timelog"
)

// SettlementView summarizes one calendar day by tag.
type SettlementView struct {
	Date         time.Time
	Empty        bool
	TotalMinutes int
	Total        string
	Tags         []TagTotal
}

// Settle totals the local calendar day containing day, per tag and overall.
// Tags are ordered by descending time; equal totals keep the order in which
// the tags first appear in entries.
func Settle(entries []timelog.Entry, tags []tag.Tag, day time.Time) SettlementView {
	loc := day.Location()
	key := dayKey(day, loc)
	view := SettlementView{Date: dayOf(day, loc)}

	totals := newTagTotals()
	found := false
	for _, e := range entries {
		if dayKey(e.Start, loc) != key {
			continue
		}
		found = true
		totals.add(e.Tag, e.Duration)
		view.TotalMinutes += e.Duration
	}
	if !found {
		view.Empty = true
		return view
	}

	view.Total = FormatMinutes(view.TotalMinutes)
	view.Tags = totals.sorted(newPalette(tags))
	return view
}
