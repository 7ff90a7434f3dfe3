package stats

import (
	"sort"
	"time"

	"tagtime/internal/tag"
	"tagtime/internal/timelog"
)

// MonthDays is the length of the rolling month window.
const MonthDays = 28

// MonthCell is the time of one catalog tag in one week.
type MonthCell struct {
	Tag     string
	Color   string
	Minutes int
	// Label is Placeholder when Minutes is zero.
	Label string
}

// WeekRow is one Sunday-started calendar week.
type WeekRow struct {
	Start time.Time
	End   time.Time
	Label string
	// Cells follow MonthView.Columns.
	Cells []MonthCell
}

// MonthView is a week-by-tag table of the last 28 days.
type MonthView struct {
	Empty   bool
	From    time.Time
	To      time.Time
	Columns []tag.Tag
	// Weeks is ordered newest first.
	Weeks []WeekRow
}

// WeekStart returns local midnight of the Sunday on or before t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	d := dayOf(t, loc)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

type weekAccumulator struct {
	start  time.Time
	totals *tagTotals
}

// Month buckets entries that started within [now-28d, now] into calendar
// weeks. Buckets are anchored to Sundays, not to the window edge, so the
// oldest row usually covers only part of its week. Columns are the whole
// catalog in catalog order; time recorded against a tag that is no longer
// in the catalog has no column.
func Month(entries []timelog.Entry, tags []tag.Tag, now time.Time, f Format) MonthView {
	loc := now.Location()
	view := MonthView{
		From:    now.AddDate(0, 0, -MonthDays),
		To:      now,
		Columns: append([]tag.Tag(nil), tags...),
	}

	weeks := make(map[string]*weekAccumulator)
	for _, e := range entries {
		if !inWindow(e.Start, now, MonthDays) {
			continue
		}
		start := WeekStart(e.Start, loc)
		key := start.Format("2006-01-02")
		w, ok := weeks[key]
		if !ok {
			w = &weekAccumulator{start: start, totals: newTagTotals()}
			weeks[key] = w
		}
		w.totals.add(e.Tag, e.Duration)
	}
	if len(weeks) == 0 {
		view.Empty = true
		return view
	}

	view.Weeks = make([]WeekRow, 0, len(weeks))
	for _, w := range weeks {
		end := w.start.AddDate(0, 0, 6)
		row := WeekRow{
			Start: w.start,
			End:   end,
			Label: w.start.Format(f.Week) + " - " + end.Format(f.Week),
			Cells: make([]MonthCell, 0, len(tags)),
		}
		for _, t := range tags {
			minutes := w.totals.get(t.Name)
			label := Placeholder
			if minutes > 0 {
				label = FormatMinutes(minutes)
			}
			row.Cells = append(row.Cells, MonthCell{
				Tag:     t.Name,
				Color:   t.Color,
				Minutes: minutes,
				Label:   label,
			})
		}
		view.Weeks = append(view.Weeks, row)
	}
	sort.Slice(view.Weeks, func(i, j int) bool {
		return view.Weeks[i].Start.After(view.Weeks[j].Start)
	})
	return view
}
