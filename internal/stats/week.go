package stats

import (
	"math"
	"sort"
	"time"

	"tagtime/internal/tag"
	"tagtime/internal/timelog"
)

// WeekDays is the length of the rolling week window.
const WeekDays = 7

// DayBreakdown is one calendar day inside the week window.
type DayBreakdown struct {
	Date         time.Time
	Label        string
	TotalMinutes int
	Total        string
	Tags         []TagTotal
}

// WeekView holds the statistics of the last seven days.
type WeekView struct {
	Empty bool
	From  time.Time
	To    time.Time

	TotalMinutes int
	Total        string
	// AverageMinutes always divides by seven, however many days have data.
	AverageMinutes int
	Average        string
	RecordedDays   int

	// MaxTagMinutes is the denominator of every TagTotal.Percentage in Tags.
	MaxTagMinutes int
	Tags          []TagTotal
	// Days is ordered newest first.
	Days []DayBreakdown
}

type dayAccumulator struct {
	date   time.Time
	total  int
	totals *tagTotals
}

// Week aggregates entries that started within [now-7d, now].
func Week(entries []timelog.Entry, tags []tag.Tag, now time.Time, f Format) WeekView {
	loc := now.Location()
	view := WeekView{From: now.AddDate(0, 0, -WeekDays), To: now}

	totals := newTagTotals()
	days := make(map[string]*dayAccumulator)
	for _, e := range entries {
		if !inWindow(e.Start, now, WeekDays) {
			continue
		}
		view.TotalMinutes += e.Duration
		totals.add(e.Tag, e.Duration)

		key := dayKey(e.Start, loc)
		d, ok := days[key]
		if !ok {
			d = &dayAccumulator{date: dayOf(e.Start, loc), totals: newTagTotals()}
			days[key] = d
		}
		d.total += e.Duration
		d.totals.add(e.Tag, e.Duration)
	}
	if len(days) == 0 {
		view.Empty = true
		return view
	}

	p := newPalette(tags)
	view.Total = FormatMinutes(view.TotalMinutes)
	view.AverageMinutes = int(math.Round(float64(view.TotalMinutes) / WeekDays))
	view.Average = FormatMinutes(view.AverageMinutes)
	view.RecordedDays = len(days)
	view.MaxTagMinutes = totals.max()
	view.Tags = totals.sorted(p)

	view.Days = make([]DayBreakdown, 0, len(days))
	for _, d := range days {
		view.Days = append(view.Days, DayBreakdown{
			Date:         d.date,
			Label:        d.date.Format(f.Date),
			TotalMinutes: d.total,
			Total:        FormatMinutes(d.total),
			Tags:         d.totals.sorted(p),
		})
	}
	sort.Slice(view.Days, func(i, j int) bool {
		return view.Days[i].Date.After(view.Days[j].Date)
	})
	return view
}
