package stats

import (
	"fmt"
	"sort"
	"time"

	"tagtime/internal/tag"
)

const (
	// FallbackColor paints entries whose tag is no longer in the catalog.
	FallbackColor = "#3498db"

	// Placeholder fills month cells with no recorded time.
	Placeholder = "-"
)

// Format holds the time.Format layouts used for clock, date and week labels.
type Format struct {
	Time string
	Date string
	Week string
}

// DefaultFormat renders "14:05", "Thu Mar 07 2024" and "Mar 3".
var DefaultFormat = Format{
	Time: "15:04",
	Date: "Mon Jan 02 2006",
	Week: "Jan 2",
}

// TagTotal is the time recorded against one tag in some range.
type TagTotal struct {
	Name      string
	Color     string
	TextColor string
	Minutes   int
	Label     string
	// Percentage is Minutes relative to the largest total in the same list.
	Percentage float64
}

// FormatMinutes renders minutes as "2h 5m", or "45m" below one hour.
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

type palette map[string]string

func newPalette(tags []tag.Tag) palette {
	p := make(palette, len(tags))
	for _, t := range tags {
		p[t.Name] = t.Color
	}
	return p
}

func (p palette) color(name string) string {
	if c, ok := p[name]; ok {
		return c
	}
	return FallbackColor
}

// dayOf truncates t to local midnight in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// inWindow reports whether start lies in [now - days, now].
func inWindow(start, now time.Time, days int) bool {
	from := now.AddDate(0, 0, -days)
	return !start.Before(from) && !start.After(now)
}

// tagTotals accumulates minutes per tag name and remembers the order in
// which names were first seen so ties sort deterministically.
type tagTotals struct {
	order   []string
	minutes map[string]int
}

func newTagTotals() *tagTotals {
	return &tagTotals{minutes: make(map[string]int)}
}

func (t *tagTotals) add(name string, minutes int) {
	if _, ok := t.minutes[name]; !ok {
		t.order = append(t.order, name)
	}
	t.minutes[name] += minutes
}

func (t *tagTotals) get(name string) int {
	return t.minutes[name]
}

func (t *tagTotals) max() int {
	m := 0
	for _, v := range t.minutes {
		if v > m {
			m = v
		}
	}
	return m
}

// sorted returns the totals in descending order of minutes.
func (t *tagTotals) sorted(p palette) []TagTotal {
	maxMinutes := t.max()
	items := make([]TagTotal, 0, len(t.order))
	for _, name := range t.order {
		minutes := t.minutes[name]
		color := p.color(name)
		items = append(items, TagTotal{
			Name:       name,
			Color:      color,
			TextColor:  ContrastColor(color),
			Minutes:    minutes,
			Label:      FormatMinutes(minutes),
			Percentage: percentage(minutes, maxMinutes),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Minutes > items[j].Minutes
	})
	return items
}

func percentage(minutes, maxMinutes int) float64 {
	if maxMinutes <= 0 {
		return 0
	}
	return float64(minutes) / float64(maxMinutes) * 100
}
