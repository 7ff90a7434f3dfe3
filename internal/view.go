package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tagtime/internal/stats"
	"tagtime/internal/tag"
	"tagtime/internal/timer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	inputInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Bold(true).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("235"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

const (
	viewWidth   = 80
	barWidth    = 30
	historyRows = 12
)

// chip paints text on a tag color with a legible foreground.
func chip(text, color string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(stats.ContrastColor(color))).
		Padding(0, 1).
		Render(text)
}

// fit truncates s to width terminal cells and pads it out to width.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func colored(text, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(viewWidth).Render("TagTime"))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Width(viewWidth).Align(lipgloss.Center).Render(m.now().Format(m.format.Date)))
	sb.WriteString("\n\n")
	sb.WriteString(m.tagBarView())
	sb.WriteString("\n\n")
	sb.WriteString(m.timerView())
	sb.WriteString("\n\n")
	sb.WriteString(m.tabsView())
	sb.WriteString("\n")

	switch m.Mode {
	case ViewDay:
		if m.ShowSettlement {
			sb.WriteString(m.settlementView())
			sb.WriteString("\n")
		}
		sb.WriteString(m.dayView())
	case ViewWeek:
		sb.WriteString(m.weekView())
	case ViewMonth:
		sb.WriteString(m.monthView())
	case ViewHistory:
		sb.WriteString(m.historyView())
	}
	sb.WriteString("\n")

	if m.ConfirmDelete {
		sb.WriteString(errorStyle.Render("Are you sure you want to delete this log? (y/n)"))
		sb.WriteString("\n")
	}
	if m.Err != nil {
		sb.WriteString(errorStyle.Render("Error: " + m.Err.Error()))
		sb.WriteString("\n")
	} else if m.Message != "" {
		sb.WriteString(messageStyle.Render(m.Message))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("Tag: ←/→ | Start/Stop: Enter | New tag: n | Delete tag: d | Views: 1-4 | Settle: s"))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Logs: ↑/↓ | Edit: e | Delete: x | Quit: q"))

	return sb.String()
}

func (m *Model) tagBarView() string {
	parts := make([]string, 0, len(m.Tags)+1)
	for i, t := range m.Tags {
		if i == m.SelectedTag {
			parts = append(parts, chip(t.Name, t.Color))
		} else {
			parts = append(parts, lipgloss.NewStyle().Padding(0, 1).Render(colored(t.Name, t.Color)))
		}
	}
	parts = append(parts, mutedStyle.Render(fmt.Sprintf("  %d/%d tags", len(m.Tags), tag.MaxTags)))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) timerView() string {
	elapsed := timer.FormatElapsed(m.Timer.Elapsed(m.now()))
	status := mutedStyle.Render("Stopped")
	display := timerDisplayStyle.Render(elapsed)
	if m.Timer.Running() {
		status = timerRunningStyle.Render("Running")
		display = timerRunningStyle.Render(elapsed)
	}
	content := fmt.Sprintf("Current tag: %s\n\n%s  %s", m.Timer.Tag(), display, status)
	return boxStyle.Width(40).Render(content)
}

func (m *Model) tabsView() string {
	names := []string{"1 Day", "2 Week", "3 Month", "4 Logs"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if ViewMode(i) == m.Mode {
			tabs[i] = tabActiveStyle.Render(name)
		} else {
			tabs[i] = tabInactiveStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) dayView() string {
	view := m.DailyView()
	if view.Empty {
		return boxStyle.Width(viewWidth - 4).Render(mutedStyle.Render("No logs today"))
	}

	var lines []string
	for i, e := range view.Entries {
		line := fmt.Sprintf("%s  %s - %s  %4d min  Σ %s",
			chip(e.Tag, e.Color),
			e.StartLabel, e.EndLabel,
			e.Duration,
			e.CumulativeLabel,
		)
		if i == m.SelectedLog {
			line = selectedRowStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	header := headerStyle.Render(fmt.Sprintf("Today  %s", stats.FormatMinutes(view.TotalMinutes)))
	return boxStyle.Width(viewWidth - 4).Render(header + "\n\n" + strings.Join(lines, "\n"))
}

func (m *Model) settlementView() string {
	s := m.Settlement
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Total: " + s.Total))
	sb.WriteString("\n")
	for _, t := range s.Tags {
		sb.WriteString(fmt.Sprintf("\n%s %s %s", colored("■", t.Color), fit(t.Name, 12), t.Label))
	}
	return boxStyle.Width(viewWidth - 4).Render(sb.String())
}

func bar(percentage float64, color string) string {
	filled := int(float64(barWidth) * percentage / 100)
	filled = max(0, min(barWidth, filled))
	return colored(strings.Repeat("█", filled), color) + mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}

func (m *Model) weekView() string {
	view := m.WeekView()
	if view.Empty {
		return boxStyle.Width(viewWidth - 4).Render(mutedStyle.Render("No data for the past 7 days"))
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Week Analysis (Last 7 Days)"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Total Time: %s   Daily Average: %s   Recorded Days: %d / %d\n",
		view.Total, view.Average, view.RecordedDays, stats.WeekDays))

	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Time by Tag"))
	sb.WriteString("\n")
	for _, t := range view.Tags {
		sb.WriteString(fmt.Sprintf("%s %s %s\n", fit(t.Name, 12), bar(t.Percentage, t.Color), t.Label))
	}

	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Daily Breakdown"))
	sb.WriteString("\n")
	for _, d := range view.Days {
		chips := make([]string, 0, len(d.Tags))
		for _, t := range d.Tags {
			chips = append(chips, chip(t.Name+": "+t.Label, t.Color))
		}
		sb.WriteString(fmt.Sprintf("%s  Total: %s\n  %s\n", d.Label, d.Total, strings.Join(chips, " ")))
	}
	return boxStyle.Width(viewWidth - 4).Render(strings.TrimRight(sb.String(), "\n"))
}

func (m *Model) monthView() string {
	view := m.MonthView()
	if view.Empty {
		return boxStyle.Width(viewWidth - 4).Render(mutedStyle.Render("No data for the past 4 weeks"))
	}

	const weekCol = 18
	const tagCol = 10
	cell := func(s string, width int) string {
		return lipgloss.NewStyle().Width(width).Render(s)
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Month Analysis (Last 4 Weeks)"))
	sb.WriteString("\n\n")

	header := []string{cell("Week", weekCol)}
	for _, t := range view.Columns {
		header = append(header, cell(colored(fit(t.Name, tagCol-1), t.Color), tagCol))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	sb.WriteString("\n")

	for _, w := range view.Weeks {
		row := []string{cell(w.Label, weekCol)}
		for _, c := range w.Cells {
			if c.Minutes == 0 {
				row = append(row, cell(mutedStyle.Render(c.Label), tagCol))
			} else {
				row = append(row, cell(colored(c.Label, c.Color), tagCol))
			}
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		sb.WriteString("\n")
	}
	return boxStyle.Width(viewWidth - 4).Render(strings.TrimRight(sb.String(), "\n"))
}

// historyView lists every log newest first, scrolled to keep the cursor
// in view.
func (m *Model) historyView() string {
	rows := m.HistoryView()
	if len(rows) == 0 {
		return boxStyle.Width(viewWidth - 4).Render(mutedStyle.Render("No logs yet"))
	}

	first := 0
	if m.SelectedLog >= historyRows {
		first = m.SelectedLog - historyRows + 1
	}
	last := min(len(rows), first+historyRows)

	var lines []string
	for i := first; i < last; i++ {
		e := rows[i]
		line := fmt.Sprintf("%s  %s %s - %s  %s",
			chip(fit(e.Tag, 10), e.Color),
			e.DateLabel, e.StartLabel, e.EndLabel,
			e.Label,
		)
		if i == m.SelectedLog {
			line = selectedRowStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	header := headerStyle.Render(fmt.Sprintf("All Logs  %d/%d", m.SelectedLog+1, len(rows)))
	return boxStyle.Width(viewWidth - 4).Render(header + "\n\n" + strings.Join(lines, "\n"))
}

func (m *Model) formError() string {
	if m.Err == nil {
		return ""
	}
	return "\n\n" + errorStyle.Render(m.Err.Error())
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return inputStyle.Render("→ " + label)
	}
	return inputInactiveStyle.Render("  " + label)
}

func (m *Model) tagFormView() string {
	form := fmt.Sprintf("%s%s\n\n%s%s\n\n%s%s",
		fieldLabel("Name:  ", m.InputFocus == 0), m.tagInputs[0].View(),
		fieldLabel("Color: ", m.InputFocus == 1), m.tagInputs[1].View(),
		helpStyle.Render("Tab: Switch | Enter: Save | Esc: Cancel"),
		m.formError(),
	)

	return lipgloss.Place(
		viewWidth, 24,
		lipgloss.Center, lipgloss.Center,
		titleStyle.Render("Add Tag")+"\n\n"+boxStyle.Width(50).Render(form),
	)
}

func (m *Model) logFormView() string {
	tagName := "?"
	tagColor := stats.FallbackColor
	if m.EditTag >= 0 && m.EditTag < len(m.Tags) {
		tagName = m.Tags[m.EditTag].Name
		tagColor = m.Tags[m.EditTag].Color
	} else if m.EditingIndex >= 0 && m.EditingIndex < len(m.Logs) {
		tagName = m.Logs[m.EditingIndex].Tag
	}

	form := fmt.Sprintf("%s‹ %s ›\n\n%s%s\n\n%s%s\n\n%s%s\n\n%s%s",
		fieldLabel("Tag:      ", m.InputFocus == 0), chip(tagName, tagColor),
		fieldLabel("Start:    ", m.InputFocus == 1), m.logInputs[0].View(),
		fieldLabel("End:      ", m.InputFocus == 2), m.logInputs[1].View(),
		fieldLabel("Duration: ", m.InputFocus == 3), m.logInputs[2].View(),
		helpStyle.Render("Tab: Next | ←/→: Tag | Enter: Save | Esc: Cancel"),
		m.formError(),
	)

	return lipgloss.Place(
		viewWidth, 24,
		lipgloss.Center, lipgloss.Center,
		titleStyle.Render("Edit Log")+"\n\n"+boxStyle.Width(56).Render(form),
	)
}
