package internal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tagtime/internal/stats"
	"tagtime/internal/tag"
	"tagtime/internal/timelog"
	"tagtime/internal/timer"
)

// MsgTick refreshes the running timer display.
type MsgTick struct{}

// MsgRefresh asks the model to re-read tags and logs from the store.
type MsgRefresh struct{}

type ViewMode int

const (
	ViewDay ViewMode = iota
	ViewWeek
	ViewMonth
	ViewHistory
)

var errStopTimer = errors.New("stop timer first")

// editLayout is the layout of start/end fields in the log edit form.
const editLayout = "2006-01-02 15:04"

// Store is the persistence the model reads snapshots from and writes
// mutations to.
type Store interface {
	ReadTags() ([]tag.Tag, error)
	AddTag(t tag.Tag) error
	DeleteTag(name string) error
	ReadLogs() ([]timelog.Entry, error)
	AppendLog(l timelog.Entry) (timelog.Entry, error)
	UpdateLog(index int, l timelog.Entry) error
	DeleteLog(index int) error
	SaveTimerState(s timer.State) error
	LoadTimerState(now time.Time) (timer.State, bool, error)
	Close() error
}

type Options struct {
	Format stats.Format
	Logger *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type Model struct {
	Tags        []tag.Tag
	Logs        []timelog.Entry
	SelectedTag int
	SelectedLog int
	Mode        ViewMode
	Timer       *timer.Timer

	ShowSettlement bool
	Settlement     stats.SettlementView

	// New tag form
	ShowTagForm bool
	tagInputs   []textinput.Model

	// Log edit form
	ShowLogForm  bool
	EditingIndex int
	EditTag      int
	logInputs    []textinput.Model

	InputFocus    int
	ConfirmDelete bool

	Message string
	Err     error

	repo   Store
	format stats.Format
	logger *zap.Logger
	now    func() time.Time
	width  int
	height int
}

func NewModel(repo Store, opts Options) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Format == (stats.Format{}) {
		opts.Format = stats.DefaultFormat
	}

	m := &Model{
		Timer:        timer.New(),
		EditingIndex: -1,
		repo:         repo,
		format:       opts.Format,
		logger:       opts.Logger,
		now:          opts.Now,
	}
	if err := m.reload(); err != nil {
		return nil, err
	}
	if len(m.Tags) == 0 {
		return nil, errors.New("tag catalog is empty")
	}
	m.Timer.Restore(timer.State{Tag: m.Tags[0].Name})

	state, ok, err := repo.LoadTimerState(m.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load timer state: %w", err)
	}
	if ok {
		m.Timer.Restore(state)
		m.selectTag(state.Tag)
		m.logger.Info("timer restored", zap.String("tag", state.Tag), zap.Time("start", state.StartTime))
	}

	return m, nil
}

// reload re-reads the snapshot from the store.
func (m *Model) reload() error {
	tags, err := m.repo.ReadTags()
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	logs, err := m.repo.ReadLogs()
	if err != nil {
		return fmt.Errorf("failed to load logs: %w", err)
	}
	m.Tags = tags
	m.Logs = logs
	if m.SelectedTag >= len(m.Tags) {
		m.SelectedTag = len(m.Tags) - 1
	}
	if m.SelectedTag < 0 {
		m.SelectedTag = 0
	}
	if m.ShowSettlement {
		m.Settlement = stats.Settle(m.Logs, m.Tags, m.now())
	}
	m.clampLogSelection()
	return nil
}

func (m *Model) selectTag(name string) {
	for i, t := range m.Tags {
		if t.Name == name {
			m.SelectedTag = i
			return
		}
	}
}

func (m *Model) clampLogSelection() {
	n := m.rowCount()
	if m.SelectedLog >= n {
		m.SelectedLog = n - 1
	}
	if m.SelectedLog < 0 {
		m.SelectedLog = 0
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		return m, nil
	case MsgRefresh, tea.FocusMsg:
		if err := m.reload(); err != nil {
			m.setErr(err)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	if m.ShowTagForm {
		return m.tagFormView()
	}
	if m.ShowLogForm {
		return m.logFormView()
	}
	return m.mainView()
}

func (m *Model) SelectedTagName() string {
	if m.SelectedTag >= 0 && m.SelectedTag < len(m.Tags) {
		return m.Tags[m.SelectedTag].Name
	}
	return ""
}

func (m *Model) DailyView() stats.DailyView {
	return stats.Daily(m.Logs, m.Tags, m.now(), m.format)
}

func (m *Model) WeekView() stats.WeekView {
	return stats.Week(m.Logs, m.Tags, m.now(), m.format)
}

func (m *Model) MonthView() stats.MonthView {
	return stats.Month(m.Logs, m.Tags, m.now(), m.format)
}

func (m *Model) HistoryView() []stats.HistoryEntry {
	return stats.History(m.Logs, m.Tags, m.now().Location(), m.format)
}

// rowCount is the number of selectable log rows in the current mode.
func (m *Model) rowCount() int {
	switch m.Mode {
	case ViewDay:
		return len(m.DailyView().Entries)
	case ViewHistory:
		return len(m.Logs)
	}
	return 0
}

// selectedPosition returns the store position of the log row under the
// cursor in the day or history list.
func (m *Model) selectedPosition() (int, bool) {
	if m.SelectedLog < 0 || m.SelectedLog >= m.rowCount() {
		return 0, false
	}
	switch m.Mode {
	case ViewDay:
		return m.DailyView().Entries[m.SelectedLog].Index, true
	case ViewHistory:
		// History rows are the logs newest first.
		return len(m.Logs) - 1 - m.SelectedLog, true
	}
	return 0, false
}

func (m *Model) setMode(mode ViewMode) {
	if m.Mode != mode {
		m.Mode = mode
		m.SelectedLog = 0
	}
}

func (m *Model) ToggleTimer() error {
	now := m.now()
	if !m.Timer.Running() {
		if err := m.Timer.Start(m.SelectedTagName(), now); err != nil {
			return err
		}
		return m.repo.SaveTimerState(m.Timer.State())
	}

	running := m.Timer.State()
	entry, err := m.Timer.Stop(now)
	if err != nil {
		return err
	}
	// Saved state is cleared only after the session is logged.
	if _, err := m.repo.AppendLog(entry); err != nil {
		if !errors.Is(err, timelog.ErrInvalidDuration) {
			m.Timer.Restore(running)
			return fmt.Errorf("failed to save log: %w", err)
		}
		m.Message = "Session shorter than a minute, not logged"
		return m.repo.SaveTimerState(m.Timer.State())
	}
	m.Message = fmt.Sprintf("Logged %d min of %s", entry.Duration, entry.Tag)
	if err := m.repo.SaveTimerState(m.Timer.State()); err != nil {
		return err
	}
	return m.reload()
}

func (m *Model) AddTag(name, color string) error {
	t, err := tag.New(name, color)
	if err != nil {
		return err
	}
	if err := m.repo.AddTag(t); err != nil {
		return err
	}
	if err := m.reload(); err != nil {
		return err
	}
	m.selectTag(t.Name)
	return nil
}

func (m *Model) DeleteSelectedTag() error {
	if m.Timer.Running() {
		return errStopTimer
	}
	if err := m.repo.DeleteTag(m.SelectedTagName()); err != nil {
		return err
	}
	if err := m.reload(); err != nil {
		return err
	}
	m.SelectedTag = 0
	return m.Timer.SetTag(m.SelectedTagName())
}

func (m *Model) MoveTag(delta int) error {
	if m.Timer.Running() {
		return errStopTimer
	}
	next := m.SelectedTag + delta
	if next < 0 || next >= len(m.Tags) {
		return nil
	}
	m.SelectedTag = next
	return m.Timer.SetTag(m.SelectedTagName())
}

func (m *Model) DeleteSelectedLog() error {
	pos, ok := m.selectedPosition()
	if !ok {
		return nil
	}
	if err := m.repo.DeleteLog(pos); err != nil {
		return err
	}
	m.Message = "Log deleted"
	return m.reload()
}

// SaveLogEdit validates the edit form and writes the result back.
func (m *Model) SaveLogEdit() error {
	if m.EditingIndex < 0 || m.EditingIndex >= len(m.Logs) {
		return errors.New("no log selected")
	}
	loc := m.now().Location()
	start, err := time.ParseInLocation(editLayout, strings.TrimSpace(m.logInputs[0].Value()), loc)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.ParseInLocation(editLayout, strings.TrimSpace(m.logInputs[1].Value()), loc)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	duration, err := strconv.Atoi(strings.TrimSpace(m.logInputs[2].Value()))
	if err != nil {
		return timelog.ErrInvalidDuration
	}

	tagName := m.Logs[m.EditingIndex].Tag
	if m.EditTag >= 0 && m.EditTag < len(m.Tags) {
		tagName = m.Tags[m.EditTag].Name
	}
	edited, err := m.Logs[m.EditingIndex].Edit(tagName, start, end, duration)
	if err != nil {
		return err
	}
	if err := m.repo.UpdateLog(m.EditingIndex, edited); err != nil {
		return err
	}
	m.Message = "Log updated"
	return m.reload()
}

// Settle computes today's settlement and shows it.
func (m *Model) Settle() {
	m.Settlement = stats.Settle(m.Logs, m.Tags, m.now())
	if m.Settlement.Empty {
		m.ShowSettlement = false
		m.Message = "No logs for today"
		return
	}
	m.ShowSettlement = true
}

// Close persists a running timer so it can be restored on the next start.
func (m *Model) Close() error {
	if err := m.repo.SaveTimerState(m.Timer.State()); err != nil {
		m.logger.Error("failed to save timer state", zap.Error(err))
	}
	return m.repo.Close()
}

func (m *Model) setErr(err error) {
	m.Err = err
	if err != nil {
		m.Message = ""
		m.logger.Warn("action failed", zap.Error(err))
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowTagForm {
		return m.handleTagForm(msg)
	}
	if m.ShowLogForm {
		return m.handleLogForm(msg)
	}
	if m.ConfirmDelete {
		return m.handleConfirm(msg)
	}

	m.Err = nil
	m.Message = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left", "h":
		m.setErr(m.MoveTag(-1))
	case "right", "l":
		m.setErr(m.MoveTag(1))
	case "up", "k":
		if m.SelectedLog > 0 {
			m.SelectedLog--
		}
	case "down", "j":
		if m.SelectedLog < m.rowCount()-1 {
			m.SelectedLog++
		}
	case "enter", " ":
		m.setErr(m.ToggleTimer())
	case "1":
		m.setMode(ViewDay)
	case "2":
		m.setMode(ViewWeek)
	case "3":
		m.setMode(ViewMonth)
	case "4":
		m.setMode(ViewHistory)
	case "s":
		if m.ShowSettlement {
			m.ShowSettlement = false
		} else {
			m.Settle()
		}
	case "n":
		if len(m.Tags) >= tag.MaxTags {
			m.setErr(tag.ErrLimit)
			break
		}
		m.openTagForm()
	case "d":
		m.setErr(m.DeleteSelectedTag())
	case "e":
		if pos, ok := m.selectedPosition(); ok {
			m.openLogForm(pos)
		}
	case "x":
		if _, ok := m.selectedPosition(); ok {
			m.ConfirmDelete = true
		}
	}
	return m, nil
}

func (m *Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.ConfirmDelete = false
		m.setErr(m.DeleteSelectedLog())
	case "n", "N", "esc", "ctrl+c":
		m.ConfirmDelete = false
	}
	return m, nil
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

func (m *Model) openTagForm() {
	m.tagInputs = []textinput.Model{
		newInput("Tag name", 20),
		newInput(tag.Default.Color, 7),
	}
	m.InputFocus = 0
	m.tagInputs[0].Focus()
	m.Err = nil
	m.ShowTagForm = true
}

func (m *Model) openLogForm(index int) {
	l := m.Logs[index]
	loc := m.now().Location()

	m.logInputs = []textinput.Model{
		newInput(editLayout, 16),
		newInput(editLayout, 16),
		newInput("minutes", 5),
	}
	m.logInputs[0].SetValue(l.Start.In(loc).Format(editLayout))
	m.logInputs[1].SetValue(l.End.In(loc).Format(editLayout))
	m.logInputs[2].SetValue(strconv.Itoa(l.Duration))

	m.EditingIndex = index
	m.EditTag = -1
	for i, t := range m.Tags {
		if t.Name == l.Tag {
			m.EditTag = i
		}
	}
	m.InputFocus = 0
	m.Err = nil
	m.ShowLogForm = true
}

func (m *Model) closeForms() {
	m.ShowTagForm = false
	m.ShowLogForm = false
	m.EditingIndex = -1
	m.tagInputs = nil
	m.logInputs = nil
}

// focusInputs focuses inputs[focus] and blurs the rest.
func focusInputs(inputs []textinput.Model, focus int) {
	for i := range inputs {
		if i == focus {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

func (m *Model) handleTagForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.closeForms()
		return m, nil
	case "tab", "shift+tab":
		m.InputFocus = 1 - m.InputFocus
		focusInputs(m.tagInputs, m.InputFocus)
		return m, nil
	case "enter":
		if m.InputFocus == 0 {
			m.InputFocus = 1
			focusInputs(m.tagInputs, m.InputFocus)
			return m, nil
		}
		color := m.tagInputs[1].Value()
		if strings.TrimSpace(color) == "" {
			color = tag.Default.Color
		}
		if err := m.AddTag(m.tagInputs[0].Value(), color); err != nil {
			m.setErr(err)
			return m, nil
		}
		m.closeForms()
		return m, nil
	}

	var cmd tea.Cmd
	m.tagInputs[m.InputFocus], cmd = m.tagInputs[m.InputFocus].Update(msg)
	return m, cmd
}

// Log form focus: 0 tag selector, 1 start, 2 end, 3 duration.
func (m *Model) handleLogForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.closeForms()
		return m, nil
	case "tab", "down":
		m.InputFocus = (m.InputFocus + 1) % 4
		focusInputs(m.logInputs, m.InputFocus-1)
		return m, nil
	case "shift+tab", "up":
		m.InputFocus = (m.InputFocus + 3) % 4
		focusInputs(m.logInputs, m.InputFocus-1)
		return m, nil
	case "enter":
		if err := m.SaveLogEdit(); err != nil {
			m.setErr(err)
			return m, nil
		}
		m.closeForms()
		return m, nil
	}

	if m.InputFocus == 0 {
		switch msg.String() {
		case "left", "h":
			if m.EditTag > 0 {
				m.EditTag--
			}
		case "right", "l":
			if m.EditTag < len(m.Tags)-1 {
				m.EditTag++
			}
		}
		return m, nil
	}

	i := m.InputFocus - 1
	var cmd tea.Cmd
	m.logInputs[i], cmd = m.logInputs[i].Update(msg)
	if i < 2 {
		m.recomputeDuration()
	}
	return m, cmd
}

// recomputeDuration fills the duration field from start and end while both
// parse and end is after start.
func (m *Model) recomputeDuration() {
	loc := m.now().Location()
	start, err := time.ParseInLocation(editLayout, strings.TrimSpace(m.logInputs[0].Value()), loc)
	if err != nil {
		return
	}
	end, err := time.ParseInLocation(editLayout, strings.TrimSpace(m.logInputs[1].Value()), loc)
	if err != nil || !end.After(start) {
		return
	}
	if d := timelog.Minutes(start, end); d > 0 {
		m.logInputs[2].SetValue(strconv.Itoa(d))
	}
}
