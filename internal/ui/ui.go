package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/listmerge/internal/merge"
	"github.com/desertthunder/listmerge/internal/models"
	"github.com/desertthunder/listmerge/internal/services"
	"github.com/desertthunder/listmerge/internal/shared"
)

const (
	minColumnWidth     = 24
	defaultColumnWidth = 28
)

// Journal records committed merges.
type Journal interface {
	Record(c merge.Committed) (int, error)
}

// Options configures a [Model].
type Options struct {
	Policy  merge.MoveBackPolicy
	Journal Journal
	Logger  *log.Logger
}

// column is one rendered list. pending marks the new list of an open merge.
type column struct {
	list     models.List
	pending  bool
	selected bool
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	machine *merge.Machine
	source  services.ListSource
	journal Journal
	logger  *log.Logger

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width   int
	height  int
	focus   int
	cursors map[int]int
	notice  string
	warning bool
}

// NewModel creates a TUI model that loads its lists from source.
func NewModel(ctx context.Context, source services.ListSource, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = shared.DiscardLogger()
	}

	m := &Model{
		ctx:     ctx,
		source:  source,
		journal: opts.Journal,
		logger:  shared.WithLogger(logger, "component", "ui"),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.heading)),
		help:    help.New(),
		keys:    newKeyMap(),
		cursors: map[int]int{},
	}
	m.machine = merge.New(merge.Options{
		Policy:   opts.Policy,
		Logger:   logger,
		OnCancel: func() { m.setNotice("Merge cancelled", false) },
	})
	return m
}

// Machine exposes the underlying state machine.
func (m *Model) Machine() *merge.Machine { return m.machine }

// Init starts the spinner and the first load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.machine.Phase() != merge.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		switch m.machine.Phase() {
		case merge.Failed:
			return m.handleFailedKeys(msg)
		case merge.Ready:
			return m.handleReadyKeys(msg)
		}
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgListsLoaded:
		data := msg.data.(listsLoaded)
		if data.err != nil {
			m.logger.Error("failed to load lists", "source", m.source.Name(), "err", data.err)
			m.machine.LoadFailed(data.err)
			return m, nil
		}
		m.machine.Loaded(data.lists)
		if m.machine.Phase() == merge.Failed {
			m.logger.Error("rejected lists", "source", m.source.Name(), "err", m.machine.LoadErr())
		}
		m.focus = 0
		m.cursors = map[int]int{}
		return m, nil

	case MsgMergeRecorded:
		data := msg.data.(mergeRecorded)
		if data.err != nil {
			m.logger.Warn("failed to record merge", "list", data.list, "err", data.err)
			m.setNotice(fmt.Sprintf("List %d created, but the journal write failed: %v", data.list, data.err), true)
			return m, nil
		}
		m.setNotice(fmt.Sprintf("List %d created (journal #%d)", data.list, data.sequence), false)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleFailedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.retry) {
		m.machine.Reload()
		m.notice = ""
		return m, tea.Batch(m.spinner.Tick, m.load())
	}
	return m, nil
}

func (m *Model) handleReadyKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.columns()

	switch {
	case key.Matches(msg, m.keys.left):
		if m.focus > 0 {
			m.focus--
		}
	case key.Matches(msg, m.keys.right):
		if m.focus < len(cols)-1 {
			m.focus++
		}
	case key.Matches(msg, m.keys.up):
		m.moveCursor(cols, -1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(cols, 1)
	case key.Matches(msg, m.keys.toggle):
		if col, ok := m.focused(cols); ok && !col.pending {
			m.machine.ToggleSelect(col.list.Number)
		}
	case key.Matches(msg, m.keys.create):
		if m.machine.RequestCreate() {
			m.focus = 0
			m.notice = ""
		}
	case key.Matches(msg, m.keys.moveRight):
		m.move(cols, merge.ToSecond)
	case key.Matches(msg, m.keys.moveLeft):
		m.move(cols, merge.ToFirst)
	case key.Matches(msg, m.keys.commit):
		return m, m.commit()
	case key.Matches(msg, m.keys.cancel):
		m.machine.Cancel()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.clampFocus()
	return m, nil
}

// move shifts the focused item one column toward dir.
//
// From a side column that means into the new list; from the new list it means back out.
func (m *Model) move(cols []column, dir merge.Direction) {
	if !m.merging(cols) {
		return
	}
	col, ok := m.focused(cols)
	if !ok {
		return
	}
	item, ok := m.cursorItem(col)
	if !ok {
		return
	}

	switch {
	case col.pending:
		m.machine.MoveFromMerge(item.ID, dir)
	case m.focus == 0 && dir == merge.ToSecond, m.focus == 2 && dir == merge.ToFirst:
		m.machine.MoveToMerge(item.ID, col.list.Number)
	}
}

func (m *Model) commit() tea.Cmd {
	committed, ok := m.machine.Commit()
	if !ok {
		return nil
	}
	m.focus = 0
	m.setNotice(fmt.Sprintf("List %d created with %d items", committed.List.Number, len(committed.List.Items)), false)

	if m.journal == nil {
		return nil
	}
	journal := m.journal
	return func() tea.Msg {
		seq, err := journal.Record(committed)
		return mergeRecordedMsg(committed.List.Number, seq, err)
	}
}

func (m *Model) load() tea.Cmd {
	source := m.source
	ctx := m.ctx
	return func() tea.Msg {
		lists, err := source.Load(ctx)
		return listsLoadedMsg(lists, err)
	}
}

func (m *Model) setNotice(text string, warning bool) {
	m.notice = text
	m.warning = warning
}

// columns returns first | new | second while a merge is open with two lists selected, otherwise every list.
func (m *Model) columns() []column {
	snap := m.machine.Snapshot()
	lists := snap.Columns()
	merging := snap.Merging && len(snap.Selection) == merge.SelectionSize

	cols := make([]column, len(lists))
	for i, l := range lists {
		pending := merging && i == 1
		cols[i] = column{list: l, pending: pending, selected: !pending && snap.Selected(l.Number)}
	}
	return cols
}

func (m *Model) merging(cols []column) bool {
	return len(cols) == 3 && cols[1].pending
}

func (m *Model) focused(cols []column) (column, bool) {
	if m.focus < 0 || m.focus >= len(cols) {
		return column{}, false
	}
	return cols[m.focus], true
}

func (m *Model) clampFocus() {
	n := len(m.columns())
	if m.focus >= n {
		m.focus = n - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}

func (m *Model) cursor(col column) int {
	c := m.cursors[col.list.Number]
	if c >= len(col.list.Items) {
		c = len(col.list.Items) - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func (m *Model) cursorItem(col column) (models.Item, bool) {
	if len(col.list.Items) == 0 {
		return models.Item{}, false
	}
	return col.list.Items[m.cursor(col)], true
}

func (m *Model) moveCursor(cols []column, delta int) {
	col, ok := m.focused(cols)
	if !ok {
		return
	}
	c := m.cursor(col) + delta
	if c < 0 || c >= len(col.list.Items) {
		return
	}
	m.cursors[col.list.Number] = c
}

// View renders the UI based on the current phase.
func (m *Model) View() string {
	switch m.machine.Phase() {
	case merge.Loading:
		return m.renderLoading()
	case merge.Failed:
		return m.renderFailed()
	default:
		return m.renderReady()
	}
}

func (m *Model) renderLoading() string {
	return fmt.Sprintf("\n %s Loading lists from %s...\n\n%s", m.spinner.View(), m.source.Name(), m.help.ShortHelpView([]key.Binding{m.keys.quit}))
}

func (m *Model) renderFailed() string {
	title := styles.err.Render("Something went wrong while loading the lists.")
	reason := ""
	if err := m.machine.LoadErr(); err != nil {
		reason = styles.muted.Render(err.Error())
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.retry, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, reason, helpView)
}

func (m *Model) renderReady() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("List Creation"))
	b.WriteString("\n")

	if message := m.machine.Message(); message != "" {
		b.WriteString(styles.err.Render(message))
		b.WriteString("\n")
	}

	cols := m.columns()
	rendered := make([]string, len(cols))
	width := m.columnWidth(len(cols))
	for i, col := range cols {
		rendered[i] = m.renderColumn(col, i == m.focus, width)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")

	if p, ok := m.machine.Pending(); ok && !m.merging(cols) {
		b.WriteString(styles.warn.Render(fmt.Sprintf("List %d is pending with %d items. Select two lists to edit it.", p.Number, len(p.Entries))))
		b.WriteString("\n")
	}

	if m.notice != "" {
		if m.warning {
			b.WriteString(styles.warn.Render(m.notice))
		} else {
			b.WriteString(styles.ok.Render(m.notice))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderColumn(col column, focused bool, width int) string {
	var b strings.Builder

	switch {
	case col.pending:
		b.WriteString(styles.heading.Render(fmt.Sprintf("%s (new)", col.list.Title())))
	case col.selected:
		b.WriteString(styles.heading.Render(fmt.Sprintf("[x] %s", col.list.Title())))
	default:
		b.WriteString(fmt.Sprintf("[ ] %s", col.list.Title()))
	}
	b.WriteString(styles.muted.Render(fmt.Sprintf(" (%d)", len(col.list.Items))))
	b.WriteString("\n")

	if len(col.list.Items) == 0 {
		b.WriteString(styles.muted.Render("empty"))
	}

	cur := m.cursor(col)
	for i, it := range col.list.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		line := "  " + it.Name
		if focused && i == cur {
			line = styles.cursor.Render("> " + it.Name)
		}
		b.WriteString(line)
		if it.Description != "" {
			b.WriteString("\n")
			b.WriteString(styles.muted.Render("    " + it.Description))
		}
	}

	style := styles.column
	if focused {
		style = styles.focused
	}
	return style.Width(width).Render(b.String())
}

func (m *Model) columnWidth(n int) int {
	if m.width == 0 || n == 0 {
		return defaultColumnWidth
	}
	// 4 accounts for border and padding
	w := m.width/n - 4
	if w < minColumnWidth {
		w = minColumnWidth
	}
	return w
}
