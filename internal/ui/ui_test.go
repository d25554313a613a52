package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/listmerge/internal/merge"
	"github.com/desertthunder/listmerge/internal/models"
	"github.com/desertthunder/listmerge/internal/shared"
	th "github.com/desertthunder/listmerge/internal/testing"
)

type stubJournal struct {
	recorded []merge.Committed
	err      error
}

func (j *stubJournal) Record(c merge.Committed) (int, error) {
	if j.err != nil {
		return 0, j.err
	}
	j.recorded = append(j.recorded, c)
	return len(j.recorded), nil
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends each key in turn and returns the command from the last one.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyPress(k))
	}
	return cmd
}

func newModel(t *testing.T, src *th.StubSource, opts Options) *Model {
	t.Helper()
	m := NewModel(context.Background(), src, opts)
	m.Update(m.load()())
	return m
}

func readyModel(t *testing.T, opts Options) *Model {
	t.Helper()
	m := newModel(t, &th.StubSource{Lists: th.SampleLists()}, opts)
	if m.machine.Phase() != merge.Ready {
		t.Fatalf("expected Ready, got %v", m.machine.Phase())
	}
	return m
}

func itemIDs(l models.List) []string {
	ids := make([]string, len(l.Items))
	for i, it := range l.Items {
		ids[i] = string(it.ID)
	}
	return ids
}

func mustList(t *testing.T, m *Model, n int) models.List {
	t.Helper()
	l, ok := m.machine.List(n)
	if !ok {
		t.Fatalf("list %d not found", n)
	}
	return l
}

func TestModelLoading(t *testing.T) {
	t.Run("Init Returns Commands", func(t *testing.T) {
		m := NewModel(context.Background(), &th.StubSource{Lists: th.SampleLists()}, Options{})
		if m.Init() == nil {
			t.Fatal("expected Init to return a command")
		}
		if m.machine.Phase() != merge.Loading {
			t.Errorf("expected Loading, got %v", m.machine.Phase())
		}
		if !strings.Contains(m.View(), "Loading lists from stub") {
			t.Errorf("unexpected loading view: %s", m.View())
		}
	})

	t.Run("Success", func(t *testing.T) {
		m := readyModel(t, Options{})
		if len(m.machine.Lists()) != 2 {
			t.Errorf("expected 2 lists, got %d", len(m.machine.Lists()))
		}

		view := m.View()
		for _, want := range []string{"List Creation", "[ ] List 1", "[ ] List 2", "Alpha", "Charlie"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q", want)
			}
		}
	})

	t.Run("Failure And Retry", func(t *testing.T) {
		src := &th.StubSource{Err: errors.New("connection refused")}
		m := newModel(t, src, Options{})

		if m.machine.Phase() != merge.Failed {
			t.Fatalf("expected Failed, got %v", m.machine.Phase())
		}
		if len(m.machine.Lists()) != 0 {
			t.Error("expected no lists after failure")
		}
		if m.machine.Message() != "" {
			t.Errorf("expected no validation message, got %q", m.machine.Message())
		}
		if view := m.View(); !strings.Contains(view, "Something went wrong") || !strings.Contains(view, "connection refused") {
			t.Errorf("unexpected failure view: %s", view)
		}

		src.Err = nil
		src.Lists = th.SampleLists()
		cmd := press(m, "r")
		if cmd == nil {
			t.Fatal("expected retry to return a command")
		}
		if m.machine.Phase() != merge.Loading {
			t.Fatalf("expected Loading after retry, got %v", m.machine.Phase())
		}

		m.Update(m.load()())
		if m.machine.Phase() != merge.Ready {
			t.Errorf("expected Ready after retry, got %v", m.machine.Phase())
		}
		if src.Calls() != 2 {
			t.Errorf("expected 2 loads, got %d", src.Calls())
		}
	})

	t.Run("Duplicate Lists Fail", func(t *testing.T) {
		lists := th.SampleLists()
		lists[1].Number = 1
		m := newModel(t, &th.StubSource{Lists: lists}, Options{})

		if m.machine.Phase() != merge.Failed {
			t.Errorf("expected Failed, got %v", m.machine.Phase())
		}
	})

	t.Run("Spinner Stops Outside Loading", func(t *testing.T) {
		m := readyModel(t, Options{})
		if _, cmd := m.Update(spinner.TickMsg{}); cmd != nil {
			t.Error("expected no tick command once ready")
		}
	})

	t.Run("Keys Ignored While Loading", func(t *testing.T) {
		m := NewModel(context.Background(), &th.StubSource{}, Options{})
		press(m, "space", "n", "r")
		if m.machine.Phase() != merge.Loading {
			t.Errorf("expected Loading, got %v", m.machine.Phase())
		}
	})
}

func TestModelMerge(t *testing.T) {
	t.Run("Create Requires Two Lists", func(t *testing.T) {
		m := readyModel(t, Options{})
		press(m, "space", "n")

		if m.machine.Merging() {
			t.Error("expected no pending merge")
		}
		if !strings.Contains(m.View(), merge.ErrSelectTwoToCreate.Error()) {
			t.Error("expected create validation message in view")
		}
	})

	t.Run("Full Flow", func(t *testing.T) {
		journal := &stubJournal{}
		m := readyModel(t, Options{Journal: journal})

		press(m, "space", "l", "space", "n")
		if !m.machine.Merging() {
			t.Fatal("expected pending merge")
		}
		if m.focus != 0 {
			t.Errorf("expected focus on first column, got %d", m.focus)
		}
		if view := m.View(); !strings.Contains(view, "List 3 (new)") {
			t.Errorf("expected new list column, got %s", view)
		}

		press(m, ">")
		p, _ := m.machine.Pending()
		if len(p.Entries) != 1 || p.Entries[0].ID != "A" {
			t.Fatalf("expected A pending, got %+v", p.Entries)
		}

		cmd := press(m, "u")
		if cmd == nil {
			t.Fatal("expected commit to return a journal command")
		}
		if m.machine.Merging() || m.machine.Selection().Len() != 0 {
			t.Error("expected merge and selection cleared after commit")
		}
		if got := itemIDs(mustList(t, m, 3)); len(got) != 1 || got[0] != "A" {
			t.Errorf("expected list 3 = [A], got %v", got)
		}
		if got := itemIDs(mustList(t, m, 1)); len(got) != 1 || got[0] != "B" {
			t.Errorf("expected list 1 = [B], got %v", got)
		}

		m.Update(cmd())
		if len(journal.recorded) != 1 || journal.recorded[0].List.Number != 3 {
			t.Errorf("expected one recorded merge for list 3, got %+v", journal.recorded)
		}
		if !strings.Contains(m.View(), "journal #1") {
			t.Errorf("expected journal notice, got %s", m.View())
		}
	})

	t.Run("Journal Failure Is A Warning", func(t *testing.T) {
		m := readyModel(t, Options{Journal: &stubJournal{err: shared.ErrDatabaseDisabled}})
		press(m, "space", "l", "space", "n", ">")

		cmd := press(m, "u")
		m.Update(cmd())

		if !m.warning || !strings.Contains(m.notice, "journal write failed") {
			t.Errorf("expected journal warning, got %q", m.notice)
		}
		if _, ok := m.machine.List(3); !ok {
			t.Error("commit should stand even when the journal fails")
		}
	})

	t.Run("Commit Empty Merge", func(t *testing.T) {
		m := readyModel(t, Options{})
		press(m, "space", "l", "space", "n")

		if cmd := press(m, "u"); cmd != nil {
			t.Error("expected no command for a rejected commit")
		}
		if !errors.Is(m.machine.Err(), merge.ErrEmptyMerge) {
			t.Errorf("expected ErrEmptyMerge, got %v", m.machine.Err())
		}
		if len(m.machine.Lists()) != 2 {
			t.Error("lists must not change on rejected commit")
		}
	})

	t.Run("Move Back From New List", func(t *testing.T) {
		m := readyModel(t, Options{Policy: merge.Origin})
		press(m, "space", "l", "space", "n")
		press(m, "right", "right", "<")

		p, _ := m.machine.Pending()
		if len(p.Entries) != 1 || p.Entries[0].ID != "C" || p.Entries[0].Origin != 2 {
			t.Fatalf("expected C from list 2 pending, got %+v", p.Entries)
		}

		press(m, "left", "<")
		if got := itemIDs(mustList(t, m, 2)); len(got) != 1 || got[0] != "C" {
			t.Errorf("origin policy should return C to list 2, got %v", got)
		}
	})

	t.Run("Positional Move Back", func(t *testing.T) {
		m := readyModel(t, Options{Policy: merge.Positional})
		press(m, "space", "l", "space", "n")
		press(m, "right", "right", "<")
		press(m, "left", "<")

		if got := itemIDs(mustList(t, m, 1)); len(got) != 3 || got[2] != "C" {
			t.Errorf("positional policy should send C to list 1, got %v", got)
		}
	})

	t.Run("Arrows Ignored Outside Merge", func(t *testing.T) {
		m := readyModel(t, Options{})
		press(m, ">", "<")
		if len(mustList(t, m, 1).Items) != 2 {
			t.Error("items must not move without a pending merge")
		}
	})

	t.Run("Cancel Discards Moved Items", func(t *testing.T) {
		m := readyModel(t, Options{})
		press(m, "space", "l", "space", "n", ">", "esc")

		if m.machine.Merging() || m.machine.Selection().Len() != 0 {
			t.Error("expected cancel to clear merge and selection")
		}
		if got := itemIDs(mustList(t, m, 1)); len(got) != 1 || got[0] != "B" {
			t.Errorf("expected A to be discarded, got %v", got)
		}
		if m.notice != "Merge cancelled" {
			t.Errorf("expected cancel notice, got %q", m.notice)
		}
	})

	t.Run("Deselect During Merge Hides New List", func(t *testing.T) {
		m := readyModel(t, Options{})
		press(m, "space", "l", "space", "n", ">")
		press(m, "space")

		if _, ok := m.machine.Pending(); !ok {
			t.Fatal("pending merge should survive a deselect")
		}
		if m.machine.Merging() {
			t.Error("a single selected list should not count as merging")
		}
		if len(m.columns()) != 2 {
			t.Errorf("expected all lists as columns, got %d", len(m.columns()))
		}
		if !strings.Contains(m.View(), "List 3 is pending with 1 items") {
			t.Errorf("expected pending hint, got %s", m.View())
		}
	})
}

func TestModelNavigation(t *testing.T) {
	t.Run("Cursor Stays In Bounds", func(t *testing.T) {
		m := readyModel(t, Options{})
		cols := m.columns()

		press(m, "down", "down", "down")
		if c := m.cursor(cols[0]); c != 1 {
			t.Errorf("expected cursor 1, got %d", c)
		}
		press(m, "up", "up", "k")
		if c := m.cursor(cols[0]); c != 0 {
			t.Errorf("expected cursor 0, got %d", c)
		}
	})

	t.Run("Focus Stays In Bounds", func(t *testing.T) {
		m := readyModel(t, Options{})
		press(m, "h")
		if m.focus != 0 {
			t.Errorf("expected focus 0, got %d", m.focus)
		}
		press(m, "l", "l", "l")
		if m.focus != 1 {
			t.Errorf("expected focus 1, got %d", m.focus)
		}
	})

	t.Run("Cursor Picks The Moved Item", func(t *testing.T) {
		m := readyModel(t, Options{})
		press(m, "space", "l", "space", "n", "j", ">")

		p, _ := m.machine.Pending()
		if len(p.Entries) != 1 || p.Entries[0].ID != "B" {
			t.Errorf("expected B pending, got %+v", p.Entries)
		}
	})

	t.Run("Window Size", func(t *testing.T) {
		m := readyModel(t, Options{})
		m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
		if m.columnWidth(3) != 36 {
			t.Errorf("expected column width 36, got %d", m.columnWidth(3))
		}
		if m.columnWidth(10) != minColumnWidth {
			t.Errorf("expected minimum column width, got %d", m.columnWidth(10))
		}
	})

	t.Run("Help Toggle", func(t *testing.T) {
		m := readyModel(t, Options{})
		press(m, "?")
		if !m.help.ShowAll {
			t.Error("expected full help")
		}
	})

	t.Run("Quit", func(t *testing.T) {
		m := readyModel(t, Options{})
		cmd := press(m, "q")
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}
