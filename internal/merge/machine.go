package merge

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/listmerge/internal/models"
	"github.com/desertthunder/listmerge/internal/shared"
)

// Phase is the load state of a [Machine].
type Phase int

const (
	Loading Phase = iota
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Direction picks a selected list by position when moving an item out of the pending merge.
type Direction int

const (
	ToFirst Direction = iota
	ToSecond
)

func (d Direction) String() string {
	if d == ToFirst {
		return "first"
	}
	return "second"
}

// MoveBackPolicy decides where [Machine.MoveFromMerge] sends an item.
type MoveBackPolicy int

const (
	// Origin returns an item to the list it came from while that list is selected, else falls back to Positional.
	Origin MoveBackPolicy = iota
	// Positional sends an item to the selected list named by the [Direction].
	Positional
)

// ParsePolicy maps a config value to a [MoveBackPolicy].
func ParsePolicy(s string) (MoveBackPolicy, error) {
	switch s {
	case shared.MoveBackOrigin:
		return Origin, nil
	case shared.MoveBackPositional:
		return Positional, nil
	default:
		return Origin, fmt.Errorf("%w: unknown move-back policy %q", shared.ErrInvalidArgument, s)
	}
}

// Entry is an item held by the pending merge, tagged with the list it was moved out of.
type Entry struct {
	models.Item
	Origin int
}

// Pending is the transient "new list" being assembled.
type Pending struct {
	Number  int
	Entries []Entry
}

// List returns the pending merge as a plain list.
func (p Pending) List() models.List {
	items := make([]models.Item, len(p.Entries))
	for i, e := range p.Entries {
		items[i] = e.Item
	}
	return models.List{Number: p.Number, Items: items}
}

func (p Pending) index(id models.ItemID) int {
	for i, e := range p.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (p Pending) clone() Pending {
	entries := make([]Entry, len(p.Entries))
	copy(entries, p.Entries)
	return Pending{Number: p.Number, Entries: entries}
}

// Committed describes a merge that became a permanent list.
type Committed struct {
	List    models.List
	First   int
	Second  int
	Entries []Entry
}

// Options configures a [Machine].
type Options struct {
	Policy   MoveBackPolicy
	OnCancel func()
	Logger   *log.Logger
}

// Machine owns the lists, the selection and the pending merge.
//
// It is not safe for concurrent use; every operation is expected to run on the UI event loop.
type Machine struct {
	phase     Phase
	lists     []models.List
	selection Selection
	pending   *Pending
	err       error
	loadErr   error

	policy   MoveBackPolicy
	onCancel func()
	logger   *log.Logger
}

// New returns a machine in the [Loading] phase.
func New(opts Options) *Machine {
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	if opts.OnCancel == nil {
		opts.OnCancel = func() {}
	}

	return &Machine{
		phase:    Loading,
		policy:   opts.Policy,
		onCancel: opts.OnCancel,
		logger:   shared.WithLogger(opts.Logger, "component", "merge"),
	}
}

// Loaded moves a loading machine to [Ready] with the given lists.
//
// Lists with repeated numbers fail the load instead. Calls outside [Loading] are ignored.
func (m *Machine) Loaded(lists []models.List) {
	if m.phase != Loading {
		m.logger.Warn("ignoring lists delivered outside loading", "phase", m.phase)
		return
	}

	seen := make(map[int]bool, len(lists))
	owned := make([]models.List, len(lists))
	for i, l := range lists {
		if seen[l.Number] {
			m.LoadFailed(fmt.Errorf("%w: %d", ErrDuplicateList, l.Number))
			return
		}
		seen[l.Number] = true
		owned[i] = l.Clone()
	}

	m.lists = owned
	m.phase = Ready
	m.logger.Debug("lists loaded", "count", len(owned))
}

// LoadFailed moves a loading machine to [Failed]. No lists are kept.
func (m *Machine) LoadFailed(err error) {
	if m.phase != Loading {
		m.logger.Warn("ignoring load failure outside loading", "phase", m.phase, "err", err)
		return
	}

	m.lists = nil
	m.loadErr = err
	m.phase = Failed
	m.logger.Debug("load failed", "err", err)
}

// Reload discards all state and returns to [Loading].
func (m *Machine) Reload() {
	m.phase = Loading
	m.lists = nil
	m.selection.Clear()
	m.pending = nil
	m.err = nil
	m.loadErr = nil
	m.logger.Debug("reloading")
}

// ToggleSelect adds or removes a list from the selection, evicting the oldest when a third is added.
// Unknown list numbers are ignored.
func (m *Machine) ToggleSelect(n int) {
	if m.phase != Ready || m.listIndex(n) < 0 {
		return
	}
	m.selection.Toggle(n)
	m.logger.Debug("selection toggled", "list", n, "selection", m.selection.Numbers())
}

// RequestCreate opens a pending merge numbered one past the highest list number.
//
// Requires exactly two selected lists; otherwise records [ErrSelectTwoToCreate] and changes nothing else.
// Requesting again while a merge is pending starts a fresh, empty one.
func (m *Machine) RequestCreate() bool {
	if m.phase != Ready {
		return false
	}
	if !m.selection.Full() {
		m.fail(ErrSelectTwoToCreate)
		return false
	}
	if m.pending != nil && len(m.pending.Entries) > 0 {
		m.logger.Warn("discarding non-empty pending merge", "list", m.pending.Number, "items", len(m.pending.Entries))
	}

	m.pending = &Pending{Number: models.MaxNumber(m.lists) + 1, Entries: []Entry{}}
	m.err = nil
	m.logger.Debug("merge created", "list", m.pending.Number, "from", m.selection.Numbers())
	return true
}

// MoveToMerge takes an item out of a selected list and appends it to the pending merge.
//
// Ignored unless a merge is pending and list from is selected and holds the item.
func (m *Machine) MoveToMerge(id models.ItemID, from int) bool {
	if m.phase != Ready || m.pending == nil || !m.selection.Contains(from) {
		return false
	}

	li := m.listIndex(from)
	if li < 0 {
		return false
	}
	src := &m.lists[li]
	ii := src.Index(id)
	if ii < 0 {
		return false
	}

	item := src.Items[ii]
	src.Items = append(src.Items[:ii], src.Items[ii+1:]...)
	m.pending.Entries = append(m.pending.Entries, Entry{Item: item, Origin: from})

	m.logger.Debug("item moved to merge", "item", id, "from", from)
	return true
}

// MoveFromMerge takes an item out of the pending merge and appends it to a selected list chosen by the policy.
//
// Ignored when no merge is pending, the item is not in it, or no destination list can be resolved.
func (m *Machine) MoveFromMerge(id models.ItemID, dir Direction) bool {
	if m.phase != Ready || m.pending == nil {
		return false
	}

	ei := m.pending.index(id)
	if ei < 0 {
		return false
	}
	entry := m.pending.Entries[ei]

	dest, ok := m.destination(entry, dir)
	if !ok {
		return false
	}
	li := m.listIndex(dest)
	if li < 0 {
		return false
	}

	m.pending.Entries = append(m.pending.Entries[:ei], m.pending.Entries[ei+1:]...)
	m.lists[li].Items = append(m.lists[li].Items, entry.Item)

	m.logger.Debug("item moved from merge", "item", id, "to", dest, "origin", entry.Origin, "direction", dir)
	return true
}

// Destination reports where [Machine.MoveFromMerge] would send the item.
func (m *Machine) Destination(id models.ItemID, dir Direction) (int, bool) {
	if m.pending == nil {
		return 0, false
	}
	ei := m.pending.index(id)
	if ei < 0 {
		return 0, false
	}
	return m.destination(m.pending.Entries[ei], dir)
}

func (m *Machine) destination(e Entry, dir Direction) (int, bool) {
	if m.policy == Origin && m.selection.Contains(e.Origin) {
		return e.Origin, true
	}
	return m.selection.At(int(dir))
}

// Commit turns the pending merge into a permanent list and clears the selection.
//
// Records [ErrEmptyMerge] when nothing is pending or it has no items, and [ErrSelectTwoToCommit]
// when the selection no longer holds two lists.
func (m *Machine) Commit() (Committed, bool) {
	if m.phase != Ready {
		return Committed{}, false
	}
	if m.pending == nil || len(m.pending.Entries) == 0 {
		m.fail(ErrEmptyMerge)
		return Committed{}, false
	}
	if !m.selection.Full() {
		m.fail(ErrSelectTwoToCommit)
		return Committed{}, false
	}

	first, _ := m.selection.At(0)
	second, _ := m.selection.At(1)
	pending := m.pending.clone()
	list := pending.List()

	m.lists = append(m.lists, list)
	m.pending = nil
	m.selection.Clear()
	m.err = nil

	m.logger.Debug("merge committed", "list", list.Number, "items", len(list.Items), "first", first, "second", second)
	return Committed{List: list.Clone(), First: first, Second: second, Entries: pending.Entries}, true
}

// Cancel drops the pending merge and selection and notifies the cancel callback.
//
// Items already moved into the pending merge are discarded, not returned to their lists.
func (m *Machine) Cancel() {
	if m.pending != nil && len(m.pending.Entries) > 0 {
		m.logger.Debug("discarding pending merge", "list", m.pending.Number, "items", len(m.pending.Entries))
	}
	m.pending = nil
	m.selection.Clear()
	m.err = nil
	m.onCancel()
}

func (m *Machine) fail(err error) {
	m.err = err
	m.logger.Debug("validation failed", "err", err)
}

func (m *Machine) listIndex(n int) int {
	for i, l := range m.lists {
		if l.Number == n {
			return i
		}
	}
	return -1
}

// Phase returns the load phase.
func (m *Machine) Phase() Phase { return m.phase }

// Err returns the current validation failure, if any.
func (m *Machine) Err() error { return m.err }

// Message returns the user-facing validation message, or "".
func (m *Machine) Message() string {
	if m.err == nil {
		return ""
	}
	return m.err.Error()
}

// LoadErr returns why loading failed while in [Failed].
func (m *Machine) LoadErr() error { return m.loadErr }

// Policy returns the move-back policy.
func (m *Machine) Policy() MoveBackPolicy { return m.policy }

// Selection returns a copy of the selection.
func (m *Machine) Selection() Selection { return m.selection }

// List returns a copy of list n.
func (m *Machine) List(n int) (models.List, bool) {
	if i := m.listIndex(n); i >= 0 {
		return m.lists[i].Clone(), true
	}
	return models.List{}, false
}

// Lists returns copies of all lists in display order.
func (m *Machine) Lists() []models.List {
	out := make([]models.List, len(m.lists))
	for i, l := range m.lists {
		out[i] = l.Clone()
	}
	return out
}

// Pending returns a copy of the pending merge.
func (m *Machine) Pending() (Pending, bool) {
	if m.pending == nil {
		return Pending{}, false
	}
	return m.pending.clone(), true
}

// Merging reports whether the three-column merge layout applies: a pending merge with two selected lists.
func (m *Machine) Merging() bool {
	return m.phase == Ready && m.pending != nil && m.selection.Full()
}
