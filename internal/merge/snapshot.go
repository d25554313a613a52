package merge

import "github.com/desertthunder/listmerge/internal/models"

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Phase     Phase
	Lists     []models.List
	Selection []int
	Pending   *Pending
	Message   string
	LoadErr   error
	Merging   bool
}

// Snapshot copies the observable state.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:     m.phase,
		Lists:     m.Lists(),
		Selection: m.selection.Numbers(),
		Message:   m.Message(),
		LoadErr:   m.loadErr,
		Merging:   m.Merging(),
	}
	if p, ok := m.Pending(); ok {
		s.Pending = &p
	}
	return s
}

// Selected reports whether list n is selected.
func (s Snapshot) Selected(n int) bool {
	for _, sel := range s.Selection {
		if sel == n {
			return true
		}
	}
	return false
}

// Columns returns the lists to render in order.
//
// While merging this is first selected, pending merge, second selected; otherwise every list.
func (s Snapshot) Columns() []models.List {
	if !s.Merging || len(s.Selection) != SelectionSize {
		return s.Lists
	}

	cols := make([]models.List, 0, 3)
	for i, n := range s.Selection {
		if i == 1 {
			cols = append(cols, s.Pending.List())
		}
		for _, l := range s.Lists {
			if l.Number == n {
				cols = append(cols, l)
			}
		}
	}
	return cols
}
