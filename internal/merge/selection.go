package merge

// SelectionSize is the number of lists a merge draws from.
const SelectionSize = 2

// Selection is an ordered set of at most [SelectionSize] list numbers.
// Adding to a full selection evicts the oldest entry.
type Selection struct {
	numbers [SelectionSize]int
	n       int
}

// NewSelection builds a selection by toggling each number in turn.
func NewSelection(numbers ...int) Selection {
	var s Selection
	for _, n := range numbers {
		s.Toggle(n)
	}
	return s
}

// Toggle removes n when present, otherwise appends it.
func (s *Selection) Toggle(n int) {
	if i := s.index(n); i >= 0 {
		copy(s.numbers[i:], s.numbers[i+1:s.n])
		s.n--
		return
	}

	if s.n == SelectionSize {
		copy(s.numbers[:], s.numbers[1:])
		s.n--
	}
	s.numbers[s.n] = n
	s.n++
}

// Len returns the number of selected lists.
func (s Selection) Len() int { return s.n }

// Full reports whether exactly [SelectionSize] lists are selected.
func (s Selection) Full() bool { return s.n == SelectionSize }

// Contains reports whether list n is selected.
func (s Selection) Contains(n int) bool { return s.index(n) >= 0 }

// At returns the i-th selected list number in selection order.
func (s Selection) At(i int) (int, bool) {
	if i < 0 || i >= s.n {
		return 0, false
	}
	return s.numbers[i], true
}

// First returns the older selected list.
func (s Selection) First() (int, bool) { return s.At(0) }

// Second returns the newer selected list.
func (s Selection) Second() (int, bool) { return s.At(1) }

// Numbers returns the selected list numbers, oldest first.
func (s Selection) Numbers() []int {
	out := make([]int, s.n)
	copy(out, s.numbers[:s.n])
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() { *s = Selection{} }

func (s Selection) index(n int) int {
	for i := 0; i < s.n; i++ {
		if s.numbers[i] == n {
			return i
		}
	}
	return -1
}
