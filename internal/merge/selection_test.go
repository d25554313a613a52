package merge

import (
	"slices"
	"testing"
)

func TestSelection(t *testing.T) {
	tc := []struct {
		name    string
		toggles []int
		want    []int
	}{
		{name: "empty", toggles: nil, want: []int{}},
		{name: "one", toggles: []int{1}, want: []int{1}},
		{name: "two keep order", toggles: []int{2, 1}, want: []int{2, 1}},
		{name: "third evicts oldest", toggles: []int{1, 2, 3}, want: []int{2, 3}},
		{name: "fourth evicts again", toggles: []int{1, 2, 3, 4}, want: []int{3, 4}},
		{name: "toggle off", toggles: []int{1, 2, 1}, want: []int{2}},
		{name: "toggle off newest", toggles: []int{1, 2, 2}, want: []int{1}},
		{name: "re-add after removal goes last", toggles: []int{1, 2, 1, 1}, want: []int{2, 1}},
		{name: "evicted can return", toggles: []int{1, 2, 3, 1}, want: []int{3, 1}},
		{name: "re-toggling the first swaps order", toggles: []int{2, 1, 2, 2}, want: []int{1, 2}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(tt.toggles...)
			if got := s.Numbers(); !slices.Equal(got, tt.want) {
				t.Errorf("Numbers() = %v, want %v", got, tt.want)
			}
			if s.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", s.Len(), len(tt.want))
			}
			if s.Full() != (len(tt.want) == SelectionSize) {
				t.Errorf("Full() = %v for %v", s.Full(), tt.want)
			}
		})
	}

	t.Run("At", func(t *testing.T) {
		s := NewSelection(4, 7)
		if n, ok := s.At(0); !ok || n != 4 {
			t.Errorf("At(0) = %d, %v", n, ok)
		}
		if n, ok := s.At(1); !ok || n != 7 {
			t.Errorf("At(1) = %d, %v", n, ok)
		}
		if _, ok := s.At(2); ok {
			t.Error("At(2) should be out of range")
		}
		if _, ok := s.At(-1); ok {
			t.Error("At(-1) should be out of range")
		}
		if n, _ := s.First(); n != 4 {
			t.Errorf("First() = %d, want 4", n)
		}
		if n, _ := s.Second(); n != 7 {
			t.Errorf("Second() = %d, want 7", n)
		}
		if _, ok := NewSelection(4).Second(); ok {
			t.Error("Second() on a single selection should be absent")
		}
	})

	t.Run("Numbers Returns A Copy", func(t *testing.T) {
		s := NewSelection(1, 2)
		got := s.Numbers()
		got[0] = 99
		if s.Contains(99) {
			t.Error("mutating Numbers() result changed the selection")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		s := NewSelection(1, 2)
		s.Clear()
		if s.Len() != 0 || s.Contains(1) {
			t.Errorf("expected empty selection, got %v", s.Numbers())
		}
	})
}
