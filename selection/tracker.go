// SPDX-License-Identifier: MIT

// Package selection tracks which matrices the user has picked for a pending
// combining operation.
//
// A Tracker holds at most two distinct matrix ids in insertion order. The
// order is significant: for multiplication the first id is the left operand
// and the second the right one. The tracker has no dependency on any
// presentation mechanism; a UI feeds it toggle events and reads back the
// predicates that enable or disable its actions.
//
// A Tracker is not safe for concurrent use; it models single-session state.
package selection

// MaxSelected is the upper bound on the number of selected ids.
const MaxSelected = 2

// Tracker is the bounded, ordered selection state. The zero value is an
// empty selection ready to use.
type Tracker struct {
	selected []int // invariant: len <= MaxSelected, no duplicates
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{selected: make([]int, 0, MaxSelected)}
}

// Toggle applies one selection event for id and reports whether the state
// changed:
//   - id already selected: it is removed; the remaining order is preserved.
//   - fewer than MaxSelected selected: id is appended at the end.
//   - otherwise: no-op until the selection is reduced.
//
// Complexity: O(1) (at most MaxSelected comparisons).
func (t *Tracker) Toggle(id int) bool {
	for i, s := range t.selected {
		if s == id {
			t.selected = append(t.selected[:i], t.selected[i+1:]...)
			return true
		}
	}
	if len(t.selected) >= MaxSelected {
		return false
	}
	t.selected = append(t.selected, id)

	return true
}

// Clear empties the selection. Called after a combining operation commits.
func (t *Tracker) Clear() {
	t.selected = t.selected[:0]
}

// Selected returns a copy of the selected ids in insertion order.
func (t *Tracker) Selected() []int {
	out := make([]int, len(t.selected))
	copy(out, t.selected)

	return out
}

// Len returns the number of selected ids.
func (t *Tracker) Len() int { return len(t.selected) }

// Contains reports whether id is selected.
func (t *Tracker) Contains(id int) bool {
	for _, s := range t.selected {
		if s == id {
			return true
		}
	}

	return false
}

// CanAdd reports whether addition is currently possible: exactly two ids.
func (t *Tracker) CanAdd() bool { return len(t.selected) == MaxSelected }

// CanMultiply reports whether multiplication is currently possible: exactly two ids.
func (t *Tracker) CanMultiply() bool { return len(t.selected) == MaxSelected }

// CanTranspose reports whether transposition is currently possible: exactly one id.
func (t *Tracker) CanTranspose() bool { return len(t.selected) == 1 }

// Pair returns the (left, right) operand ids when exactly two are selected.
func (t *Tracker) Pair() (left, right int, ok bool) {
	if len(t.selected) != MaxSelected {
		return 0, 0, false
	}

	return t.selected[0], t.selected[1], true
}

// Single returns the selected id when exactly one is selected.
func (t *Tracker) Single() (id int, ok bool) {
	if len(t.selected) != 1 {
		return 0, false
	}

	return t.selected[0], true
}
