// SPDX-License-Identifier: MIT

// Package sparse: construction, lookup and lifecycle of *Matrix.
//
// The absent-is-zero rule lives here and only here: At always returns a
// defined value, so kernels never branch on "missing".
package sparse

import (
	"sort"
)

// New returns an empty, mutable matrix with the given id.
// Complexity: O(1).
func New(id int) *Matrix {
	return &Matrix{ID: id, elems: make(map[Pos]float64)}
}

// FromMap builds a matrix from a position→value mapping.
// The input map is copied; later changes to it do not affect the matrix.
// Errors: ErrOutOfRange on any non-positive index.
// Complexity: O(n).
func FromMap(id int, elems map[Pos]float64) (*Matrix, error) {
	m := &Matrix{ID: id, elems: make(map[Pos]float64, len(elems))}
	for p, v := range elems {
		if err := ValidatePos(p.Row, p.Col); err != nil {
			return nil, sparseErrorf("FromMap", err)
		}
		m.elems[p] = v
	}

	return m, nil
}

// FromRows builds a matrix from a dense row-major grid; rows[i][j] is stored
// at (i+1, j+1). Every cell is stored, zeros included, so the derived shape
// equals the grid extent.
// Errors: ErrRagged if rows differ in length.
// Complexity: O(r*c).
func FromRows(id int, rows [][]float64) (*Matrix, error) {
	m := New(id)
	if len(rows) == 0 {
		return m, nil
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return nil, sparseErrorf("FromRows", ErrRagged)
		}
		for j, v := range row {
			m.elems[Pos{Row: i + 1, Col: j + 1}] = v
		}
	}

	return m, nil
}

// Shape returns (max row, max col) over stored keys, or (0, 0) when empty.
// Pure and deterministic. Complexity: O(n).
func (m *Matrix) Shape() Shape {
	var s Shape
	if m == nil {
		return s
	}
	for p := range m.elems {
		if p.Row > s.Rows {
			s.Rows = p.Row
		}
		if p.Col > s.Cols {
			s.Cols = p.Col
		}
	}

	return s
}

// At returns the value stored at (row, col), or 0 when absent.
// Never fails; any index outside the stored keys reads as zero.
// Complexity: O(1).
func (m *Matrix) At(row, col int) float64 {
	if m == nil {
		return 0
	}

	return m.elems[Pos{Row: row, Col: col}] // missing key yields the zero value
}

// Has reports whether (row, col) is explicitly stored.
func (m *Matrix) Has(row, col int) bool {
	if m == nil {
		return false
	}
	_, ok := m.elems[Pos{Row: row, Col: col}]

	return ok
}

// Set stores v at (row, col). Explicit zeros are kept: they contribute to
// the derived shape, while algebra treats them exactly like absent entries.
// Errors: ErrNilMatrix, ErrOutOfRange, ErrSealed.
// Complexity: O(1) amortized.
func (m *Matrix) Set(row, col int, v float64) error {
	if err := ValidateNotNil(m); err != nil {
		return sparseErrorf("Set", err)
	}
	if err := ValidatePos(row, col); err != nil {
		return sparseErrorf("Set", err)
	}
	if m.sealed {
		return sparseErrorf("Set", ErrSealed)
	}
	if m.elems == nil {
		m.elems = make(map[Pos]float64)
	}
	m.elems[Pos{Row: row, Col: col}] = v

	return nil
}

// Delete removes (row, col) if stored. Deleting an absent key is a no-op.
// Errors: ErrNilMatrix, ErrSealed.
func (m *Matrix) Delete(row, col int) error {
	if err := ValidateNotNil(m); err != nil {
		return sparseErrorf("Delete", err)
	}
	if m.sealed {
		return sparseErrorf("Delete", ErrSealed)
	}
	delete(m.elems, Pos{Row: row, Col: col})

	return nil
}

// Len returns the number of stored keys.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}

	return len(m.elems)
}

// Positions returns the stored keys in row-major order.
// Complexity: O(n log n).
func (m *Matrix) Positions() []Pos {
	if m == nil {
		return nil
	}
	out := make([]Pos, 0, len(m.elems))
	for p := range m.elems {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}

// Elements returns a copy of the stored mapping.
func (m *Matrix) Elements() map[Pos]float64 {
	if m == nil {
		return nil
	}
	out := make(map[Pos]float64, len(m.elems))
	for p, v := range m.elems {
		out[p] = v
	}

	return out
}

// Clone returns a deep, unsealed copy (same id).
// Complexity: O(n).
func (m *Matrix) Clone() *Matrix {
	if m == nil {
		return nil
	}

	return &Matrix{ID: m.ID, elems: m.Elements()}
}

// Seal freezes the matrix; subsequent Set/Delete return ErrSealed.
// Sealing is idempotent and cannot be undone.
func (m *Matrix) Seal() {
	if m != nil {
		m.sealed = true
	}
}

// Sealed reports whether the matrix has been frozen.
func (m *Matrix) Sealed() bool { return m != nil && m.sealed }

// Equal reports whether m and other hold the same values: equal shapes and
// At(p) equal for every key stored in either. IDs are ignored; an absent key
// and an explicit zero compare equal.
// Complexity: O(n_m + n_other).
func (m *Matrix) Equal(other *Matrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Shape() != other.Shape() {
		return false
	}
	for p, v := range m.elems {
		if other.At(p.Row, p.Col) != v {
			return false
		}
	}
	for p, v := range other.elems {
		if m.At(p.Row, p.Col) != v {
			return false
		}
	}

	return true
}
