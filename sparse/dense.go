// SPDX-License-Identifier: MIT

package sparse

import (
	"gonum.org/v1/gonum/mat"
)

// Dense converts m into a gonum dense matrix of the same shape; positions
// that are not stored become zero. Indices shift from 1-based to 0-based.
// Errors: ErrNilMatrix, ErrEmpty (gonum cannot represent 0×0), ErrTooLarge.
// Complexity: O(r*c) memory, O(n) writes.
func (m *Matrix) Dense() (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, sparseErrorf("Dense", err)
	}
	s := m.Shape()
	if s.Empty() {
		return nil, sparseErrorf("Dense", ErrEmpty)
	}
	if err := ValidateArea(s); err != nil {
		return nil, sparseErrorf("Dense", err)
	}
	d := mat.NewDense(s.Rows, s.Cols, nil)
	for p, v := range m.elems {
		d.Set(p.Row-1, p.Col-1, v)
	}

	return d, nil
}

// FromDense builds a matrix from any gonum mat.Matrix. Every cell is stored,
// zeros included, so the derived shape equals the source dimensions.
// Complexity: O(r*c).
func FromDense(id int, src mat.Matrix) *Matrix {
	r, c := src.Dims()
	m := &Matrix{ID: id, elems: make(map[Pos]float64, r*c)}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.elems[Pos{Row: i + 1, Col: j + 1}] = src.At(i, j)
		}
	}

	return m
}
