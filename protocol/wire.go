// SPDX-License-Identifier: MIT

package protocol

import (
	"fmt"

	"github.com/katalvlaran/matrixlink/sparse"
)

// Entry is one ((row, col), value) triple, encoded as a 3-element array.
type Entry struct {
	_     struct{} `cbor:",toarray"`
	Row   int
	Col   int
	Value float64
}

// Matrix is the wire form of a sparse matrix.
type Matrix struct {
	ID       int     `cbor:"id"`
	Elements []Entry `cbor:"elements"`
}

// FromSparse converts m to its wire form with entries in row-major order,
// so equal matrices always encode to identical bytes.
func FromSparse(m *sparse.Matrix) Matrix {
	positions := m.Positions()
	w := Matrix{ID: m.ID, Elements: make([]Entry, 0, len(positions))}
	for _, p := range positions {
		w.Elements = append(w.Elements, Entry{Row: p.Row, Col: p.Col, Value: m.At(p.Row, p.Col)})
	}

	return w
}

// ToSparse converts the wire form back into a matrix. Every stored key is
// restored exactly; positions must be positive and unique, and the derived
// shape may span at most MaxElements cells, so a single far-out element
// cannot make later dense algebra run away.
// Errors: ErrMalformed.
func (w Matrix) ToSparse() (*sparse.Matrix, error) {
	m := sparse.New(w.ID)
	for i, e := range w.Elements {
		if e.Row < 1 || e.Col < 1 {
			return nil, fmt.Errorf("%w: element %d at (%d, %d): indices must be positive",
				ErrMalformed, i, e.Row, e.Col)
		}
		if m.Has(e.Row, e.Col) {
			return nil, fmt.Errorf("%w: element %d: duplicate position (%d, %d)",
				ErrMalformed, i, e.Row, e.Col)
		}
		_ = m.Set(e.Row, e.Col, e.Value) // indices validated above
	}
	if s := m.Shape(); s.Rows > 0 && s.Rows > MaxElements/s.Cols {
		return nil, fmt.Errorf("%w: shape %s spans more than %d cells", ErrMalformed, s, MaxElements)
	}

	return m, nil
}

// FromSparseList converts a slice of matrices; nil entries are skipped.
func FromSparseList(ms []*sparse.Matrix) []Matrix {
	out := make([]Matrix, 0, len(ms))
	for _, m := range ms {
		if m != nil {
			out = append(out, FromSparse(m))
		}
	}

	return out
}

// ToSparseList converts a decoded GET_ALL response, stopping at the first
// malformed matrix.
func ToSparseList(ws []Matrix) ([]*sparse.Matrix, error) {
	out := make([]*sparse.Matrix, 0, len(ws))
	for i, w := range ws {
		m, err := w.ToSparse()
		if err != nil {
			return nil, fmt.Errorf("matrix %d (id %d): %w", i, w.ID, err)
		}
		out = append(out, m)
	}

	return out, nil
}
