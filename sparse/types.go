// SPDX-License-Identifier: MIT

// Package sparse: domain types. This file contains ONLY the position key,
// the derived shape and the matrix entity itself; construction and access
// live in matrix.go, algebra in methods.go.
package sparse

import "fmt"

// Pos is a 1-based (row, column) position. Both indices must be > 0 for a
// stored element. Using a comparable struct keeps the map key compact.
type Pos struct {
	Row int
	Col int
}

// Less orders positions row-major: by Row, then by Col.
func (p Pos) Less(q Pos) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}

	return p.Col < q.Col
}

// Shape is the derived (rows, cols) extent of a matrix: the maximum row and
// maximum column index present among the stored keys. It is never stored.
type Shape struct {
	Rows int
	Cols int
}

// Empty reports whether the shape is 0×0.
func (s Shape) Empty() bool { return s.Rows == 0 && s.Cols == 0 }

// String renders the shape as "RxC".
func (s Shape) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Cols) }

// Matrix is a sparse matrix: a mapping from 1-based positions to values plus
// an identifier. Absent positions are implicitly zero for algebra.
//
// ID is assigned by the store. Matrices produced by algebra carry ID 0 until
// the caller proposes one (see NextID); the store is free to reassign it.
//
// Lifecycle: a Matrix is mutable until Seal is called. The client seals a
// matrix when it issues a save and when it decodes one from the store, so
// a snapshot that has been sent or displayed can no longer change.
//
// Matrix is not safe for concurrent mutation; sealed matrices may be read
// from any number of goroutines.
type Matrix struct {
	ID int

	elems  map[Pos]float64
	sealed bool
}
