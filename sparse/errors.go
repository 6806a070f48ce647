// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set and structured algebra errors.
// All operations return these sentinels (possibly wrapped with an op tag)
// and tests match them via errors.Is. No operation panics on user input.

package sparse

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message, sentinel or structured, is prefixed with "sparse: ..." so
// log lines are easy to grep.
// Call sites add context with fmt.Errorf("Op: %w", ErrX); callers still
// match with errors.Is.

var (
	// ErrNilMatrix indicates that a nil *Matrix was passed to an operation.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrOutOfRange indicates a non-positive row or column index on write.
	// Reads never fail: At returns 0 for any position that is not stored.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. Add on
	// different shapes or Mul where cols(a) != rows(b). Concrete failures are
	// reported as *DimensionMismatch, which matches this sentinel.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrSealed is returned when a write targets a matrix that has already been
	// handed to the store (or was decoded from it). Clone to obtain a mutable copy.
	ErrSealed = errors.New("sparse: matrix is sealed")

	// ErrEmpty is returned by conversions that cannot represent a 0×0 matrix.
	ErrEmpty = errors.New("sparse: matrix is empty")

	// ErrRagged indicates rows of different length passed to FromRows.
	ErrRagged = errors.New("sparse: ragged rows")

	// ErrTooLarge indicates a derived shape whose area exceeds MaxArea. Shape
	// follows the largest stored index, so a single element far out is enough.
	ErrTooLarge = errors.New("sparse: shape exceeds MaxArea")
)

// DimensionMismatch carries both operand shapes so the caller can render a
// precise diagnostic without re-deriving them.
type DimensionMismatch struct {
	Op string // "Add", "Sub" or "Mul"
	A  Shape  // left operand shape
	B  Shape  // right operand shape
}

// Needed is the inner dimension required by the right operand of Mul: cols(A).
func (e *DimensionMismatch) Needed() int { return e.A.Cols }

// Got is the inner dimension actually supplied by the right operand of Mul: rows(B).
func (e *DimensionMismatch) Got() int { return e.B.Rows }

func (e *DimensionMismatch) Error() string {
	if e.Op == opMul {
		return fmt.Sprintf("sparse: %s: %s × %s: needed %d rows in right operand, got %d",
			e.Op, e.A, e.B, e.Needed(), e.Got())
	}

	return fmt.Sprintf("sparse: %s: shapes differ: %s and %s", e.Op, e.A, e.B)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatch) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// sparseErrorf wraps an underlying error with the given op tag.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
