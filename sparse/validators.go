// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Provide a single source of truth for operand checks used by the kernels.
//   - Keep kernels minimal by delegating nil/index/shape checks here.
//
// Determinism & Performance:
//   - Nil and index checks are O(1); shape checks are O(n) because Shape is
//     derived by scanning the stored keys.
//
// Note:
//   - Composite validators follow a fixed sequence (NotNil → Shape).

package sparse

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return sparseErrorf(tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidatePos ensures both indices are 1-based positive integers.
// Complexity: O(1).
func ValidatePos(row, col int) error {
	if row < 1 || col < 1 {
		return validatorErrorf("ValidatePos", ErrOutOfRange)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal derived shapes.
// On failure returns *DimensionMismatch tagged with op, carrying both shapes.
// Assumes a and b are not nil (caller must ensure).
// Complexity: O(n_a + n_b).
func ValidateSameShape(op string, a, b *Matrix) error {
	sa, sb := a.Shape(), b.Shape()
	if sa != sb {
		return &DimensionMismatch{Op: op, A: sa, B: sb}
	}

	return nil
}

// ValidateMulCompatible ensures cols(a) == rows(b).
// On failure returns *DimensionMismatch{Op: "Mul"} carrying both shapes.
// Assumes a and b are not nil (caller must ensure).
// Complexity: O(n_a + n_b).
func ValidateMulCompatible(a, b *Matrix) error {
	sa, sb := a.Shape(), b.Shape()
	if sa.Cols != sb.Rows {
		return &DimensionMismatch{Op: opMul, A: sa, B: sb}
	}

	return nil
}

// MaxArea bounds rows*cols of any shape a kernel materializes densely
// (Add, Sub, Mul results and Dense).
const MaxArea = 1 << 24

// ValidateArea ensures rows*cols of s does not exceed MaxArea. The check
// divides instead of multiplying, so it cannot overflow.
// Complexity: O(1).
func ValidateArea(s Shape) error {
	if s.Rows == 0 || s.Cols == 0 {
		return nil
	}
	if s.Rows > MaxArea/s.Cols {
		return fmt.Errorf("ValidateArea: %w: %s", ErrTooLarge, s)
	}

	return nil
}

// ValidateBinaryNotNil is the composite NotNil(a) → NotNil(b).
// Complexity: O(1).
func ValidateBinaryNotNil(a, b *Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinaryNotNil", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinaryNotNil", err)
	}

	return nil
}
