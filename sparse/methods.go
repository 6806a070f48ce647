// SPDX-License-Identifier: MIT

// Package sparse provides the algebra over *Matrix: element-wise addition
// and subtraction, matrix multiplication, transpose and scalar scaling.
// All functions validate operands up front, never modify their inputs and
// always return a freshly allocated result with ID 0 (unassigned).
package sparse

// Operation name constants for unified error wrapping.
const (
	opAdd   = "Add"
	opSub   = "Sub"
	opMul   = "Mul"
	opScale = "Scale"
)

// Add returns a new matrix holding the element-wise sum a + b.
// Stage 1 (Validate): nil-checks and equal shapes.
// Stage 2 (Prepare): allocate the result sized for the common shape.
// Stage 3 (Execute): write a.At+b.At for every position in 1..rows × 1..cols.
// Stage 4 (Finalize): return result.
//
// The result is dense within its shape: every position is written, even
// where neither addend stores a value.
// Errors: ErrNilMatrix, *DimensionMismatch (matches ErrDimensionMismatch),
// ErrTooLarge when r·c exceeds MaxArea.
// Complexity: O(r·c) time and memory.
func Add(a, b *Matrix) (*Matrix, error) {
	return elementwise(opAdd, a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a new matrix holding the element-wise difference a − b.
// Same shape rules and density as Add.
// Complexity: O(r·c) time and memory.
func Sub(a, b *Matrix) (*Matrix, error) {
	return elementwise(opSub, a, b, func(x, y float64) float64 { return x - y })
}

// elementwise is the shared kernel for Add/Sub.
func elementwise(op string, a, b *Matrix, f func(x, y float64) float64) (*Matrix, error) {
	// Stage 1: Validate inputs
	if err := ValidateBinaryNotNil(a, b); err != nil {
		return nil, sparseErrorf(op, err)
	}
	if err := ValidateSameShape(op, a, b); err != nil {
		return nil, err // already carries op and both shapes
	}

	// Stage 2: Allocate result
	s := a.Shape()
	if err := ValidateArea(s); err != nil {
		return nil, sparseErrorf(op, err)
	}
	res := &Matrix{elems: make(map[Pos]float64, s.Rows*s.Cols)}

	// Stage 3: Fixed i→j order
	for i := 1; i <= s.Rows; i++ {
		for j := 1; j <= s.Cols; j++ {
			res.elems[Pos{Row: i, Col: j}] = f(a.At(i, j), b.At(i, j))
		}
	}

	// Stage 4: Return result
	return res, nil
}

// Mul performs matrix multiplication a × b.
// Stage 1 (Validate): nil-checks and cols(a) == rows(b).
// Stage 2 (Prepare): allocate result of shape (rows(a), cols(b)).
// Stage 3 (Execute): res[i,j] = Σ_{k=1..cols(a)} a[i,k]·b[k,j], k ascending.
// Stage 4 (Finalize): return result.
//
// Operand order is significant; Mul is not commutative. The accumulation
// order over k is fixed so results are bit-for-bit reproducible.
// Errors: ErrNilMatrix, *DimensionMismatch with Needed()=cols(a), Got()=rows(b),
// ErrTooLarge when either operand or the result exceeds MaxArea.
// Complexity: O(r·n·c) time and O(r·c) memory.
func Mul(a, b *Matrix) (*Matrix, error) {
	// Stage 1: Validate inputs
	if err := ValidateBinaryNotNil(a, b); err != nil {
		return nil, sparseErrorf(opMul, err)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, err
	}

	// Stage 2: Allocate result; operands are bounded too, since the inner
	// loop runs cols(a) times per result cell.
	sa, sb := a.Shape(), b.Shape()
	for _, s := range []Shape{sa, sb, {Rows: sa.Rows, Cols: sb.Cols}} {
		if err := ValidateArea(s); err != nil {
			return nil, sparseErrorf(opMul, err)
		}
	}
	res := &Matrix{elems: make(map[Pos]float64, sa.Rows*sb.Cols)}

	// Stage 3: i→j→k loops; k ascending is part of the contract.
	var (
		i, j, k int
		sum     float64
	)
	for i = 1; i <= sa.Rows; i++ {
		for j = 1; j <= sb.Cols; j++ {
			sum = 0
			for k = 1; k <= sa.Cols; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			res.elems[Pos{Row: i, Col: j}] = sum
		}
	}

	// Stage 4: Return result
	return res, nil
}

// Transpose returns aᵀ: (j, i) = a[i, j] for every stored key.
// Never fails; a nil input yields an empty matrix. Only stored keys are
// visited, so sparsity is preserved and shape becomes (cols(a), rows(a)).
// Complexity: O(n).
func Transpose(a *Matrix) *Matrix {
	res := &Matrix{elems: make(map[Pos]float64, a.Len())}
	if a == nil {
		return res
	}
	for p, v := range a.elems {
		res.elems[Pos{Row: p.Col, Col: p.Row}] = v
	}

	return res
}

// Scale returns alpha·a, visiting stored keys only.
// Errors: ErrNilMatrix.
// Complexity: O(n).
func Scale(a *Matrix, alpha float64) (*Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, sparseErrorf(opScale, err)
	}
	res := &Matrix{elems: make(map[Pos]float64, len(a.elems))}
	for p, v := range a.elems {
		res.elems[p] = alpha * v
	}

	return res, nil
}
