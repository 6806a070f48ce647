// Package sparse models numeric matrices as sparse position→value maps and
// provides the algebra used to combine them.
//
// The package provides:
//
//   - Matrix: an identified mapping from 1-based (row, col) positions to
//     float64 values. Absent positions read as zero through At, which is the
//     single place the zero-default rule is implemented.
//   - Shape: the derived (max row, max col) extent, never stored.
//   - Add, Sub, Mul, Transpose and Scale: pure kernels that allocate fresh
//     results and never modify their operands, so they are safe to call from
//     independent goroutines on independent inputs.
//   - DimensionMismatch: a structured error carrying both operand shapes.
//   - NextID: the advisory id proposal (1 + max id) for new matrices.
//   - Dense/FromDense: interop with gonum.org/v1/gonum/mat.
//
// Quick example:
//
//	a, _ := sparse.FromRows(1, [][]float64{{1, 2}, {3, 4}})
//	b, _ := sparse.FromRows(2, [][]float64{{5, 6}, {7, 8}})
//	sum, err := sparse.Add(a, b) // {(1,1):6, (1,2):8, (2,1):10, (2,2):12}
package sparse
