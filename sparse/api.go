// SPDX-License-Identifier: MIT
// Package sparse: public API facades.
//
// Purpose:
//   - Provide thin entry points for common tasks; each facade delegates to
//     the canonical kernel and never duplicates loops.
//   - Host the advisory id allocation used before submitting a new matrix.

package sparse

// Sum is an alias for Add: element-wise a + b.
// Complexity: O(rc).
func Sum(a, b *Matrix) (*Matrix, error) { return Add(a, b) }

// Diff is an alias for Sub: element-wise a − b.
// Complexity: O(rc).
func Diff(a, b *Matrix) (*Matrix, error) { return Sub(a, b) }

// Product is an alias for Mul: matrix product a × b.
// Complexity: O(r*n*c).
func Product(a, b *Matrix) (*Matrix, error) { return Mul(a, b) }

// T is an alias for Transpose: returns aᵀ.
// Complexity: O(n).
func T(a *Matrix) *Matrix { return Transpose(a) }

// NextID proposes an id for a new matrix: 1 + max(existing ids), or 1 when
// ms is empty. Nil entries are skipped.
//
// The result is advisory. The store is the only id authority and may assign
// a different id when two clients propose the same one concurrently.
// Complexity: O(len(ms)).
func NextID(ms []*Matrix) int {
	maxID := 0
	for _, m := range ms {
		if m != nil && m.ID > maxID {
			maxID = m.ID
		}
	}

	return maxID + 1
}

// NextIDFrom is NextID over bare identifiers.
func NextIDFrom(ids []int) int {
	maxID := 0
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}

	return maxID + 1
}
