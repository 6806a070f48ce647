// SPDX-License-Identifier: MIT
package sparse_test

import (
	"testing"

	"github.com/katalvlaran/matrixlink/sparse"
	"github.com/stretchr/testify/require"
)

func TestFacades_DelegateToKernels(t *testing.T) {
	a := mustRows(t, 1, [][]float64{{1, 2}, {3, 4}})
	b := mustRows(t, 2, [][]float64{{5, 6}, {7, 8}})

	sum, err := sparse.Sum(a, b)
	require.NoError(t, err)
	add, _ := sparse.Add(a, b)
	require.True(t, sum.Equal(add))

	diff, err := sparse.Diff(b, a)
	require.NoError(t, err)
	require.True(t, diff.Equal(mustRows(t, 0, [][]float64{{4, 4}, {4, 4}})))

	prod, err := sparse.Product(a, b)
	require.NoError(t, err)
	mul, _ := sparse.Mul(a, b)
	require.True(t, prod.Equal(mul))

	require.True(t, sparse.T(a).Equal(sparse.Transpose(a)))
}

func TestNextID(t *testing.T) {
	require.Equal(t, 1, sparse.NextID(nil))
	require.Equal(t, 1, sparse.NextIDFrom(nil))

	ms := []*sparse.Matrix{sparse.New(3), nil, sparse.New(1), sparse.New(7)}
	require.Equal(t, 8, sparse.NextID(ms))
	require.Equal(t, 5, sparse.NextIDFrom([]int{4, 2}))
}
