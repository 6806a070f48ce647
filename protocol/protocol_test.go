// SPDX-License-Identifier: MIT
package protocol_test

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/katalvlaran/matrixlink/protocol"
	"github.com/katalvlaran/matrixlink/sparse"
	"github.com/stretchr/testify/require"
)

func TestCommand_ClosedSet(t *testing.T) {
	for _, c := range []protocol.Command{protocol.CmdGetAll, protocol.CmdGetByID, protocol.CmdSave, protocol.CmdExit} {
		require.True(t, c.Valid(), c)
		parsed, err := protocol.ParseCommand(string(c))
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	}

	_, err := protocol.ParseCommand("DELETE")
	require.ErrorIs(t, err, protocol.ErrUnknownCommand)

	require.True(t, protocol.CmdGetByID.HasPayload())
	require.True(t, protocol.CmdSave.HasPayload())
	require.False(t, protocol.CmdGetAll.HasPayload())
	require.False(t, protocol.CmdExit.HasPayload())
	require.False(t, protocol.CmdExit.HasResponse())
	require.True(t, protocol.CmdGetAll.HasResponse())
}

func TestWriteRequest_TwoPartFraming(t *testing.T) {
	var buf bytes.Buffer
	enc := protocol.NewEncoder(&buf)

	require.NoError(t, protocol.WriteRequest(enc, protocol.CmdGetByID, 42))
	require.NoError(t, protocol.WriteRequest(enc, protocol.CmdGetAll, "ignored"))

	dec := protocol.NewDecoder(&buf)
	c, err := protocol.ReadCommand(dec)
	require.NoError(t, err)
	require.Equal(t, protocol.CmdGetByID, c)
	var id int
	require.NoError(t, dec.Decode(&id))
	require.Equal(t, 42, id)

	c, err = protocol.ReadCommand(dec)
	require.NoError(t, err)
	require.Equal(t, protocol.CmdGetAll, c)
	var extra any
	require.ErrorIs(t, dec.Decode(&extra), io.EOF, "GET_ALL must not write a payload")
}

func TestWriteRequest_RejectsUnknown(t *testing.T) {
	var buf bytes.Buffer
	err := protocol.WriteRequest(protocol.NewEncoder(&buf), protocol.Command("NOPE"), nil)
	require.ErrorIs(t, err, protocol.ErrUnknownCommand)
	require.Equal(t, 0, buf.Len())
}

func TestMatrix_RoundTripPreservesKeys(t *testing.T) {
	m, err := sparse.FromMap(5, map[sparse.Pos]float64{
		{Row: 3, Col: 1}: math.Pi,
		{Row: 1, Col: 2}: -0.1,
		{Row: 1, Col: 1}: 0, // explicit zero survives
	})
	require.NoError(t, err)

	data, err := protocol.Marshal(protocol.FromSparse(m))
	require.NoError(t, err)

	var w protocol.Matrix
	require.NoError(t, protocol.Unmarshal(data, &w))
	require.Equal(t, []protocol.Entry{
		{Row: 1, Col: 1, Value: 0},
		{Row: 1, Col: 2, Value: -0.1},
		{Row: 3, Col: 1, Value: math.Pi},
	}, w.Elements)

	back, err := w.ToSparse()
	require.NoError(t, err)
	require.Equal(t, 5, back.ID)
	require.Equal(t, m.Elements(), back.Elements())
}

func TestMatrix_DeterministicBytes(t *testing.T) {
	a, _ := sparse.FromRows(1, [][]float64{{1, 2}, {3, 4}})
	b := a.Clone()

	da, err := protocol.Marshal(protocol.FromSparse(a))
	require.NoError(t, err)
	db, err := protocol.Marshal(protocol.FromSparse(b))
	require.NoError(t, err)
	require.Equal(t, da, db)

	diag, err := protocol.Diagnose(da)
	require.NoError(t, err)
	require.Contains(t, diag, `"elements"`)
}

func TestMatrix_NullIsAbsent(t *testing.T) {
	var absent *protocol.Matrix
	data, err := protocol.Marshal(absent)
	require.NoError(t, err)

	got := &protocol.Matrix{ID: 1}
	require.NoError(t, protocol.Unmarshal(data, &got))
	require.Nil(t, got)
}

func TestToSparse_RejectsMalformed(t *testing.T) {
	dup := protocol.Matrix{ID: 1, Elements: []protocol.Entry{
		{Row: 1, Col: 1, Value: 1},
		{Row: 1, Col: 1, Value: 2},
	}}
	_, err := dup.ToSparse()
	require.ErrorIs(t, err, protocol.ErrMalformed)

	zero := protocol.Matrix{ID: 1, Elements: []protocol.Entry{{Row: 0, Col: 1, Value: 1}}}
	_, err = zero.ToSparse()
	require.ErrorIs(t, err, protocol.ErrMalformed)

	_, err = protocol.ToSparseList([]protocol.Matrix{{ID: 2}, dup})
	require.ErrorIs(t, err, protocol.ErrMalformed)
}

func TestSparseList(t *testing.T) {
	a, _ := sparse.FromRows(1, [][]float64{{1}})
	b, _ := sparse.FromRows(2, [][]float64{{2}})

	ws := protocol.FromSparseList([]*sparse.Matrix{a, nil, b})
	require.Len(t, ws, 2)

	ms, err := protocol.ToSparseList(ws)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	require.Equal(t, 2, ms[1].ID)
	require.Equal(t, 2.0, ms[1].At(1, 1))
}

func TestToSparse_RejectsOversizedShape(t *testing.T) {
	far := protocol.Matrix{ID: 1, Elements: []protocol.Entry{{Row: 1 << 20, Col: 1 << 20, Value: 1}}}
	_, err := far.ToSparse()
	require.ErrorIs(t, err, protocol.ErrMalformed)

	huge := int(^uint(0) >> 1)
	overflow := protocol.Matrix{ID: 1, Elements: []protocol.Entry{{Row: huge, Col: huge, Value: 1}}}
	_, err = overflow.ToSparse()
	require.ErrorIs(t, err, protocol.ErrMalformed)

	edge := protocol.Matrix{ID: 1, Elements: []protocol.Entry{{Row: protocol.MaxElements, Col: 1, Value: 1}}}
	m, err := edge.ToSparse()
	require.NoError(t, err)
	require.Equal(t, sparse.Shape{Rows: protocol.MaxElements, Cols: 1}, m.Shape())
}
