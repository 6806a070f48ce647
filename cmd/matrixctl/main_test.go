// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/katalvlaran/matrixlink/config"
	"github.com/katalvlaran/matrixlink/memstore"
	"github.com/katalvlaran/matrixlink/sparse"
	"github.com/stretchr/testify/require"
)

// startStore serves a seeded store on a loopback port and returns the
// flags that point matrixctl at it.
func startStore(t *testing.T, grids map[int][][]float64) (*memstore.Store, []string) {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	store := memstore.NewStore()
	for id, rows := range grids {
		m, err := sparse.FromRows(id, rows)
		require.NoError(t, err)
		_, ok := store.Put(m)
		require.True(t, ok)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = memstore.NewServer(store, nil).Serve(ctx, listener)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	port := listener.Addr().(*net.TCPAddr).Port
	return store, []string{"--host", "127.0.0.1", "--port", strconv.Itoa(port), "--log-level", "error"}
}

func runCtl(t *testing.T, flags []string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append(append([]string{}, flags...), args...), &stdout, &stderr)

	return stdout.String(), err
}

func TestList(t *testing.T) {
	_, flags := startStore(t, map[int][][]float64{1: {{1, 0}, {0, 2}}})

	out, err := runCtl(t, flags, "list")
	require.NoError(t, err)
	require.Contains(t, out, "matrix 1 (2x2, 4 stored)")
	require.Contains(t, out, "  (2, 2) = 2\n")
}

func TestGet_Missing(t *testing.T) {
	_, flags := startStore(t, nil)

	_, err := runCtl(t, flags, "get", "7")
	require.ErrorContains(t, err, "matrix 7")
}

func TestAdd_SavesResult(t *testing.T) {
	store, flags := startStore(t, map[int][][]float64{
		1: {{1, 2}, {3, 4}},
		2: {{5, 6}, {7, 8}},
	})

	out, err := runCtl(t, flags, "add", "1", "2")
	require.NoError(t, err)
	require.Contains(t, out, "(2, 2) = 12")
	require.Contains(t, out, "saved (proposed id 3)")

	saved, ok := store.Get(3)
	require.True(t, ok)
	require.Equal(t, 6.0, saved.At(1, 1))
}

func TestMul_DimensionMismatch(t *testing.T) {
	store, flags := startStore(t, map[int][][]float64{
		1: {{1, 2, 3}, {4, 5, 6}},
		2: {{1, 2}, {3, 4}},
	})

	_, err := runCtl(t, flags, "mul", "1", "2")
	var dm *sparse.DimensionMismatch
	require.ErrorAs(t, err, &dm)
	require.Equal(t, 3, dm.Needed())
	require.Equal(t, 2, dm.Got())
	require.Equal(t, 2, store.Len())
}

func TestTranspose(t *testing.T) {
	_, flags := startStore(t, map[int][][]float64{1: {{1, 2, 3}}})

	out, err := runCtl(t, flags, "transpose", "1")
	require.NoError(t, err)
	require.Contains(t, out, "(3x1, 3 stored)")
	require.Contains(t, out, "(3, 1) = 3")
}

func TestParseInvocation(t *testing.T) {
	inv, err := parseInvocation([]string{"mul", "2", "1"})
	require.NoError(t, err)
	require.Equal(t, []int{2, 1}, inv.ids)

	_, err = parseInvocation(nil)
	require.Error(t, err)
	_, err = parseInvocation([]string{"invert", "1"})
	require.ErrorContains(t, err, "unknown command")
	_, err = parseInvocation([]string{"add", "1"})
	require.ErrorContains(t, err, "expected 2")
	_, err = parseInvocation([]string{"get", "x"})
	require.ErrorContains(t, err, "invalid id")
}

func TestConnectFailure(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	_, err = runCtl(t, []string{"--host", "127.0.0.1", "--port", strconv.Itoa(port)}, "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "127.0.0.1:"+strconv.Itoa(port))
}
