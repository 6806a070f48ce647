// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/katalvlaran/matrixlink/client"
	"github.com/katalvlaran/matrixlink/sparse"
	"github.com/katalvlaran/matrixlink/workbench"
)

// invocation is a parsed subcommand with its id arguments.
type invocation struct {
	name string
	ids  []int
}

var arity = map[string]int{
	"list":      0,
	"get":       1,
	"add":       2,
	"mul":       2,
	"transpose": 1,
}

func parseInvocation(args []string) (invocation, error) {
	if len(args) == 0 {
		return invocation{}, fmt.Errorf("missing command")
	}

	name := args[0]
	want, ok := arity[name]
	if !ok {
		return invocation{}, fmt.Errorf("unknown command %q", name)
	}
	if len(args)-1 != want {
		return invocation{}, fmt.Errorf("%s: expected %d id argument(s), got %d", name, want, len(args)-1)
	}

	inv := invocation{name: name, ids: make([]int, 0, want)}
	for _, arg := range args[1:] {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return invocation{}, fmt.Errorf("%s: invalid id %q", name, arg)
		}
		inv.ids = append(inv.ids, id)
	}

	return inv, nil
}

func (inv invocation) execute(ctx context.Context, c *client.Client, logger *slog.Logger, out io.Writer) error {
	switch inv.name {
	case "list":
		matrices, err := c.FetchAll(ctx)
		if err != nil {
			return err
		}
		if len(matrices) == 0 {
			fmt.Fprintln(out, "no matrices")
		}
		for _, m := range matrices {
			printMatrix(out, m)
		}

		return nil

	case "get":
		m, found, err := c.FetchByID(ctx, inv.ids[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("matrix %d: %w", inv.ids[0], workbench.ErrNotFound)
		}
		printMatrix(out, m)

		return nil
	}

	wb := workbench.New(c, logger)
	for _, id := range inv.ids {
		wb.Toggle(id)
	}

	var (
		outcome workbench.Outcome
		err     error
	)
	switch inv.name {
	case "add":
		outcome, err = wb.Add(ctx)
	case "mul":
		outcome, err = wb.Multiply(ctx)
	case "transpose":
		outcome, err = wb.Transpose(ctx)
	}
	if err != nil {
		return err
	}

	printMatrix(out, outcome.Result)
	if !outcome.Accepted {
		return fmt.Errorf("store refused result")
	}
	fmt.Fprintf(out, "saved (proposed id %d)\n", outcome.Result.ID)

	return nil
}

// printMatrix writes a header line and one "(r, c) = v" line per stored
// element in row-major order.
func printMatrix(w io.Writer, m *sparse.Matrix) {
	fmt.Fprintf(w, "matrix %d (%s, %d stored)\n", m.ID, m.Shape(), m.Len())
	for _, p := range m.Positions() {
		fmt.Fprintf(w, "  (%d, %d) = %s\n", p.Row, p.Col, strconv.FormatFloat(m.At(p.Row, p.Col), 'g', -1, 64))
	}
}
