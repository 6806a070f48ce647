// SPDX-License-Identifier: MIT

// Package workbench drives the combine workflow a presentation layer runs on
// top of the store: pick operands, combine them, submit the result.
//
// One operation is:
//
//	selection ─▶ fetch operands by id ─▶ algebra ─▶ propose id ─▶ save ─▶ clear selection
//
// The selection is cleared only when the store accepts the result. A shape
// mismatch, a missing operand, a refusal or a transport failure leave it as
// it was so the user can adjust and retry.
package workbench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/matrixlink/selection"
	"github.com/katalvlaran/matrixlink/sparse"
)

var (
	// ErrSelection is returned when the current selection does not permit the
	// requested operation (two ids for Add/Multiply, one for Transpose).
	ErrSelection = errors.New("workbench: selection does not permit operation")

	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("workbench: matrix not found")
)

// NotFoundError reports an operand id the store does not hold.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("matrix #%d not found", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Store is the subset of the matrix service client the workbench needs.
// *client.Client satisfies it.
type Store interface {
	FetchAll(ctx context.Context) ([]*sparse.Matrix, error)
	FetchByID(ctx context.Context, id int) (*sparse.Matrix, bool, error)
	Save(ctx context.Context, m *sparse.Matrix) (bool, error)
}

// Outcome is the result of a combining operation that reached the store.
type Outcome struct {
	// Result is the submitted matrix; its ID is the proposed id.
	Result *sparse.Matrix
	// Accepted is the store's verdict. false is a refusal, not an error.
	Accepted bool
}

// Workbench pairs a store with a selection. Like the tracker, it is meant
// for a single session and is not safe for concurrent use.
type Workbench struct {
	store     Store
	selection *selection.Tracker
	logger    *slog.Logger
}

// New returns a workbench with an empty selection. A nil logger discards logs.
func New(store Store, logger *slog.Logger) *Workbench {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Workbench{
		store:     store,
		selection: selection.New(),
		logger:    logger,
	}
}

// Toggle forwards a selection event; see selection.Tracker.Toggle.
func (w *Workbench) Toggle(id int) bool { return w.selection.Toggle(id) }

// Selection exposes the tracker for reading predicates (CanAdd, ...).
func (w *Workbench) Selection() *selection.Tracker { return w.selection }

// Add sums the two selected matrices.
func (w *Workbench) Add(ctx context.Context) (Outcome, error) {
	if !w.selection.CanAdd() {
		return Outcome{}, fmt.Errorf("Add: %w", ErrSelection)
	}
	left, right, _ := w.selection.Pair()

	return w.combine(ctx, "Add", []int{left, right}, func(ops []*sparse.Matrix) (*sparse.Matrix, error) {
		return sparse.Add(ops[0], ops[1])
	})
}

// Multiply computes first-selected × second-selected.
func (w *Workbench) Multiply(ctx context.Context) (Outcome, error) {
	if !w.selection.CanMultiply() {
		return Outcome{}, fmt.Errorf("Multiply: %w", ErrSelection)
	}
	left, right, _ := w.selection.Pair()

	return w.combine(ctx, "Multiply", []int{left, right}, func(ops []*sparse.Matrix) (*sparse.Matrix, error) {
		return sparse.Mul(ops[0], ops[1])
	})
}

// Transpose transposes the single selected matrix.
func (w *Workbench) Transpose(ctx context.Context) (Outcome, error) {
	if !w.selection.CanTranspose() {
		return Outcome{}, fmt.Errorf("Transpose: %w", ErrSelection)
	}
	id, _ := w.selection.Single()

	return w.combine(ctx, "Transpose", []int{id}, func(ops []*sparse.Matrix) (*sparse.Matrix, error) {
		return sparse.Transpose(ops[0]), nil
	})
}

// combine runs fetch → compute → propose id → save → clear.
// Store errors are wrapped with the op tag and never retried.
func (w *Workbench) combine(ctx context.Context, op string, ids []int, compute func([]*sparse.Matrix) (*sparse.Matrix, error)) (Outcome, error) {
	operands := make([]*sparse.Matrix, 0, len(ids))
	for _, id := range ids {
		m, found, err := w.store.FetchByID(ctx, id)
		if err != nil {
			return Outcome{}, fmt.Errorf("%s: fetching #%d: %w", op, id, err)
		}
		if !found {
			return Outcome{}, fmt.Errorf("%s: %w", op, &NotFoundError{ID: id})
		}
		operands = append(operands, m)
	}

	result, err := compute(operands)
	if err != nil {
		w.logger.Info("operation rejected", "op", op, "ids", ids, "error", err)
		return Outcome{}, err // *sparse.DimensionMismatch carries both shapes
	}

	existing, err := w.store.FetchAll(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: listing matrices: %w", op, err)
	}
	result.ID = sparse.NextID(existing)

	accepted, err := w.store.Save(ctx, result)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: saving result: %w", op, err)
	}
	if !accepted {
		w.logger.Info("operation refused by store",
			"op", op,
			"ids", ids,
			"proposed_id", result.ID,
			"shape", result.Shape().String(),
		)

		return Outcome{Result: result, Accepted: false}, nil
	}
	w.selection.Clear()
	w.logger.Info("operation committed",
		"op", op,
		"ids", ids,
		"proposed_id", result.ID,
		"shape", result.Shape().String(),
	)

	return Outcome{Result: result, Accepted: accepted}, nil
}
