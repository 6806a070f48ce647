// SPDX-License-Identifier: MIT

package client

import (
	"context"

	"github.com/katalvlaran/matrixlink/sparse"
)

// Aliases matching the collaborator interface consumed by presentation
// layers (getAllMatrices / getMatrix / saveMatrix / close). Each delegates
// to the canonical method without extra behavior.

// GetAllMatrices is an alias for FetchAll.
func (c *Client) GetAllMatrices(ctx context.Context) ([]*sparse.Matrix, error) {
	return c.FetchAll(ctx)
}

// GetMatrix is an alias for FetchByID.
func (c *Client) GetMatrix(ctx context.Context, id int) (*sparse.Matrix, bool, error) {
	return c.FetchByID(ctx, id)
}

// SaveMatrix is an alias for Save.
func (c *Client) SaveMatrix(ctx context.Context, m *sparse.Matrix) (bool, error) {
	return c.Save(ctx, m)
}
