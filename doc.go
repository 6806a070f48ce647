// Package matrixlink retrieves, stores and combines sparse numeric matrices
// held by a remote matrix store.
//
// 🚀 What is in the box?
//
//   - sparse/: Matrix (1-based, absent = 0), Add / Mul / Transpose, id allocation, gonum interop
//   - selection/: the two-slot selection tracker that gates Add / Multiply / Transpose
//   - protocol/: GET_ALL / GET_BY_ID / SAVE / EXIT over a CBOR stream
//   - client/: one persistent connection, half-duplex, with an explicit state machine
//   - memstore/: an in-memory store speaking the same protocol, for tests and local work
//   - workbench/: selection → fetch → combine → save, as one call
//   - config/: YAML / JSONC configuration
//
// Quick example:
//
//	c, err := client.Dial(ctx, "localhost", 8080)
//	if err != nil { ... }
//	defer c.Close()
//
//	wb := workbench.New(c, logger)
//	wb.Toggle(1)
//	wb.Toggle(2)
//	out, err := wb.Multiply(ctx) // matrix 1 × matrix 2, saved under the next free id
//
// Binaries: cmd/matrixctl (client CLI) and cmd/matrixstore (reference store).
package matrixlink
