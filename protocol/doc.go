// Package protocol defines the wire contract between a matrix client and
// the matrix store.
//
// The transport is one persistent stream connection. Every request is a
// command tag followed by zero or one payload value; every response is a
// single value whose shape is fixed by the command:
//
//	GET_ALL    (no payload)      → array of matrices
//	GET_BY_ID  id                → matrix, or null when absent
//	SAVE       matrix            → bool (true = accepted)
//	EXIT       (no payload)      → nothing; the connection is then closed
//
// The protocol is strictly half-duplex: no request ids, no multiplexing, a
// new command is only written after the previous response was fully read.
//
// Values are CBOR data items (RFC 8949), which are self-delimiting, so no
// framing is needed. The encoder uses Core Deterministic Encoding: the same
// logical matrix always produces identical bytes. Floats are written in the
// shortest form that preserves the exact float64 value.
//
// A matrix travels as
//
//	{"id": 3, "elements": [[1, 1, 6.0], [1, 2, 8.0]]}
//
// where each element is a (row, col, value) triple with 1-based indices,
// written in row-major order. Decoding rejects non-positive or duplicate
// positions.
package protocol
