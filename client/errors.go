// SPDX-License-Identifier: MIT

package client

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/matrixlink/protocol"
)

var (
	// ErrConnect matches every *ConnectError.
	ErrConnect = errors.New("client: connect failed")

	// ErrProtocol matches every *ProtocolError.
	ErrProtocol = errors.New("client: protocol failure")

	// ErrBusy is returned when a command is issued while another one is
	// still awaiting its response on the same connection. Nothing is written.
	ErrBusy = errors.New("client: command already in flight")

	// ErrUnusable is returned for commands issued after a previous command
	// failed mid-flight. The stream may be out of sync; Close the client and
	// dial a new one.
	ErrUnusable = errors.New("client: connection unusable after failure")

	// ErrClosed is returned for commands issued after Close.
	ErrClosed = errors.New("client: closed")
)

// ConnectError reports that the transport could not be established. It is
// fatal to the attempt; retry by dialing a new client.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connecting to %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Is reports whether target is ErrConnect.
func (e *ConnectError) Is(target error) bool { return target == ErrConnect }

// ProtocolError reports that a write or read failed in the middle of a
// command, or that the response violated the wire contract. The client is
// unusable afterwards and should be closed.
type ProtocolError struct {
	Command protocol.Command
	Stage   string // "write", "read" or "decode"
	Err     error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Command, e.Stage, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Is reports whether target is ErrProtocol.
func (e *ProtocolError) Is(target error) bool { return target == ErrProtocol }

const (
	stageWrite  = "write"
	stageRead   = "read"
	stageDecode = "decode"
)
