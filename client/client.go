// SPDX-License-Identifier: MIT

// Package client implements the matrix service client: one persistent
// stream connection to a matrix store and four operations over it
// (FetchAll, FetchByID, Save, Close).
//
// The protocol is synchronous and strictly sequential. Each call writes one
// command, blocks until the whole response is read, and returns. A Client
// is not a concurrency primitive: callers that share one across goroutines
// must serialize access themselves (a mutex around the client). Overlapping
// calls are detected and rejected with ErrBusy instead of corrupting the
// stream.
package client

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/matrixlink/protocol"
	"github.com/katalvlaran/matrixlink/sparse"
)

// Client owns exactly one connection to a matrix store for its lifetime.
type Client struct {
	conn      net.Conn
	addr      string
	writer    *bufio.Writer
	encoder   *protocol.Encoder
	decoder   *protocol.Decoder
	logger    *slog.Logger
	ioTimeout time.Duration

	state atomic.Int32 // holds a State
}

// Dial opens a TCP connection to host:port and returns a ready client.
// Any failure is returned as *ConnectError; the caller retries, if at all,
// by calling Dial again.
func Dial(ctx context.Context, host string, port int, opts ...Option) (*Client, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	if port < 1 || port > 65535 {
		return nil, &ConnectError{Addr: addr, Err: fmt.Errorf("port %d out of range", port)}
	}

	o := gatherOptions(opts)
	dialer := net.Dialer{Timeout: o.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		o.logger.Warn("connect failed", "addr", addr, "error", err)
		return nil, &ConnectError{Addr: addr, Err: err}
	}
	o.logger.Debug("connected", "addr", addr)

	return newClient(conn, addr, o), nil
}

// New wraps an already established connection. The client takes ownership
// of conn and closes it in Close.
func New(conn net.Conn, opts ...Option) *Client {
	addr := ""
	if remote := conn.RemoteAddr(); remote != nil {
		addr = remote.String()
	}

	return newClient(conn, addr, gatherOptions(opts))
}

func newClient(conn net.Conn, addr string, o options) *Client {
	writer := bufio.NewWriter(conn)
	c := &Client{
		conn:      conn,
		addr:      addr,
		writer:    writer,
		encoder:   protocol.NewEncoder(writer),
		decoder:   protocol.NewDecoder(conn),
		logger:    o.logger.With("addr", addr),
		ioTimeout: o.ioTimeout,
	}
	c.state.Store(int32(StateIdle))

	return c
}

// Addr returns the remote address the client is connected to.
func (c *Client) Addr() string { return c.addr }

// State returns the current connection state.
func (c *Client) State() State { return State(c.state.Load()) }

// FetchAll sends GET_ALL and returns every stored matrix, sealed, in the
// order the store sent them. Callers must not rely on that order for
// correctness.
func (c *Client) FetchAll(ctx context.Context) ([]*sparse.Matrix, error) {
	var wire []protocol.Matrix
	if err := c.roundTrip(ctx, protocol.CmdGetAll, nil, &wire); err != nil {
		return nil, err
	}

	matrices, err := protocol.ToSparseList(wire)
	if err != nil {
		return nil, c.fail(ctx, protocol.CmdGetAll, stageDecode, err)
	}
	for _, m := range matrices {
		m.Seal()
	}
	c.logger.Debug("fetched all matrices", "count", len(matrices))

	return matrices, nil
}

// FetchByID sends GET_BY_ID and returns the matrix with that id, sealed.
// A missing matrix is reported as (nil, false, nil): absence is a valid
// outcome, not an error.
func (c *Client) FetchByID(ctx context.Context, id int) (*sparse.Matrix, bool, error) {
	var wire *protocol.Matrix
	if err := c.roundTrip(ctx, protocol.CmdGetByID, id, &wire); err != nil {
		return nil, false, err
	}
	if wire == nil {
		c.logger.Debug("matrix not found", "id", id)
		return nil, false, nil
	}

	m, err := wire.ToSparse()
	if err != nil {
		return nil, false, c.fail(ctx, protocol.CmdGetByID, stageDecode, err)
	}
	m.Seal()

	return m, true, nil
}

// Save sends SAVE with the full matrix and returns the store's acceptance
// flag. false is a refusal by the store, not a transport error.
//
// m is sealed before it is sent: from this point on it is an immutable
// snapshot. The id it carries is a proposal; the store may reassign it.
func (c *Client) Save(ctx context.Context, m *sparse.Matrix) (bool, error) {
	if err := sparse.ValidateNotNil(m); err != nil {
		return false, fmt.Errorf("Save: %w", err)
	}
	m.Seal()

	var accepted bool
	if err := c.roundTrip(ctx, protocol.CmdSave, protocol.FromSparse(m), &accepted); err != nil {
		return false, err
	}
	c.logger.Debug("save answered", "id", m.ID, "accepted", accepted)

	return accepted, nil
}

// Close releases the connection. When the client is Idle it first sends a
// best-effort EXIT notification, bounded by a short write deadline, and
// swallows any failure. In the AwaitingResponse or Broken states no EXIT is
// sent, since the stream may be mid-command or out of sync. Close is
// idempotent: later calls return nil. The connection is released on every
// path, including after a failed command.
func (c *Client) Close() error {
	prev := State(c.state.Swap(int32(StateClosed)))
	if prev == StateClosed {
		return nil
	}

	// EXIT only goes out on a quiescent, in-sync stream; otherwise it would
	// interleave with a pending command or land on a desynchronized one.
	if prev == StateIdle {
		c.conn.SetWriteDeadline(time.Now().Add(exitTimeout))
		err := protocol.WriteRequest(c.encoder, protocol.CmdExit, nil)
		if err == nil {
			err = c.writer.Flush()
		}
		if err != nil {
			c.logger.Debug("exit notification failed", "error", err)
		}
	}

	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("closing connection to %s: %w", c.addr, err)
	}
	c.logger.Debug("closed", "previous_state", prev.String())

	return nil
}

// roundTrip performs one request/response exchange. response is the decode
// target for the single response value.
func (c *Client) roundTrip(ctx context.Context, cmd protocol.Command, payload any, response any) error {
	if err := ctx.Err(); err != nil {
		return err // nothing written; state untouched
	}
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateAwaitingResponse)) {
		return stateErr(c.State())
	}

	stop := c.armDeadline(ctx)
	defer stop()

	start := time.Now()
	if err := protocol.WriteRequest(c.encoder, cmd, payload); err != nil {
		return c.fail(ctx, cmd, stageWrite, err)
	}
	if err := c.writer.Flush(); err != nil {
		return c.fail(ctx, cmd, stageWrite, err)
	}
	if err := c.decoder.Decode(response); err != nil {
		return c.fail(ctx, cmd, stageRead, err)
	}

	c.state.CompareAndSwap(int32(StateAwaitingResponse), int32(StateIdle))
	c.logger.Debug("command completed", "command", cmd.String(), "elapsed", time.Since(start))

	return nil
}

// armDeadline applies the I/O timeout for one command and makes context
// cancellation (including a context deadline) interrupt blocked I/O. The
// returned func must be called when the command ends.
func (c *Client) armDeadline(ctx context.Context) func() {
	var deadline time.Time
	if c.ioTimeout > 0 {
		deadline = time.Now().Add(c.ioTimeout)
	}
	c.conn.SetDeadline(deadline) // zero value clears any previous deadline

	// AfterFunc runs only once ctx is done, so ctx.Err() is already set by
	// the time the interrupted read reports its failure.
	stopAfter := context.AfterFunc(ctx, func() {
		c.conn.SetDeadline(time.Unix(1, 0))
	})

	return func() { stopAfter() }
}

// fail moves the client to Broken (unless it was closed meanwhile) and
// builds the *ProtocolError returned to the caller.
func (c *Client) fail(ctx context.Context, cmd protocol.Command, stage string, err error) error {
	if !c.state.CompareAndSwap(int32(StateAwaitingResponse), int32(StateBroken)) {
		c.state.CompareAndSwap(int32(StateIdle), int32(StateBroken))
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	c.logger.Warn("command failed",
		"command", cmd.String(),
		"stage", stage,
		"state", c.State().String(),
		"error", err,
	)

	return &ProtocolError{Command: cmd, Stage: stage, Err: err}
}
