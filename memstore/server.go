// SPDX-License-Identifier: MIT

package memstore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/katalvlaran/matrixlink/protocol"
)

// Server serves the matrix protocol on accepted connections. Each
// connection is a persistent session handled by its own goroutine; commands
// on one connection are processed strictly in order.
type Server struct {
	store  *Store
	logger *slog.Logger

	mu      sync.Mutex
	conns   map[net.Conn]struct{}
	closing bool

	// activeConnections tracks in-flight sessions for graceful shutdown.
	activeConnections sync.WaitGroup
}

// NewServer creates a server backed by store. A nil logger discards logs.
func NewServer(store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		store:  store,
		logger: logger,
		conns:  make(map[net.Conn]struct{}),
	}
}

// Store returns the backing store.
func (s *Server) Store() *Store { return s.store }

// Serve accepts connections on listener until ctx is cancelled or the
// listener is closed, then closes every open session and waits for their
// handlers to return. The listener is owned by Serve from this point on.
// Other Accept failures are logged and retried with a growing pause.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	defer listener.Close()

	// Unblock Accept and every session read when the context is cancelled.
	// done releases the watcher when Serve returns for any other reason.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		listener.Close()
		s.closeAll()
	}()

	s.logger.Info("matrix store listening", "addr", listener.Addr().String())

	var delay time.Duration
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			delay = acceptBackoff(delay)
			s.logger.Error("accept failed", "error", err, "retry_in", delay)
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}
			continue
		}
		delay = 0

		s.activeConnections.Add(1)
		go func() {
			defer s.activeConnections.Done()
			s.ServeConn(conn)
		}()
	}

	s.closeAll()
	s.activeConnections.Wait()
	s.logger.Info("matrix store stopped")

	return nil
}

// acceptBackoff doubles the pause after a failed Accept, from 5ms up to 1s.
func acceptBackoff(prev time.Duration) time.Duration {
	const (
		minDelay = 5 * time.Millisecond
		maxDelay = time.Second
	)
	if prev == 0 {
		return minDelay
	}
	if next := prev * 2; next < maxDelay {
		return next
	}

	return maxDelay
}

// ServeConn runs one session on conn until the peer sends EXIT, disconnects,
// or sends something outside the protocol. conn is closed on return.
func (s *Server) ServeConn(conn net.Conn) {
	defer conn.Close()
	if !s.track(conn) {
		return // shutting down
	}
	defer s.untrack(conn)

	logger := s.logger.With("remote", remoteAddr(conn))
	logger.Debug("session opened")

	decoder := protocol.NewDecoder(conn)
	writer := bufio.NewWriter(conn)
	encoder := protocol.NewEncoder(writer)

	for {
		cmd, err := protocol.ReadCommand(decoder)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				logger.Debug("session ended by peer")
			} else {
				logger.Warn("dropping session", "error", err)
			}
			return
		}
		if cmd == protocol.CmdExit {
			logger.Debug("session ended by EXIT")
			return
		}

		response, err := s.dispatch(cmd, decoder)
		if err != nil {
			logger.Warn("dropping session", "command", cmd.String(), "error", err)
			return
		}
		if err := encoder.Encode(response); err != nil {
			logger.Warn("writing response failed", "command", cmd.String(), "error", err)
			return
		}
		if err := writer.Flush(); err != nil {
			logger.Warn("writing response failed", "command", cmd.String(), "error", err)
			return
		}
	}
}

// dispatch reads the payload for cmd (if any) and builds its response value.
// An error means the stream can no longer be trusted.
func (s *Server) dispatch(cmd protocol.Command, decoder *protocol.Decoder) (any, error) {
	switch cmd {
	case protocol.CmdGetAll:
		return protocol.FromSparseList(s.store.All()), nil

	case protocol.CmdGetByID:
		var id int
		if err := decoder.Decode(&id); err != nil {
			return nil, fmt.Errorf("reading %s payload: %w", cmd, err)
		}
		m, ok := s.store.Get(id)
		if !ok {
			return (*protocol.Matrix)(nil), nil // encodes as the null absent marker
		}
		wire := protocol.FromSparse(m)

		return &wire, nil

	case protocol.CmdSave:
		var wire protocol.Matrix
		if err := decoder.Decode(&wire); err != nil {
			return nil, fmt.Errorf("reading %s payload: %w", cmd, err)
		}
		m, err := wire.ToSparse()
		if err != nil {
			s.logger.Info("refusing malformed matrix", "proposed_id", wire.ID, "error", err)
			return false, nil
		}
		id, ok := s.store.Put(m)
		if !ok {
			s.logger.Info("refusing matrix", "proposed_id", wire.ID)
			return false, nil
		}
		s.logger.Debug("matrix saved", "proposed_id", wire.ID, "id", id)

		return true, nil
	}

	return nil, fmt.Errorf("%w: %q", protocol.ErrUnknownCommand, string(cmd))
}

// track registers conn for shutdown; false once shutdown has begun.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[conn] = struct{}{}

	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closing = true
	for conn := range s.conns {
		conn.Close()
	}
}

func remoteAddr(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}

	return "unknown"
}
