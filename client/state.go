// SPDX-License-Identifier: MIT

package client

// State is the connection state of a Client.
//
//	Idle ──send──▶ AwaitingResponse ──response read──▶ Idle
//	                      │
//	                      └──write/read/decode failure──▶ Broken
//	any ──Close──▶ Closed
//
// Only Idle accepts a new command, which makes "one command in flight" an
// enforced invariant rather than a threading convention.
type State int32

const (
	StateIdle State = iota
	StateAwaitingResponse
	StateBroken
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting-response"
	case StateBroken:
		return "broken"
	case StateClosed:
		return "closed"
	}

	return "unknown"
}

// stateErr maps a non-idle state to the error returned to a new command.
func stateErr(s State) error {
	switch s {
	case StateAwaitingResponse:
		return ErrBusy
	case StateBroken:
		return ErrUnusable
	case StateClosed:
		return ErrClosed
	}

	return nil
}
