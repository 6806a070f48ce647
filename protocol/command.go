// SPDX-License-Identifier: MIT

package protocol

import (
	"errors"
	"fmt"
)

// Command is the tag that discriminates one protocol operation. The set is
// closed: only the constants below are valid.
type Command string

const (
	// CmdGetAll requests every stored matrix. No payload.
	CmdGetAll Command = "GET_ALL"
	// CmdGetByID requests one matrix. Payload: integer id.
	CmdGetByID Command = "GET_BY_ID"
	// CmdSave submits a matrix. Payload: the full matrix.
	CmdSave Command = "SAVE"
	// CmdExit announces the client is leaving. No payload, no response.
	CmdExit Command = "EXIT"
)

var (
	// ErrUnknownCommand is returned for a tag outside the closed set.
	ErrUnknownCommand = errors.New("protocol: unknown command")

	// ErrMalformed is returned when a decoded value violates the wire contract
	// (e.g. non-positive or duplicate element positions).
	ErrMalformed = errors.New("protocol: malformed message")
)

// Valid reports whether c is one of the defined commands.
func (c Command) Valid() bool {
	switch c {
	case CmdGetAll, CmdGetByID, CmdSave, CmdExit:
		return true
	}

	return false
}

// HasPayload reports whether a payload value follows the tag on the wire.
func (c Command) HasPayload() bool {
	return c == CmdGetByID || c == CmdSave
}

// HasResponse reports whether the peer answers this command.
func (c Command) HasResponse() bool {
	return c.Valid() && c != CmdExit
}

// String returns the wire tag.
func (c Command) String() string { return string(c) }

// ParseCommand validates a raw tag.
func ParseCommand(tag string) (Command, error) {
	c := Command(tag)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, tag)
	}

	return c, nil
}

// WriteRequest encodes the two-part request: the tag, then the payload when
// the command carries one. payload is ignored for commands without one.
func WriteRequest(enc *Encoder, c Command, payload any) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, string(c))
	}
	if err := enc.Encode(string(c)); err != nil {
		return fmt.Errorf("writing %s tag: %w", c, err)
	}
	if !c.HasPayload() {
		return nil
	}
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("writing %s payload: %w", c, err)
	}

	return nil
}

// ReadCommand decodes the next command tag from the stream.
func ReadCommand(dec *Decoder) (Command, error) {
	var tag string
	if err := dec.Decode(&tag); err != nil {
		return "", err
	}

	return ParseCommand(tag)
}
