// SPDX-License-Identifier: MIT

package protocol

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// MaxElements bounds the length of any CBOR array accepted from the peer
// (the matrix list of GET_ALL and the element list of a single matrix) and
// the rows*cols area of any decoded matrix shape.
const MaxElements = 1 << 24

// encMode is the CBOR encoder configured with Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items.
var encMode cbor.EncMode

// decMode is the CBOR decoder. Unknown map fields are ignored so a newer
// store can add fields without breaking older clients.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("protocol: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxArrayElements: MaxElements,
		// Duplicate map keys in a matrix envelope are a malformed message.
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("protocol: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encoder is a CBOR stream encoder. Type alias so consumers import only
// this package, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder.
type Decoder = cbor.Decoder

// NewEncoder returns an encoder writing to w with the deterministic mode.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a decoder reading from r. A decoder buffers input, so
// exactly one decoder must be used per connection for its whole lifetime.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Marshal encodes v with the deterministic mode.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data.
// Used in logs and test failure messages.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
