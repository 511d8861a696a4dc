// Package codec fixes the wire encoding for host/agent frames. Frames
// are CBOR with Core Deterministic Encoding on the way out and strict
// decoding on the way in: unknown fields are an error, so a malformed
// or mismatched payload is rejected instead of half-decoded.
package codec

import "github.com/fxamacker/cbor/v2"

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to deterministic CBOR.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v, rejecting unknown fields.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// RawMessage is a raw encoded CBOR value, used to delay decoding of
// request/response bodies until the command is known.
type RawMessage = cbor.RawMessage
