package hywire

import "github.com/hywire/hywire/lib/encoding"

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates an encoder with the given signing/encryption key.
// The registry creates one internally; use this directly when reactive
// state must be decoded outside the registry (e.g. in route handlers).
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// DecodeState decodes a signed data-hw-state attribute value back into
// props using the given encoder.
func DecodeState(enc *Encoder, state string) (Props, error) {
	var props map[string]any
	if err := enc.Decode(state, false, &props); err != nil {
		return nil, err
	}
	return Props(props), nil
}
