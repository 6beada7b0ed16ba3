package ws

import (
	"encoding/json"
	"errors"
)

// Codec errors
var (
	ErrMalformedFrame = errors.New("malformed frame")
	ErrUnknownType    = errors.New("unknown message type")
)

// DecodeEnvelope parses a raw frame into an envelope. A frame that is not
// valid JSON or has no type is malformed; callers drop it without
// terminating the session.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ErrMalformedFrame
	}
	if env.Type == "" {
		return nil, ErrMalformedFrame
	}
	return &env, nil
}

// DecodePayload unmarshals an envelope's payload into v
func DecodePayload(env *Envelope, v any) error {
	if len(env.Payload) == 0 {
		return ErrMalformedFrame
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return ErrMalformedFrame
	}
	return nil
}

// Encode serializes an outbound message into a wire frame
func Encode(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
