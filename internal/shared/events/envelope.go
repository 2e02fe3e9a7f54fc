package events

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wire shape shared by every service on the bus.
// It is immutable once published; Sender is informational only and
// carries no ordering guarantee.
type Envelope struct {
	Type   string          `json:"type"`
	Data   json.RawMessage `json:"data"`
	Sender string          `json:"sender"`
}

// New wraps a payload into an envelope ready to publish.
func New(eventType string, sender string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		Type:   eventType,
		Data:   data,
		Sender: sender,
	}, nil
}

// Decode parses a raw bus message body. A decode failure means the
// message is malformed and must be acknowledged and dropped, never
// redelivered.
func Decode(body []byte) (Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type")
	}
	return envelope, nil
}

// Payload unmarshals the envelope data into the given struct.
func (e Envelope) Payload(target any) error {
	if err := json.Unmarshal(e.Data, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}
