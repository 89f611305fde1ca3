package messages

import (
	"encoding/json"
	"fmt"
)

const (
	// MessageBufferSize represents the maximum number of pending messages per subscriber
	MessageBufferSize = 64
)

// Message wraps an event for delivery to presentation clients.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage creates a Message with a marshaled payload.
func NewMessage(messageType string, payload interface{}) (*Message, error) {
	if payload == nil {
		return &Message{Type: messageType}, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %v", err)
	}
	return &Message{
		Type:    messageType,
		Payload: b,
	}, nil
}
