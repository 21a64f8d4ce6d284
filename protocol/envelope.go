// Package protocol defines the wire format of the moderation event feed.
package protocol

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

type EventType uint16

const (
	EventPromptSubmitted EventType = 1
	EventPromptUpdated   EventType = 2
	EventPromptApproved  EventType = 3
	EventPromptRejected  EventType = 4
)

// ModerationEvent is the body broadcast to moderation feed subscribers.
type ModerationEvent struct {
	PromptID    string `msgpack:"prompt_id" json:"prompt_id"`
	Title       string `msgpack:"title" json:"title"`
	AuthorID    string `msgpack:"author_id" json:"author_id"`
	ModeratorID string `msgpack:"moderator_id,omitempty" json:"moderator_id,omitempty"`
	Note        string `msgpack:"note,omitempty" json:"note,omitempty"`
}

type Envelope struct {
	Type EventType `msgpack:"type" json:"type"`
	Body any       `msgpack:"body" json:"body"`
}

func NewEnvelope(eventType EventType, body any) *Envelope {
	return &Envelope{Type: eventType, Body: body}
}

func (e *Envelope) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return data, nil
}

func DecodeEnvelope(data []byte) (*Envelope, error) {
	var e Envelope
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &e, nil
}

// DecodeBody decodes the envelope body into the given type.
func DecodeBody[T any](e *Envelope) (*T, error) {
	if typed, ok := e.Body.(T); ok {
		return &typed, nil
	}

	data, err := msgpack.Marshal(e.Body)
	if err != nil {
		return nil, fmt.Errorf("re-encode body: %w", err)
	}

	var result T
	if err := msgpack.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode body to %T: %w", result, err)
	}
	return &result, nil
}
