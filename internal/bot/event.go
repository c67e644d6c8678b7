package bot

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the inbound event wrapper: the body is a JSON-encoded string
// carrying the chat event.
type Envelope struct {
	Body string `json:"body"`
}

// MessageEvent is one inbound chat message.
type MessageEvent struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Channel string `json:"channel"`
	User    string `json:"user"`
	TS      string `json:"ts"`
}

type eventBody struct {
	Event MessageEvent `json:"event"`
}

// ParseEnvelope extracts the chat event from a raw event envelope. A
// malformed envelope is an error; there is no fallback handling for it.
func ParseEnvelope(data []byte) (MessageEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return MessageEvent{}, fmt.Errorf("decode event envelope: %w", err)
	}
	if env.Body == "" {
		return MessageEvent{}, errors.New("event envelope has no body")
	}

	var body eventBody
	if err := json.Unmarshal([]byte(env.Body), &body); err != nil {
		return MessageEvent{}, fmt.Errorf("decode event body: %w", err)
	}
	if body.Event.Channel == "" {
		return MessageEvent{}, errors.New("event names no channel")
	}

	return body.Event, nil
}
