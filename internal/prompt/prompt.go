// Package prompt builds backend-neutral prompt payloads from a persona
// description and raw user text.
package prompt

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned when the user text contains nothing to send to
// the backend.
var ErrEmptyInput = errors.New("empty input")

// Role identifies the sender of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is a single message in the conversation history sent to the backend.
type Turn struct {
	Role    Role
	Content string
}

// Payload is a complete, backend-neutral prompt: a priming instruction
// (the persona description) plus the ordered conversation turns. Any model
// backend should be able to map it onto its own request schema.
type Payload struct {
	Instruction string
	Turns       []Turn
}

// Compose builds a payload from a persona description and the user's text.
// It is deterministic and side-effect free. The description and the user
// text are kept in separate fields, never concatenated or truncated, so the
// backend can present them through its own system/user channels.
//
// Leading and trailing whitespace is stripped from the user text; input that
// is empty after trimming is rejected with ErrEmptyInput since there is
// nothing meaningful to forward.
func Compose(description, userText string) (Payload, error) {
	text := strings.TrimSpace(userText)
	if text == "" {
		return Payload{}, ErrEmptyInput
	}

	return Payload{
		Instruction: description,
		Turns:       []Turn{{Role: RoleUser, Content: text}},
	}, nil
}
