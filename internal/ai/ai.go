// Package ai defines the model backend contract consumed by the relay and
// the error taxonomy backends must map their failures onto.
package ai

import (
	"context"
	"errors"

	"personabot/internal/prompt"
)

// Backend generates reply text for a composed prompt. Implementations own
// their transport concerns (auth, retries, timeouts) and translate failures
// into the sentinel errors below so the relay can degrade uniformly.
type Backend interface {
	Generate(ctx context.Context, payload prompt.Payload) (string, error)
}

// Backend failure classes. All three are recoverable at the relay level: the
// user gets a generic apology and the process keeps serving other turns.
var (
	// ErrUnavailable indicates the backend rejected or could not accept
	// the request (service errors, quota, connectivity).
	ErrUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request did not complete within the
	// backend adapter's deadline.
	ErrTimeout = errors.New("backend timeout")

	// ErrMalformedResponse indicates the backend answered but produced
	// nothing usable (blocked, empty, or undecodable content).
	ErrMalformedResponse = errors.New("backend returned malformed response")
)
