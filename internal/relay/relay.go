// Package relay orchestrates one inbound chat turn end to end: it resolves
// the sender's persona, composes the prompt, invokes the AI backend, delivers
// the reply, and mirrors the turn to the administrator chat.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"personabot/internal/ai"
	"personabot/internal/config"
	"personabot/internal/database"
	"personabot/internal/prompt"
	"personabot/internal/roles"
)

const (
	sendTimeout   = 10 * time.Second
	recordTimeout = 5 * time.Second
)

// Administrator mirror texts. The admin sees relayed traffic and backend
// error detail; users only ever see the generic texts from configuration.
const (
	adminMirrorFormat = "User Chat ID: %d, Role: %s, Message: %s"
	adminErrorFormat  = "Relay error for chat %d (role %s): %v"
)

// SendFunc delivers text to a chat. The transport adapter provides it.
type SendFunc func(ctx context.Context, chatID int64, text string) error

// Turn is one inbound message as seen by the relay.
type Turn struct {
	ChatID int64
	UserID int64
	Text   string
}

// Relay wires the persona registry, the per-user role store, and the AI
// backend into a single message-handling pipeline. A Relay is safe for
// concurrent use: turns from different users proceed independently, and a
// failure inside one turn never escapes it.
type Relay struct {
	log      *slog.Logger
	registry *roles.Registry
	users    *roles.UserRoles
	backend  ai.Backend
	store    database.Store
	adminID  int64
	messages config.MessagesConfig
}

// New creates a relay. The store records an audit event per turn; it is
// best-effort and its failures never surface to users.
func New(
	log *slog.Logger,
	registry *roles.Registry,
	users *roles.UserRoles,
	backend ai.Backend,
	store database.Store,
	adminID int64,
	messages config.MessagesConfig,
) *Relay {
	return &Relay{
		log:      log.With("component", "relay"),
		registry: registry,
		users:    users,
		backend:  backend,
		store:    store,
		adminID:  adminID,
		messages: messages,
	}
}

// HandleTurn processes one inbound message. It never returns an error: every
// failure is degraded to a user-visible message, an admin notification, or a
// log entry, so one user's bad turn cannot affect the rest of the system.
func (r *Relay) HandleTurn(ctx context.Context, send SendFunc, turn Turn) {
	log := r.log.With("chat_id", turn.ChatID, "user_id", turn.UserID)

	role := r.users.Get(turn.UserID)
	description, err := r.registry.Describe(role)
	if err != nil {
		// Unreachable while the store validates on write; degrade anyway.
		log.ErrorContext(ctx, "Assigned role missing from registry", "role", role, "error", err)
		r.send(ctx, send, turn.ChatID, r.messages.GeneralError, "general error")
		return
	}

	payload, err := prompt.Compose(description, turn.Text)
	if err != nil {
		if errors.Is(err, prompt.ErrEmptyInput) {
			log.InfoContext(ctx, "Empty message, skipping backend call")
			r.send(ctx, send, turn.ChatID, r.messages.ProvideMessage, "guidance")
			r.record(ctx, turn, role, database.StatusEmptyInput)
			return
		}
		log.ErrorContext(ctx, "Prompt composition failed", "error", err)
		r.send(ctx, send, turn.ChatID, r.messages.GeneralError, "general error")
		return
	}

	reply, err := r.backend.Generate(ctx, payload)
	if err != nil {
		log.ErrorContext(ctx, "Backend generation failed", "role", role, "error", err)
		r.send(ctx, send, turn.ChatID, r.messages.GeneralError, "general error")
		if turn.UserID != r.adminID {
			r.send(ctx, send, r.adminID, fmt.Sprintf(adminErrorFormat, turn.ChatID, role, err), "admin error detail")
		}
		r.record(ctx, turn, role, database.StatusBackendError)
		return
	}

	status := database.StatusOK
	if err := r.deliver(ctx, send, turn.ChatID, reply); err != nil {
		log.ErrorContext(ctx, "Failed to deliver reply", "error", err)
		status = database.StatusSendError
	}

	// Admin mirror is fire-and-forget and suppressed for the admin's own
	// traffic; its outcome never feeds back into the user-facing flow.
	if turn.UserID != r.adminID {
		r.send(ctx, send, r.adminID, fmt.Sprintf(adminMirrorFormat, turn.ChatID, role, turn.Text), "admin mirror")
	}

	r.record(ctx, turn, role, status)
}

// deliver sends the generated reply to the originating chat.
func (r *Relay) deliver(ctx context.Context, send SendFunc, chatID int64, text string) error {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return send(sendCtx, chatID, text)
}

// send is the best-effort variant of deliver: failures are logged and
// swallowed.
func (r *Relay) send(ctx context.Context, send SendFunc, chatID int64, text, kind string) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := send(sendCtx, chatID, text); err != nil {
		r.log.ErrorContext(ctx, "Failed to send "+kind, "chat_id", chatID, "error", err)
	}
}

// record appends the turn to the audit trail, best-effort.
func (r *Relay) record(ctx context.Context, turn Turn, role, status string) {
	if r.store == nil {
		return
	}
	recordCtx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	event := &database.RelayEvent{
		ChatID: turn.ChatID,
		UserID: turn.UserID,
		Role:   role,
		Status: status,
	}
	if err := r.store.RecordEvent(recordCtx, event); err != nil {
		r.log.WarnContext(ctx, "Failed to record relay event", "chat_id", turn.ChatID, "error", err)
	}
}
