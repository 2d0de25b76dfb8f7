package database

import "time"

// Relay turn outcomes recorded in the audit trail.
const (
	StatusOK           = "ok"
	StatusEmptyInput   = "empty_input"
	StatusBackendError = "backend_error"
	StatusSendError    = "send_error"
)

// RelayEvent is one relayed conversation turn. Only metadata is kept; the
// user's text and the generated reply are never persisted.
type RelayEvent struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ChatID int64  `db:"chat_id"`
	UserID int64  `db:"user_id"`
	Role   string `db:"role"`
	Status string `db:"status"`
}

// StatusCount aggregates relay events by outcome.
type StatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"count"`
}

// RoleCount aggregates relay events by the persona active during the turn.
type RoleCount struct {
	Role  string `db:"role"`
	Count int64  `db:"count"`
}
