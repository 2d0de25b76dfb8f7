package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Retention window for relay events, enforced by RunSQLMaintenance.
const eventRetention = 30 * 24 * time.Hour

// Store is the data access layer for the relay-event audit trail.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RecordEvent inserts one relay event.
	RecordEvent(ctx context.Context, event *RelayEvent) error

	// CountByStatusSince aggregates events by outcome since the given time.
	CountByStatusSince(ctx context.Context, since time.Time) ([]StatusCount, error)

	// CountByRoleSince aggregates events by persona since the given time.
	CountByRoleSince(ctx context.Context, since time.Time) ([]RoleCount, error)

	// RunSQLMaintenance prunes expired events and compacts the database.
	RunSQLMaintenance(ctx context.Context) error
}

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by the given sqlx connection pool.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) RecordEvent(ctx context.Context, event *RelayEvent) error {
	if event == nil {
		return fmt.Errorf("cannot record nil event")
	}
	if event.ChatID == 0 || event.UserID == 0 {
		return fmt.Errorf("event must have non-zero chat_id and user_id")
	}
	if event.Role == "" || event.Status == "" {
		return fmt.Errorf("event must have a role and a status")
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO relay_events (created_at, chat_id, user_id, role, status)
        VALUES (:created_at, :chat_id, :user_id, :role, :status);
    `
	result, err := s.db.NamedExecContext(ctx, query, event)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to record relay event",
			"chat_id", event.ChatID, "user_id", event.UserID, "error", err)
		return fmt.Errorf("failed to record relay event: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		event.ID = uint(id)
	}
	return nil
}

func (s *sqlxStore) CountByStatusSince(ctx context.Context, since time.Time) ([]StatusCount, error) {
	var counts []StatusCount
	query := `
        SELECT status, COUNT(*) AS count
        FROM relay_events
        WHERE created_at >= ?
        GROUP BY status
        ORDER BY count DESC;
    `
	if err := s.db.SelectContext(ctx, &counts, query, since.UTC()); err != nil {
		return nil, fmt.Errorf("failed to count events by status: %w", err)
	}
	return counts, nil
}

func (s *sqlxStore) CountByRoleSince(ctx context.Context, since time.Time) ([]RoleCount, error) {
	var counts []RoleCount
	query := `
        SELECT role, COUNT(*) AS count
        FROM relay_events
        WHERE created_at >= ?
        GROUP BY role
        ORDER BY count DESC;
    `
	if err := s.db.SelectContext(ctx, &counts, query, since.UTC()); err != nil {
		return nil, fmt.Errorf("failed to count events by role: %w", err)
	}
	return counts, nil
}

func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-eventRetention)

	result, err := s.db.ExecContext(ctx, `DELETE FROM relay_events WHERE created_at < ?;`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune old relay events: %w", err)
	}
	if pruned, err := result.RowsAffected(); err == nil && pruned > 0 {
		s.logger.InfoContext(ctx, "Pruned old relay events", "count", pruned, "cutoff", cutoff)
	}

	if _, err := s.db.ExecContext(ctx, `ANALYZE;`); err != nil {
		return fmt.Errorf("failed to run ANALYZE: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM;`); err != nil {
		return fmt.Errorf("failed to run VACUUM: %w", err)
	}

	return nil
}
