package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"personabot/internal/database"
)

const statsQueryTimeout = 15 * time.Second

// NewStatsHandler returns a handler for the admin-only /stats command,
// summarizing relay activity over the last 24 hours.
func NewStatsHandler(deps HandlerDeps) bot.HandlerFunc {
	return statsHandler{deps}.Handle
}

type statsHandler struct {
	deps HandlerDeps
}

func (h statsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Stats handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /stats command", "chat_id", chatID)

	queryCtx, cancel := context.WithTimeout(ctx, statsQueryTimeout)
	defer cancel()

	report, err := BuildActivityReport(queryCtx, h.deps.Store, 24*time.Hour)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build activity report", "error", err)
		if _, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: h.deps.Config.Messages.GeneralError}); sendErr != nil {
			log.ErrorContext(ctx, "Failed to send error message", "error", sendErr, "chat_id", chatID)
		}
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: report}); err != nil {
		log.ErrorContext(ctx, "Failed to send stats report", "error", err, "chat_id", chatID)
	}
}

// BuildActivityReport renders a plain-text summary of relay activity during
// the trailing window. It is shared by the /stats command and the scheduled
// daily report task.
func BuildActivityReport(ctx context.Context, store database.Store, window time.Duration) (string, error) {
	since := time.Now().UTC().Add(-window)

	byStatus, err := store.CountByStatusSince(ctx, since)
	if err != nil {
		return "", fmt.Errorf("failed to aggregate by status: %w", err)
	}
	byRole, err := store.CountByRoleSince(ctx, since)
	if err != nil {
		return "", fmt.Errorf("failed to aggregate by role: %w", err)
	}

	var total int64
	for _, c := range byStatus {
		total += c.Count
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Relay activity, last %s: %d turns", window, total)
	if total == 0 {
		return sb.String(), nil
	}

	sb.WriteString("\n\nBy outcome:")
	for _, c := range byStatus {
		fmt.Fprintf(&sb, "\n- %s: %d", c.Status, c.Count)
	}
	sb.WriteString("\n\nBy role:")
	for _, c := range byRole {
		fmt.Fprintf(&sb, "\n- %s: %d", c.Role, c.Count)
	}

	return sb.String(), nil
}
