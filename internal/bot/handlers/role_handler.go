package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"personabot/internal/roles"
)

// NewSetRoleHandler returns a handler for the /role command, which assigns a
// persona to the requesting user. Unknown roles are rejected with a
// user-visible message, never silently defaulted.
func NewSetRoleHandler(deps HandlerDeps) bot.HandlerFunc {
	return setRoleHandler{deps}.Handle
}

type setRoleHandler struct {
	deps HandlerDeps
}

func (h setRoleHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "role")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Role handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	fields := strings.Fields(update.Message.Text)
	roleName := ""
	if len(fields) > 1 {
		roleName = strings.Join(fields[1:], " ")
	}

	if roleName == "" {
		h.reply(ctx, b, log, chatID, h.deps.Config.Messages.ProvideRole)
		return
	}

	if err := h.deps.UserRoles.Set(userID, roleName); err != nil {
		if errors.Is(err, roles.ErrUnknownRole) {
			log.InfoContext(ctx, "Rejected unknown role", "chat_id", chatID, "user_id", userID, "role", roleName)
			h.reply(ctx, b, log, chatID, h.deps.Config.Messages.UnknownRole)
			return
		}
		log.ErrorContext(ctx, "Failed to set role", "error", err, "chat_id", chatID, "user_id", userID)
		h.reply(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Role assigned", "chat_id", chatID, "user_id", userID, "role", roleName)
	h.reply(ctx, b, log, chatID, fmt.Sprintf(h.deps.Config.Messages.RoleSet, roleName))
}

func (h setRoleHandler) reply(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send role reply", "error", err, "chat_id", chatID)
	}
}
