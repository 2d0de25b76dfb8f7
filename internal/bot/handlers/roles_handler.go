package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewListRolesHandler returns a handler for the /roles command, which
// enumerates every registered persona with its description.
func NewListRolesHandler(deps HandlerDeps) bot.HandlerFunc {
	return listRolesHandler{deps}.Handle
}

type listRolesHandler struct {
	deps HandlerDeps
}

func (h listRolesHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "roles")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Roles handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /roles command", "chat_id", chatID, "user_id", update.Message.From.ID)

	var sb strings.Builder
	sb.WriteString(h.deps.Config.Messages.RolesHeader)
	for _, role := range h.deps.Registry.List() {
		sb.WriteString(fmt.Sprintf("\n- %s: %s", role.Name, role.Description))
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: sb.String()})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send roles list", "error", err, "chat_id", chatID)
	}
}
