package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"personabot/internal/relay"
)

// NewRelayHandler returns the default handler: every plain text message is
// relayed to the AI backend through the conversation relay. Commands and
// non-text updates are ignored.
func NewRelayHandler(deps HandlerDeps) bot.HandlerFunc {
	return relayHandler{deps}.Handle
}

type relayHandler struct {
	deps HandlerDeps
}

func (h relayHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "relay")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.DebugContext(ctx, "Ignoring update with nil message or sender", "update_id", update.ID)
		return
	}
	if strings.HasPrefix(msg.Text, "/") {
		log.DebugContext(ctx, "Ignoring unrecognized command", "chat_id", msg.Chat.ID)
		return
	}

	// The backend round trip is the only slow step; let the user see the
	// bot typing while it runs.
	_, _ = b.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: msg.Chat.ID, Action: models.ChatActionTyping})

	send := func(sendCtx context.Context, chatID int64, text string) error {
		_, err := b.SendMessage(sendCtx, &bot.SendMessageParams{ChatID: chatID, Text: text})
		return err
	}

	h.deps.Relay.HandleTurn(ctx, send, relay.Turn{
		ChatID: msg.Chat.ID,
		UserID: msg.From.ID,
		Text:   msg.Text,
	})
}
