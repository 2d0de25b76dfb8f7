// Package telegram handles construction of the Telegram bot transport and
// the registration of command handlers.
package telegram

import (
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"

	"personabot/internal/bot/handlers"
)

// NewTelegramBot creates a Telegram bot instance using the go-telegram/bot
// library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created")
	return b, nil
}

// RegisterHandlers attaches the command handlers, wrapping each one with its
// declared middleware. Middleware are applied in reverse order so the first
// entry is outermost.
func RegisterHandlers(b *bot.Bot, logger *slog.Logger, registered map[string]handlers.RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	log := logger.With("component", "handler_registry")

	for name, h := range registered {
		if h.Handler == nil {
			log.Warn("Skipping registration of nil handler", "command", name)
			continue
		}

		final := h.Handler
		for i := len(h.Middleware) - 1; i >= 0; i-- {
			final = h.Middleware[i](final)
		}

		b.RegisterHandler(h.HandlerType, h.Pattern, h.MatchType, final)
		log.Debug("Registered handler", "command", name, "pattern", h.Pattern)
	}

	log.Info("Registered Telegram handlers", "count", len(registered))
	return nil
}
