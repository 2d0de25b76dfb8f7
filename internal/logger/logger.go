// Package logger provides structured logging for the bot via log/slog,
// plus a Telegram middleware that traces update handling.
package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewLogger creates a slog Logger with the given level and output format
// ("json" or "text") and installs it as the process default.
func NewLogger(levelStr, format string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// Middleware returns a Telegram bot middleware that logs every handled
// update with its chat, sender, and processing duration. Message text is
// truncated to keep user content out of the logs.
func Middleware(log *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()

			entry := log.With("update_id", update.ID)
			if update.Message != nil {
				entry = entry.With(
					"message_id", update.Message.ID,
					"chat_id", update.Message.Chat.ID,
				)
				if update.Message.From != nil {
					entry = entry.With("user_id", update.Message.From.ID)
				}
				entry = entry.With("text_preview", truncate(update.Message.Text, 50))
			}

			entry.DebugContext(ctx, "Processing update")

			next(ctx, b, update)

			entry.InfoContext(ctx, "Finished processing update", "duration", time.Since(start))
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
