// Package tasks implements the scheduled background tasks: audit-store
// maintenance and the daily administrator activity report.
package tasks

import (
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"personabot/internal/config"
	"personabot/internal/database"
)

// TaskDeps contains the dependencies available to scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
	TgBot  *tgbot.Bot
}
