package tasks

import (
	"context"
	"fmt"
	"time"

	tgbot "github.com/go-telegram/bot"

	"personabot/internal/bot/handlers"
)

// newDailyReportTask creates the task that pushes a 24-hour relay activity
// summary to the administrator chat.
func newDailyReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "daily_report")

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Building daily activity report")

		report, err := handlers.BuildActivityReport(ctx, deps.Store, 24*time.Hour)
		if err != nil {
			log.ErrorContext(ctx, "Failed to build daily report", "error", err)
			return fmt.Errorf("daily report failed: %w", err)
		}

		_, err = deps.TgBot.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: deps.Config.Telegram.AdminID,
			Text:   report,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send daily report to admin", "error", err)
			return fmt.Errorf("daily report delivery failed: %w", err)
		}

		log.InfoContext(ctx, "Daily report sent")
		return nil
	}
}
