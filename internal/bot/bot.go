// Package bot implements lifecycle management and component orchestration
// for the persona relay bot.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"personabot/internal/config"
	"personabot/internal/health"
)

const healthShutdownTimeout = 5 * time.Second

// Bot owns the long-running components: the Telegram update listener, the
// task scheduler, and the optional health endpoint.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	tgBot     *tgbot.Bot
	scheduler *Scheduler
	healthSrv *health.Server
}

// NewBot assembles the orchestrator. healthSrv may be nil when the health
// endpoint is disabled.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	tgBot *tgbot.Bot,
	scheduler *Scheduler,
	healthSrv *health.Server,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "orchestrator"),
		cfg:       cfg,
		tgBot:     tgBot,
		scheduler: scheduler,
		healthSrv: healthSrv,
	}
}

// Run starts every component and blocks until the context is cancelled or a
// component fails. Components are shut down gracefully on the way out.
func (b *Bot) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram update listener")
		b.tgBot.Start(gCtx)

		if gCtx.Err() == nil {
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		b.logger.Info("Telegram update listener stopped")
		return nil
	})

	g.Go(func() error {
		if err := b.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	if b.healthSrv != nil {
		g.Go(func() error {
			return b.healthSrv.ListenAndServe()
		})
		g.Go(func() error {
			<-gCtx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), healthShutdownTimeout)
			defer cancel()
			return b.healthSrv.Shutdown(shutdownCtx)
		})
	}

	b.logger.Info("Bot running, waiting for shutdown signal")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot stopped gracefully")
	return nil
}
