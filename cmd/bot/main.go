// Package main contains the entrypoint for the persona relay bot.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"personabot/internal/bot"
	"personabot/internal/bot/handlers"
	"personabot/internal/bot/tasks"
	"personabot/internal/config"
	"personabot/internal/database"
	"personabot/internal/gemini"
	"personabot/internal/health"
	"personabot/internal/logger"
	"personabot/internal/relay"
	"personabot/internal/roles"
	"personabot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all components, starts the bot, and handles graceful
// shutdown. It returns the process exit code.
func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
	log.Info("Logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	catalog := make([]roles.Role, 0, len(cfg.Roles.Catalog))
	for _, entry := range cfg.Roles.Catalog {
		catalog = append(catalog, roles.Role{Name: entry.Name, Description: entry.Description})
	}
	registry, err := roles.NewRegistry(catalog)
	if err != nil {
		log.Error("Failed to build role registry", "error", err)
		return 1
	}
	userRoles, err := roles.NewUserRoles(registry, cfg.Roles.Default)
	if err != nil {
		log.Error("Failed to create user role store", "error", err)
		return 1
	}
	log.Info("Role registry initialized", "roles", len(catalog), "default_role", cfg.Roles.Default)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	backend, err := gemini.NewClient(ctx, cfg.Gemini, log)
	if err != nil {
		log.Error("Failed to initialize Gemini client", "error", err)
		return 1
	}

	conversationRelay := relay.New(log, registry, userRoles, backend, store, cfg.Telegram.AdminID, cfg.Messages)

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Registry:  registry,
		UserRoles: userRoles,
		Relay:     conversationRelay,
		Store:     store,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewRelayHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
		TgBot:  tg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	var healthSrv *health.Server
	if cfg.Health.Enabled {
		healthSrv = health.NewServer(cfg.Health.Port, store, log)
	}

	app := bot.NewBot(log, cfg, tg, sched, healthSrv)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error.
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
