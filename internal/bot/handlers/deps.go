package handlers

import (
	"log/slog"

	"personabot/internal/config"
	"personabot/internal/database"
	"personabot/internal/relay"
	"personabot/internal/roles"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Registry  *roles.Registry
	UserRoles *roles.UserRoles
	Relay     *relay.Relay
	Store     database.Store
}
