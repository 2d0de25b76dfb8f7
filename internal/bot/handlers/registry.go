package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler bundles a command handler with its pattern, match type,
// and middleware chain for registration.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands builds the full command handler set.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	registered := make(map[string]RegisteredHandler)

	registered["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	registered["/roles"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "roles",
		Handler:     NewListRolesHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	registered["/role"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "role",
		Handler:     NewSetRoleHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}

	registered["/stats"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "stats",
		Handler:     NewStatsHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  []tgbot.Middleware{AdminOnly(deps)},
	}

	return registered
}
