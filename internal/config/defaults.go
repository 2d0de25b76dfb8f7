package config

import "time"

// Default values for optional configuration parameters.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultGeminiModel       = "gemini-1.5-flash"
	DefaultGeminiTemperature = 1.0
	DefaultGeminiTimeout     = 2 * time.Minute
	DefaultGeminiMaxRetries  = 2
	DefaultGeminiRetryDelay  = 2 * time.Second

	DefaultRole = "normal"

	DefaultDBPath = "storage.db"

	DefaultHealthPort = 8080
)

// DefaultMessages are the user-visible texts used when config.yaml does not
// override them.
var DefaultMessages = MessagesConfig{
	Welcome:        "Welcome to the Gemini-powered chatbot! Use /role to set your role and /roles to see available roles.",
	RolesHeader:    "Available roles:",
	RoleSet:        "Your role has been set to: %s",
	UnknownRole:    "Invalid role. Use /roles to see available roles.",
	ProvideRole:    "Please provide a role name, e.g. /role teacher.",
	ProvideMessage: "Please send a message so I have something to respond to.",
	GeneralError:   "An error occurred while processing your request.",
	NotAuthorized:  "You are not authorized to use this command.",
}

// DefaultCatalog is the built-in persona catalog. Order matters: /roles
// enumerates personas in this order.
var DefaultCatalog = []RoleEntry{
	{Name: "normal", Description: "Respond in a neutral and general way."},
	{Name: "best_friend", Description: "Respond as a caring and supportive best friend."},
	{Name: "teacher", Description: "Respond as a knowledgeable and patient teacher."},
	{Name: "girlfriend", Description: "Respond as a loving and empathetic partner."},
	{Name: "programmer", Description: "Respond as an expert programmer with technical insights."},
	{Name: "ethical_hacker", Description: "Respond as a cybersecurity expert focusing on ethical hacking."},
	{Name: "fitness_trainer", Description: "Respond as a motivating fitness trainer."},
	{Name: "therapist", Description: "Respond as a compassionate therapist."},
	{Name: "business_consultant", Description: "Respond as a strategic business consultant."},
	{Name: "storyteller", Description: "Respond as a creative and imaginative storyteller."},
	{Name: "chef", Description: "Respond as a professional chef with recipe ideas and cooking tips."},
	{Name: "travel_guide", Description: "Respond as an enthusiastic and knowledgeable travel guide."},
}

// DefaultSchedulerTasks enables the standard background tasks.
var DefaultSchedulerTasks = map[string]TaskConfig{
	"sql_maintenance": {Enabled: true, Schedule: "0 4 * * *"},
	"daily_report":    {Enabled: true, Schedule: "0 8 * * *"},
}
