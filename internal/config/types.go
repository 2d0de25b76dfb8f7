// Package config manages application configuration from defaults,
// config.yaml, and BOT_-prefixed environment variables.
package config

import "time"

// Config defines all application configuration parameters.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Roles     RolesConfig     `mapstructure:"roles"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Health    HealthConfig    `mapstructure:"health"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// TelegramConfig holds the transport credential and the administrator chat.
type TelegramConfig struct {
	Token   string `mapstructure:"token"    validate:"required"`
	AdminID int64  `mapstructure:"admin_id" validate:"required,gt=0"`
}

// GeminiConfig holds the AI backend credential and request tuning.
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"     validate:"required"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"required,min=1s,max=10m"`
	MaxRetries  int           `mapstructure:"max_retries" validate:"min=0,max=5"`
	RetryDelay  time.Duration `mapstructure:"retry_delay" validate:"min=100ms,max=1m"`
}

// RoleEntry is a single persona in the configured catalog.
type RoleEntry struct {
	Name        string `mapstructure:"name"        validate:"required"`
	Description string `mapstructure:"description" validate:"required"`
}

// RolesConfig defines the persona catalog and the role applied to users who
// never selected one. The catalog is fixed for the process lifetime.
type RolesConfig struct {
	Default string      `mapstructure:"default" validate:"required"`
	Catalog []RoleEntry `mapstructure:"catalog" validate:"required,min=1,dive"`
}

// DatabaseConfig holds the SQLite path for the relay-event audit store.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// HealthConfig controls the keep-alive HTTP endpoint.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"min=1,max=65535"`
}

// TaskConfig enables and schedules a single background task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// MessagesConfig holds all user-visible bot texts.
type MessagesConfig struct {
	Welcome        string `mapstructure:"welcome"         validate:"required"`
	RolesHeader    string `mapstructure:"roles_header"    validate:"required"`
	RoleSet        string `mapstructure:"role_set"        validate:"required"`
	UnknownRole    string `mapstructure:"unknown_role"    validate:"required"`
	ProvideRole    string `mapstructure:"provide_role"    validate:"required"`
	ProvideMessage string `mapstructure:"provide_message" validate:"required"`
	GeneralError   string `mapstructure:"general_error"   validate:"required"`
	NotAuthorized  string `mapstructure:"not_authorized"  validate:"required"`
}
