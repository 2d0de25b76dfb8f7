package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrConfiguration wraps every configuration loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Load resolves configuration in precedence order:
//  1. built-in defaults
//  2. config.yaml in the working directory (optional)
//  3. BOT_* environment variables (a .env file is honored if present)
//
// Required credentials (telegram token, admin id, gemini api key) have no
// defaults; Load fails when they are missing so the process never serves
// traffic half-configured.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to load .env: %v", ErrConfiguration, err)
	}

	v := viper.New()
	setDefaults(v)
	bindSecrets(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
		}
		// No config file is fine; defaults plus environment take over.
	}

	cfg := &Config{
		Roles: RolesConfig{
			Default: DefaultRole,
			Catalog: DefaultCatalog,
		},
		Scheduler: SchedulerConfig{
			Tasks: DefaultSchedulerTasks,
		},
		Messages: DefaultMessages,
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// Validate checks the structural constraints plus the cross-field invariant
// that the default role is part of the catalog.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	seen := make(map[string]bool, len(cfg.Roles.Catalog))
	for _, role := range cfg.Roles.Catalog {
		if seen[role.Name] {
			return fmt.Errorf("duplicate role %q in catalog", role.Name)
		}
		seen[role.Name] = true
	}
	if !seen[cfg.Roles.Default] {
		return fmt.Errorf("default role %q is not in the catalog", cfg.Roles.Default)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("gemini.model", DefaultGeminiModel)
	v.SetDefault("gemini.temperature", DefaultGeminiTemperature)
	v.SetDefault("gemini.timeout", DefaultGeminiTimeout)
	v.SetDefault("gemini.max_retries", DefaultGeminiMaxRetries)
	v.SetDefault("gemini.retry_delay", DefaultGeminiRetryDelay)

	v.SetDefault("roles.default", DefaultRole)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("health.enabled", true)
	v.SetDefault("health.port", DefaultHealthPort)

	v.SetDefault("messages.welcome", DefaultMessages.Welcome)
	v.SetDefault("messages.roles_header", DefaultMessages.RolesHeader)
	v.SetDefault("messages.role_set", DefaultMessages.RoleSet)
	v.SetDefault("messages.unknown_role", DefaultMessages.UnknownRole)
	v.SetDefault("messages.provide_role", DefaultMessages.ProvideRole)
	v.SetDefault("messages.provide_message", DefaultMessages.ProvideMessage)
	v.SetDefault("messages.general_error", DefaultMessages.GeneralError)
	v.SetDefault("messages.not_authorized", DefaultMessages.NotAuthorized)
}

// bindSecrets registers the required keys that have no defaults so
// AutomaticEnv can resolve them from BOT_* variables.
func bindSecrets(v *viper.Viper) {
	_ = v.BindEnv("telegram.token")
	_ = v.BindEnv("telegram.admin_id")
	_ = v.BindEnv("gemini.api_key")
}
