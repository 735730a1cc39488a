package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	expandEnvVars(&cfg)

	return &cfg, nil
}

// applyDefaults заполняет незаданные поля значениями по умолчанию
func applyDefaults(cfg *Config) {
	if cfg.Bot.PollTimeoutSeconds <= 0 {
		cfg.Bot.PollTimeoutSeconds = 30
	}
	if cfg.Bot.PollDelaySeconds <= 0 {
		cfg.Bot.PollDelaySeconds = 1
	}
	if cfg.Bot.RetryDelaySeconds <= 0 {
		cfg.Bot.RetryDelaySeconds = 5
	}
	if cfg.Bot.MaxRetryDelaySeconds <= 0 {
		cfg.Bot.MaxRetryDelaySeconds = 60
	}
	if cfg.Bot.SendTimeoutSeconds <= 0 {
		cfg.Bot.SendTimeoutSeconds = 10
	}
	if cfg.Bot.AckText == "" {
		cfg.Bot.AckText = "Обрабатываем..."
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Feed.Capacity <= 0 {
		cfg.Feed.Capacity = 100
	}
	if cfg.Feed.RecentSize <= 0 {
		cfg.Feed.RecentSize = 10
	}
	if cfg.HTTP.Listen == "" {
		cfg.HTTP.Listen = ":8090"
	}
}

// envVarPattern matches ${VAR} and ${VAR:default} references.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([^}]*))?\}`)

// expandEnvVars разворачивает ссылки на переменные окружения в строковых полях
func expandEnvVars(cfg *Config) {
	cfg.Bot.Token = expandString(cfg.Bot.Token)
	cfg.Store.WebAppURL = expandString(cfg.Store.WebAppURL)
	cfg.Store.SupportURL = expandString(cfg.Store.SupportURL)
	cfg.Logging.Output = expandString(cfg.Logging.Output)
	cfg.HTTP.Listen = expandString(cfg.HTTP.Listen)
}

func expandString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if value, ok := os.LookupEnv(groups[1]); ok {
			return value
		}
		return groups[2]
	})
}

// Validate проверяет валидность конфигурации
func (c *Config) Validate() []error {
	var errors []error

	if c.Bot.Token == "" {
		errors = append(errors, fmt.Errorf("bot.token is required"))
	} else if !strings.Contains(c.Bot.Token, ":") {
		errors = append(errors, fmt.Errorf("bot.token does not look like a Telegram bot token"))
	}

	for _, id := range c.Bot.AdminIDs {
		if id <= 0 {
			errors = append(errors, fmt.Errorf("bot.admin_ids contains invalid user ID: %d", id))
		}
	}

	if c.Store.WebAppURL == "" {
		errors = append(errors, fmt.Errorf("store.webapp_url is required"))
	} else if err := validateURL(c.Store.WebAppURL, "store.webapp_url"); err != nil {
		errors = append(errors, err)
	}

	if c.Store.SupportURL != "" {
		if err := validateURL(c.Store.SupportURL, "store.support_url"); err != nil {
			errors = append(errors, err)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}

	return errors
}

func validateURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https", field)
	}
	return nil
}
