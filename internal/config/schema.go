// Package config provides configuration loading and validation for storebot.
// It supports TOML configuration files with environment variable expansion,
// default values, and validation.
//
// Configuration structure:
//   - [bot]: Telegram bot token, admin allow-list and polling behavior
//   - [store]: storefront web-app and support links embedded into keyboards
//   - [logging]: logging level, format, and output
//   - [feed]: update feed and recent-log capacity
//   - [http]: operator HTTP API (status, recent updates, metrics)
//
// Environment variables can be referenced using ${VAR} or ${VAR:default}
// syntax. For example: token = "${STOREBOT_TOKEN}".
package config

// Config represents the main application configuration.
type Config struct {
	Bot     BotConfig     `toml:"bot"`
	Store   StoreConfig   `toml:"store"`
	Logging LoggingConfig `toml:"logging"`
	Feed    FeedConfig    `toml:"feed"`
	HTTP    HTTPConfig    `toml:"http"`
}

// BotConfig представляет конфигурацию Telegram бота
type BotConfig struct {
	Token string `toml:"token"`

	// AdminIDs is the allow-list of Telegram user IDs permitted to use
	// the /admin command and the open_admin callback.
	AdminIDs []int64 `toml:"admin_ids"`

	// PollTimeoutSeconds is the server-side long-poll wait window.
	PollTimeoutSeconds int `toml:"poll_timeout_seconds"`

	// PollDelaySeconds is the pause between successful poll cycles.
	PollDelaySeconds int `toml:"poll_delay_seconds"`

	// RetryDelaySeconds is the initial pause after a failed poll cycle.
	// Subsequent consecutive failures back off exponentially up to
	// MaxRetryDelaySeconds.
	RetryDelaySeconds    int `toml:"retry_delay_seconds"`
	MaxRetryDelaySeconds int `toml:"max_retry_delay_seconds"`

	SendTimeoutSeconds int `toml:"send_timeout_seconds"`

	// AckText is shown by the Telegram client while a callback button
	// press is being processed.
	AckText string `toml:"ack_text"`
}

// StoreConfig представляет ссылки магазина, встраиваемые в клавиатуры
type StoreConfig struct {
	// WebAppURL is the storefront origin; deep links are built by
	// appending query parameters (?admin=true, ?tab=cart, ...).
	WebAppURL string `toml:"webapp_url"`

	// SupportURL is the support chat link used on URL buttons.
	SupportURL string `toml:"support_url"`
}

// LoggingConfig представляет конфигурацию логирования
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// FeedConfig представляет конфигурацию ленты обновлений
type FeedConfig struct {
	Capacity   int `toml:"capacity"`
	RecentSize int `toml:"recent_size"`
}

// HTTPConfig представляет конфигурацию операторского HTTP API
type HTTPConfig struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}
