package config

import (
	"errors"
	"fmt"
	"strings"

	"hotwatch/internal/logger"
	"hotwatch/internal/validator"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when the credentials file fails validation
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the monitor configuration loaded from the credentials file
type Config struct {
	// BotToken and ChannelID are read from BOT_TOKEN and CHANNEL_ID
	BotToken  string `mapstructure:"bot_token" validate:"required,bottoken"`
	ChannelID string `mapstructure:"channel_id" validate:"required,chatid"`

	EventLog        string        `mapstructure:"event_log" validate:"required"`
	LookupURL       string        `mapstructure:"lookup_url" validate:"required,url"`
	TelegramAPI     string        `mapstructure:"telegram_api" validate:"required,url"`
	NeighborCommand []string      `mapstructure:"neighbor_command" validate:"min=1"`
	Log             logger.Config `mapstructure:"log"`
}

// LoadConfig loads the configuration from path, or searches the default
// locations for auth.{json,yaml,toml} when path is empty.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(InDot)
		v.AddConfigPath(InHome)
		v.AddConfigPath(InEtc)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.BotToken = strings.TrimSpace(cfg.BotToken)
	cfg.ChannelID = strings.TrimSpace(cfg.ChannelID)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers values for optional keys
func setDefaults(v *viper.Viper) {
	v.SetDefault("event_log", "hotwatch.log")
	v.SetDefault("lookup_url", "https://ipinfo.io/json")
	v.SetDefault("telegram_api", "https://api.telegram.org")
	v.SetDefault("neighbor_command", []string{"ip", "neigh"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("%w: log: %v", ErrInvalidConfig, err)
	}
	return nil
}
