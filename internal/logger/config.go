package logger

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Config represents diagnostic logging configuration.
// The plain-text event log is configured separately.
type Config struct {
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
	Level      string `mapstructure:"level"` // debug, info, warn, error
}

// DefaultConfig returns console-only logging at info level
func DefaultConfig() *Config {
	return &Config{
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      "info",
	}
}

// SetDefaults fills unset fields and returns the config
func (cfg *Config) SetDefaults() *Config {
	def := DefaultConfig()
	if cfg.MaxSize == 0 {
		cfg.MaxSize = def.MaxSize
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = def.MaxBackups
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = def.MaxAge
	}
	if cfg.Level == "" {
		cfg.Level = def.Level
	}
	return cfg
}

// Validate validates logging configuration
func (cfg *Config) Validate() error {
	if cfg.MaxSize <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	if _, err := zapcore.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}
	return nil
}
