package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDeepgram(); err != nil {
		return err
	}
	if err := c.validateMonitor(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDeepgram() error {
	if c.Deepgram.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/murmur/config.toml"
		}
		return fmt.Errorf("deepgram.api_key is required. Set DEEPGRAM_API_KEY env var or edit %s (create with 'murmur config init')", defaultPath)
	}
	if c.Deepgram.RequestTimeout <= 0 {
		return errors.New("deepgram.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateMonitor() error {
	if c.Monitor.SettleDelaySeconds < 0 {
		return errors.New("monitor.settle_delay_seconds must not be negative")
	}
	if len(c.Monitor.AllowedExtensions) == 0 {
		return errors.New("monitor.allowed_extensions must list at least one extension")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}
