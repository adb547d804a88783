package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateResolver(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateResolver() error {
	if c.Resolver.RequestTimeoutSeconds < 1 || c.Resolver.RequestTimeoutSeconds > 60 {
		return errors.New("resolver.request_timeout_seconds must be between 1 and 60")
	}
	if c.Resolver.ShortQueryScore <= 0 || c.Resolver.ShortQueryScore > 1 {
		return errors.New("resolver.short_query_score must be between 0 and 1")
	}
	if c.Resolver.LongQueryScore <= 0 || c.Resolver.LongQueryScore > 1 {
		return errors.New("resolver.long_query_score must be between 0 and 1")
	}
	if c.Resolver.LongQueryScore > c.Resolver.ShortQueryScore {
		return errors.New("resolver.long_query_score must not exceed resolver.short_query_score")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
