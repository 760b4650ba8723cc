package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *OracleConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.WriteTimeout <= 0 {
		return errors.New("server.write_timeout must be > 0")
	}
	if c.Server.PingInterval <= 0 {
		return errors.New("server.ping_interval must be > 0")
	}

	if math.IsNaN(c.Oracle.Noise) || c.Oracle.Noise < 0 || c.Oracle.Noise > MaxNoise {
		return fmt.Errorf("oracle.noise must be between 0 and %v, got %v", MaxNoise, c.Oracle.Noise)
	}
	if c.Oracle.Interval <= 0 {
		return errors.New("oracle.interval must be > 0")
	}

	if c.Gamma.URL == "" {
		return errors.New("gamma.url is required")
	}
	if c.Gamma.Timeout <= 0 {
		return errors.New("gamma.timeout must be > 0")
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// Validate checks the probe configuration.
func (c *ProbeConfig) Validate() error {
	if c.URL == "" {
		return errors.New("probe url is required")
	}
	if c.TimeoutMS < 1 {
		return fmt.Errorf("probe timeout must be >= 1ms, got %d", c.TimeoutMS)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", l.Level)
	}
}
