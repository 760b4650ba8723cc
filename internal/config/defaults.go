package config

import (
	"math"
	"time"
)

// Default values for configuration fields.
const (
	DefaultPort         = 5001
	DefaultGreeting     = "software_oracle_ws connected"
	DefaultWriteTimeout = 5 * time.Second
	DefaultPingInterval = 30 * time.Second
	DefaultNoise        = 0.02
	MaxNoise            = 0.2
	DefaultInterval     = 3000 * time.Millisecond
	DefaultGammaURL     = "https://gamma-api.polymarket.com"
	DefaultGammaTimeout = 10 * time.Second
	DefaultLogLevel     = "info"
	DefaultProbeURL     = "ws://127.0.0.1:5001"
	DefaultProbeTimeout = 20000 // ms
)

// Defaults returns an OracleConfig populated with default values. Loading
// starts from this value so an explicit zero (e.g. ORACLE_NOISE=0) survives.
func Defaults() OracleConfig {
	return OracleConfig{
		Server: ServerConfig{
			Port:         DefaultPort,
			Greeting:     DefaultGreeting,
			WriteTimeout: DefaultWriteTimeout,
			PingInterval: DefaultPingInterval,
		},
		Oracle: SamplerConfig{
			Noise:    DefaultNoise,
			Interval: DefaultInterval,
		},
		Gamma: GammaConfig{
			URL:     DefaultGammaURL,
			Timeout: DefaultGammaTimeout,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ProbeDefaults returns a ProbeConfig populated with default values.
func ProbeDefaults() ProbeConfig {
	return ProbeConfig{
		URL:       DefaultProbeURL,
		TimeoutMS: DefaultProbeTimeout,
	}
}

// normalize clamps values that are bounded rather than rejected.
func (c *OracleConfig) normalize() {
	c.Oracle.Noise = ClampNoise(c.Oracle.Noise)
}

// ClampNoise bounds a noise fraction to [0, MaxNoise]. NaN has no position
// in the range and maps to DefaultNoise.
func ClampNoise(n float64) float64 {
	if math.IsNaN(n) {
		return DefaultNoise
	}
	return max(0, min(MaxNoise, n))
}
