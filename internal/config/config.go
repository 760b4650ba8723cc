package config

import "time"

// OracleConfig is the root configuration for the estimator service.
type OracleConfig struct {
	Server ServerConfig  `yaml:"server"`
	Oracle SamplerConfig `yaml:"oracle"`
	Gamma  GammaConfig   `yaml:"gamma"`
	Log    LogConfig     `yaml:"log"`
}

// ServerConfig holds the WebSocket broadcast endpoint settings.
type ServerConfig struct {
	Port         int           `yaml:"port" env:"SOFTWARE_WS_PORT"`
	Greeting     string        `yaml:"greeting"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	PingInterval time.Duration `yaml:"ping_interval"`
}

// SamplerConfig holds the probability synthesizer settings.
type SamplerConfig struct {
	Noise    float64       `yaml:"noise" env:"ORACLE_NOISE"` // Fraction, clamped to [0, MaxNoise]
	Interval time.Duration `yaml:"interval"`
}

// GammaConfig holds Polymarket Gamma API settings.
type GammaConfig struct {
	URL     string        `yaml:"url" env:"GAMMA_API_URL"`
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"` // debug, info, warn, error
}

// ProbeConfig configures the diagnostic probe client. It is read from the
// environment only.
type ProbeConfig struct {
	URL       string `env:"SOFTWARE_WS_URL"`
	TimeoutMS int    `env:"WS_PROBE_TIMEOUT"`
}

// Timeout returns the observation window as a duration.
func (c ProbeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
