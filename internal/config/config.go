package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port              string        `envconfig:"PORT" default:"8080"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	RevenueMultiplier float64       `envconfig:"REVENUE_MULTIPLIER" default:"2.5"`
	SchemaFile        string        `envconfig:"SCHEMA_FILE"`
	MaxBodyBytes      int64         `envconfig:"MAX_BODY_BYTES" default:"33554432"` // tope sano para /analyze
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
