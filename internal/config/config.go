// Package config holds the settings of the tabcomplete command. Settings come
// from TABCOMPLETE_* environment variables and may be overridden by flags.
package config

import (
	"strconv"

	"go.uber.org/zap"
	"mvdan.cc/sh/v3/expand"
)

// Environment variables read by FromEnviron.
const (
	EnvLogLevel     = "TABCOMPLETE_LOG_LEVEL"
	EnvLogFile      = "TABCOMPLETE_LOG_FILE"
	EnvCleanLogFile = "TABCOMPLETE_CLEAN_LOG_FILE"
	EnvGrammar      = "TABCOMPLETE_GRAMMAR"
)

// Config holds the tabcomplete settings.
type Config struct {
	// LogLevel is a zap level name such as "debug" or "warn".
	LogLevel string

	// LogFile is where logs are written. Empty means the default under the
	// data directory.
	LogFile string

	// CleanLogFile removes the log file before logging starts.
	CleanLogFile bool

	// GrammarFile is the YAML grammar to complete against. Empty means the
	// default grammar file if it exists, otherwise the embedded grammar.
	GrammarFile string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// FromEnviron applies the TABCOMPLETE_* variables in env on top of the
// defaults. Unset or empty variables keep their defaults.
func FromEnviron(env expand.Environ) *Config {
	cfg := DefaultConfig()

	if v := env.Get(EnvLogLevel).String(); v != "" {
		cfg.LogLevel = v
	}
	if v := env.Get(EnvLogFile).String(); v != "" {
		cfg.LogFile = v
	}
	if v := env.Get(EnvCleanLogFile).String(); v != "" {
		clean, err := strconv.ParseBool(v)
		cfg.CleanLogFile = err == nil && clean
	}
	if v := env.Get(EnvGrammar).String(); v != "" {
		cfg.GrammarFile = v
	}

	return cfg
}

// ZapLevel parses LogLevel, falling back to info for unknown names.
func (c *Config) ZapLevel() zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return level
}
