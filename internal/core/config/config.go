// Package config provides configuration management for condformula.
package config

import (
	"fmt"

	"github.com/solatis/condformula/internal/types"
)

// Config holds formula engine and logging configuration.
type Config struct {
	DefaultEvalType types.EvalType
	StrictIDs       bool
	LogLevel        string
	LogFormat       string
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		DefaultEvalType: types.EvalTypeAndOr,
		StrictIDs:       false,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "console": true, "text": true}
)

// validateConfig checks log level, log format and eval type ranges.
func validateConfig(cfg *Config) error {
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	if !validLogFormats[cfg.LogFormat] {
		return fmt.Errorf("log.format must be json or console, got %q", cfg.LogFormat)
	}
	if cfg.DefaultEvalType < types.EvalTypeAndOr || cfg.DefaultEvalType > types.EvalTypeExpression {
		return fmt.Errorf("formula.default_eval_type out of range: %d", cfg.DefaultEvalType)
	}
	return nil
}
