package config

import "errors"

// Sentinel errors for configuration loading and validation.
var (
	// ErrConfigFileNotFound is returned when an explicitly requested
	// config file cannot be read.
	ErrConfigFileNotFound = errors.New("config: file not found")

	// ErrInvalidConfig is returned when validation fails; the wrapped
	// error carries the validator's field-level messages.
	ErrInvalidConfig = errors.New("config: validation failed")
)
