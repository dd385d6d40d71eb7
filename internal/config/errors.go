package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure.
	ErrInvalidConfig = errors.New("invalid dashboard config")
	// ErrLoadConfig wraps failures reading the YAML file, .env file or environment.
	ErrLoadConfig = errors.New("load dashboard config")
)
