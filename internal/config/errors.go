package config

import "errors"

var (
	// ErrInvalidConfig marks a configuration that loaded but cannot run the
	// briefing service, such as an unknown narrative provider or a blank CSV path.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a failure reading one of the configuration layers:
	// the .env file, the YAML file or the SCOUT_ environment.
	ErrLoadConfig = errors.New("load config failed")
)
