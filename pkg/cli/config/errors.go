package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound  = goerr.New("configuration file not found")
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrDuplicateUnit   = goerr.New("duplicate business unit")
	ErrDuplicateRisk   = goerr.New("duplicate risk name")
	ErrInvalidBackend  = goerr.New("invalid repository backend")
	ErrInvalidLogLevel = goerr.New("invalid log level")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	UnitNameKey   = "unit_name"
	RiskNameKey   = "risk_name"
)
