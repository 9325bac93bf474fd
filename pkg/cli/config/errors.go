package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrDuplicateFactorID = goerr.New("duplicate factor ID")
	ErrDuplicateRegionID = goerr.New("duplicate region ID")
	ErrMissingName       = goerr.New("name is required")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	FactorIDKey   = "factor_id"
	RegionIDKey   = "region_id"
)
