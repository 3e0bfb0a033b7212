package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModulesPath string // directory (or single file) of .hcl module manifests

	LogFormat   string
	LogLevel    string
	InitTimeout time.Duration // bound on eager initialization, 0 means none
	WaitTimeout time.Duration // per-lookup wait on in-progress initialization, 0 means default
}

// NewConfig validates a Config literal and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModulesPath == "" {
		return nil, errors.New("ModulesPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
