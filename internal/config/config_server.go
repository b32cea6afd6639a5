package config

import (
	"fmt"
	"time"
)

// ServerConfig is the server-specific view assembled from
// [StructuredConfig].
type ServerConfig struct {
	// HTTPAddress is the TCP listen address.
	HTTPAddress string
	// RequestTimeout bounds inbound HTTP requests.
	RequestTimeout time.Duration
	// Party contains the party room tuning knobs.
	Party Party
	// DSN is the restaurant catalog SQLite data source name.
	DSN string
	// Version is the build version reported on /health.
	Version string
}

// GetServerConfig builds and validates the server view of the merged
// structured configuration, applying defaults for optional fields.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		Party:          cfg.Party,
		DSN:            cfg.Storage.DB.DSN,
		Version:        cfg.App.Version,
	}
	serverCfg.applyDefaults()

	return serverCfg, serverCfg.validate()
}

func (cfg *ServerConfig) applyDefaults() {
	if cfg.HTTPAddress == "" {
		cfg.HTTPAddress = "localhost:8080"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.DSN == "" {
		cfg.DSN = "party-swipe.db"
	}
	if cfg.Party.MinMembers <= 0 {
		cfg.Party.MinMembers = 2
	}
	if cfg.Party.InitialBatch <= 0 {
		cfg.Party.InitialBatch = 10
	}
	if cfg.Party.BatchSize <= 0 {
		cfg.Party.BatchSize = 5
	}
	if cfg.Party.DeckSize <= 0 {
		cfg.Party.DeckSize = 30
	}
	if cfg.Party.SweepInterval <= 0 {
		cfg.Party.SweepInterval = time.Minute
	}
	if cfg.Party.IdleTTL <= 0 {
		cfg.Party.IdleTTL = 30 * time.Minute
	}
}

func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Party.MinMembers < 2 {
		return ErrInvalidPartyConfigs
	}

	if cfg.Party.InitialBatch < 1 || cfg.Party.BatchSize < 1 {
		return ErrInvalidPartyConfigs
	}

	if cfg.Party.DeckSize < cfg.Party.InitialBatch {
		return ErrInvalidPartyConfigs
	}

	return nil
}
