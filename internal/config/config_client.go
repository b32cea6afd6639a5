package config

import (
	"fmt"
	"time"
)

// ClientAPI holds network settings used by the client handshake layer.
type ClientAPI struct {
	// BaseURL is the party server's HTTP base URL.
	BaseURL string
	// RequestTimeout is the default timeout for outbound handshake calls.
	RequestTimeout time.Duration
}

// ClientConfig is the client-specific view assembled from
// [StructuredConfig].
type ClientConfig struct {
	// API contains the handshake endpoint settings.
	API ClientAPI
	// Name is the display name to join parties under.
	Name string
	// JoinCode is the optional invite code to join directly.
	JoinCode string
	// Version is the build version shown by the client.
	Version string
}

// GetClientConfig builds and validates the client view of the merged
// structured configuration, applying defaults for optional fields.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		API: ClientAPI{
			BaseURL:        cfg.Client.ServerURL,
			RequestTimeout: cfg.Client.RequestTimeout,
		},
		Name:     cfg.Client.Name,
		JoinCode: cfg.Client.JoinCode,
		Version:  cfg.App.Version,
	}

	if clientCfg.API.BaseURL == "" {
		clientCfg.API.BaseURL = "http://localhost:8080"
	}
	if clientCfg.API.RequestTimeout <= 0 {
		clientCfg.API.RequestTimeout = 15 * time.Second
	}

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) validate() error {
	if cfg.API.BaseURL == "" {
		return ErrInvalidClientConfigs
	}

	return nil
}
