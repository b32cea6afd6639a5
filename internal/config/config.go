// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings shared by both binaries.
	App App `envPrefix:"APP_"`

	// Client holds settings for the interactive swiping client.
	Client Client `envPrefix:"CLIENT_"`

	// Server holds network settings for the party server.
	Server Server `envPrefix:"SERVER_"`

	// Party holds the party room tuning knobs of the server.
	Party Party `envPrefix:"PARTY_"`

	// Storage holds the restaurant catalog database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Version is the semantic version string of the running binary.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Client holds configuration for the swiping client binary.
type Client struct {
	// ServerURL is the base URL of the party server's HTTP API
	// (e.g. "http://localhost:8080"). The websocket endpoint is derived
	// from it.
	// Env: CLIENT_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// Name is the display name the user joins parties under.
	// Env: CLIENT_NAME
	Name string `env:"NAME"`

	// JoinCode is an optional invite code. When set the client joins that
	// party directly instead of prompting.
	// Env: CLIENT_JOIN_CODE
	JoinCode string `env:"JOIN_CODE"`

	// RequestTimeout bounds each HTTP handshake call (e.g. "15s").
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Server holds network settings for the party server.
type Server struct {
	// HTTPAddress is the TCP address the server listens on, in
	// "host:port" form (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the read/write timeout applied to the HTTP server.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Party holds per-room tuning knobs for the server.
type Party struct {
	// MinMembers is the member count required before a party leaves the
	// waiting status.
	// Env: PARTY_MIN_MEMBERS
	MinMembers int `env:"MIN_MEMBERS"`

	// InitialBatch is the size of the initial restaurant delivery.
	// Env: PARTY_INITIAL_BATCH
	InitialBatch int `env:"INITIAL_BATCH"`

	// BatchSize is the size of each incremental request-more delivery.
	// Env: PARTY_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// DeckSize is the number of catalog candidates drawn per party.
	// Env: PARTY_DECK_SIZE
	DeckSize int `env:"DECK_SIZE"`

	// SweepInterval is how often idle parties are collected.
	// Env: PARTY_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`

	// IdleTTL is how long a party may sit without members before the
	// sweeper removes it.
	// Env: PARTY_IDLE_TTL
	IdleTTL time.Duration `env:"IDLE_TTL"`
}

// Storage holds catalog database settings.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the restaurant catalog database.
type DB struct {
	// DSN is the SQLite data source name, a file path or ":memory:".
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}
