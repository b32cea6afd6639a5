// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_ClientFields(t *testing.T) {
	t.Setenv("CLIENT_SERVER_URL", "http://example.test:9090")
	t.Setenv("CLIENT_NAME", "alice")
	t.Setenv("CLIENT_JOIN_CODE", "AB12")
	t.Setenv("CLIENT_REQUEST_TIMEOUT", "20s")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "http://example.test:9090", cfg.Client.ServerURL)
	assert.Equal(t, "alice", cfg.Client.Name)
	assert.Equal(t, "AB12", cfg.Client.JoinCode)
	assert.Equal(t, 20*time.Second, cfg.Client.RequestTimeout)
}

func TestParseEnv_ServerAndPartyFields(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:8081")
	t.Setenv("PARTY_MIN_MEMBERS", "3")
	t.Setenv("PARTY_BATCH_SIZE", "7")
	t.Setenv("PARTY_SWEEP_INTERVAL", "2m")
	t.Setenv("STORAGE_DB_DATABASE_URI", "catalog.db")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "0.0.0.0:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 3, cfg.Party.MinMembers)
	assert.Equal(t, 7, cfg.Party.BatchSize)
	assert.Equal(t, 2*time.Minute, cfg.Party.SweepInterval)
	assert.Equal(t, "catalog.db", cfg.Storage.DB.DSN)
}

func TestParseEnv_JSONFilePath(t *testing.T) {
	t.Setenv("CONFIG", "/tmp/party.json")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/tmp/party.json", cfg.JSONFilePath)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("SERVER_REQUEST_TIMEOUT", "not-a-duration")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}
