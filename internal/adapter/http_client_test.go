// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-party-swipe/models"
)

func TestHTTPPartyAPI_CreateParty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/party", r.URL.Path)

		var req models.JoinRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Name)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.JoinResponse{Code: "AB12", MemberID: "m-1"})
	}))
	defer srv.Close()

	api := NewHTTPPartyAPI(HTTPClientConfig{BaseURL: srv.URL})
	resp, err := api.CreateParty(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "AB12", resp.Code)
	assert.Equal(t, "m-1", resp.MemberID)
}

func TestHTTPPartyAPI_JoinParty_NormalizesCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/party/AB12/join", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.JoinResponse{Code: "AB12", MemberID: "m-2"})
	}))
	defer srv.Close()

	api := NewHTTPPartyAPI(HTTPClientConfig{BaseURL: srv.URL})
	resp, err := api.JoinParty(context.Background(), "  ab12 ", "bob")

	require.NoError(t, err)
	assert.Equal(t, "m-2", resp.MemberID)
}

func TestHTTPPartyAPI_JoinParty_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(models.APIError{Error: "no such party"})
	}))
	defer srv.Close()

	api := NewHTTPPartyAPI(HTTPClientConfig{BaseURL: srv.URL})
	_, err := api.JoinParty(context.Background(), "ZZZZ", "bob")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartyNotFound)
	assert.Contains(t, err.Error(), "no such party")
}

func TestHTTPPartyAPI_JoinParty_Full(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	api := NewHTTPPartyAPI(HTTPClientConfig{BaseURL: srv.URL})
	_, err := api.JoinParty(context.Background(), "AB12", "carol")

	assert.ErrorIs(t, err, ErrPartyFull)
}

func TestHTTPPartyAPI_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	api := NewHTTPPartyAPI(HTTPClientConfig{BaseURL: srv.URL})
	_, err := api.CreateParty(context.Background(), "dave")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "418")
}
