// Package adapter implements the HTTP side of the party API: creating a
// party and joining one by invite code. The ongoing session itself runs over
// the websocket transport; this adapter only covers the handshake calls.
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-party-swipe/models"
)

// PartyAPI is the handshake contract consumed by the client app.
type PartyAPI interface {
	// CreateParty opens a new party and joins the caller as its first member.
	CreateParty(ctx context.Context, name string) (models.JoinResponse, error)

	// JoinParty joins an existing party by invite code.
	JoinParty(ctx context.Context, code, name string) (models.JoinResponse, error)
}

// HTTPClientConfig carries the settings of the party API client.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpPartyAPI struct {
	client *resty.Client
}

// NewHTTPPartyAPI builds a PartyAPI talking to the server's REST endpoints.
func NewHTTPPartyAPI(cfg HTTPClientConfig) PartyAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpPartyAPI{client: cli}
}

func (h *httpPartyAPI) CreateParty(ctx context.Context, name string) (models.JoinResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.JoinRequest{Name: name}).
		Post("/api/party")
	if err != nil {
		return models.JoinResponse{}, fmt.Errorf("create party request: %w", err)
	}
	return decodeJoinResponse(resp)
}

func (h *httpPartyAPI) JoinParty(ctx context.Context, code, name string) (models.JoinResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.JoinRequest{Name: name}).
		Post("/api/party/" + strings.ToUpper(strings.TrimSpace(code)) + "/join")
	if err != nil {
		return models.JoinResponse{}, fmt.Errorf("join party request: %w", err)
	}
	return decodeJoinResponse(resp)
}

func decodeJoinResponse(resp *resty.Response) (models.JoinResponse, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.JoinResponse{}, err
	}

	var out models.JoinResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return models.JoinResponse{}, fmt.Errorf("decode join response: %w", err)
	}
	return out, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	detail := strings.TrimSpace(string(resp.Body()))
	var apiErr models.APIError
	if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Error != "" {
		detail = apiErr.Error
	}

	switch resp.StatusCode() {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrPartyNotFound, detail)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrPartyFull, detail)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, detail)
	default:
		if detail == "" {
			detail = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), detail)
	}
}
