package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-party-swipe/internal/adapter"
	"github.com/MKhiriev/go-party-swipe/internal/config"
	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/internal/party"
	"github.com/MKhiriev/go-party-swipe/internal/transport"
	"github.com/MKhiriev/go-party-swipe/internal/tui"
	"github.com/MKhiriev/go-party-swipe/models"
)

type App struct {
	cfg *config.ClientConfig
	api adapter.PartyAPI
	ui  *tui.TUI
	log *logger.Logger
}

func NewApp(cfg *config.ClientConfig, api adapter.PartyAPI, ui *tui.TUI, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("client config is nil")
	}
	return &App{cfg: cfg, api: api, ui: ui, log: log}, nil
}

// Run drives the whole client lifecycle. Each loop iteration is one party:
// handshake, session, teardown. A session ending with an acknowledged fault
// returns the user to the join flow; a voluntary quit ends the program.
func (a *App) Run() error {
	ctx := context.Background()

	// a pre-configured name and invite code skip the join screens once
	direct := a.cfg.Name != "" && a.cfg.JoinCode != ""

	for {
		joined, err := a.handshake(ctx, direct)
		direct = false
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		rejoin, err := a.runSession(ctx, joined)
		if err != nil {
			return err
		}
		if !rejoin {
			return nil
		}
	}
}

func (a *App) handshake(ctx context.Context, direct bool) (models.JoinResponse, error) {
	if direct {
		joined, err := a.api.JoinParty(ctx, a.cfg.JoinCode, a.cfg.Name)
		if err == nil {
			return joined, nil
		}
		// fall back to the interactive flow so the user sees the problem
		a.log.Error().Err(err).Str("code", a.cfg.JoinCode).Msg("configured join failed")
	}

	return a.ui.JoinFlow(ctx)
}

func (a *App) runSession(ctx context.Context, joined models.JoinResponse) (bool, error) {
	wsURL, err := sessionSocketURL(a.cfg.API.BaseURL, joined)
	if err != nil {
		return false, err
	}

	conn := transport.Dial(ctx, wsURL, a.log)
	defer conn.Close()

	sess := party.NewSession(conn, a.log)

	rejoin, err := a.ui.SessionLoop(ctx, sess, conn.Snapshots(), joined)
	if err != nil {
		return false, fmt.Errorf("session loop: %w", err)
	}
	return rejoin, nil
}

// sessionSocketURL derives the websocket endpoint from the HTTP base URL of
// the party API.
func sessionSocketURL(baseURL string, joined models.JoinResponse) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	u.Path = "/ws/" + joined.Code
	u.RawQuery = url.Values{"member_id": {joined.MemberID}}.Encode()

	return u.String(), nil
}
