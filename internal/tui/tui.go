package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-party-swipe/internal/adapter"
	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/internal/party"
	"github.com/MKhiriev/go-party-swipe/models"
)

var ErrUserQuit = errors.New("вышел из программы")

type TUI struct {
	api adapter.PartyAPI
	log *logger.Logger
}

func New(api adapter.PartyAPI, log *logger.Logger) (*TUI, error) {
	return &TUI{api: api, log: log}, nil
}

// JoinFlow runs the create-or-join screens and returns the party handshake
// result: the invite code and the member id to open the socket with.
func (t *TUI) JoinFlow(ctx context.Context) (models.JoinResponse, error) {
	pages := map[string]tea.Model{
		"menu":   NewMenuModel(),
		"create": NewCreateModel(ctx, t.api),
		"join":   NewJoinModel(ctx, t.api),
	}

	root := NewRootModel(pages, "menu")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return models.JoinResponse{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.JoinResponse{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.JoinResponse{}, ErrUserQuit
	}

	return result.result, nil
}

// SessionLoop runs the swiping screens until the party ends. It reports
// whether the user should be returned to the join flow (party-level fault
// acknowledged) or the program should exit.
func (t *TUI) SessionLoop(ctx context.Context, sess *party.Session, snapshots <-chan models.Party, joined models.JoinResponse) (rejoin bool, err error) {
	model := newSessionModel(ctx, sess, snapshots, joined, t.log)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(sessionModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.rejoin, nil
}
