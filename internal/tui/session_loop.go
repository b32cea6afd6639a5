package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/internal/party"
	"github.com/MKhiriev/go-party-swipe/models"
)

// sessionModel drives one party session. All session mutations happen here,
// inside the Bubble Tea update loop: server snapshots arrive as
// [snapshotMsg], user actions as key events, and both funnel into the same
// single-threaded state machine.
type sessionModel struct {
	ctx       context.Context
	sess      *party.Session
	snapshots <-chan models.Party
	joined    models.JoinResponse
	log       *logger.Logger

	spin     spinner.Model
	detail   bool
	status   string
	connLost bool

	rejoin bool
}

func newSessionModel(ctx context.Context, sess *party.Session, snapshots <-chan models.Party, joined models.JoinResponse, log *logger.Logger) sessionModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return sessionModel{
		ctx:       ctx,
		sess:      sess,
		snapshots: snapshots,
		joined:    joined,
		log:       log,
		spin:      spin,
	}
}

func (m sessionModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitForSnapshot(m.snapshots))
}

// waitForSnapshot blocks on the transport channel and re-arms after every
// delivery, so pushes keep flowing into the update loop one at a time, in
// server order.
func waitForSnapshot(snapshots <-chan models.Party) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-snapshots
		return snapshotMsg{party: p, ok: ok}
	}
}

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		if !msg.ok {
			if m.sess.Closed() {
				return m, tea.Quit
			}
			m.connLost = true
			return m, nil
		}
		m.sess.ApplySnapshot(msg.party)
		return m, waitForSnapshot(m.snapshots)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case copiedMsg:
		m.status = "Код скопирован в буфер обмена"
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m sessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.sess.ConfirmQuit()
		return m, tea.Quit
	}

	if m.connLost {
		if key.Matches(msg, keys.enter, keys.esc) {
			m.rejoin = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.sess.Phase() {
	case party.PhaseConfirmQuit:
		switch {
		case key.Matches(msg, keys.yes):
			m.sess.ConfirmQuit()
			return m, tea.Quit
		case key.Matches(msg, keys.no, keys.esc):
			m.sess.CancelQuit()
		}

	case party.PhaseError:
		if key.Matches(msg, keys.enter, keys.esc) {
			m.sess.AcknowledgeError()
			m.rejoin = true
			return m, tea.Quit
		}

	case party.PhaseMatched:
		if key.Matches(msg, keys.enter, keys.quit, keys.esc) {
			m.sess.ConfirmQuit()
			return m, tea.Quit
		}

	case party.PhaseExhausted:
		switch {
		case key.Matches(msg, keys.again):
			m.detail = false
			m.sess.StartOver()
		case key.Matches(msg, keys.quit, keys.esc):
			m.sess.RequestQuit()
		}

	case party.PhaseActive:
		if m.detail {
			if key.Matches(msg, keys.detail, keys.esc) {
				m.detail = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.right):
			m.sess.SwipeRight()
		case key.Matches(msg, keys.left):
			m.sess.SwipeLeft()
		case key.Matches(msg, keys.detail):
			m.detail = true
		case key.Matches(msg, keys.copy):
			return m, m.cmdCopyCode()
		case key.Matches(msg, keys.quit, keys.esc):
			m.sess.RequestQuit()
		}

	case party.PhaseWaiting:
		switch {
		case key.Matches(msg, keys.copy):
			return m, m.cmdCopyCode()
		case key.Matches(msg, keys.quit, keys.esc):
			m.sess.RequestQuit()
		}

	case party.PhaseLoading:
		if key.Matches(msg, keys.quit, keys.esc) {
			m.sess.RequestQuit()
		}
	}

	return m, nil
}

func (m sessionModel) cmdCopyCode() tea.Cmd {
	code := m.partyCode()
	return func() tea.Msg {
		if err := clipboard.WriteAll(code); err != nil {
			m.log.Error().Err(err).Msg("clipboard write failed")
		}
		return copiedMsg{}
	}
}

// partyCode prefers the authoritative snapshot id; the handshake code is
// the fallback before the first push lands.
func (m sessionModel) partyCode() string {
	if p := m.sess.Party(); p.ID != "" {
		return p.ID
	}
	return m.joined.Code
}
