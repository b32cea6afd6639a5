// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-party-swipe/internal/adapter"
)

// JoinModel is the Bubble Tea model for the join-by-code screen: an invite
// code input plus a display-name input.
type JoinModel struct {
	ctx context.Context
	api adapter.PartyAPI

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// NewJoinModel creates a [JoinModel] with pre-configured code and name
// inputs. The code field receives focus immediately.
func NewJoinModel(ctx context.Context, api adapter.PartyAPI) *JoinModel {
	codeInput := textinput.New()
	codeInput.Placeholder = "код приглашения"
	codeInput.CharLimit = 6
	codeInput.Width = 40
	codeInput.Focus()

	nameInput := textinput.New()
	nameInput.Placeholder = "ваше имя"
	nameInput.CharLimit = 20
	nameInput.Width = 40

	return &JoinModel{
		ctx:    ctx,
		api:    api,
		inputs: []textinput.Model{codeInput, nameInput},
	}
}

func (m *JoinModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *JoinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(JoinDone); ok {
		m.submitting = false
		if done.Err != nil {
			m.errMsg = humanizeJoinError(done.Err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "enter":
			if m.submitting {
				return m, nil
			}
			code := strings.ToUpper(strings.TrimSpace(m.inputs[0].Value()))
			name := strings.TrimSpace(m.inputs[1].Value())
			if code == "" {
				m.errMsg = "Введите код приглашения"
				return m, nil
			}
			if name == "" {
				m.errMsg = "Введите имя"
				return m, nil
			}
			m.submitting = true
			m.errMsg = ""
			return m, m.cmdJoin(code, name)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *JoinModel) setFocus(next int) tea.Cmd {
	if next < 0 {
		next = len(m.inputs) - 1
	}
	if next >= len(m.inputs) {
		next = 0
	}

	m.inputs[m.focus].Blur()
	m.focus = next
	return m.inputs[m.focus].Focus()
}

func (m *JoinModel) cmdJoin(code, name string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.api.JoinParty(m.ctx, code, name)
		return JoinDone{Resp: resp, Err: err}
	}
}

func (m *JoinModel) View() string {
	var b strings.Builder

	b.WriteString("Код: ")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n")
	b.WriteString("Имя: ")
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\nПодключение к вечеринке...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("ПРИСОЕДИНИТЬСЯ", strings.TrimRight(b.String(), "\n"), "enter: войти │ tab: следующее поле │ esc: назад")
}
