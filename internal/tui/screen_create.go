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

// CreateModel is the Bubble Tea model for the create-party screen. It renders
// a single display-name input and dispatches an async create command on form
// submission. On success a [JoinDone] message is produced and handled by
// [RootModel] to finish the flow.
type CreateModel struct {
	ctx context.Context
	api adapter.PartyAPI

	nameInput  textinput.Model
	submitting bool
	errMsg     string
}

// NewCreateModel creates a [CreateModel] with a pre-configured name input.
func NewCreateModel(ctx context.Context, api adapter.PartyAPI) *CreateModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "ваше имя"
	nameInput.CharLimit = 20
	nameInput.Width = 40
	nameInput.Focus()

	return &CreateModel{
		ctx:       ctx,
		api:       api,
		nameInput: nameInput,
	}
}

func (m *CreateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "enter":
			if m.submitting {
				return m, nil
			}
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				m.errMsg = "Введите имя"
				return m, nil
			}
			m.submitting = true
			m.errMsg = ""
			return m, m.cmdCreate(name)
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *CreateModel) cmdCreate(name string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.api.CreateParty(m.ctx, name)
		return JoinDone{Resp: resp, Err: err}
	}
}

func (m *CreateModel) View() string {
	var b strings.Builder

	b.WriteString("Имя: ")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\nСоздание вечеринки...\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("НОВАЯ ВЕЧЕРИНКА", strings.TrimRight(b.String(), "\n"), "enter: создать │ esc: назад")
}
