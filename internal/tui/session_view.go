package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-party-swipe/internal/party"
	"github.com/MKhiriev/go-party-swipe/models"
)

func (m sessionModel) View() string {
	if m.connLost {
		return m.viewConnLost()
	}

	switch m.sess.Phase() {
	case party.PhaseError:
		return m.viewError()
	case party.PhaseConfirmQuit:
		return m.viewConfirmQuit()
	case party.PhaseMatched:
		return m.viewMatched()
	case party.PhaseExhausted:
		return m.viewExhausted()
	case party.PhaseWaiting:
		return m.viewWaiting()
	case party.PhaseLoading:
		return m.viewLoading()
	default:
		if m.detail {
			return m.viewDetail()
		}
		return m.viewSwipe()
	}
}

func (m sessionModel) viewLoading() string {
	data := m.spin.View() + " Загрузка вечеринки..."
	return renderPage("ВЕЧЕРИНКА "+m.partyCode(), data, "q: выйти")
}

func (m sessionModel) viewWaiting() string {
	p := m.sess.Party()

	var b strings.Builder
	b.WriteString(m.spin.View())
	b.WriteString(" Ждём остальных участников...\n\n")
	b.WriteString("Код приглашения: ")
	b.WriteString(titleStyle.Render(m.partyCode()))
	b.WriteString("\n\n")
	b.WriteString(renderMembers(p.Members))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}

	return renderPage("ВЕЧЕРИНКА "+m.partyCode(), strings.TrimRight(b.String(), "\n"), "c: скопировать код │ q: выйти")
}

func (m sessionModel) viewSwipe() string {
	card, ok := m.sess.CurrentCard()
	if !ok {
		return renderPage("ВЕЧЕРИНКА "+m.partyCode(), m.spin.View()+" Ждём следующую партию...", "q: выйти")
	}

	var b strings.Builder
	b.WriteString(renderCard(card))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Осталось карточек: %d\n", m.sess.Remaining()))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}

	return renderPage(
		"ВЕЧЕРИНКА "+m.partyCode(),
		strings.TrimRight(b.String(), "\n"),
		"→: нравится │ ←: дальше │ d: подробнее │ c: скопировать код │ q: выйти",
	)
}

func (m sessionModel) viewDetail() string {
	card, ok := m.sess.CurrentCard()
	if !ok {
		return m.viewSwipe()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(card.Name))
	b.WriteString("\n\n")
	b.WriteString("Рейтинг: " + formatRating(card.Rating) + "\n")
	b.WriteString("Цены:    " + valueOrDash(card.Price) + "\n")
	b.WriteString("Фото:    " + valueOrDash(card.ImageURL) + "\n\n")
	if card.Description != "" {
		b.WriteString(card.Description)
		b.WriteString("\n")
	}

	return renderPage("ПОДРОБНЕЕ", strings.TrimRight(b.String(), "\n"), "d / esc: назад к карточкам")
}

func (m sessionModel) viewMatched() string {
	p := m.sess.Party()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Есть совпадение!"))
	b.WriteString("\n\n")
	if p.Match != nil {
		b.WriteString(renderCard(*p.Match))
		b.WriteString("\n")
	}
	b.WriteString("Все участники выбрали этот ресторан.\n")

	return renderPage("ВЕЧЕРИНКА "+m.partyCode(), strings.TrimRight(b.String(), "\n"), "enter / q: завершить")
}

func (m sessionModel) viewExhausted() string {
	data := "Карточки закончились.\n\n" +
		"Можно пройти начальную подборку заново или выйти из вечеринки."
	return renderPage("ВЕЧЕРИНКА "+m.partyCode(), data, "s: начать заново │ q: выйти")
}

func (m sessionModel) viewConfirmQuit() string {
	content := "Покинуть вечеринку?\n\n"
	content += "y да    n нет"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m sessionModel) viewError() string {
	p := m.sess.Party()
	msg := p.Error
	if msg == "" {
		msg = "Вечеринка завершилась с ошибкой"
	}
	content := "Ошибка\n\n" + msg + "\n\nenter / esc закрыть"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func (m sessionModel) viewConnLost() string {
	content := "Ошибка\n\nСоединение с сервером потеряно\n\nenter / esc закрыть"
	return appStyle.Render(overlayBoxStyle.Render(content))
}

func renderCard(card models.Restaurant) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(card.Name))
	b.WriteString("\n")
	b.WriteString(formatRating(card.Rating))
	if card.Price != "" {
		b.WriteString("   ")
		b.WriteString(card.Price)
	}
	if card.Description != "" {
		b.WriteString("\n")
		b.WriteString(fitText(card.Description, 52))
	}
	return cardBoxStyle.Render(b.String())
}

func renderMembers(members []models.Member) string {
	if len(members) == 0 {
		return "Участники: -\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Участники (%d):\n", len(members)))
	for _, member := range members {
		b.WriteString("  • ")
		b.WriteString(member.Name)
		b.WriteString("\n")
	}
	return b.String()
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
