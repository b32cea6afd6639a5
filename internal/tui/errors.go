// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-party-swipe/internal/adapter"
)

func humanizeJoinError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrPartyNotFound):
		return "Вечеринка с таким кодом не найдена"
	case errors.Is(err, adapter.ErrPartyFull):
		return "В этой вечеринке больше нет мест"
	case errors.Is(err, adapter.ErrBadRequest):
		return "Сервер отклонил запрос, проверьте введённые данные"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}
