package discord

import (
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	eventUseCase        input.EventUseCase
	registrationUseCase input.RegistrationUseCase
	translator          output.T
	adminIDs            map[string]bool
	defaultLocale       string
}

// NewHandler creates a Handler.
func NewHandler(
	eventUseCase input.EventUseCase,
	registrationUseCase input.RegistrationUseCase,
	translator output.T,
	adminIDs []string,
	defaultLocale string,
) *Handler {
	admins := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &Handler{
		eventUseCase:        eventUseCase,
		registrationUseCase: registrationUseCase,
		translator:          translator,
		adminIDs:            admins,
		defaultLocale:       defaultLocale,
	}
}

func (h *Handler) isAdmin(userID string) bool {
	return h.adminIDs[userID]
}
