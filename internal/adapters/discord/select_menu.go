package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain/entities"
	pkgdiscord "eventbot/pkg/discord"
)

// respondEventPicker answers the interaction with a select menu over events.
func (h *Handler) respondEventPicker(s *discordgo.Session, i *discordgo.InteractionCreate, customID string, events []entities.Event) {
	options := make([]discordgo.SelectMenuOption, 0, len(events))
	for _, e := range events {
		options = append(options, discordgo.SelectMenuOption{
			Label:       e.Name,
			Value:       strconv.FormatInt(e.ID, 10),
			Description: fmt.Sprintf("%d Plätze", e.SeatLimit),
		})
	}
	respondEphemeralComponents(s, i.Interaction, "Event auswählen:", []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{CustomID: customID, Placeholder: "Event auswählen", Options: options},
		}},
	})
}

func selectedEventID(i *discordgo.InteractionCreate) (int64, bool) {
	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(data.Values[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// HandleRegisterEventSelect opens the registration modal for the picked event.
func (h *Handler) HandleRegisterEventSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := h.interactionLocale(i)

	eventID, ok := selectedEventID(i)
	if !ok {
		return
	}
	event, err := h.eventUseCase.GetEvent(ctx, eventID)
	if err != nil || !event.IsOpen {
		updateResponse(s, i.Interaction, h.translator.T(locale, "reply.register.closed", nil))
		return
	}
	h.openRegisterModal(s, i, event)
}

// HandleCancelEventSelect cancels the registration for the picked event.
func (h *Handler) HandleCancelEventSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	eventID, ok := selectedEventID(i)
	if !ok {
		return
	}
	h.cancelRegistration(context.Background(), s, i, eventID, true)
}

// HandleAdminEventSelect resolves the admin open/close/list pickers.
func (h *Handler) HandleAdminEventSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := h.interactionLocale(i)
	user := interactionUser(i)
	if user == nil || !h.isAdmin(user.ID) {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.admin.only", nil))
		return
	}
	eventID, ok := selectedEventID(i)
	if !ok {
		return
	}

	switch i.MessageComponentData().CustomID {
	case "select_admin_open":
		event, err := h.eventUseCase.OpenEvent(ctx, eventID)
		if err != nil {
			updateResponse(s, i.Interaction, h.translator.T(locale, "reply.event.not_found", nil))
			return
		}
		updateResponse(s, i.Interaction, h.translator.T(locale, "reply.event.opened", map[string]any{"Event": event.Name}))

	case "select_admin_close":
		event, err := h.eventUseCase.GetEvent(ctx, eventID)
		if err != nil {
			updateResponse(s, i.Interaction, h.translator.T(locale, "reply.event.not_found", nil))
			return
		}
		summary, err := h.eventUseCase.CloseEvent(ctx, eventID)
		if err != nil {
			updateResponse(s, i.Interaction, h.translator.T(locale, "reply.event.not_found", nil))
			return
		}
		updateResponse(s, i.Interaction, h.translator.T(locale, "reply.event.closed", map[string]any{
			"Event":    event.Name,
			"Seats":    summary.SeatsTaken,
			"Accepted": summary.Accepted,
			"Waiting":  summary.Waiting,
		}))

	case "select_admin_list":
		h.respondRegistrationList(ctx, s, i, eventID)
	}
}

func (h *Handler) respondRegistrationList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, eventID int64) {
	locale := h.interactionLocale(i)
	event, err := h.eventUseCase.GetEvent(ctx, eventID)
	if err != nil {
		updateResponse(s, i.Interaction, h.translator.T(locale, "reply.event.not_found", nil))
		return
	}
	registrations, err := h.eventUseCase.ListRegistrations(ctx, eventID)
	if err != nil || len(registrations) == 0 {
		updateResponse(s, i.Interaction, fmt.Sprintf("📋 %s: –", event.Name))
		return
	}
	updateResponse(s, i.Interaction, pkgdiscord.FormatRegistrationList(event, registrations))
}
