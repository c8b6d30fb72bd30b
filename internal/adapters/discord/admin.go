package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain"
)

// defaultSeatLimit mirrors the historical default of the registration sheet.
const defaultSeatLimit = 35

// HandleEventCommand routes the admin /event subcommands.
func (h *Handler) HandleEventCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := h.interactionLocale(i)
	user := interactionUser(i)
	if user == nil || !h.isAdmin(user.ID) {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.admin.only", nil))
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}
	sub := options[0]

	switch sub.Name {
	case "create":
		h.handleEventCreate(ctx, s, i, sub)
	case "open":
		// Only closed events can be opened.
		events, err := h.eventUseCase.ListEventsByOpen(ctx, false)
		if err != nil || len(events) == 0 {
			respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.event.none", nil))
			return
		}
		h.respondEventPicker(s, i, "select_admin_open", events)
	case "close":
		events, err := h.eventUseCase.ListEventsByOpen(ctx, true)
		if err != nil || len(events) == 0 {
			respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.event.none", nil))
			return
		}
		h.respondEventPicker(s, i, "select_admin_close", events)
	case "list":
		events, err := h.eventUseCase.ListEvents(ctx)
		if err != nil || len(events) == 0 {
			respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.event.none", nil))
			return
		}
		h.respondEventPicker(s, i, "select_admin_list", events)
	}
}

func (h *Handler) handleEventCreate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	locale := h.interactionLocale(i)

	name := ""
	seats := defaultSeatLimit
	for _, opt := range sub.Options {
		switch opt.Name {
		case "name":
			name = opt.StringValue()
		case "seats":
			seats = int(opt.IntValue())
		}
	}

	event, err := h.eventUseCase.CreateEvent(ctx, name, seats)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSeatLimit) {
			respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.event.invalid_limit", nil))
			return
		}
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.event.not_found", nil))
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.event.created", map[string]any{
		"Event": event.Name,
		"ID":    event.ID,
		"Seats": event.SeatLimit,
	}))
}
