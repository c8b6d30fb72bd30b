package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	pkgdiscord "eventbot/pkg/discord"
)

func applicationCommands() []*discordgo.ApplicationCommand {
	minSeats := float64(1)
	return []*discordgo.ApplicationCommand{
		{Name: "register", Description: "Für ein Event anmelden"},
		{Name: "cancel", Description: "Anmeldung stornieren"},
		{Name: "status", Description: "Status deiner Anmeldungen anzeigen"},
		{
			Name:        "event",
			Description: "Events verwalten (nur Admins)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Neues Event anlegen",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Name des Events", Required: true},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "seats", Description: "Platzanzahl (Standard 35)", MinValue: &minSeats},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "open", Description: "Anmeldung öffnen"},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "close", Description: "Anmeldung schließen und Plätze vergeben"},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "Anmeldungen eines Events anzeigen"},
			},
		},
	}
}

// HandleRegister starts the registration flow: with a single open event the
// modal opens right away, otherwise the user picks the event first.
func (h *Handler) HandleRegister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := h.interactionLocale(i)

	openEvents, err := h.eventUseCase.ListEventsByOpen(ctx, true)
	if err != nil || len(openEvents) == 0 {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.register.no_open_events", nil))
		return
	}
	if len(openEvents) == 1 {
		h.openRegisterModal(s, i, &openEvents[0])
		return
	}
	h.respondEventPicker(s, i, "select_register_event", openEvents)
}

// HandleStatus lists the user's registrations with their event names.
func (h *Handler) HandleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := h.interactionLocale(i)
	user := interactionUser(i)
	if user == nil {
		return
	}

	registrations, err := h.registrationUseCase.UserRegistrations(ctx, user.ID)
	if err != nil || len(registrations) == 0 {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.status.none", nil))
		return
	}

	var b strings.Builder
	b.WriteString(h.translator.T(locale, "reply.status.header", nil))
	for _, r := range registrations {
		name := fmt.Sprintf("#%d", r.EventID)
		if event, err := h.eventUseCase.GetEvent(ctx, r.EventID); err == nil {
			name = event.Name
		}
		b.WriteString(fmt.Sprintf("\n%s %s: %s", pkgdiscord.StatusIcon(r.Status), name, r.Status))
	}
	respondEphemeral(s, i.Interaction, b.String())
}

// HandleCancel cancels the user's only active registration directly, or
// offers a picker when there are several.
func (h *Handler) HandleCancel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := h.interactionLocale(i)
	user := interactionUser(i)
	if user == nil {
		return
	}

	registrations, err := h.registrationUseCase.UserRegistrations(ctx, user.ID)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.cancel.none", nil))
		return
	}
	active := make([]entities.Registration, 0, len(registrations))
	for _, r := range registrations {
		if r.Status != domain.StatusCancelled && r.Status != domain.StatusDeclined {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.cancel.none", nil))
		return
	}
	if len(active) == 1 {
		h.cancelRegistration(ctx, s, i, active[0].EventID, false)
		return
	}

	options := make([]discordgo.SelectMenuOption, 0, len(active))
	for _, r := range active {
		label := fmt.Sprintf("#%d", r.EventID)
		if event, err := h.eventUseCase.GetEvent(ctx, r.EventID); err == nil {
			label = event.Name
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       label,
			Value:       fmt.Sprintf("%d", r.EventID),
			Description: r.Status,
		})
	}
	respondEphemeralComponents(s, i.Interaction, "Welche Anmeldung möchtest du stornieren?", []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{CustomID: "select_cancel_event", Placeholder: "Event auswählen", Options: options},
		}},
	})
}

func (h *Handler) cancelRegistration(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, eventID int64, fromPicker bool) {
	locale := h.interactionLocale(i)
	user := interactionUser(i)

	respond := respondEphemeral
	if fromPicker {
		respond = updateResponse
	}

	outcome, err := h.registrationUseCase.Cancel(ctx, eventID, user.ID)
	if err != nil {
		respond(s, i.Interaction, h.translator.T(locale, "reply.cancel.not_found", nil))
		return
	}
	if outcome.AlreadyCancelled {
		respond(s, i.Interaction, h.translator.T(locale, "reply.cancel.already", nil))
		return
	}
	respond(s, i.Interaction, h.translator.T(locale, "reply.cancel.done", nil))
}
