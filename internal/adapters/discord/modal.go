package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	pkgdiscord "eventbot/pkg/discord"
)

const (
	placeholderNeuling = "Ja / Nein"
	placeholderPartner = "Name oder @Handle – leer lassen, wenn du allein kommst"
)

// openRegisterModal asks for the remaining registration fields: the Neuling
// flag and an optional companion name.
func (h *Handler) openRegisterModal(s *discordgo.Session, i *discordgo.InteractionCreate, event *entities.Event) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: fmt.Sprintf("register_modal_%d", event.ID),
			Title:    fmt.Sprintf("Anmeldung: %s", event.Name),
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "neuling", Label: "Bist du ein Neuling?", Style: discordgo.TextInputShort, Required: true, Placeholder: placeholderNeuling},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "partner", Label: "Begleitung", Style: discordgo.TextInputShort, Required: false, Placeholder: placeholderPartner},
				}},
			},
		},
	})
}

// HandleRegisterModalSubmit stores the registration.
func (h *Handler) HandleRegisterModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := h.interactionLocale(i)
	data := i.ModalSubmitData()

	eventID, err := strconv.ParseInt(strings.TrimPrefix(data.CustomID, "register_modal_"), 10, 64)
	if err != nil {
		return
	}
	user := interactionUser(i)
	if user == nil {
		return
	}

	neulingStr, partnerName := pkgdiscord.ExtractRegisterModalData(data)
	isNeuling := parseYes(neulingStr)
	partnerName = normalizeNoPartner(partnerName)

	registration, err := h.registrationUseCase.Register(ctx, eventID, user.ID, user.Username, resolveDisplayName(i), isNeuling, partnerName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyRegistered):
			respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.register.duplicate", nil))
		case errors.Is(err, domain.ErrEventClosed), errors.Is(err, domain.ErrEventNotFound):
			respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.register.closed", nil))
		default:
			respondEphemeral(s, i.Interaction, h.translator.T(locale, "reply.register.closed", nil))
		}
		return
	}

	eventName := fmt.Sprintf("#%d", eventID)
	if event, err := h.eventUseCase.GetEvent(ctx, eventID); err == nil {
		eventName = event.Name
	}
	key := "reply.register.success"
	replyData := map[string]any{"Event": eventName}
	if registration.HasPartner() {
		key = "reply.register.success_partner"
		replyData["Partner"] = registration.PartnerName
	}
	respondEphemeral(s, i.Interaction, h.translator.T(locale, key, replyData))
}

// parseYes accepts the usual German and English spellings.
func parseYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ja", "j", "yes", "y", "true", "1":
		return true
	}
	return false
}

// normalizeNoPartner maps the "I come alone" spellings to the empty string.
func normalizeNoPartner(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nein", "no", "none", "n/a", "-":
		return ""
	}
	return strings.TrimSpace(s)
}
