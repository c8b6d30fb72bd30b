package discord

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain"
)

// HandleOfferResponse resolves the accept/decline buttons attached to a seat
// offer DM. Responding to a stale offer gets a "no longer valid" reply, other
// errors stay silent like the rest of the component handlers.
func (h *Handler) HandleOfferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := h.interactionLocale(i)
	user := interactionUser(i)
	if user == nil {
		return
	}

	customID := i.MessageComponentData().CustomID
	accept := strings.HasPrefix(customID, "offer_accept_")
	idStr := strings.TrimPrefix(strings.TrimPrefix(customID, "offer_accept_"), "offer_decline_")
	eventID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return
	}

	if err := h.registrationUseCase.RespondToOffer(ctx, eventID, user.ID, accept); err != nil {
		if errors.Is(err, domain.ErrOfferNotValid) {
			updateResponse(s, i.Interaction, h.translator.T(locale, "reply.offer.invalid", nil))
		}
		return
	}

	key := "reply.offer.declined"
	if accept {
		key = "reply.offer.accepted"
	}
	updateResponse(s, i.Interaction, h.translator.T(locale, key, nil))
}
