package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// RunScheduledTasks runs the periodic offer-expiry pass. It is only started
// when an offer timeout is configured; without one, offers stay open until
// the offeree responds.
func (h *Handler) RunScheduledTasks(s *discordgo.Session) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		ctx := context.Background()
		expired, err := h.registrationUseCase.ExpireOffers(ctx, time.Now())
		if err != nil {
			log.Printf("❌ Offer expiry pass: %v", err)
			continue
		}
		if expired > 0 {
			log.Printf("⏱️ Expired %d stale offer(s)", expired)
		}
	}
}
