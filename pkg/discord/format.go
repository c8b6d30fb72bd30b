package discord

import (
	"fmt"
	"strings"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
)

// Discord caps message content at 2000 characters; leave headroom for the
// truncation marker.
const maxListLength = 1900

// FormatRegistrationList renders the admin overview of an event's
// registrations, one line per registrant with status icon and flags.
func FormatRegistrationList(event *entities.Event, registrations []entities.Registration) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 **%s** (%d Plätze):\n", event.Name, event.SeatLimit))
	for _, r := range registrations {
		line := formatRegistrationLine(&r)
		if b.Len()+len(line) > maxListLength {
			b.WriteString("…")
			break
		}
		b.WriteString(line)
	}
	return b.String()
}

func formatRegistrationLine(r *entities.Registration) string {
	var flags strings.Builder
	if r.HasPartner() {
		flags.WriteString(fmt.Sprintf(" (Begleitung: %s)", r.PartnerName))
	}
	if r.IsNeuling {
		flags.WriteString(" [Neuling]")
	}
	if r.IsAdmin {
		flags.WriteString(" [Admin]")
	}
	return fmt.Sprintf("%s %s (@%s)%s – %s\n", StatusIcon(r.Status), r.FullName, r.Username, flags.String(), r.Status)
}

// StatusIcon maps a registration status to its list icon.
func StatusIcon(status string) string {
	switch status {
	case domain.StatusAccepted:
		return "✅"
	case domain.StatusPending:
		return "⏳"
	case domain.StatusWaiting:
		return "📝"
	case domain.StatusOffered:
		return "🎫"
	case domain.StatusDeclined, domain.StatusCancelled:
		return "❌"
	default:
		return "•"
	}
}
