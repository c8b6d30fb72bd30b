package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/ports/output"
)

var _ output.Notifier = (*Notifier)(nil)

// Notifier delivers application notifications as Discord DMs.
// Delivery failures are logged per recipient and swallowed so a blocked DM
// never aborts an allocation or promotion batch.
type Notifier struct {
	session *discordgo.Session
}

func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

func (n *Notifier) Notify(userID, content string) {
	ch, err := n.session.UserChannelCreate(userID)
	if err != nil || ch == nil {
		log.Printf("❌ Failed to open DM channel (user=%s): %v", userID, err)
		return
	}
	if _, err := n.session.ChannelMessageSend(ch.ID, content); err != nil {
		log.Printf("❌ Failed to send DM (user=%s): %v", userID, err)
	}
}

// NotifyOffer sends the offer DM with accept/decline buttons. The event ID
// travels in the button custom IDs so the response can be routed without
// conversational state.
func (n *Notifier) NotifyOffer(userID string, eventID int64, content string) {
	ch, err := n.session.UserChannelCreate(userID)
	if err != nil || ch == nil {
		log.Printf("❌ Failed to open DM channel (user=%s): %v", userID, err)
		return
	}
	_, err = n.session.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Content: content,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Annehmen", Style: discordgo.SuccessButton, CustomID: fmt.Sprintf("offer_accept_%d", eventID)},
				discordgo.Button{Label: "Ablehnen", Style: discordgo.DangerButton, CustomID: fmt.Sprintf("offer_decline_%d", eventID)},
			}},
		},
	})
	if err != nil {
		log.Printf("❌ Failed to send offer DM (user=%s): %v", userID, err)
	}
}
