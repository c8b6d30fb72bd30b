package discord

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/application"
	"eventbot/internal/config"
	"eventbot/internal/ports/output"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewBot creates a Bot and wires ports: output adapters -> application (use cases) -> handler.
// The notifier is session-backed, so it is built here and handed to the services.
func NewBot(cfg *config.Config, eventRepo output.EventRepository, registrationRepo output.RegistrationRepository, translator output.T) *Bot {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatal("❌ Failed to create the Discord session:", err)
	}

	notifier := NewNotifier(s)
	eventUC := application.NewEventService(eventRepo, registrationRepo, notifier, translator, cfg.DefaultLocale)
	registrationUC := application.NewRegistrationService(registrationRepo, eventRepo, notifier, translator, cfg.AdminIDs, cfg.DefaultLocale, cfg.OfferTimeout)

	handler := NewHandler(eventUC, registrationUC, translator, cfg.AdminIDs, cfg.DefaultLocale)

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: handler,
	}
	bot.setupHandlers()
	return bot
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		cmdData := i.ApplicationCommandData()
		switch cmdData.Name {
		case "register":
			b.handler.HandleRegister(s, i)
		case "cancel":
			b.handler.HandleCancel(s, i)
		case "status":
			b.handler.HandleStatus(s, i)
		case "event":
			b.handler.HandleEventCommand(s, i)
		}
	case discordgo.InteractionModalSubmit:
		modalData := i.ModalSubmitData()
		if strings.HasPrefix(modalData.CustomID, "register_modal_") {
			b.handler.HandleRegisterModalSubmit(s, i)
		}
	case discordgo.InteractionMessageComponent:
		componentData := i.MessageComponentData()
		customID := componentData.CustomID

		if strings.HasPrefix(customID, "offer_accept_") || strings.HasPrefix(customID, "offer_decline_") {
			b.handler.HandleOfferResponse(s, i)
			return
		}
		switch customID {
		case "select_register_event":
			b.handler.HandleRegisterEventSelect(s, i)
		case "select_cancel_event":
			b.handler.HandleCancelEventSelect(s, i)
		case "select_admin_open", "select_admin_close", "select_admin_list":
			b.handler.HandleAdminEventSelect(s, i)
		}
	}
}

// Start runs the bot until interrupted.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open the session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range applicationCommands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			log.Printf("⚠️ Failed to register command %s: %v", cmd.Name, err)
		}
	}

	if b.config.OfferTimeout > 0 {
		go b.handler.RunScheduledTasks(b.session)
	}

	fmt.Println("🤖 Bot online! Press CTRL+C to quit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return nil
}
