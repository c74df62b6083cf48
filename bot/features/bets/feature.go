package bets

import (
	"strings"

	"betleague/api"
	"betleague/bot/common"
	"betleague/fetch"
	"betleague/session"

	"github.com/bwmarrin/discordgo"
)

// Feature lets users place, raise and withdraw bets on upcoming fixtures
type Feature struct {
	client   *api.Client
	sessions *session.Manager
	guard    *fetch.Guard
}

// NewFeature creates a new bets feature instance
func NewFeature(client *api.Client, sessions *session.Manager) *Feature {
	return &Feature{
		client:   client,
		sessions: sessions,
		guard:    fetch.NewGuard(),
	}
}

// HandleCommand handles the /bets command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleOpen(s, i)
}

// HandleInteraction handles bet components and the stake modal
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		f.handleComponent(s, i)
	case discordgo.InteractionModalSubmit:
		f.handleModalSubmit(s, i)
	}
}

func (f *Feature) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	switch {
	case customID == "bets_date":
		f.handleDateSelect(s, i)
	case customID == "bets_pick":
		f.handlePickSelect(s, i)
	case strings.HasPrefix(customID, "bets_choice_"):
		f.handleChoiceButton(s, i)
	case strings.HasPrefix(customID, "bets_withdraw_"):
		f.handleWithdraw(s, i)
	default:
		common.RespondWithError(s, i, "Unknown bets action")
	}
}

func (f *Feature) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if strings.HasPrefix(i.ModalSubmitData().CustomID, "bets_amount_modal_") {
		f.handleStakeModal(s, i)
	}
}
