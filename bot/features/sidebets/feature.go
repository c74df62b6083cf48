package sidebets

import (
	"context"
	"strconv"
	"strings"

	"betleague/api"
	"betleague/bot/common"
	"betleague/fetch"
	"betleague/session"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles the season-long side bets: champion, top scorer, top
// assister and the qualifier bracket
type Feature struct {
	client   *api.Client
	sessions *session.Manager
	guard    *fetch.Guard
}

// NewFeature creates a new side bets feature instance
func NewFeature(client *api.Client, sessions *session.Manager) *Feature {
	return &Feature{
		client:   client,
		sessions: sessions,
		guard:    fetch.NewGuard(),
	}
}

// HandleCommand handles the /side-bets command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleOpen(s, i)
}

// HandleInteraction handles side bet components
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID

	switch {
	case customID == "sidebet_open":
		f.handleOpenSideBet(s, i)
	case customID == "sidebet_back":
		f.handleBack(s, i)
	case strings.HasPrefix(customID, "sidebet_team_"):
		f.handleChampionPick(s, i)
	case strings.HasPrefix(customID, "sidebet_pteam_"):
		f.handleScorerTeamPick(s, i)
	case strings.HasPrefix(customID, "sidebet_player_"):
		f.handleScorerPlayerPick(s, i)
	case strings.HasPrefix(customID, "sidebet_clear_"):
		f.handleWithdraw(s, i)
	case strings.HasPrefix(customID, "qual_slot_"):
		f.handleQualifierSlot(s, i)
	case strings.HasPrefix(customID, "qual_team_"):
		f.handleQualifierTeam(s, i)
	case strings.HasPrefix(customID, "qual_submit_"):
		f.handleQualifierSubmit(s, i)
	case strings.HasPrefix(customID, "qual_reset_"):
		f.handleQualifierReset(s, i)
	default:
		common.RespondWithError(s, i, "Unknown side bet action")
	}
}

// trailingID parses the numeric ID after the last underscore
func trailingID(customID string) int64 {
	idx := strings.LastIndex(customID, "_")
	if idx < 0 {
		return 0
	}
	id, err := strconv.ParseInt(customID[idx+1:], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (f *Feature) resolve(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, *session.Session, bool) {
	discordID, err := strconv.ParseInt(common.InteractionUserID(i), 10, 64)
	if err != nil {
		log.Errorf("Failed to parse discord user ID: %v", err)
		return 0, nil, false
	}

	state, sess, err := f.sessions.Current(context.Background(), discordID)
	if err != nil || state != session.StateAuthenticated {
		common.RespondWithError(s, i, "You are not signed in. Use `/login` first.")
		return 0, nil, false
	}
	return discordID, sess, true
}
