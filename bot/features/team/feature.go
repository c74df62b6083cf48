package team

import (
	"context"
	"strconv"
	"sync"

	"betleague/api"
	"betleague/bot/common"
	"betleague/session"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature shows the tournament standings and per-team details
type Feature struct {
	client   *api.Client
	sessions *session.Manager
}

// NewFeature creates a new team feature instance
func NewFeature(client *api.Client, sessions *session.Manager) *Feature {
	return &Feature{client: client, sessions: sessions}
}

// HandleCommand handles the /team command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, _, ok := f.resolve(s, i)
	if !ok {
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Errorf("Error deferring team response: %v", err)
		return
	}

	ctx := context.Background()
	f.sessions.RememberScreen(ctx, discordID, common.ScreenTeam)

	f.showStandings(s, i)
}

// HandleInteraction handles the team picker and back button
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID

	switch {
	case customID == "team_open":
		f.handleOpenTeam(s, i)
	case customID == "team_back":
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		}); err != nil {
			log.Errorf("Error deferring standings: %v", err)
			return
		}
		f.showStandings(s, i)
	default:
		common.RespondWithError(s, i, "Unknown team action")
	}
}

// showStandings loads the table and renders it into the deferred response
func (f *Feature) showStandings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	teams, err := f.client.SortedTeams(context.Background())
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to load standings"), true)
		return
	}

	data := renderStandings(teams)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &data.Embeds,
		Components: &data.Components,
	}); err != nil {
		log.Errorf("Error editing standings message: %v", err)
	}
}

// handleOpenTeam loads one team's squad and recent fixtures
func (f *Feature) handleOpenTeam(s *discordgo.Session, i *discordgo.InteractionCreate) {
	teamID, err := strconv.ParseInt(common.SelectedValue(i), 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "No team selected")
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Errorf("Error deferring team detail: %v", err)
		return
	}

	ctx := context.Background()

	var wg sync.WaitGroup
	var team *api.Team
	var players []api.Player
	var games []api.Game
	var teamErr, playersErr, gamesErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		team, teamErr = f.client.TeamByID(ctx, teamID)
	}()
	go func() {
		defer wg.Done()
		players, playersErr = f.client.TeamPlayers(ctx, teamID)
	}()
	go func() {
		defer wg.Done()
		games, gamesErr = f.client.TeamGamesHistory(ctx, teamID)
	}()
	wg.Wait()

	if teamErr != nil {
		common.HandleError(s, i, common.NewBackendError(teamErr, "failed to load team"), true)
		return
	}
	if playersErr != nil {
		log.WithError(playersErr).Warn("Failed to load squad")
	}
	if gamesErr != nil {
		log.WithError(gamesErr).Warn("Failed to load team history")
	}

	data := renderTeam(team, players, games, playersErr, gamesErr)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &data.Embeds,
		Components: &data.Components,
	}); err != nil {
		log.Errorf("Error editing team message: %v", err)
	}
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
