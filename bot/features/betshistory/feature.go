package betshistory

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"betleague/api"
	"betleague/bot/common"
	"betleague/session"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const betsPerPage = 8

// Feature shows the user's settled bets
type Feature struct {
	client   *api.Client
	sessions *session.Manager
}

// NewFeature creates a new bets history feature instance
func NewFeature(client *api.Client, sessions *session.Manager) *Feature {
	return &Feature{client: client, sessions: sessions}
}

// HandleCommand handles the /bets-history command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Errorf("Error deferring history response: %v", err)
		return
	}

	ctx := context.Background()
	f.sessions.RememberScreen(ctx, discordID, common.ScreenBetsHistory)

	history, err := f.loadHistory(ctx, sess.UserID)
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to load bet history"), true)
		return
	}

	data := renderPage(history, 0)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &data.Embeds,
		Components: &data.Components,
	}); err != nil {
		log.Errorf("Error editing history response: %v", err)
	}
}

// HandleInteraction handles the pagination buttons. The page number lives in
// the custom ID, so page flips carry no server-side state.
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, "bethist_page_") {
		return
	}

	page, err := strconv.Atoi(strings.TrimPrefix(customID, "bethist_page_"))
	if err != nil || page < 0 {
		common.RespondWithError(s, i, "Invalid page")
		return
	}

	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Errorf("Error deferring history page flip: %v", err)
		return
	}

	history, err := f.loadHistory(context.Background(), sess.UserID)
	if err != nil {
		common.FollowUpWithError(s, i, "Could not load your bet history. Please try again.")
		return
	}

	data := renderPage(history, page)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &data.Embeds,
		Components: &data.Components,
	}); err != nil {
		log.Errorf("Error editing history page: %v", err)
	}
}

// history is the settled bets joined against their fixtures
type history struct {
	Bets  []api.Bet
	Games map[int64]api.Game
}

// loadHistory fetches the settled bets and their fixtures. The two calls run
// in sequence because the fixture IDs come from the bets; a fixture the
// backend no longer knows simply stays absent from the map.
func (f *Feature) loadHistory(ctx context.Context, userID int64) (*history, error) {
	bets, err := f.client.HistoryBets(ctx, userID)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return &history{Games: map[int64]api.Game{}}, nil
		}
		return nil, err
	}

	h := &history{Bets: bets, Games: make(map[int64]api.Game)}
	if len(bets) == 0 {
		return h, nil
	}

	seen := make(map[int64]bool)
	var ids []int64
	for _, bet := range bets {
		if !seen[bet.GameID] {
			seen[bet.GameID] = true
			ids = append(ids, bet.GameID)
		}
	}

	games, err := f.client.GamesByIDs(ctx, ids)
	if err != nil {
		// Bets still render, their fixtures show as not found
		log.WithError(err).Warn("Failed to load fixtures for bet history")
		return h, nil
	}
	for _, game := range games {
		h.Games[game.ID] = game
	}

	return h, nil
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
