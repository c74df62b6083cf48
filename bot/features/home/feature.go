package home

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"betleague/api"
	"betleague/bot/common"
	"betleague/session"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature shows the dashboard: points, the next fixtures and active bets
type Feature struct {
	client   *api.Client
	sessions *session.Manager
}

// NewFeature creates a new home feature instance
func NewFeature(client *api.Client, sessions *session.Manager) *Feature {
	return &Feature{client: client, sessions: sessions}
}

// HandleCommand handles the /home command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Errorf("Error deferring home response: %v", err)
		return
	}

	ctx := context.Background()
	lastScreen := sess.LastScreen
	f.sessions.RememberScreen(ctx, discordID, common.ScreenHome)

	board := f.loadDashboard(ctx, sess.UserID, "")
	data := renderDashboard(sess.Username, lastScreen, board)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &data.Embeds,
		Components: &data.Components,
	}); err != nil {
		log.Errorf("Error editing home response: %v", err)
	}
}

// HandleInteraction handles the match day select under the dashboard
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if i.MessageComponentData().CustomID != "home_date" {
		return
	}

	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	date := common.SelectedValue(i)
	if date == "" {
		common.RespondWithError(s, i, "No match day selected")
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Errorf("Error deferring home date switch: %v", err)
		return
	}

	board := f.loadDashboard(context.Background(), sess.UserID, date)
	data := renderDashboard(sess.Username, common.ScreenHome, board)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &data.Embeds,
		Components: &data.Components,
	}); err != nil {
		log.Errorf("Error editing home message: %v", err)
	}
}

// dashboard collects the home regions. Each region fails independently; a
// nil error with a zero value means the region simply has no data.
type dashboard struct {
	Points    int64
	PointsErr error

	Dates    []string
	Date     string
	Games    []api.Game
	GamesErr error

	ActiveBets    []api.Bet
	ActiveBetsErr error

	Standings    []api.LeaderboardEntry
	StandingsErr error
}

// loadDashboard fetches all home regions in parallel. When date is empty the
// first upcoming match day is used.
func (f *Feature) loadDashboard(ctx context.Context, userID int64, date string) *dashboard {
	board := &dashboard{Date: date}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		board.Points, board.PointsErr = f.client.UserPoints(ctx, userID)
	}()

	go func() {
		defer wg.Done()
		dates, err := f.client.UpcomingDates(ctx)
		if err != nil {
			board.GamesErr = err
			return
		}
		board.Dates = dates
		if board.Date == "" && len(dates) > 0 {
			board.Date = dates[0]
		}
		if board.Date != "" {
			board.Games, board.GamesErr = f.client.UpcomingGamesByDate(ctx, board.Date)
		}
	}()

	go func() {
		defer wg.Done()
		bets, err := f.client.UpcomingBets(ctx, userID)
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return
		}
		board.ActiveBets, board.ActiveBetsErr = bets, err
	}()

	go func() {
		defer wg.Done()
		board.Standings, board.StandingsErr = f.client.Leaderboard(ctx)
	}()

	wg.Wait()
	return board
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
