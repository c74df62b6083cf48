package bets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"betleague/api"
	"betleague/bot/common"
	"betleague/fetch"
	"betleague/session"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleOpen answers /bets with the first open match day
func (f *Feature) handleOpen(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Errorf("Error deferring bets response: %v", err)
		return
	}

	ctx := context.Background()

	dates, err := f.client.UpcomingDates(ctx)
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to load match days"), true)
		return
	}
	if len(dates) == 0 {
		content := "There are no upcoming fixtures to bet on right now."
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
			log.Errorf("Error editing bets response: %v", err)
		}
		return
	}

	state := &viewState{UserID: sess.UserID, Dates: dates, Day: fetch.NewResource[*DayState]()}
	if _, err := state.Day.Load(ctx, func(ctx context.Context) (*DayState, error) {
		return f.loadDay(ctx, sess.UserID, dates[0])
	}); err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to load match day"), true)
		return
	}
	putViewState(discordID, state)

	f.sessions.RememberScreen(ctx, discordID, common.ScreenBets)
	f.renderEdit(s, i, state)
}

// handleDateSelect switches the message to another match day
func (f *Feature) handleDateSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, _, ok := f.resolve(s, i)
	if !ok {
		return
	}

	state := getViewState(discordID)
	if state == nil {
		common.RespondWithError(s, i, "This view has expired. Run `/bets` again.")
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
		log.Errorf("Error deferring date switch: %v", err)
		return
	}

	_, err := state.Day.Load(context.Background(), func(ctx context.Context) (*DayState, error) {
		return f.loadDay(ctx, state.UserID, date)
	})
	if errors.Is(err, fetch.ErrStale) {
		// The user already switched somewhere else; that load renders
		return
	}
	if err != nil {
		common.FollowUpWithError(s, i, "Could not load that match day. Please try again.")
		return
	}

	state.SelectedGame = 0
	putViewState(discordID, state)

	f.renderEdit(s, i, state)
}

// handlePickSelect highlights one fixture and offers its outcome buttons
func (f *Feature) handlePickSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, _, ok := f.resolve(s, i)
	if !ok {
		return
	}

	state := getViewState(discordID)
	if state == nil || state.day() == nil {
		common.RespondWithError(s, i, "This view has expired. Run `/bets` again.")
		return
	}

	gameID, err := strconv.ParseInt(common.SelectedValue(i), 10, 64)
	if err != nil || state.day().GameByID(gameID) == nil {
		common.RespondWithError(s, i, "That fixture is no longer available")
		return
	}

	state.SelectedGame = gameID
	putViewState(discordID, state)

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: f.renderData(state),
	}); err != nil {
		log.Errorf("Error updating bets message: %v", err)
	}
}

// handleChoiceButton opens the stake modal for the chosen outcome
func (f *Feature) handleChoiceButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, _, ok := f.resolve(s, i)
	if !ok {
		return
	}

	state := getViewState(discordID)
	if state == nil || state.day() == nil {
		common.RespondWithError(s, i, "This view has expired. Run `/bets` again.")
		return
	}
	day := state.day()

	// bets_choice_<gameID>_<choice>
	parts := strings.Split(i.MessageComponentData().CustomID, "_")
	if len(parts) != 4 {
		common.RespondWithError(s, i, "Invalid interaction data")
		return
	}
	gameID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid fixture")
		return
	}
	choice := parts[3]

	game := day.GameByID(gameID)
	if game == nil {
		common.RespondWithError(s, i, "That fixture is no longer available")
		return
	}

	maxStake := day.MaxStake(gameID)
	if maxStake < common.MinBetAmount {
		common.RespondWithError(s, i, "Your budget for this match day is used up")
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: buildStakeModal(game, choice, maxStake),
	}); err != nil {
		log.Errorf("Error showing stake modal: %v", err)
	}
}

// handleStakeModal places or raises the bet with the entered amount
func (f *Feature) handleStakeModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	state := getViewState(discordID)
	if state == nil || state.day() == nil {
		common.RespondWithError(s, i, "This view has expired. Run `/bets` again.")
		return
	}
	day := state.day()

	// bets_amount_modal_<gameID>_<choice>
	parts := strings.Split(i.ModalSubmitData().CustomID, "_")
	if len(parts) != 5 {
		common.RespondWithError(s, i, "Invalid modal configuration")
		return
	}
	gameID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid fixture")
		return
	}
	choice := parts[4]

	amount, err := strconv.ParseInt(strings.TrimSpace(common.ModalTextValue(i, "amount")), 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Please enter a whole number amount")
		return
	}
	if amount < common.MinBetAmount {
		common.RespondWithError(s, i, fmt.Sprintf("The minimum stake is %d", common.MinBetAmount))
		return
	}
	if max := day.MaxStake(gameID); amount > max {
		common.RespondWithError(s, i, fmt.Sprintf("You can put at most %d on this fixture", max))
		return
	}

	guardKey := fmt.Sprintf("bet:%d:%d", discordID, gameID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "Your previous bet on this fixture is still processing")
		return
	}
	defer f.guard.Release(guardKey)

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Errorf("Error deferring stake submit: %v", err)
		return
	}

	ctx := context.Background()
	req := api.BetRequest{
		UserID:    sess.UserID,
		GameID:    gameID,
		BetChoice: choice,
		BetAmount: amount,
	}

	var res *api.BetResult
	if existing := day.BetForGame(gameID); existing != nil {
		res, err = f.client.UpdateBet(ctx, existing.ID, req)
	} else {
		res, err = f.client.PlaceBet(ctx, req)
	}
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "bet mutation failed"), true)
		return
	}

	state.Day.Update(func(d *DayState) *DayState {
		d.ApplyResult(res)
		return d
	})
	putViewState(discordID, state)
	f.renderEdit(s, i, state)
}

// handleWithdraw deletes the bet and refetches the budget once
func (f *Feature) handleWithdraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	state := getViewState(discordID)
	if state == nil || state.day() == nil {
		common.RespondWithError(s, i, "This view has expired. Run `/bets` again.")
		return
	}
	day := state.day()

	// bets_withdraw_<betID>
	parts := strings.Split(i.MessageComponentData().CustomID, "_")
	if len(parts) != 3 {
		common.RespondWithError(s, i, "Invalid interaction data")
		return
	}
	betID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Invalid bet")
		return
	}

	guardKey := fmt.Sprintf("delbet:%d", betID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "This withdrawal is already processing")
		return
	}
	defer f.guard.Release(guardKey)

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Errorf("Error deferring withdrawal: %v", err)
		return
	}

	ctx := context.Background()

	if err := f.client.DeleteBet(ctx, betID); err != nil {
		var apiErr *api.Error
		if !errors.As(err, &apiErr) || !apiErr.IsNotFound() {
			common.HandleError(s, i, common.NewBackendError(err, "bet withdrawal failed"), true)
			return
		}
		// Already gone on the backend; fall through and drop it locally
	}
	state.Day.Update(func(d *DayState) *DayState {
		d.RemoveBet(betID)
		return d
	})

	// The delete response carries no budget, so this is the one refetch
	budget, err := f.client.GamedayBudget(ctx, sess.UserID, day.Date)
	if err != nil {
		log.WithError(err).Warn("Budget refetch after withdrawal failed")
	} else {
		state.Day.Update(func(d *DayState) *DayState {
			d.Budget = budget
			return d
		})
	}

	state.SelectedGame = 0
	putViewState(discordID, state)
	f.renderEdit(s, i, state)
}

// loadDay fetches a match day's fixtures, bets and budget in parallel. A
// failed slice is logged and rendered empty (budget 0) rather than taking
// the whole view down; only all three failing is an error.
func (f *Feature) loadDay(ctx context.Context, userID int64, date string) (*DayState, error) {
	day := &DayState{Date: date}

	var wg sync.WaitGroup
	var gamesErr, betsErr, budgetErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		day.Games, gamesErr = f.client.UpcomingGamesByDate(ctx, date)
	}()
	go func() {
		defer wg.Done()
		bets, err := f.client.UpcomingBets(ctx, userID)
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			// The backend answers 404 when the user has no bets yet
			return
		}
		day.Bets, betsErr = bets, err
	}()
	go func() {
		defer wg.Done()
		day.Budget, budgetErr = f.client.GamedayBudget(ctx, userID, date)
	}()
	wg.Wait()

	if gamesErr != nil && betsErr != nil && budgetErr != nil {
		return nil, gamesErr
	}
	if gamesErr != nil {
		log.WithError(gamesErr).WithField("date", date).Warn("Fixture fetch failed, rendering the day without fixtures")
		day.Games = nil
	}
	if betsErr != nil {
		log.WithError(betsErr).WithField("date", date).Warn("Bet fetch failed, rendering the day without bets")
		day.Bets = nil
	}
	if budgetErr != nil {
		log.WithError(budgetErr).WithField("date", date).Warn("Budget fetch failed, rendering the day with budget 0")
		day.Budget = 0
	}
	return day, nil
}

// resolve returns the caller's Discord ID and platform session
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

// renderEdit rewrites the deferred interaction response with the day view
func (f *Feature) renderEdit(s *discordgo.Session, i *discordgo.InteractionCreate, state *viewState) {
	data := f.renderData(state)
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &data.Embeds,
		Components: &data.Components,
	})
	if err != nil {
		log.Errorf("Error editing bets message: %v", err)
	}
}

// renderData builds the embed and components for the current day view
func (f *Feature) renderData(state *viewState) *discordgo.InteractionResponseData {
	day := state.day()
	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{buildDayEmbed(day)},
		Components: buildDayComponents(state, day),
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}
