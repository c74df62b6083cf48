package sidebets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"betleague/api"
	"betleague/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleOpen answers /side-bets with the overview
func (f *Feature) handleOpen(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Errorf("Error deferring side bets response: %v", err)
		return
	}

	ctx := context.Background()
	f.sessions.RememberScreen(ctx, discordID, common.ScreenSideBets)

	state, err := f.loadState(ctx, sess.UserID)
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to load side bets"), true)
		return
	}
	putViewState(discordID, state)

	f.renderEdit(s, i, renderOverview(state))
}

// loadState fetches the offered side bets and the user's picks in parallel
func (f *Feature) loadState(ctx context.Context, userID int64) (*viewState, error) {
	state := &viewState{UserID: userID, Picks: make(map[int64]api.SideBet)}

	var wg sync.WaitGroup
	var offeredErr, picksErr error
	var picks []api.SideBet

	wg.Add(2)
	go func() {
		defer wg.Done()
		state.Offered, offeredErr = f.client.SideBets(ctx)
	}()
	go func() {
		defer wg.Done()
		var err error
		picks, err = f.client.UserSideBets(ctx, userID)
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			// No picks yet
			return
		}
		picksErr = err
	}()
	wg.Wait()

	if offeredErr != nil {
		return nil, offeredErr
	}
	if picksErr != nil {
		return nil, picksErr
	}

	for _, pick := range picks {
		state.Picks[pick.ID] = pick
	}
	return state, nil
}

// handleOpenSideBet shows one side bet's picking flow
func (f *Feature) handleOpenSideBet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, state, ok := f.stateFor(s, i)
	if !ok {
		return
	}

	sideBetID, err := strconv.ParseInt(common.SelectedValue(i), 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "No side bet selected")
		return
	}

	state.Current = sideBetID
	state.ScorerTeam = ""
	state.QualSlot = 0

	sb := state.currentSideBet()
	if sb == nil {
		common.RespondWithError(s, i, "That side bet is no longer offered")
		return
	}

	// Qualifier picks build on an assignment seeded from the stored choice
	if sb.SideBetType == api.SideBetQualifiers {
		teams, err := sb.OptionTeams()
		if err != nil {
			common.HandleError(s, i, common.NewSystemError(err, "bad qualifier options"), false)
			return
		}
		state.Qualifiers = NewAssignment(teams)
		if pick := state.pickFor(sideBetID); pick != nil {
			if slots, err := pick.ChoiceSlots(); err == nil {
				state.Qualifiers.Load(slots)
			}
		}
	}

	putViewState(discordID, state)
	f.renderUpdate(s, i, renderSideBet(state))
}

// handleBack returns to the overview
func (f *Feature) handleBack(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, state, ok := f.stateFor(s, i)
	if !ok {
		return
	}

	state.Current = 0
	state.ScorerTeam = ""
	putViewState(discordID, state)

	f.renderUpdate(s, i, renderOverview(state))
}

// handleChampionPick submits a bare team choice
func (f *Feature) handleChampionPick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.submitChoice(s, i, trailingID(i.MessageComponentData().CustomID), common.SelectedValue(i))
}

// handleScorerTeamPick narrows the player select to one team
func (f *Feature) handleScorerTeamPick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, state, ok := f.stateFor(s, i)
	if !ok {
		return
	}

	state.ScorerTeam = common.SelectedValue(i)
	putViewState(discordID, state)

	f.renderUpdate(s, i, renderSideBet(state))
}

// handleScorerPlayerPick submits a team/player choice
func (f *Feature) handleScorerPlayerPick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_, state, ok := f.stateFor(s, i)
	if !ok {
		return
	}
	if state.ScorerTeam == "" {
		common.RespondWithError(s, i, "Pick a team first")
		return
	}

	choice := api.TeamPlayerChoice{Team: state.ScorerTeam, Player: common.SelectedValue(i)}
	f.submitChoice(s, i, trailingID(i.MessageComponentData().CustomID), choice)
}

// handleQualifierSlot selects the slot the next team goes into
func (f *Feature) handleQualifierSlot(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, state, ok := f.stateFor(s, i)
	if !ok || state.Qualifiers == nil {
		return
	}

	slot, err := strconv.Atoi(common.SelectedValue(i))
	if err != nil {
		common.RespondWithError(s, i, "Invalid slot")
		return
	}
	// A filled slot never swaps; picking it empties it back to the pool
	state.Qualifiers.ClearSlot(slot)
	state.QualSlot = slot
	putViewState(discordID, state)

	f.renderUpdate(s, i, renderSideBet(state))
}

// handleQualifierTeam puts the chosen team into the selected slot
func (f *Feature) handleQualifierTeam(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, state, ok := f.stateFor(s, i)
	if !ok || state.Qualifiers == nil {
		return
	}
	if state.QualSlot == 0 {
		common.RespondWithError(s, i, "Pick a slot first")
		return
	}

	if err := state.Qualifiers.Assign(state.QualSlot, common.SelectedValue(i)); err != nil {
		common.RespondWithError(s, i, "That team cannot go there")
		return
	}

	// Move on to the next empty slot
	state.QualSlot = 0
	for slot := 1; slot <= common.QualifierSlots; slot++ {
		if state.Qualifiers.Team(slot) == "" {
			state.QualSlot = slot
			break
		}
	}
	putViewState(discordID, state)

	f.renderUpdate(s, i, renderSideBet(state))
}

// handleQualifierSubmit submits the full bracket. The button is disabled
// until all slots are filled, and this re-checks anyway.
func (f *Feature) handleQualifierSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_, state, ok := f.stateFor(s, i)
	if !ok || state.Qualifiers == nil {
		return
	}
	if !state.Qualifiers.Complete() {
		common.RespondWithError(s, i, "Fill all eight slots first")
		return
	}

	f.submitChoice(s, i, trailingID(i.MessageComponentData().CustomID), state.Qualifiers.Choice())
}

// handleQualifierReset empties the bracket without touching the backend
func (f *Feature) handleQualifierReset(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, state, ok := f.stateFor(s, i)
	if !ok || state.Qualifiers == nil {
		return
	}

	state.Qualifiers.Reset()
	state.QualSlot = 0
	putViewState(discordID, state)

	f.renderUpdate(s, i, renderSideBet(state))
}

// handleWithdraw deletes the stored pick
func (f *Feature) handleWithdraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, state, ok := f.stateFor(s, i)
	if !ok {
		return
	}
	sideBetID := trailingID(i.MessageComponentData().CustomID)

	_, sess, resolved := f.resolve(s, i)
	if !resolved {
		return
	}

	guardKey := fmt.Sprintf("sidebet:%d:%d", sideBetID, sess.UserID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "Your previous pick is still processing")
		return
	}
	defer f.guard.Release(guardKey)

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Errorf("Error deferring side bet withdrawal: %v", err)
		return
	}

	if err := f.client.DeleteSideBet(context.Background(), sess.UserID, sideBetID); err != nil {
		var apiErr *api.Error
		if !errors.As(err, &apiErr) || !apiErr.IsNotFound() {
			common.HandleError(s, i, common.NewBackendError(err, "side bet withdrawal failed"), true)
			return
		}
	}
	delete(state.Picks, sideBetID)
	if state.Qualifiers != nil {
		state.Qualifiers.Reset()
	}
	putViewState(discordID, state)

	f.renderEditData(s, i, renderSideBet(state))
}

// submitChoice places or updates the pick for a side bet and re-renders
func (f *Feature) submitChoice(s *discordgo.Session, i *discordgo.InteractionCreate, sideBetID int64, choice any) {
	discordID, state, ok := f.stateFor(s, i)
	if !ok {
		return
	}

	_, sess, resolved := f.resolve(s, i)
	if !resolved {
		return
	}

	sb := state.currentSideBet()
	if sb == nil || sb.ID != sideBetID {
		common.RespondWithError(s, i, "That side bet is no longer open")
		return
	}
	if !sb.Editable() {
		common.RespondWithError(s, i, "The deadline for this side bet has passed")
		return
	}

	guardKey := fmt.Sprintf("sidebet:%d:%d", sideBetID, sess.UserID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "Your previous pick is still processing")
		return
	}
	defer f.guard.Release(guardKey)

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Errorf("Error deferring side bet submit: %v", err)
		return
	}

	ctx := context.Background()
	var pick *api.SideBet
	var err error
	if state.pickFor(sideBetID) != nil {
		pick, err = f.client.UpdateSideBet(ctx, sess.UserID, sideBetID, choice)
	} else {
		pick, err = f.client.PlaceSideBet(ctx, sess.UserID, sideBetID, choice)
	}
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "side bet submit failed"), true)
		return
	}

	state.Picks[sideBetID] = *pick
	state.ScorerTeam = ""
	putViewState(discordID, state)

	f.renderEditData(s, i, renderSideBet(state))
}

// stateFor fetches the caller's view state, complaining when it expired
func (f *Feature) stateFor(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, *viewState, bool) {
	discordID, err := strconv.ParseInt(common.InteractionUserID(i), 10, 64)
	if err != nil {
		log.Errorf("Failed to parse discord user ID: %v", err)
		return 0, nil, false
	}

	state := getViewState(discordID)
	if state == nil {
		common.RespondWithError(s, i, "This view has expired. Run `/side-bets` again.")
		return 0, nil, false
	}
	return discordID, state, true
}

func (f *Feature) renderUpdate(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	}); err != nil {
		log.Errorf("Error updating side bets message: %v", err)
	}
}

func (f *Feature) renderEdit(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	f.renderEditData(s, i, data)
}

func (f *Feature) renderEditData(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &data.Embeds,
		Components: &data.Components,
	})
	if err != nil {
		log.Errorf("Error editing side bets message: %v", err)
	}
}
