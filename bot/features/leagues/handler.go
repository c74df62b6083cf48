package leagues

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"betleague/api"
	"betleague/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleBrowse lists public leagues and the user's memberships. It serves
// both the subcommand and the back button, so the first response type
// depends on the interaction kind. The subcommand's optional search option
// narrows the public list by name.
func (f *Feature) handleBrowse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	search := ""
	if i.Type == discordgo.InteractionApplicationCommand {
		for _, opt := range i.ApplicationCommandData().Options[0].Options {
			if opt.Name == "search" {
				search = strings.TrimSpace(opt.StringValue())
			}
		}
	}

	if err := deferFor(s, i); err != nil {
		log.Errorf("Error deferring leagues response: %v", err)
		return
	}

	ctx := context.Background()
	f.sessions.RememberScreen(ctx, discordID, common.ScreenLeagues)

	var wg sync.WaitGroup
	var public, mine []api.League
	var publicErr, mineErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		public, publicErr = f.client.PublicLeagues(ctx)
	}()
	go func() {
		defer wg.Done()
		mine, mineErr = f.client.UserLeagues(ctx, sess.UserID)
	}()
	wg.Wait()

	if publicErr != nil && mineErr != nil {
		common.HandleError(s, i, common.NewBackendError(publicErr, "failed to load leagues"), true)
		return
	}

	if search != "" {
		public = filterLeagues(public, search)
	}

	data := renderBrowse(public, mine, search, publicErr, mineErr)
	editResponse(s, i, data)
}

// filterLeagues keeps the leagues whose name contains the search term,
// case-insensitively
func filterLeagues(leagues []api.League, search string) []api.League {
	needle := strings.ToLower(search)
	var matched []api.League
	for _, league := range leagues {
		if strings.Contains(strings.ToLower(league.Name), needle) {
			matched = append(matched, league)
		}
	}
	return matched
}

// handleOpenLeague shows one league's landing view
func (f *Feature) handleOpenLeague(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	// Either the browse select (value carries the ID) or a back button
	// whose custom ID carries it
	var leagueID int64
	if customID := i.MessageComponentData().CustomID; customID == "league_open" {
		leagueID, _ = strconv.ParseInt(common.SelectedValue(i), 10, 64)
	} else {
		leagueID = trailingID(customID)
	}
	if leagueID == 0 {
		common.RespondWithError(s, i, "No league selected")
		return
	}

	if err := deferFor(s, i); err != nil {
		log.Errorf("Error deferring league open: %v", err)
		return
	}

	f.showLanding(s, i, leagueID, sess.UserID)
}

// showLanding loads a league and renders its landing view into the deferred
// response
func (f *Feature) showLanding(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID, userID int64) {
	league, err := f.client.LeagueByID(context.Background(), leagueID)
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to load league"), true)
		return
	}

	editResponse(s, i, renderLanding(league, userID))
}

// handleCreate opens the league creation modal
func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: buildCreateModal(),
	}); err != nil {
		log.Errorf("Error showing league create modal: %v", err)
	}
}

// handleCreateModal founds the league described in the modal
func (f *Feature) handleCreateModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	name := strings.TrimSpace(common.ModalTextValue(i, "name"))
	description := strings.TrimSpace(common.ModalTextValue(i, "description"))
	visibility := strings.ToLower(strings.TrimSpace(common.ModalTextValue(i, "visibility")))

	if name == "" {
		common.RespondWithError(s, i, "The league needs a name")
		return
	}
	var public bool
	switch visibility {
	case "public":
		public = true
	case "private", "":
		public = false
	default:
		common.RespondWithError(s, i, "Visibility must be `public` or `private`")
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Errorf("Error deferring league creation: %v", err)
		return
	}

	league, err := f.client.CreateLeague(context.Background(), api.CreateLeagueRequest{
		Name:        name,
		Description: description,
		ManagerID:   sess.UserID,
		Public:      public,
	})
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to create league"), true)
		return
	}

	editResponse(s, i, renderLanding(league, sess.UserID))
}

// handleJoinPrivate joins a league via its invite code
func (f *Feature) handleJoinPrivate(s *discordgo.Session, i *discordgo.InteractionCreate, opt *discordgo.ApplicationCommandInteractionDataOption) {
	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	var code string
	for _, sub := range opt.Options {
		if sub.Name == "code" {
			code = strings.TrimSpace(sub.StringValue())
		}
	}
	if code == "" {
		common.RespondWithError(s, i, "Please provide an invite code")
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Errorf("Error deferring private join: %v", err)
		return
	}

	ctx := context.Background()
	league, err := f.client.LeagueByCode(ctx, code)
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "invite code lookup failed"), true)
		return
	}

	if err := f.client.JoinLeague(ctx, league.ID, sess.UserID, code); err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to join league"), true)
		return
	}

	// Membership changed; show the fresh member list
	f.showLanding(s, i, league.ID, sess.UserID)
}

// handleJoin joins a public league from its landing view
func (f *Feature) handleJoin(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}
	if leagueID == 0 {
		common.RespondWithError(s, i, "Invalid league")
		return
	}

	guardKey := fmt.Sprintf("league:%d:%d", leagueID, sess.UserID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "Your previous league change is still processing")
		return
	}
	defer f.guard.Release(guardKey)

	if err := deferFor(s, i); err != nil {
		log.Errorf("Error deferring league join: %v", err)
		return
	}

	if err := f.client.JoinLeague(context.Background(), leagueID, sess.UserID, ""); err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to join league"), true)
		return
	}

	f.showLanding(s, i, leagueID, sess.UserID)
}

// handleLeave leaves a league from its landing view
func (f *Feature) handleLeave(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}
	if leagueID == 0 {
		common.RespondWithError(s, i, "Invalid league")
		return
	}

	guardKey := fmt.Sprintf("league:%d:%d", leagueID, sess.UserID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "Your previous league change is still processing")
		return
	}
	defer f.guard.Release(guardKey)

	if err := deferFor(s, i); err != nil {
		log.Errorf("Error deferring league leave: %v", err)
		return
	}

	if err := f.client.LeaveLeague(context.Background(), leagueID, sess.UserID); err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to leave league"), true)
		return
	}

	f.showLanding(s, i, leagueID, sess.UserID)
}

// handleKick removes the selected member from a league the caller manages.
// Removal is the backend's leave operation issued for another user; the
// backend rejects it for non-managers.
func (f *Feature) handleKick(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}
	memberID, err := strconv.ParseInt(common.SelectedValue(i), 10, 64)
	if err != nil || leagueID == 0 {
		common.RespondWithError(s, i, "No member selected")
		return
	}

	guardKey := fmt.Sprintf("league:%d:%d", leagueID, sess.UserID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "Your previous league change is still processing")
		return
	}
	defer f.guard.Release(guardKey)

	if err := deferFor(s, i); err != nil {
		log.Errorf("Error deferring member removal: %v", err)
		return
	}

	if err := f.client.LeaveLeague(context.Background(), leagueID, memberID); err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to remove member"), true)
		return
	}

	f.showLanding(s, i, leagueID, sess.UserID)
}

// handleDelete removes a league entirely. The backend enforces that only the
// manager may do this; the button is only shown to them anyway.
func (f *Feature) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}
	if leagueID == 0 {
		common.RespondWithError(s, i, "Invalid league")
		return
	}

	guardKey := fmt.Sprintf("league:%d:%d", leagueID, sess.UserID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "Your previous league change is still processing")
		return
	}
	defer f.guard.Release(guardKey)

	if err := deferFor(s, i); err != nil {
		log.Errorf("Error deferring league delete: %v", err)
		return
	}

	if err := f.client.DeleteLeague(context.Background(), leagueID); err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to delete league"), true)
		return
	}

	content := "🗑️ League deleted."
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Embeds:     &[]*discordgo.MessageEmbed{},
		Components: &[]discordgo.MessageComponent{},
	}); err != nil {
		log.Errorf("Error editing delete response: %v", err)
	}
}

// handleLeaderboard shows a league's standings
func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	_, _, ok := f.resolve(s, i)
	if !ok {
		return
	}
	if leagueID == 0 {
		common.RespondWithError(s, i, "Invalid league")
		return
	}

	if err := deferFor(s, i); err != nil {
		log.Errorf("Error deferring leaderboard: %v", err)
		return
	}

	ctx := context.Background()

	var wg sync.WaitGroup
	var league *api.League
	var entries []api.LeaderboardEntry
	var leagueErr, entriesErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		league, leagueErr = f.client.LeagueByID(ctx, leagueID)
	}()
	go func() {
		defer wg.Done()
		entries, entriesErr = f.client.LeagueLeaderboard(ctx, leagueID)
	}()
	wg.Wait()

	if leagueErr != nil {
		common.HandleError(s, i, common.NewBackendError(leagueErr, "failed to load league"), true)
		return
	}
	if entriesErr != nil {
		common.HandleError(s, i, common.NewBackendError(entriesErr, "failed to load leaderboard"), true)
		return
	}

	editResponse(s, i, renderLeaderboard(league, entries))
}

// deferFor defers with the response type matching the interaction kind:
// component interactions update their message, commands get a new one
func deferFor(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type == discordgo.InteractionMessageComponent {
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

func editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &data.Embeds,
		Components: &data.Components,
	})
	if err != nil {
		log.Errorf("Error editing leagues message: %v", err)
	}
}
