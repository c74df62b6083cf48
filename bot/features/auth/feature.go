package auth

import (
	"context"
	"strconv"

	"betleague/bot/common"
	"betleague/session"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles account login, registration and logout
type Feature struct {
	sessions *session.Manager
}

// NewFeature creates a new auth feature instance
func NewFeature(sessions *session.Manager) *Feature {
	return &Feature{sessions: sessions}
}

// HandleCommand handles the /login, /register and /logout commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "login":
		f.handleLogin(s, i)
	case "register":
		f.handleRegister(s, i)
	case "logout":
		f.handleLogout(s, i)
	}
}

// HandleInteraction handles auth modal submissions
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionModalSubmit {
		return
	}

	switch i.ModalSubmitData().CustomID {
	case "auth_login_modal":
		f.handleLoginModal(s, i)
	case "auth_register_modal":
		f.handleRegisterModal(s, i)
	}
}

func (f *Feature) handleLogin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID := f.discordID(i)
	if discordID == 0 {
		common.RespondWithError(s, i, "Could not identify your Discord account")
		return
	}

	// Already signed in? Say so instead of re-prompting.
	state, current, err := f.sessions.Current(context.Background(), discordID)
	if err == nil && state == session.StateAuthenticated {
		respondEphemeral(s, i, "You are already signed in as **"+current.Username+"**. Use `/logout` to switch accounts.")
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: buildLoginModal(),
	}); err != nil {
		log.Errorf("Error showing login modal: %v", err)
	}
}

func (f *Feature) handleRegister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: buildRegisterModal(),
	}); err != nil {
		log.Errorf("Error showing register modal: %v", err)
	}
}

func (f *Feature) handleLogout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID := f.discordID(i)
	if discordID == 0 {
		common.RespondWithError(s, i, "Could not identify your Discord account")
		return
	}

	if err := f.sessions.Logout(context.Background(), discordID); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "logout failed"), false)
		return
	}

	respondEphemeral(s, i, "👋 Signed out. See you next match day!")
}

func (f *Feature) handleLoginModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID := f.discordID(i)
	username := common.ModalTextValue(i, "username")
	password := common.ModalTextValue(i, "password")

	if err := deferEphemeral(s, i); err != nil {
		log.Errorf("Error deferring login response: %v", err)
		return
	}

	sess, err := f.sessions.Login(context.Background(), discordID, username, password)
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "login failed"), true)
		return
	}

	followUpEphemeral(s, i, "✅ Welcome back, **"+sess.Username+"**! You have **"+
		common.FormatPoints(sess.Points)+"** points. Pick up where you left off with `"+
		resumeCommand(sess.LastScreen)+"`.")
}

func (f *Feature) handleRegisterModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	discordID := f.discordID(i)
	username := common.ModalTextValue(i, "username")
	email := common.ModalTextValue(i, "email")
	password := common.ModalTextValue(i, "password")

	if err := deferEphemeral(s, i); err != nil {
		log.Errorf("Error deferring register response: %v", err)
		return
	}

	sess, err := f.sessions.Register(context.Background(), discordID, username, email, password)
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "registration failed"), true)
		return
	}

	followUpEphemeral(s, i, "🎉 Account created. Welcome, **"+sess.Username+"**! Start with `/home`.")
}

// resumeCommand maps the remembered screen to the command that reopens it
func resumeCommand(lastScreen string) string {
	switch lastScreen {
	case common.ScreenBets:
		return "/bets"
	case common.ScreenBetsHistory:
		return "/bets-history"
	case common.ScreenLeagues:
		return "/leagues browse"
	case common.ScreenTeam:
		return "/team"
	case common.ScreenSideBets:
		return "/side-bets"
	default:
		return "/home"
	}
}

func (f *Feature) discordID(i *discordgo.InteractionCreate) int64 {
	id, err := strconv.ParseInt(common.InteractionUserID(i), 10, 64)
	if err != nil {
		log.Errorf("Failed to parse discord user ID: %v", err)
		return 0
	}
	return id
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending response: %v", err)
	}
}

func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func followUpEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up: %v", err)
	}
}
