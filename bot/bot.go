package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"betleague/api"
	"betleague/bot/common"
	"betleague/bot/features/auth"
	"betleague/bot/features/bets"
	"betleague/bot/features/betshistory"
	"betleague/bot/features/home"
	"betleague/bot/features/leagues"
	"betleague/bot/features/sidebets"
	"betleague/bot/features/team"
	"betleague/session"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

// Bot manages the Discord bot and all feature modules
type Bot struct {
	config   Config
	session  *discordgo.Session
	sessions *session.Manager

	// Feature modules
	auth        *auth.Feature
	home        *home.Feature
	bets        *bets.Feature
	betsHistory *betshistory.Feature
	leagues     *leagues.Feature
	team        *team.Feature
	sideBets    *sidebets.Feature
}

// New creates a new bot instance with all features
func New(config Config, client *api.Client, sessions *session.Manager) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages

	bot := &Bot{
		config:   config,
		session:  dg,
		sessions: sessions,
	}

	// Create feature modules
	bot.auth = auth.NewFeature(sessions)
	bot.home = home.NewFeature(client, sessions)
	bot.bets = bets.NewFeature(client, sessions)
	bot.betsHistory = betshistory.NewFeature(client, sessions)
	bot.leagues = leagues.NewFeature(client, sessions)
	bot.team = team.NewFeature(client, sessions)
	bot.sideBets = sidebets.NewFeature(client, sessions)

	// Register handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name

	switch name {
	case "login", "register":
		b.auth.HandleCommand(s, i)
		return
	}

	// Every other command requires a signed-in user
	if !b.requireSession(s, i) {
		return
	}

	switch name {
	case "logout":
		b.auth.HandleCommand(s, i)
	case "home":
		b.home.HandleCommand(s, i)
	case "bets":
		b.bets.HandleCommand(s, i)
	case "bets-history":
		b.betsHistory.HandleCommand(s, i)
	case "leagues":
		b.leagues.HandleCommand(s, i)
	case "team":
		b.team.HandleCommand(s, i)
	case "side-bets":
		b.sideBets.HandleCommand(s, i)
	}
}

// handleInteractions routes component interactions to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var customID string
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID = i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		customID = i.ModalSubmitData().CustomID
	default:
		return
	}

	// Auth components carry their own session handling
	if strings.HasPrefix(customID, "auth_") {
		b.auth.HandleInteraction(s, i)
		return
	}

	if !b.requireSession(s, i) {
		return
	}

	switch {
	case strings.HasPrefix(customID, "home_"):
		b.home.HandleInteraction(s, i)

	case strings.HasPrefix(customID, "bets_"):
		b.bets.HandleInteraction(s, i)

	case strings.HasPrefix(customID, "bethist_"):
		b.betsHistory.HandleInteraction(s, i)

	case strings.HasPrefix(customID, "league_"), strings.HasPrefix(customID, "chat_"):
		b.leagues.HandleInteraction(s, i)

	case strings.HasPrefix(customID, "team_"):
		b.team.HandleInteraction(s, i)

	case strings.HasPrefix(customID, "sidebet_"), strings.HasPrefix(customID, "qual_"):
		b.sideBets.HandleInteraction(s, i)
	}
}

// requireSession enforces the login guard. It answers the interaction with a
// login hint when the user has no valid session, returning false so the
// caller drops the interaction.
func (b *Bot) requireSession(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	discordID, err := strconv.ParseInt(common.InteractionUserID(i), 10, 64)
	if err != nil {
		log.Errorf("Failed to parse interaction user ID: %v", err)
		return false
	}

	allowed, err := b.sessionAllowed(context.Background(), discordID)
	if err != nil {
		log.WithError(err).WithField("discordID", discordID).Error("Session lookup failed")
		common.RespondWithError(s, i, "Could not reach the league servers. Please try again later.")
		return false
	}

	if !allowed {
		common.RespondWithError(s, i, "You are not signed in. Use `/login` or `/register` first.")
		return false
	}

	return true
}

// sessionAllowed reports whether the Discord user holds a validated login.
// False with a nil error means the user simply is not signed in.
func (b *Bot) sessionAllowed(ctx context.Context, discordID int64) (bool, error) {
	state, _, err := b.sessions.Current(ctx, discordID)
	if err != nil {
		return false, err
	}
	return state == session.StateAuthenticated, nil
}
