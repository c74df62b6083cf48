package leagues

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

// Feature lets users browse, found, join and run betting leagues, including
// each league's leaderboard and chat
type Feature struct {
	client   *api.Client
	sessions *session.Manager
	guard    *fetch.Guard
}

// NewFeature creates a new leagues feature instance
func NewFeature(client *api.Client, sessions *session.Manager) *Feature {
	return &Feature{
		client:   client,
		sessions: sessions,
		guard:    fetch.NewGuard(),
	}
}

// HandleCommand handles the /leagues command and its subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Invalid command usage")
		return
	}

	switch options[0].Name {
	case "browse":
		f.handleBrowse(s, i)
	case "create":
		f.handleCreate(s, i)
	case "join-private":
		f.handleJoinPrivate(s, i, options[0])
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// HandleInteraction handles league components and modals
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
	case customID == "league_open", strings.HasPrefix(customID, "league_open_"):
		f.handleOpenLeague(s, i)
	case customID == "league_back":
		f.handleBrowse(s, i)
	case strings.HasPrefix(customID, "league_join_"):
		f.handleJoin(s, i, trailingID(customID))
	case strings.HasPrefix(customID, "league_leave_"):
		f.handleLeave(s, i, trailingID(customID))
	case strings.HasPrefix(customID, "league_kick_"):
		f.handleKick(s, i, trailingID(customID))
	case strings.HasPrefix(customID, "league_delete_"):
		f.handleDelete(s, i, trailingID(customID))
	case strings.HasPrefix(customID, "league_board_"):
		f.handleLeaderboard(s, i, trailingID(customID))
	case strings.HasPrefix(customID, "chat_view_"):
		f.handleChatView(s, i, trailingID(customID))
	case strings.HasPrefix(customID, "chat_post_"):
		f.handleChatPostButton(s, i, trailingID(customID))
	case strings.HasPrefix(customID, "chat_edit_"):
		f.handleChatEditButton(s, i, trailingID(customID))
	case strings.HasPrefix(customID, "chat_del_"):
		f.handleChatDeleteButton(s, i, trailingID(customID))
	default:
		common.RespondWithError(s, i, "Unknown league action")
	}
}

func (f *Feature) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.ModalSubmitData().CustomID

	switch {
	case customID == "league_create_modal":
		f.handleCreateModal(s, i)
	case strings.HasPrefix(customID, "chat_post_modal_"):
		f.handleChatPostModal(s, i, trailingID(customID))
	case strings.HasPrefix(customID, "chat_edit_modal_"):
		f.handleChatEditModal(s, i, trailingID(customID))
	case strings.HasPrefix(customID, "chat_del_modal_"):
		f.handleChatDeleteModal(s, i, trailingID(customID))
	}
}

// trailingID parses the numeric ID after the last underscore of a custom ID
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
