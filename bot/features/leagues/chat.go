package leagues

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"betleague/api"
	"betleague/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const chatMessagesShown = 10

// handleChatView shows the tail of a league's chat
func (f *Feature) handleChatView(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	_, _, ok := f.resolve(s, i)
	if !ok {
		return
	}
	if leagueID == 0 {
		common.RespondWithError(s, i, "Invalid league")
		return
	}

	if err := deferFor(s, i); err != nil {
		log.Errorf("Error deferring chat view: %v", err)
		return
	}

	f.showChat(s, i, leagueID)
}

// showChat loads the chat log and renders it into the deferred response
func (f *Feature) showChat(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	messages, err := f.client.ChatMessages(context.Background(), leagueID)
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to load chat"), true)
		return
	}

	editResponse(s, i, renderChat(leagueID, messages))
}

func (f *Feature) handleChatPostButton(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: buildChatPostModal(leagueID),
	}); err != nil {
		log.Errorf("Error showing chat post modal: %v", err)
	}
}

func (f *Feature) handleChatEditButton(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: buildChatEditModal(leagueID),
	}); err != nil {
		log.Errorf("Error showing chat edit modal: %v", err)
	}
}

func (f *Feature) handleChatDeleteButton(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: buildChatDeleteModal(leagueID),
	}); err != nil {
		log.Errorf("Error showing chat delete modal: %v", err)
	}
}

// handleChatPostModal posts the entered message and re-renders the chat
func (f *Feature) handleChatPostModal(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	content := strings.TrimSpace(common.ModalTextValue(i, "content"))
	if content == "" {
		common.RespondWithError(s, i, "The message is empty")
		return
	}

	guardKey := fmt.Sprintf("chat:%d:%d", leagueID, sess.UserID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "Your previous chat action is still processing")
		return
	}
	defer f.guard.Release(guardKey)

	if err := deferUpdate(s, i); err != nil {
		log.Errorf("Error deferring chat post: %v", err)
		return
	}

	_, err := f.client.SendChatMessage(context.Background(), leagueID, api.ChatMessageRequest{
		UserID:   sess.UserID,
		Username: sess.Username,
		Content:  content,
	})
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to post chat message"), true)
		return
	}

	f.showChat(s, i, leagueID)
}

// handleChatEditModal edits one of the user's messages
func (f *Feature) handleChatEditModal(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	_, sess, ok := f.resolve(s, i)
	if !ok {
		return
	}

	messageID, err := strconv.ParseInt(strings.TrimSpace(common.ModalTextValue(i, "message_id")), 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Please enter the numeric message ID shown in the chat")
		return
	}
	content := strings.TrimSpace(common.ModalTextValue(i, "content"))
	if content == "" {
		common.RespondWithError(s, i, "The message is empty")
		return
	}

	guardKey := fmt.Sprintf("chatmsg:%d", messageID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "That message is already being changed")
		return
	}
	defer f.guard.Release(guardKey)

	if err := deferUpdate(s, i); err != nil {
		log.Errorf("Error deferring chat edit: %v", err)
		return
	}

	_, err = f.client.UpdateChatMessage(context.Background(), leagueID, messageID, api.ChatMessageRequest{
		UserID:   sess.UserID,
		Username: sess.Username,
		Content:  content,
	})
	if err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to edit chat message"), true)
		return
	}

	f.showChat(s, i, leagueID)
}

// handleChatDeleteModal removes one of the user's messages
func (f *Feature) handleChatDeleteModal(s *discordgo.Session, i *discordgo.InteractionCreate, leagueID int64) {
	_, _, ok := f.resolve(s, i)
	if !ok {
		return
	}

	messageID, err := strconv.ParseInt(strings.TrimSpace(common.ModalTextValue(i, "message_id")), 10, 64)
	if err != nil {
		common.RespondWithError(s, i, "Please enter the numeric message ID shown in the chat")
		return
	}

	guardKey := fmt.Sprintf("chatmsg:%d", messageID)
	if !f.guard.TryAcquire(guardKey) {
		common.RespondWithError(s, i, "That message is already being changed")
		return
	}
	defer f.guard.Release(guardKey)

	if err := deferUpdate(s, i); err != nil {
		log.Errorf("Error deferring chat delete: %v", err)
		return
	}

	if err := f.client.DeleteChatMessage(context.Background(), leagueID, messageID); err != nil {
		common.HandleError(s, i, common.NewBackendError(err, "failed to delete chat message"), true)
		return
	}

	f.showChat(s, i, leagueID)
}

// deferUpdate defers a modal submission so it edits the originating message
func deferUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}
