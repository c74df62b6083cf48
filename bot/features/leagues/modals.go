package leagues

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// buildCreateModal asks for the new league's name, description and
// visibility
func buildCreateModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: "league_create_modal",
		Title:    "Found a league",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "name",
						Label:       "Name",
						Style:       discordgo.TextInputShort,
						Placeholder: "Office Legends",
						Required:    true,
						MaxLength:   50,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "description",
						Label:     "Description",
						Style:     discordgo.TextInputParagraph,
						Required:  false,
						MaxLength: 200,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "visibility",
						Label:       "Visibility (public or private)",
						Style:       discordgo.TextInputShort,
						Placeholder: "private",
						Required:    false,
						MaxLength:   10,
					},
				},
			},
		},
	}
}

func buildChatPostModal(leagueID int64) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: fmt.Sprintf("chat_post_modal_%d", leagueID),
		Title:    "Post a message",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "content",
						Label:     "Message",
						Style:     discordgo.TextInputParagraph,
						Required:  true,
						MaxLength: 500,
					},
				},
			},
		},
	}
}

func buildChatEditModal(leagueID int64) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: fmt.Sprintf("chat_edit_modal_%d", leagueID),
		Title:    "Edit a message",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "message_id",
						Label:       "Message ID",
						Style:       discordgo.TextInputShort,
						Placeholder: "The [id] shown in the chat",
						Required:    true,
						MaxLength:   20,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "content",
						Label:     "New message",
						Style:     discordgo.TextInputParagraph,
						Required:  true,
						MaxLength: 500,
					},
				},
			},
		},
	}
}

func buildChatDeleteModal(leagueID int64) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: fmt.Sprintf("chat_del_modal_%d", leagueID),
		Title:    "Delete a message",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "message_id",
						Label:       "Message ID",
						Style:       discordgo.TextInputShort,
						Placeholder: "The [id] shown in the chat",
						Required:    true,
						MaxLength:   20,
					},
				},
			},
		},
	}
}
