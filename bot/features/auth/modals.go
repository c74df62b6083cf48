package auth

import (
	"github.com/bwmarrin/discordgo"
)

// buildLoginModal creates the sign-in modal
func buildLoginModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: "auth_login_modal",
		Title:    "Sign in",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "username",
						Label:       "Username",
						Style:       discordgo.TextInputShort,
						Placeholder: "Your league username",
						Required:    true,
						MaxLength:   50,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "password",
						Label:     "Password",
						Style:     discordgo.TextInputShort,
						Required:  true,
						MaxLength: 100,
					},
				},
			},
		},
	}
}

// buildRegisterModal creates the account creation modal
func buildRegisterModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: "auth_register_modal",
		Title:    "Create account",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "username",
						Label:       "Username",
						Style:       discordgo.TextInputShort,
						Placeholder: "Pick a username",
						Required:    true,
						MaxLength:   50,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "email",
						Label:       "Email",
						Style:       discordgo.TextInputShort,
						Placeholder: "you@example.com",
						Required:    true,
						MaxLength:   100,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "password",
						Label:     "Password",
						Style:     discordgo.TextInputShort,
						Required:  true,
						MinLength: 8,
						MaxLength: 100,
					},
				},
			},
		},
	}
}
