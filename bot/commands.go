package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "login",
			Description: "Sign in to your league account",
		},
		{
			Name:        "register",
			Description: "Create a new league account",
		},
		{
			Name:        "logout",
			Description: "Sign out of your league account",
		},
		{
			Name:        "home",
			Description: "Your dashboard: points, fixtures and active bets",
		},
		{
			Name:        "bets",
			Description: "Place and manage bets on upcoming fixtures",
		},
		{
			Name:        "bets-history",
			Description: "Review your settled bets",
		},
		{
			Name:        "leagues",
			Description: "Browse, join and manage betting leagues",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "browse",
					Description: "Browse public leagues and your memberships",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "search",
							Description: "Only show leagues whose name contains this",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Found a new betting league",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join-private",
					Description: "Join a private league with an invite code",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "code",
							Description: "The league's invite code",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "team",
			Description: "Tournament standings and team details",
		},
		{
			Name:        "side-bets",
			Description: "Season-long special bets: champion, top scorer and more",
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
