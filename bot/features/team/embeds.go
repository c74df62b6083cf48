package team

import (
	"fmt"
	"strconv"
	"strings"

	"betleague/api"
	"betleague/bot/common"

	"github.com/bwmarrin/discordgo"
)

const historyShown = 5

// renderStandings builds the league table with a picker for team details
func renderStandings(teams []api.Team) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: "🏅 Standings",
		Color: common.ColorPrimary,
	}

	if len(teams) == 0 {
		embed.Description = "The table is empty."
	} else {
		var lines []string
		for idx, team := range teams {
			lines = append(lines, fmt.Sprintf("`%2d.` **%s** · %s pts · %d-%d-%d · %d:%d",
				idx+1,
				team.Name,
				common.FormatPoints(team.Points),
				team.Wins, team.Draws, team.Losses,
				team.GoalsScored, team.GoalsConceded,
			))
		}
		embed.Description = strings.Join(lines, "\n")
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Won-Drawn-Lost · goals scored:conceded",
		}
	}

	var options []discordgo.SelectMenuOption
	for _, team := range teams {
		if len(options) == common.MaxSelectOptions {
			break
		}
		options = append(options, discordgo.SelectMenuOption{
			Label: common.Truncate(team.Name, 100),
			Value: strconv.FormatInt(team.ID, 10),
		})
	}

	var components []discordgo.MessageComponent
	if len(options) > 0 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    "team_open",
					Placeholder: "Team details",
					Options:     options,
				},
			},
		})
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}

// renderTeam builds one team's detail view: record, squad and recent results
func renderTeam(team *api.Team, players []api.Player, games []api.Game, playersErr, gamesErr error) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: "🏅 " + team.Name,
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Points",
				Value:  common.FormatPoints(team.Points),
				Inline: true,
			},
			{
				Name:   "Record",
				Value:  fmt.Sprintf("%d-%d-%d", team.Wins, team.Draws, team.Losses),
				Inline: true,
			},
			{
				Name:   "Goals",
				Value:  fmt.Sprintf("%d:%d", team.GoalsScored, team.GoalsConceded),
				Inline: true,
			},
		},
	}

	if team.LogoURL != nil && *team.LogoURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: *team.LogoURL}
	}
	if team.WebpageURL != nil && *team.WebpageURL != "" {
		embed.URL = *team.WebpageURL
	}

	squadValue := "Currently unavailable"
	if playersErr == nil {
		var names []string
		for _, player := range players {
			entry := player.Name
			if player.Goals > 0 || player.Assists > 0 {
				entry = fmt.Sprintf("%s (%d⚽ %d🅰️)", player.Name, player.Goals, player.Assists)
			}
			names = append(names, entry)
		}
		squadValue = common.Truncate(strings.Join(names, ", "), 1024)
		if squadValue == "" {
			squadValue = "No squad data."
		}
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Squad",
		Value: squadValue,
	})

	historyValue := "Currently unavailable"
	if gamesErr == nil {
		var lines []string
		for idx, game := range games {
			if idx == historyShown {
				break
			}
			lines = append(lines, common.FormatFixture(game.Team1, game.Team2, game.ScoreTeam1, game.ScoreTeam2))
		}
		historyValue = strings.Join(lines, "\n")
		if historyValue == "" {
			historyValue = "No games played yet."
		}
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Recent games",
		Value: historyValue,
	})

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Back to standings",
						Style:    discordgo.SecondaryButton,
						CustomID: "team_back",
					},
				},
			},
		},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}
