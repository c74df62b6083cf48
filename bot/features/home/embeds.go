package home

import (
	"fmt"
	"strings"

	"betleague/bot/common"

	"github.com/bwmarrin/discordgo"
)

// renderDashboard builds the home embed. Regions that failed to load show a
// short notice instead of taking the whole view down.
func renderDashboard(username, lastScreen string, board *dashboard) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🏠 Welcome back, %s", username),
		Color: common.ColorPrimary,
	}

	// Points
	pointsValue := "Currently unavailable"
	if board.PointsErr == nil {
		pointsValue = fmt.Sprintf("**%s** points", common.FormatPoints(board.Points))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "🏆 Your points",
		Value:  pointsValue,
		Inline: true,
	})

	// Active bets
	betsValue := "Currently unavailable"
	if board.ActiveBetsErr == nil {
		betsValue = fmt.Sprintf("**%d** active, manage them with `/bets`", len(board.ActiveBets))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "🎯 Active bets",
		Value:  betsValue,
		Inline: true,
	})

	// Fixtures
	switch {
	case board.GamesErr != nil:
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📅 Fixtures",
			Value: "Currently unavailable",
		})
	case board.Date == "":
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📅 Fixtures",
			Value: "No upcoming fixtures.",
		})
	default:
		var lines []string
		for _, game := range board.Games {
			lines = append(lines, fmt.Sprintf("%s · %s",
				common.FormatFixture(game.Team1, game.Team2, nil, nil),
				common.FormatDiscordTimestamp(game.MatchTime.Time, "t")))
		}
		value := strings.Join(lines, "\n")
		if value == "" {
			value = "No fixtures on this match day."
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📅 " + common.FormatMatchDay(board.Date),
			Value: value,
		})
	}

	// Global standings, top three only
	standingsValue := "Currently unavailable"
	if board.StandingsErr == nil {
		medals := []string{"🥇", "🥈", "🥉"}
		var lines []string
		for idx, entry := range board.Standings {
			if idx == len(medals) {
				break
			}
			lines = append(lines, fmt.Sprintf("%s **%s** · %s",
				medals[idx], entry.Username, common.FormatPoints(entry.Points)))
		}
		standingsValue = strings.Join(lines, "\n")
		if standingsValue == "" {
			standingsValue = "Nobody has scored yet."
		}
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "🏅 Top players",
		Value: standingsValue,
	})

	if hint := resumeHint(lastScreen); hint != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: hint}
	}

	var components []discordgo.MessageComponent
	if len(board.Dates) > 1 {
		var options []discordgo.SelectMenuOption
		for _, date := range board.Dates {
			if len(options) == common.MaxSelectOptions {
				break
			}
			options = append(options, discordgo.SelectMenuOption{
				Label:   common.FormatMatchDay(date),
				Value:   date,
				Default: date == board.Date,
			})
		}
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    "home_date",
					Placeholder: "Switch match day",
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

// resumeHint tells the user where they left off last time
func resumeHint(lastScreen string) string {
	switch lastScreen {
	case "", common.ScreenHome:
		return ""
	case common.ScreenBets:
		return "You were last placing bets. Jump back with /bets"
	case common.ScreenBetsHistory:
		return "You were last reviewing your history. Jump back with /bets-history"
	case common.ScreenLeagues:
		return "You were last browsing leagues. Jump back with /leagues"
	case common.ScreenTeam:
		return "You were last checking the standings. Jump back with /team"
	case common.ScreenSideBets:
		return "You were last on side bets. Jump back with /side-bets"
	default:
		return ""
	}
}
