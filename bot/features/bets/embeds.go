package bets

import (
	"fmt"
	"strings"

	"betleague/api"
	"betleague/bot/common"

	"github.com/bwmarrin/discordgo"
)

// buildDayEmbed renders one match day: budget, the user's bets and the
// fixtures still open
func buildDayEmbed(day *DayState) *discordgo.MessageEmbed {
	betted, open := day.Partition()

	embed := &discordgo.MessageEmbed{
		Title: "🏟️ " + common.FormatMatchDay(day.Date),
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "💰 Budget",
				Value:  fmt.Sprintf("**%s** points left for this match day", common.FormatBudget(day.Budget)),
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Pick a fixture below to bet on it",
		},
	}

	if len(betted) > 0 {
		var lines []string
		for _, line := range betted {
			lines = append(lines, fmt.Sprintf("%s · **%s** · %s points%s",
				common.FormatFixture(line.Game.Team1, line.Game.Team2, nil, nil),
				choiceLabel(&line.Game, line.Bet.BetChoice),
				common.FormatBudget(line.Bet.BetAmount),
				lockSuffix(&line.Bet),
			))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "✅ Your bets",
			Value:  strings.Join(lines, "\n"),
			Inline: false,
		})
	}

	if len(open) > 0 {
		var lines []string
		for _, game := range open {
			lines = append(lines, fmt.Sprintf("%s · %s%s",
				common.FormatFixture(game.Team1, game.Team2, nil, nil),
				common.FormatDiscordTimestamp(game.MatchTime.Time, "t"),
				oddsSuffix(&game),
			))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "📋 Open fixtures",
			Value:  strings.Join(lines, "\n"),
			Inline: false,
		})
	} else if len(betted) == 0 {
		embed.Description = "No fixtures on this match day."
	}

	return embed
}

// choiceLabel renders a bet choice using the fixture's team names
func choiceLabel(game *api.Game, choice string) string {
	switch choice {
	case api.ChoiceTeam1:
		return game.Team1
	case api.ChoiceTeam2:
		return game.Team2
	case api.ChoiceDraw:
		return "Draw"
	default:
		return choice
	}
}

func lockSuffix(bet *api.Bet) string {
	if !bet.Editable() {
		return " 🔒"
	}
	return ""
}

func oddsSuffix(game *api.Game) string {
	if game.Team1Odds == nil || game.Team2Odds == nil || game.DrawOdds == nil {
		return ""
	}
	return fmt.Sprintf(" · %s / %s / %s",
		common.FormatOdds(*game.Team1Odds),
		common.FormatOdds(*game.DrawOdds),
		common.FormatOdds(*game.Team2Odds),
	)
}
