package betshistory

import (
	"fmt"
	"strings"

	"betleague/api"
	"betleague/bot/common"

	"github.com/bwmarrin/discordgo"
)

// renderPage builds the embed and pagination buttons for one page of
// settled bets
func renderPage(h *history, page int) *discordgo.InteractionResponseData {
	totalPages := (len(h.Bets) + betsPerPage - 1) / betsPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	embed := &discordgo.MessageEmbed{
		Title: "📜 Bet History",
		Color: common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d", page+1, totalPages),
		},
	}

	if len(h.Bets) == 0 {
		embed.Description = "You have no settled bets yet."
		return &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		}
	}

	start := page * betsPerPage
	end := start + betsPerPage
	if end > len(h.Bets) {
		end = len(h.Bets)
	}

	var lines []string
	for _, bet := range h.Bets[start:end] {
		lines = append(lines, formatSettledBet(&bet, h.Games))
	}
	embed.Description = strings.Join(lines, "\n")

	var components []discordgo.MessageComponent
	if totalPages > 1 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("bethist_page_%d", page-1),
					Disabled: page == 0,
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("bethist_page_%d", page+1),
					Disabled: page == totalPages-1,
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

// formatSettledBet renders one line of the history. A bet whose fixture the
// backend no longer returns is shown inline rather than failing the view.
func formatSettledBet(bet *api.Bet, games map[int64]api.Game) string {
	game, ok := games[bet.GameID]
	if !ok {
		return fmt.Sprintf("❓ Game not found for bet %d", bet.ID)
	}

	fixture := common.FormatFixture(game.Team1, game.Team2, game.ScoreTeam1, game.ScoreTeam2)
	choice := bet.BetChoice
	switch choice {
	case api.ChoiceTeam1:
		choice = game.Team1
	case api.ChoiceTeam2:
		choice = game.Team2
	case api.ChoiceDraw:
		choice = "Draw"
	}

	outcome := "⏳"
	if won, settled := betWon(bet, &game); settled {
		if won {
			outcome = "🟢 won"
			if bet.Reward != nil {
				outcome = fmt.Sprintf("🟢 won %s", common.FormatPoints(*bet.Reward))
			}
		} else {
			outcome = "🔴 lost"
		}
	}

	return fmt.Sprintf("%s · **%s** · %s points · %s",
		fixture, choice, common.FormatBudget(bet.BetAmount), outcome)
}

// betWon reports whether the bet paid out, and whether the fixture settled
func betWon(bet *api.Bet, game *api.Game) (won bool, settled bool) {
	if game.GameWinner == nil {
		return false, false
	}
	return *game.GameWinner == bet.BetChoice, true
}
