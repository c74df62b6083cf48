package betshistory

import (
	"fmt"
	"testing"

	"betleague/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSettledBetMissingGame(t *testing.T) {
	bet := api.Bet{ID: 17, GameID: 99, BetChoice: api.ChoiceTeam1, BetAmount: 30}
	line := formatSettledBet(&bet, map[int64]api.Game{})
	assert.Equal(t, "❓ Game not found for bet 17", line)
}

func TestFormatSettledBetOutcomes(t *testing.T) {
	one, three := 1, 3
	winner := api.ChoiceTeam2
	game := api.Game{
		ID: 5, Team1: "Lions", Team2: "Wolves",
		ScoreTeam1: &one, ScoreTeam2: &three,
		GameWinner: &winner,
	}
	games := map[int64]api.Game{5: game}

	reward := int64(60)
	won := api.Bet{ID: 1, GameID: 5, BetChoice: api.ChoiceTeam2, BetAmount: 20, Reward: &reward}
	line := formatSettledBet(&won, games)
	assert.Contains(t, line, "Lions 1 : 3 Wolves")
	assert.Contains(t, line, "Wolves")
	assert.Contains(t, line, "🟢 won 60")

	lost := api.Bet{ID: 2, GameID: 5, BetChoice: api.ChoiceTeam1, BetAmount: 20}
	assert.Contains(t, formatSettledBet(&lost, games), "🔴 lost")

	unsettled := api.Game{ID: 6, Team1: "Bears", Team2: "Hawks"}
	pending := api.Bet{ID: 3, GameID: 6, BetChoice: api.ChoiceDraw, BetAmount: 10}
	assert.Contains(t, formatSettledBet(&pending, map[int64]api.Game{6: unsettled}), "⏳")
}

func TestSettlementUsesBackendWinnerSymbols(t *testing.T) {
	// game_winner arrives as "1", "X" or "2"; a draw pick must match "X"
	winner := "X"
	game := api.Game{ID: 8, Team1: "Lions", Team2: "Wolves", GameWinner: &winner}
	bet := api.Bet{ID: 9, GameID: 8, BetChoice: api.ChoiceDraw, BetAmount: 10}

	won, settled := betWon(&bet, &game)
	assert.True(t, settled)
	assert.True(t, won)
}

func TestRenderPageBoundsAndButtons(t *testing.T) {
	h := &history{Games: map[int64]api.Game{}}
	for n := 0; n < 20; n++ {
		h.Bets = append(h.Bets, api.Bet{ID: int64(n), GameID: int64(1000 + n)})
	}

	data := renderPage(h, 0)
	require.Len(t, data.Embeds, 1)
	assert.Equal(t, "Page 1 of 3", data.Embeds[0].Footer.Text)
	require.Len(t, data.Components, 1)

	// Out-of-range pages clamp to the last page
	data = renderPage(h, 99)
	assert.Equal(t, "Page 3 of 3", data.Embeds[0].Footer.Text)

	empty := renderPage(&history{Games: map[int64]api.Game{}}, 0)
	assert.Contains(t, empty.Embeds[0].Description, "no settled bets")
	assert.Empty(t, empty.Components)

	// Each missing fixture renders inline on its own line
	small := &history{
		Bets:  []api.Bet{{ID: 4, GameID: 77}},
		Games: map[int64]api.Game{},
	}
	data = renderPage(small, 0)
	assert.Contains(t, data.Embeds[0].Description, fmt.Sprintf("Game not found for bet %d", 4))
}
