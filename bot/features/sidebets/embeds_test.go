package sidebets

import (
	"encoding/json"
	"testing"
	"time"

	"betleague/api"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sideBet(id int64, kind string, options string) api.SideBet {
	return api.SideBet{
		ID:            id,
		SideBetType:   kind,
		Question:      "Who takes it?",
		LastTimeToBet: api.Time{Time: time.Now().Add(time.Hour)},
		Reward:        500,
		BetState:      api.BetStateEditable,
		Options:       json.RawMessage(options),
	}
}

func withChoice(sb api.SideBet, choice string) api.SideBet {
	sb.BetChoice = json.RawMessage(choice)
	return sb
}

func TestPickSummaryPerKind(t *testing.T) {
	champion := sideBet(1, api.SideBetChampion, `["Lions","Tigers"]`)
	scorer := sideBet(2, api.SideBetTopScorer, `{"Lions":["Dana"]}`)
	qualifiers := sideBet(3, api.SideBetQualifiers, `["Lions","Tigers"]`)

	state := &viewState{
		Offered: []api.SideBet{champion, scorer, qualifiers},
		Picks: map[int64]api.SideBet{
			1: withChoice(champion, `"Lions"`),
			2: withChoice(scorer, `{"team":"Lions","player":"Dana"}`),
			3: withChoice(qualifiers, `{"1":"Lions","5":"Tigers"}`),
		},
	}

	assert.Equal(t, "🏆 Lions", pickSummary(state, &champion))
	assert.Equal(t, "Dana (Lions)", pickSummary(state, &scorer))
	assert.Equal(t, "2/8 teams placed", pickSummary(state, &qualifiers))

	delete(state.Picks, 1)
	assert.Equal(t, "No pick yet", pickSummary(state, &champion))
}

func TestRenderOverviewListsOfferedBets(t *testing.T) {
	state := &viewState{
		Offered: []api.SideBet{sideBet(1, api.SideBetChampion, `["Lions"]`)},
		Picks:   map[int64]api.SideBet{},
	}

	data := renderOverview(state)
	require.Len(t, data.Embeds, 1)
	assert.Len(t, data.Embeds[0].Fields, 1)
	assert.Len(t, data.Components, 1)
}

func TestRenderOverviewEmpty(t *testing.T) {
	state := &viewState{Picks: map[int64]api.SideBet{}}

	data := renderOverview(state)
	require.Len(t, data.Embeds, 1)
	assert.Contains(t, data.Embeds[0].Description, "No side bets")
	assert.Empty(t, data.Components)
}

func TestRenderSideBetLockedDisablesInputs(t *testing.T) {
	sb := sideBet(1, api.SideBetChampion, `["Lions","Tigers"]`)
	sb.BetState = api.BetStateLocked

	state := &viewState{
		Offered: []api.SideBet{sb},
		Picks:   map[int64]api.SideBet{},
		Current: 1,
	}

	data := renderSideBet(state)
	require.NotEmpty(t, data.Components)

	row, ok := data.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 1)

	menu, ok := row.Components[0].(discordgo.SelectMenu)
	require.True(t, ok)
	assert.True(t, menu.Disabled)
}
