package bets

import (
	"testing"

	"betleague/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day() *DayState {
	return &DayState{
		Date:   "2025-06-14",
		Budget: 100,
		Games: []api.Game{
			{ID: 1, Team1: "Lions", Team2: "Wolves"},
			{ID: 2, Team1: "Eagles", Team2: "Sharks"},
			{ID: 3, Team1: "Bears", Team2: "Hawks"},
		},
	}
}

func TestPartitionKeepsFixtureOrder(t *testing.T) {
	d := day()
	d.Bets = []api.Bet{
		{ID: 10, GameID: 3, BetChoice: api.ChoiceTeam1, BetAmount: 20},
		{ID: 11, GameID: 1, BetChoice: api.ChoiceDraw, BetAmount: 10},
	}

	betted, open := d.Partition()
	require.Len(t, betted, 2)
	assert.Equal(t, int64(1), betted[0].Game.ID)
	assert.Equal(t, int64(3), betted[1].Game.ID)

	require.Len(t, open, 1)
	assert.Equal(t, int64(2), open[0].ID)
}

func TestPartitionIgnoresBetsFromOtherDays(t *testing.T) {
	d := day()
	d.Bets = []api.Bet{{ID: 10, GameID: 99, BetAmount: 20}}

	betted, open := d.Partition()
	assert.Empty(t, betted)
	assert.Len(t, open, 3)
}

func TestApplyResultAddsNewBetAndReplacesBudget(t *testing.T) {
	d := day()

	d.ApplyResult(&api.BetResult{
		Bet:           api.Bet{ID: 10, GameID: 1, BetChoice: api.ChoiceTeam1, BetAmount: 30},
		UpdatedBudget: 70,
	})

	require.Len(t, d.Bets, 1)
	assert.Equal(t, float64(70), d.Budget)

	betted, open := d.Partition()
	assert.Len(t, betted, 1)
	assert.Len(t, open, 2)
}

func TestApplyResultReplacesByBetID(t *testing.T) {
	d := day()
	d.Bets = []api.Bet{{ID: 10, GameID: 1, BetChoice: api.ChoiceTeam1, BetAmount: 30}}
	d.Budget = 70

	// The backend may return the edit under the same bet ID
	d.ApplyResult(&api.BetResult{
		Bet:           api.Bet{ID: 10, GameID: 1, BetChoice: api.ChoiceDraw, BetAmount: 50},
		UpdatedBudget: 50,
	})

	require.Len(t, d.Bets, 1, "edit must not duplicate the bet")
	assert.Equal(t, api.ChoiceDraw, d.Bets[0].BetChoice)
	assert.Equal(t, float64(50), d.Budget)
}

func TestApplyResultReplacesByGameID(t *testing.T) {
	d := day()
	d.Bets = []api.Bet{{ID: 10, GameID: 1, BetChoice: api.ChoiceTeam1, BetAmount: 30}}

	// Some backends answer an edit with a fresh bet ID for the same fixture
	d.ApplyResult(&api.BetResult{
		Bet:           api.Bet{ID: 22, GameID: 1, BetChoice: api.ChoiceTeam2, BetAmount: 40},
		UpdatedBudget: 60,
	})

	require.Len(t, d.Bets, 1, "edit must not duplicate the bet")
	assert.Equal(t, int64(22), d.Bets[0].ID)
	assert.Equal(t, api.ChoiceTeam2, d.Bets[0].BetChoice)
}

func TestRemoveBet(t *testing.T) {
	d := day()
	d.Bets = []api.Bet{
		{ID: 10, GameID: 1, BetAmount: 30},
		{ID: 11, GameID: 2, BetAmount: 20},
	}
	d.Budget = 50

	assert.True(t, d.RemoveBet(10))
	require.Len(t, d.Bets, 1)
	assert.Equal(t, int64(11), d.Bets[0].ID)
	assert.Equal(t, float64(50), d.Budget, "withdrawal alone must not touch the budget")

	assert.False(t, d.RemoveBet(10), "second removal finds nothing")
}

func TestMaxStake(t *testing.T) {
	d := day()
	d.Budget = 70
	d.Bets = []api.Bet{{ID: 10, GameID: 1, BetAmount: 30}}

	assert.Equal(t, int64(100), d.MaxStake(1), "existing stake can be redeployed")
	assert.Equal(t, int64(70), d.MaxStake(2))
}

// Mirrors a full afternoon of betting: place, raise, withdraw
func TestPlaceRaiseWithdrawScenario(t *testing.T) {
	d := day()

	d.ApplyResult(&api.BetResult{
		Bet:           api.Bet{ID: 10, GameID: 1, BetChoice: api.ChoiceTeam1, BetAmount: 40},
		UpdatedBudget: 60,
	})
	assert.Equal(t, int64(100), d.MaxStake(1))

	d.ApplyResult(&api.BetResult{
		Bet:           api.Bet{ID: 10, GameID: 1, BetChoice: api.ChoiceTeam1, BetAmount: 90},
		UpdatedBudget: 10,
	})
	require.Len(t, d.Bets, 1)
	assert.Equal(t, float64(90), d.Bets[0].BetAmount)

	require.True(t, d.RemoveBet(10))
	// Budget refetched separately after a withdrawal
	d.Budget = 100
	betted, open := d.Partition()
	assert.Empty(t, betted)
	assert.Len(t, open, 3)
}
