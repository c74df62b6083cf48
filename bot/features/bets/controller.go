package bets

import (
	"betleague/api"
)

// BetLine pairs a bet with the fixture it is on
type BetLine struct {
	Game api.Game
	Bet  api.Bet
}

// DayState is everything shown for one match day: the open fixtures, the
// user's bets on them and the remaining budget. The budget is only ever
// written from backend responses.
type DayState struct {
	Date   string
	Budget float64
	Games  []api.Game
	Bets   []api.Bet
}

// Partition splits the day's fixtures into those the user has bet on and
// those still open, both in fixture order. Bets on fixtures outside this day
// are ignored.
func (d *DayState) Partition() (betted []BetLine, open []api.Game) {
	for _, game := range d.Games {
		if bet := d.BetForGame(game.ID); bet != nil {
			betted = append(betted, BetLine{Game: game, Bet: *bet})
		} else {
			open = append(open, game)
		}
	}
	return betted, open
}

// BetForGame returns the user's bet on the fixture, or nil
func (d *DayState) BetForGame(gameID int64) *api.Bet {
	for idx := range d.Bets {
		if d.Bets[idx].GameID == gameID {
			return &d.Bets[idx]
		}
	}
	return nil
}

// GameByID returns the fixture with the given ID, or nil
func (d *DayState) GameByID(gameID int64) *api.Game {
	for idx := range d.Games {
		if d.Games[idx].ID == gameID {
			return &d.Games[idx]
		}
	}
	return nil
}

// ApplyResult merges a bet mutation response into the day. The returned bet
// replaces an existing entry matched by bet ID, then by game ID, and is
// appended otherwise; the budget is replaced with the backend's value.
func (d *DayState) ApplyResult(res *api.BetResult) {
	d.Budget = res.UpdatedBudget

	for idx := range d.Bets {
		if d.Bets[idx].ID == res.Bet.ID {
			d.Bets[idx] = res.Bet
			return
		}
	}
	for idx := range d.Bets {
		if d.Bets[idx].GameID == res.Bet.GameID {
			d.Bets[idx] = res.Bet
			return
		}
	}
	d.Bets = append(d.Bets, res.Bet)
}

// RemoveBet drops a withdrawn bet from the day. The budget is left alone;
// the withdrawal response carries none, so callers refetch it.
func (d *DayState) RemoveBet(betID int64) bool {
	for idx := range d.Bets {
		if d.Bets[idx].ID == betID {
			d.Bets = append(d.Bets[:idx], d.Bets[idx+1:]...)
			return true
		}
	}
	return false
}

// MaxStake returns the largest amount the user may put on the fixture: the
// remaining budget plus whatever is already staked on it
func (d *DayState) MaxStake(gameID int64) int64 {
	max := int64(d.Budget)
	if bet := d.BetForGame(gameID); bet != nil {
		max += int64(bet.BetAmount)
	}
	return max
}
