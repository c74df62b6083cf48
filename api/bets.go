package api

import (
	"context"
	"fmt"
)

// Bet states as reported by the backend
const (
	BetStateEditable = "editable"
	BetStateLocked   = "locked"
)

// Bet choices accepted for a fixture. The backend settles a bet by comparing
// bet_choice to the fixture's game_winner, which uses the same three symbols.
const (
	ChoiceTeam1 = "1"
	ChoiceTeam2 = "2"
	ChoiceDraw  = "X"
)

// Bet is a wager a user holds on a fixture
type Bet struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	GameID    int64   `json:"game_id"`
	BetChoice string  `json:"bet_choice"`
	BetAmount float64 `json:"bet_amount"`
	BetState  string  `json:"bet_state"`
	Reward    *int64  `json:"reward"`
}

// Editable reports whether the bet can still be changed or withdrawn
func (b *Bet) Editable() bool {
	return b.BetState != BetStateLocked
}

// BetRequest is the payload for placing or updating a bet
type BetRequest struct {
	UserID    int64  `json:"user_id"`
	GameID    int64  `json:"game_id"`
	BetChoice string `json:"bet_choice"`
	BetAmount int64  `json:"bet_amount"`
}

// BetResult is the backend's answer to a bet mutation. UpdatedBudget is the
// authoritative remaining budget for the fixture's match day.
type BetResult struct {
	Bet           Bet     `json:"bet"`
	UpdatedBudget float64 `json:"updated_budget"`
}

// PlaceBet creates a new bet
func (c *Client) PlaceBet(ctx context.Context, req BetRequest) (*BetResult, error) {
	var out BetResult
	if err := c.post(ctx, "/bets/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBet replaces the choice and amount of an existing bet
func (c *Client) UpdateBet(ctx context.Context, betID int64, req BetRequest) (*BetResult, error) {
	var out BetResult
	if err := c.put(ctx, fmt.Sprintf("/bets/%d", betID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBet withdraws a bet. The response has no budget, so callers refetch
// the match day budget afterwards.
func (c *Client) DeleteBet(ctx context.Context, betID int64) error {
	return c.delete(ctx, fmt.Sprintf("/bets/%d", betID))
}

// UpcomingBets fetches the user's bets on fixtures that have not started
func (c *Client) UpcomingBets(ctx context.Context, userID int64) ([]Bet, error) {
	var out []Bet
	if err := c.get(ctx, fmt.Sprintf("/bets/user/%d/bets/upcoming", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HistoryBets fetches the user's settled bets, most recent first
func (c *Client) HistoryBets(ctx context.Context, userID int64) ([]Bet, error) {
	var out []Bet
	if err := c.get(ctx, fmt.Sprintf("/bets/user/%d/bets/history", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
