package api

import (
	"context"
	"net/url"
	"strconv"
)

// Game is a fixture between two teams. Score, odds and winner fields are
// pointers because the backend omits them until they exist.
type Game struct {
	ID                int64    `json:"id"`
	Team1             string   `json:"team1"`
	Team2             string   `json:"team2"`
	MatchTime         Time     `json:"match_time"`
	ScoreTeam1        *int     `json:"score_team1"`
	ScoreTeam2        *int     `json:"score_team2"`
	PenaltyScoreTeam1 *int     `json:"penalty_score_team1"`
	PenaltyScoreTeam2 *int     `json:"penalty_score_team2"`
	Team1Logo         *string  `json:"team1_logo"`
	Team2Logo         *string  `json:"team2_logo"`
	Team1Odds         *float64 `json:"team1_odds"`
	Team2Odds         *float64 `json:"team2_odds"`
	DrawOdds          *float64 `json:"draw_odds"`
	GameWinner        *string  `json:"game_winner"`
}

// Finished reports whether the fixture has a recorded result
func (g *Game) Finished() bool {
	return g.ScoreTeam1 != nil && g.ScoreTeam2 != nil
}

// UpcomingDates fetches the distinct match days with fixtures still open,
// each a YYYY-MM-DD string in chronological order
func (c *Client) UpcomingDates(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/games/upcoming/dates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpcomingGamesByDate fetches the open fixtures for one match day
func (c *Client) UpcomingGamesByDate(ctx context.Context, date string) ([]Game, error) {
	var out []Game
	if err := c.get(ctx, "/games/upcoming/by-date/"+url.PathEscape(date), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GamesByIDs fetches the fixtures for the given IDs in one round trip
func (c *Client) GamesByIDs(ctx context.Context, ids []int64) ([]Game, error) {
	query := url.Values{}
	for _, id := range ids {
		query.Add("game_ids", strconv.FormatInt(id, 10))
	}
	var out []Game
	if err := c.get(ctx, "/games/by-ids", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
