package api

import (
	"context"
	"fmt"
)

// Team is a club in the tournament standings
type Team struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	LogoURL       *string `json:"logo_url"`
	WebpageURL    *string `json:"webpage_url"`
	Points        int64   `json:"points"`
	GamesPlayed   int     `json:"games_played"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	GoalsScored   int     `json:"goals_scored"`
	GoalsConceded int     `json:"goals_conceded"`
}

// Player is a squad member of a team
type Player struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	TeamID   int64   `json:"team_id"`
	Position *string `json:"position"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`
}

// SortedTeams fetches all teams ordered by standing, best first
func (c *Client) SortedTeams(ctx context.Context) ([]Team, error) {
	var out []Team
	if err := c.get(ctx, "/teams/sorted", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TeamByID fetches one team record
func (c *Client) TeamByID(ctx context.Context, teamID int64) (*Team, error) {
	var out Team
	if err := c.get(ctx, fmt.Sprintf("/teams/%d", teamID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TeamPlayers fetches a team's squad
func (c *Client) TeamPlayers(ctx context.Context, teamID int64) ([]Player, error) {
	var out []Player
	if err := c.get(ctx, fmt.Sprintf("/teams/%d/players", teamID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TeamGamesHistory fetches a team's played fixtures, most recent first
func (c *Client) TeamGamesHistory(ctx context.Context, teamID int64) ([]Game, error) {
	var out []Game
	if err := c.get(ctx, fmt.Sprintf("/teams/%d/games-history", teamID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
