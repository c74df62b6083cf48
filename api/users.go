package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// User is an account on the league platform
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Points   int64  `json:"points"`
}

// LoginResponse is the payload returned by a successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// RegisterResponse is the payload returned by a successful registration.
// It carries no user record; callers log in afterwards to obtain one.
type RegisterResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LeaderboardEntry is a single row of the global standings
type LeaderboardEntry struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Points   int64  `json:"points"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the given credentials
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.post(ctx, "/users/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, username, email, password string) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.post(ctx, "/users/register", registerRequest{Username: username, Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout tells the backend to invalidate the server-side session
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/users/logout", nil, nil)
}

// UserByID fetches a user record by its platform ID
func (c *Client) UserByID(ctx context.Context, userID int64) (*User, error) {
	query := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	var out User
	if err := c.get(ctx, "/users/user", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserPoints fetches the user's current global points total
func (c *Client) UserPoints(ctx context.Context, userID int64) (int64, error) {
	var out struct {
		Points int64 `json:"points"`
	}
	if err := c.get(ctx, fmt.Sprintf("/users/%d/points", userID), nil, &out); err != nil {
		return 0, err
	}
	return out.Points, nil
}

// GamedayBudget fetches the user's remaining betting budget for a match day.
// The date uses the YYYY-MM-DD form the backend expects.
func (c *Client) GamedayBudget(ctx context.Context, userID int64, date string) (float64, error) {
	var out struct {
		Budget float64 `json:"budget"`
	}
	if err := c.get(ctx, fmt.Sprintf("/users/%d/gameday_budget/%s", userID, date), nil, &out); err != nil {
		return 0, err
	}
	return out.Budget, nil
}

// Leaderboard fetches the global standings, best first
func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var out []LeaderboardEntry
	if err := c.get(ctx, "/users/leaderboard", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserLeagues fetches the betting leagues the user is a member of
func (c *Client) UserLeagues(ctx context.Context, userID int64) ([]League, error) {
	var out []League
	if err := c.get(ctx, fmt.Sprintf("/users/%d/leagues", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
