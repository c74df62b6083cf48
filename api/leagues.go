package api

import (
	"context"
	"fmt"
	"net/url"
)

// League is a private or public betting league
type League struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ManagerID    int64   `json:"manager_id"`
	Public       bool    `json:"public"`
	Code         string  `json:"code"`
	GroupPicture *string `json:"group_picture"`
	NumMembers   *int    `json:"num_members"`
	Members      []User  `json:"members"`
}

// CreateLeagueRequest is the payload for founding a new league
type CreateLeagueRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ManagerID    int64   `json:"manager_id"`
	Public       bool    `json:"public"`
	GroupPicture *string `json:"group_picture"`
}

// ChatMessage is one entry of a league's chat log
type ChatMessage struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	Timestamp Time   `json:"timestamp"`
}

// ChatMessageRequest is the payload for posting or editing a chat message
type ChatMessageRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Content  string `json:"content"`
}

// PublicLeagues fetches every league open to all users
func (c *Client) PublicLeagues(ctx context.Context) ([]League, error) {
	var out []League
	if err := c.get(ctx, "/betting-leagues/public", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LeagueByID fetches one league with its member list
func (c *Client) LeagueByID(ctx context.Context, leagueID int64) (*League, error) {
	var out League
	if err := c.get(ctx, fmt.Sprintf("/betting-leagues/%d", leagueID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LeagueByCode looks up a private league by its invite code
func (c *Client) LeagueByCode(ctx context.Context, code string) (*League, error) {
	var out League
	if err := c.get(ctx, "/betting-leagues/find-by-code/"+url.PathEscape(code), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateLeague founds a new league managed by the requesting user
func (c *Client) CreateLeague(ctx context.Context, req CreateLeagueRequest) (*League, error) {
	var out League
	if err := c.post(ctx, "/betting-leagues/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLeague removes a league entirely. Only the manager may do this.
func (c *Client) DeleteLeague(ctx context.Context, leagueID int64) error {
	return c.delete(ctx, fmt.Sprintf("/betting-leagues/%d", leagueID))
}

// JoinLeague adds the user to a league. Private leagues require the invite
// code; for public leagues code is empty.
func (c *Client) JoinLeague(ctx context.Context, leagueID, userID int64, code string) error {
	var query url.Values
	if code != "" {
		query = url.Values{"code": {code}}
	}
	path := fmt.Sprintf("/betting-leagues/%d/join/%d", leagueID, userID)
	return c.do(ctx, "POST", path, query, nil, nil)
}

// LeaveLeague removes the user from a league
func (c *Client) LeaveLeague(ctx context.Context, leagueID, userID int64) error {
	path := fmt.Sprintf("/betting-leagues/%d/leave/%d", leagueID, userID)
	return c.do(ctx, "POST", path, nil, nil, nil)
}

// LeagueLeaderboard fetches a league's standings, best first
func (c *Client) LeagueLeaderboard(ctx context.Context, leagueID int64) ([]LeaderboardEntry, error) {
	var out []LeaderboardEntry
	if err := c.get(ctx, fmt.Sprintf("/betting-leagues/%d/leaderboard", leagueID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChatMessages fetches a league's chat log, oldest first
func (c *Client) ChatMessages(ctx context.Context, leagueID int64) ([]ChatMessage, error) {
	var out []ChatMessage
	if err := c.get(ctx, fmt.Sprintf("/betting-leagues/%d/chat", leagueID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendChatMessage posts a new message to a league's chat
func (c *Client) SendChatMessage(ctx context.Context, leagueID int64, req ChatMessageRequest) (*ChatMessage, error) {
	var out ChatMessage
	if err := c.post(ctx, fmt.Sprintf("/betting-leagues/%d/chat", leagueID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateChatMessage edits a message the user authored
func (c *Client) UpdateChatMessage(ctx context.Context, leagueID, messageID int64, req ChatMessageRequest) (*ChatMessage, error) {
	var out ChatMessage
	if err := c.put(ctx, fmt.Sprintf("/betting-leagues/%d/chat/%d", leagueID, messageID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteChatMessage removes a message the user authored
func (c *Client) DeleteChatMessage(ctx context.Context, leagueID, messageID int64) error {
	return c.delete(ctx, fmt.Sprintf("/betting-leagues/%d/chat/%d", leagueID, messageID))
}
