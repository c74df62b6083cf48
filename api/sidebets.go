package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// Side bet kinds offered by the backend
const (
	SideBetChampion    = "champion"
	SideBetTopScorer   = "top_scorer"
	SideBetTopAssister = "top_assister"
	SideBetQualifiers  = "qualifiers"
)

// SideBet is a season-long special bet. Options and BetChoice are kept raw
// because their shape depends on the kind: a bare team name for champion
// picks, a team/player pair for scorer and assister picks, and a
// slot-to-team map for qualifier picks. BetChoice is only present on records
// from the user endpoints.
type SideBet struct {
	ID            int64           `json:"id"`
	SideBetType   string          `json:"side_bet_type"`
	Question      string          `json:"question"`
	LastTimeToBet Time            `json:"last_time_to_bet"`
	Reward        int64           `json:"reward"`
	BetState      string          `json:"bet_state"`
	Options       json.RawMessage `json:"options"`
	BetChoice     json.RawMessage `json:"bet_choice"`
}

// OptionTeams decodes the offered team list for champion and qualifier bets
func (s *SideBet) OptionTeams() ([]string, error) {
	var teams []string
	if err := json.Unmarshal(s.Options, &teams); err != nil {
		return nil, fmt.Errorf("decode team options: %w", err)
	}
	return teams, nil
}

// OptionTeamPlayers decodes the offered players per team for scorer and
// assister bets
func (s *SideBet) OptionTeamPlayers() (map[string][]string, error) {
	var players map[string][]string
	if err := json.Unmarshal(s.Options, &players); err != nil {
		return nil, fmt.Errorf("decode player options: %w", err)
	}
	return players, nil
}

// Editable reports whether the side bet deadline has not locked it yet
func (s *SideBet) Editable() bool {
	return s.BetState != BetStateLocked
}

// TeamPlayerChoice is the decoded pick for scorer and assister side bets
type TeamPlayerChoice struct {
	Team   string `json:"team"`
	Player string `json:"player"`
}

// ChoiceTeam decodes a champion pick
func (s *SideBet) ChoiceTeam() (string, error) {
	var team string
	if err := json.Unmarshal(s.BetChoice, &team); err != nil {
		return "", fmt.Errorf("decode champion choice: %w", err)
	}
	return team, nil
}

// ChoiceTeamPlayer decodes a scorer or assister pick
func (s *SideBet) ChoiceTeamPlayer() (TeamPlayerChoice, error) {
	var choice TeamPlayerChoice
	if err := json.Unmarshal(s.BetChoice, &choice); err != nil {
		return TeamPlayerChoice{}, fmt.Errorf("decode team/player choice: %w", err)
	}
	return choice, nil
}

// ChoiceSlots decodes a qualifier pick, mapping slot numbers "1" through "8"
// to team names
func (s *SideBet) ChoiceSlots() (map[string]string, error) {
	var slots map[string]string
	if err := json.Unmarshal(s.BetChoice, &slots); err != nil {
		return nil, fmt.Errorf("decode qualifier choice: %w", err)
	}
	return slots, nil
}

type sideBetChoiceRequest struct {
	BetChoice any `json:"bet_choice"`
}

// SideBets fetches all side bets offered this season
func (c *Client) SideBets(ctx context.Context) ([]SideBet, error) {
	var out []SideBet
	if err := c.get(ctx, "/side-bets/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserSideBets fetches the side bets the user has placed
func (c *Client) UserSideBets(ctx context.Context, userID int64) ([]SideBet, error) {
	var out []SideBet
	if err := c.get(ctx, fmt.Sprintf("/side-bets/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlaceSideBet records the user's pick for a side bet. The choice shape must
// match the side bet kind; the backend stores it verbatim.
func (c *Client) PlaceSideBet(ctx context.Context, userID, sideBetID int64, choice any) (*SideBet, error) {
	var out SideBet
	path := fmt.Sprintf("/side-bets/user/%d/%d", userID, sideBetID)
	if err := c.post(ctx, path, sideBetChoiceRequest{BetChoice: choice}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSideBet replaces the user's pick for a side bet
func (c *Client) UpdateSideBet(ctx context.Context, userID, sideBetID int64, choice any) (*SideBet, error) {
	var out SideBet
	path := fmt.Sprintf("/side-bets/user/%d/%d", userID, sideBetID)
	if err := c.put(ctx, path, sideBetChoiceRequest{BetChoice: choice}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSideBet withdraws the user's pick for a side bet
func (c *Client) DeleteSideBet(ctx context.Context, userID, sideBetID int64) error {
	return c.delete(ctx, fmt.Sprintf("/side-bets/user/%d/%d", userID, sideBetID))
}
