package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second)
}

func TestLoginDecodesUserEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "hunter2", body["password"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token": "tok-123",
			"token_type": "bearer",
			"user": {"id": 7, "username": "alice", "email": "a@example.com", "points": 140}
		}`))
	})

	res, err := client.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", res.AccessToken)
	assert.Equal(t, int64(7), res.User.ID)
	assert.Equal(t, int64(140), res.User.Points)
}

func TestErrorCarriesFastAPIDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Incorrect username or password"}`))
	})

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Incorrect username or password", apiErr.Detail)
	assert.False(t, apiErr.IsNotFound())
}

func TestErrorFallsBackToRawBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"loc": ["body", "username"], "msg": "field required"}]}`))
	})

	_, err := client.UserByID(context.Background(), 7)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Detail, "field required")
}

func TestNotFoundIsDetectable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Game not found"}`))
	})

	_, err := client.GamesByIDs(context.Background(), []int64{99})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}

func TestMalformedSuccessBodyIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"points": "not-a-number"}`))
	})

	_, err := client.UserPoints(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestTimeParsesNaiveAndZonedStamps(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{`"2025-06-14T20:00:00"`, time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)},
		{`"2025-06-14T20:00:00.500000"`, time.Date(2025, 6, 14, 20, 0, 0, 500000000, time.UTC)},
		{`"2025-06-14T20:00:00Z"`, time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)},
		{`"2025-06-14T22:00:00+02:00"`, time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		var parsed Time
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &parsed), tc.raw)
		assert.True(t, parsed.Equal(tc.want), "raw %s parsed to %v", tc.raw, parsed.Time)
	}

	var bad Time
	assert.Error(t, json.Unmarshal([]byte(`"14.06.2025"`), &bad))
}

func TestPlaceBetReturnsAuthoritativeBudget(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bets/", r.URL.Path)

		var req BetRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.GameID)
		assert.Equal(t, "1", req.BetChoice, "the wire symbol the backend scores against game_winner")

		w.Write([]byte(`{
			"bet": {"id": 5, "user_id": 7, "game_id": 42, "bet_choice": "1", "bet_amount": 30, "bet_state": "editable"},
			"updated_budget": 70
		}`))
	})

	res, err := client.PlaceBet(context.Background(), BetRequest{
		UserID:    7,
		GameID:    42,
		BetChoice: ChoiceTeam1,
		BetAmount: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Bet.ID)
	assert.Equal(t, float64(70), res.UpdatedBudget)
	assert.True(t, res.Bet.Editable())
}

func TestGamesByIDsEncodesRepeatedQueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"3", "9"}, r.URL.Query()["game_ids"])
		w.Write([]byte(`[{"id": 3, "team1": "Lions", "team2": "Wolves", "match_time": "2025-06-14T20:00:00"}]`))
	})

	games, err := client.GamesByIDs(context.Background(), []int64{3, 9})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Lions", games[0].Team1)
	assert.False(t, games[0].Finished())
}

func TestJoinLeagueSendsInviteCodeAsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/betting-leagues/11/join/7", r.URL.Path)
		assert.Equal(t, "SECRET", r.URL.Query().Get("code"))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.JoinLeague(context.Background(), 11, 7, "SECRET"))
}

func TestLeagueMembershipAndCodeLookupPaths(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{}`))
	})

	ctx := context.Background()
	require.NoError(t, client.JoinLeague(ctx, 3, 7, ""))
	require.NoError(t, client.LeaveLeague(ctx, 3, 7))
	_, err := client.LeagueByCode(ctx, "ABC123")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /betting-leagues/3/join/7",
		"POST /betting-leagues/3/leave/7",
		"GET /betting-leagues/find-by-code/ABC123",
	}, calls)
}

func TestSideBetMutationPaths(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"id": 5, "side_bet_type": "champion", "bet_choice": "Lions"}`))
	})

	ctx := context.Background()
	_, err := client.PlaceSideBet(ctx, 7, 5, "Lions")
	require.NoError(t, err)
	_, err = client.UpdateSideBet(ctx, 7, 5, "Wolves")
	require.NoError(t, err)
	require.NoError(t, client.DeleteSideBet(ctx, 7, 5))

	assert.Equal(t, []string{
		"POST /side-bets/user/7/5",
		"PUT /side-bets/user/7/5",
		"DELETE /side-bets/user/7/5",
	}, calls)
}

func TestSideBetChoiceDecoding(t *testing.T) {
	champion := SideBet{BetChoice: json.RawMessage(`"Lions"`)}
	team, err := champion.ChoiceTeam()
	require.NoError(t, err)
	assert.Equal(t, "Lions", team)

	scorer := SideBet{BetChoice: json.RawMessage(`{"team": "Lions", "player": "Nia Okafor"}`)}
	pick, err := scorer.ChoiceTeamPlayer()
	require.NoError(t, err)
	assert.Equal(t, "Nia Okafor", pick.Player)

	qualifiers := SideBet{BetChoice: json.RawMessage(`{"1": "Lions", "2": "Wolves"}`)}
	slots, err := qualifiers.ChoiceSlots()
	require.NoError(t, err)
	assert.Equal(t, "Wolves", slots["2"])
}
