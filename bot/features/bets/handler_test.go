package bets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"betleague/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeature(t *testing.T, handler http.HandlerFunc) *Feature {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &Feature{client: api.New(server.URL, 5*time.Second)}
}

func TestLoadDayMergesAllSlices(t *testing.T) {
	f := newTestFeature(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/games/upcoming/by-date/"):
			w.Write([]byte(`[{"id": 1, "team1": "Lions", "team2": "Wolves", "match_time": "2025-06-14T20:00:00"}]`))
		case strings.HasPrefix(r.URL.Path, "/bets/user/"):
			w.Write([]byte(`[{"id": 10, "user_id": 7, "game_id": 1, "bet_choice": "1", "bet_amount": 30, "bet_state": "editable"}]`))
		case strings.Contains(r.URL.Path, "/gameday_budget/"):
			w.Write([]byte(`{"budget": 70}`))
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	})

	day, err := f.loadDay(context.Background(), 7, "2025-06-14")
	require.NoError(t, err)
	assert.Len(t, day.Games, 1)
	assert.Len(t, day.Bets, 1)
	assert.Equal(t, float64(70), day.Budget)
}

func TestLoadDayDegradesFailedSlices(t *testing.T) {
	f := newTestFeature(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/games/upcoming/by-date/"):
			w.Write([]byte(`[{"id": 1, "team1": "Lions", "team2": "Wolves", "match_time": "2025-06-14T20:00:00"}]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail": "boom"}`))
		}
	})

	// Bets and budget fail; the day still renders with empty bets and budget 0
	day, err := f.loadDay(context.Background(), 7, "2025-06-14")
	require.NoError(t, err)
	assert.Len(t, day.Games, 1)
	assert.Empty(t, day.Bets)
	assert.Equal(t, float64(0), day.Budget)
}

func TestLoadDayFailsOnlyWhenNothingLoads(t *testing.T) {
	f := newTestFeature(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "boom"}`))
	})

	_, err := f.loadDay(context.Background(), 7, "2025-06-14")
	assert.Error(t, err)
}
