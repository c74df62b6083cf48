package sidebets

import (
	"sync"
	"time"

	"betleague/api"
)

// viewState is the per-user state behind one /side-bets message
type viewState struct {
	UserID     int64
	Offered    []api.SideBet
	Picks      map[int64]api.SideBet // keyed by side bet ID
	Current    int64                 // opened side bet, 0 on the overview
	ScorerTeam string                // chosen team while picking a player
	Qualifiers *Assignment
	QualSlot   int
	Timestamp  time.Time
}

func (v *viewState) currentSideBet() *api.SideBet {
	for idx := range v.Offered {
		if v.Offered[idx].ID == v.Current {
			return &v.Offered[idx]
		}
	}
	return nil
}

func (v *viewState) pickFor(sideBetID int64) *api.SideBet {
	if pick, ok := v.Picks[sideBetID]; ok {
		return &pick
	}
	return nil
}

var (
	viewStates   = make(map[int64]*viewState)
	viewStatesMu sync.RWMutex
)

// cleanupViewStates removes states older than 1 hour
func cleanupViewStates() {
	viewStatesMu.Lock()
	defer viewStatesMu.Unlock()

	now := time.Now()
	for discordID, state := range viewStates {
		if now.Sub(state.Timestamp) > time.Hour {
			delete(viewStates, discordID)
		}
	}
}

func getViewState(discordID int64) *viewState {
	viewStatesMu.RLock()
	defer viewStatesMu.RUnlock()
	return viewStates[discordID]
}

func putViewState(discordID int64, state *viewState) {
	state.Timestamp = time.Now()

	viewStatesMu.Lock()
	viewStates[discordID] = state
	viewStatesMu.Unlock()

	cleanupViewStates()
}
