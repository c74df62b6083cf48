package bets

import (
	"sync"
	"time"

	"betleague/fetch"
)

// viewState is the per-user state behind one /bets message. The match day
// lives in a fetch.Resource so a slow day switch can never overwrite a
// newer one.
type viewState struct {
	UserID       int64 // platform user ID
	Dates        []string
	Day          *fetch.Resource[*DayState]
	SelectedGame int64
	Timestamp    time.Time
}

// day returns the loaded match day, or nil while none is ready
func (v *viewState) day() *DayState {
	if v.Day == nil {
		return nil
	}
	day, status := v.Day.Get()
	if status != fetch.StatusReady {
		return nil
	}
	return day
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

// getViewState retrieves the view state for a Discord user
func getViewState(discordID int64) *viewState {
	viewStatesMu.RLock()
	defer viewStatesMu.RUnlock()
	return viewStates[discordID]
}

// putViewState stores the view state for a Discord user
func putViewState(discordID int64, state *viewState) {
	state.Timestamp = time.Now()

	viewStatesMu.Lock()
	viewStates[discordID] = state
	viewStatesMu.Unlock()

	cleanupViewStates()
}
