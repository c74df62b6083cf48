package sidebets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offeredTeams() []string {
	teams := make([]string, 0, 10)
	for n := 1; n <= 10; n++ {
		teams = append(teams, fmt.Sprintf("Team %d", n))
	}
	return teams
}

func TestAssignMovesTeamBetweenPoolAndSlots(t *testing.T) {
	a := NewAssignment(offeredTeams())
	assert.Len(t, a.Available(), 10)

	require.NoError(t, a.Assign(1, "Team 3"))
	assert.Equal(t, "Team 3", a.Team(1))
	assert.Len(t, a.Available(), 9)
	assert.NotContains(t, a.Available(), "Team 3")

	// Moving the team to another slot frees the first one
	require.NoError(t, a.Assign(5, "Team 3"))
	assert.Empty(t, a.Team(1))
	assert.Equal(t, "Team 3", a.Team(5))
	assert.Len(t, a.Available(), 9, "a team never occupies two slots")
}

func TestAssignRejectsOccupiedSlot(t *testing.T) {
	a := NewAssignment(offeredTeams())
	require.NoError(t, a.Assign(2, "Team 1"))

	// No swap: the occupant stays and the incoming team stays in the pool
	assert.Error(t, a.Assign(2, "Team 2"))
	assert.Equal(t, "Team 1", a.Team(2))
	assert.Contains(t, a.Available(), "Team 2")

	// Reassigning the occupant to its own slot is a no-op, not a conflict
	require.NoError(t, a.Assign(2, "Team 1"))
	assert.Equal(t, "Team 1", a.Team(2))

	a.ClearSlot(2)
	require.NoError(t, a.Assign(2, "Team 2"))
	assert.Equal(t, "Team 2", a.Team(2))
	assert.Contains(t, a.Available(), "Team 1")
}

func TestAssignRejectsBadInput(t *testing.T) {
	a := NewAssignment(offeredTeams())
	assert.Error(t, a.Assign(0, "Team 1"))
	assert.Error(t, a.Assign(9, "Team 1"))
	assert.Error(t, a.Assign(1, "Nobody FC"))
	assert.Len(t, a.Available(), 10)
}

func TestCompleteRequiresAllEightSlots(t *testing.T) {
	a := NewAssignment(offeredTeams())
	for slot := 1; slot <= 7; slot++ {
		require.NoError(t, a.Assign(slot, fmt.Sprintf("Team %d", slot)))
	}
	assert.False(t, a.Complete(), "seven slots are not enough")

	require.NoError(t, a.Assign(8, "Team 8"))
	assert.True(t, a.Complete())
	assert.Len(t, a.Available(), 2)

	a.ClearSlot(4)
	assert.False(t, a.Complete())
	assert.Contains(t, a.Available(), "Team 4")
}

func TestChoicePayloadShape(t *testing.T) {
	a := NewAssignment(offeredTeams())
	require.NoError(t, a.Assign(1, "Team 9"))
	require.NoError(t, a.Assign(8, "Team 2"))

	choice := a.Choice()
	assert.Equal(t, map[string]string{"1": "Team 9", "8": "Team 2"}, choice)
}

func TestLoadRoundTripsAndIgnoresGarbage(t *testing.T) {
	a := NewAssignment(offeredTeams())
	a.Load(map[string]string{
		"1":    "Team 5",
		"3":    "Team 1",
		"nope": "Team 2",
		"12":   "Team 3",
		"4":    "Nobody FC",
	})

	assert.Equal(t, "Team 5", a.Team(1))
	assert.Equal(t, "Team 1", a.Team(3))
	assert.Empty(t, a.Team(4))
	assert.Equal(t, map[string]string{"1": "Team 5", "3": "Team 1"}, a.Choice())

	a.Reset()
	assert.Empty(t, a.Choice())
	assert.Len(t, a.Available(), 10)
}
