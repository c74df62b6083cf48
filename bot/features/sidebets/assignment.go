package sidebets

import (
	"fmt"
	"strconv"

	"betleague/bot/common"
)

// Assignment is the in-progress pick for a qualifiers side bet: eight slots
// to be filled from the offered teams. A team sits in at most one slot; the
// pool is always the offered teams minus the assigned ones.
type Assignment struct {
	teams []string
	slots [common.QualifierSlots]string
}

// NewAssignment creates an empty assignment over the offered teams
func NewAssignment(teams []string) *Assignment {
	return &Assignment{teams: teams}
}

// Load seeds the slots from a previously submitted choice. Unknown teams and
// out-of-range slots are ignored.
func (a *Assignment) Load(choice map[string]string) {
	for key, team := range choice {
		slot, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		// Assign also enforces the team is actually offered
		_ = a.Assign(slot, team)
	}
}

// Assign puts a team into a slot. The team leaves any slot it held before.
// An occupied target slot rejects the assignment rather than swapping; it
// has to be cleared first.
func (a *Assignment) Assign(slot int, team string) error {
	if slot < 1 || slot > common.QualifierSlots {
		return fmt.Errorf("slot %d out of range", slot)
	}
	if !a.offered(team) {
		return fmt.Errorf("team %q is not offered", team)
	}
	if occupant := a.slots[slot-1]; occupant != "" && occupant != team {
		return fmt.Errorf("slot %d is taken by %q", slot, occupant)
	}

	for idx := range a.slots {
		if a.slots[idx] == team {
			a.slots[idx] = ""
		}
	}
	a.slots[slot-1] = team
	return nil
}

// ClearSlot empties a slot, returning its team to the pool
func (a *Assignment) ClearSlot(slot int) {
	if slot >= 1 && slot <= common.QualifierSlots {
		a.slots[slot-1] = ""
	}
}

// Reset empties every slot
func (a *Assignment) Reset() {
	a.slots = [common.QualifierSlots]string{}
}

// Team returns the team in a slot, or an empty string
func (a *Assignment) Team(slot int) string {
	if slot < 1 || slot > common.QualifierSlots {
		return ""
	}
	return a.slots[slot-1]
}

// Available returns the offered teams not assigned to any slot, in the
// offered order
func (a *Assignment) Available() []string {
	assigned := make(map[string]bool, common.QualifierSlots)
	for _, team := range a.slots {
		if team != "" {
			assigned[team] = true
		}
	}

	var available []string
	for _, team := range a.teams {
		if !assigned[team] {
			available = append(available, team)
		}
	}
	return available
}

// Complete reports whether all eight slots are filled
func (a *Assignment) Complete() bool {
	for _, team := range a.slots {
		if team == "" {
			return false
		}
	}
	return true
}

// Choice returns the submission payload, mapping slot numbers "1" through
// "8" to team names. Only filled slots appear.
func (a *Assignment) Choice() map[string]string {
	choice := make(map[string]string)
	for idx, team := range a.slots {
		if team != "" {
			choice[strconv.Itoa(idx+1)] = team
		}
	}
	return choice
}

func (a *Assignment) offered(team string) bool {
	for _, offered := range a.teams {
		if offered == team {
			return true
		}
	}
	return false
}
