package lineup

import (
	"errors"
	"time"
)

var (
	// ErrInvalidFormation marks any broken lineup composition constraint;
	// the wrapped message names the slot that failed.
	ErrInvalidFormation = errors.New("invalid formation")
	// ErrMissing is returned at settlement when a manager never submitted
	// a lineup and the league requires one.
	ErrMissing = errors.New("lineup missing")
)

// Formation slot counts: 1 GK, 4 DEF, 4 MID, 2 FWD plus one flex slot
// fillable by any outfield player, 12 starters in total.
const (
	StarterSize     = 12
	DefenderSlots   = 4
	MidfielderSlots = 4
	ForwardSlots    = 2
)

// Lineup is one manager's starters for one gameweek. Once the gameweek
// settles the record is frozen.
type Lineup struct {
	ManagerID     string
	Gameweek      int
	GoalkeeperID  string
	DefenderIDs   []string
	MidfielderIDs []string
	ForwardIDs    []string
	FlexID        string
	CaptainID     string
	SubmittedAt   time.Time
}

// StarterIDs returns all starters in slot order.
func (l Lineup) StarterIDs() []string {
	out := make([]string, 0, StarterSize)
	out = append(out, l.GoalkeeperID)
	out = append(out, l.DefenderIDs...)
	out = append(out, l.MidfielderIDs...)
	out = append(out, l.ForwardIDs...)
	out = append(out, l.FlexID)
	return out
}

func (l Lineup) ContainsStarter(playerID string) bool {
	for _, id := range l.StarterIDs() {
		if id == playerID {
			return true
		}
	}
	return false
}
