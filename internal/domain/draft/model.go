package draft

import (
	"errors"
	"fmt"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/squad"
)

var (
	ErrNotStarted      = errors.New("draft has not started")
	ErrAlreadyStarted  = errors.New("draft already started")
	ErrAlreadyComplete = errors.New("draft already complete")
	ErrNotYourTurn     = errors.New("not your turn to pick")
	ErrTooFewManagers  = errors.New("draft needs at least two managers")
)

// Phase is the draft lifecycle: NotStarted -> InProgress -> Complete.
type Phase string

const (
	PhaseNotStarted Phase = "NOT_STARTED"
	PhaseInProgress Phase = "IN_PROGRESS"
	PhaseComplete   Phase = "COMPLETE"
)

// Pick is one entry in the append-only pick log.
type Pick struct {
	Index     int
	Round     int
	ManagerID string
	PlayerID  string
	PickedAt  time.Time
}

// State is the draft engine's state. The current picker is always derived
// from PickIndex and ManagerOrder, never stored.
type State struct {
	Phase        Phase
	ManagerOrder []string
	PickIndex    int
	Picks        []Pick
}

func NewState(managerOrder []string) (State, error) {
	if len(managerOrder) < 2 {
		return State{}, fmt.Errorf("%w: got %d", ErrTooFewManagers, len(managerOrder))
	}

	seen := make(map[string]struct{}, len(managerOrder))
	for _, id := range managerOrder {
		if id == "" {
			return State{}, fmt.Errorf("manager id in draft order cannot be empty")
		}
		if _, exists := seen[id]; exists {
			return State{}, fmt.Errorf("duplicate manager %s in draft order", id)
		}
		seen[id] = struct{}{}
	}

	return State{
		Phase:        PhaseInProgress,
		ManagerOrder: append([]string(nil), managerOrder...),
	}, nil
}

// TotalPicks is the number of picks the draft runs for: a full squad for
// every manager.
func (s State) TotalPicks() int {
	return squad.Size * len(s.ManagerOrder)
}

// Round returns the 1-based snake round of the current pick.
func (s State) Round() int {
	if len(s.ManagerOrder) == 0 {
		return 0
	}
	return s.PickIndex/len(s.ManagerOrder) + 1
}

// CurrentPicker derives whose turn it is from the pick index: rounds with an
// even 0-based index run ascending through the order, odd rounds descending.
func (s State) CurrentPicker() (string, bool) {
	if s.Phase != PhaseInProgress {
		return "", false
	}
	return PickerAt(s.ManagerOrder, s.PickIndex), true
}

// PickerAt resolves the snake order for an arbitrary 0-based pick index.
func PickerAt(order []string, index int) string {
	n := len(order)
	if n == 0 || index < 0 {
		return ""
	}
	round := index / n
	slot := index % n
	if round%2 == 0 {
		return order[slot]
	}
	return order[n-1-slot]
}
