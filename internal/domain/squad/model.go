package squad

import (
	"errors"
	"fmt"

	"github.com/openfantasy/draft-league/internal/domain/player"
)

var (
	ErrPlayerAlreadyOwned  = errors.New("player already owned by another squad")
	ErrPlayerNotInSquad    = errors.New("player is not in squad")
	ErrPositionQuotaFull   = errors.New("position quota exceeded")
	ErrDuplicatePlayer     = errors.New("duplicate player in squad")
	ErrSquadIncomplete     = errors.New("squad has not reached full size")
	ErrUnknownPosition     = errors.New("unknown player position")
	ErrPositionQuotaBroken = errors.New("squad does not satisfy position quota")
)

const Size = 15

// Quota is the exact per-position composition a draft-complete squad must
// satisfy: 2 GK, 5 DEF, 5 MID, 3 FWD.
var Quota = map[player.Position]int{
	player.PositionGoalkeeper: 2,
	player.PositionDefender:   5,
	player.PositionMidfielder: 5,
	player.PositionForward:    3,
}

// Member is one owned player reference inside a squad. Position is
// denormalized so quota checks never need a pool lookup.
type Member struct {
	PlayerID string
	Position player.Position
}

// Squad is one manager's full roster for the season.
type Squad struct {
	ManagerID string
	Members   []Member
}

func (s Squad) Contains(playerID string) bool {
	for _, m := range s.Members {
		if m.PlayerID == playerID {
			return true
		}
	}
	return false
}

func (s Squad) CountByPosition() map[player.Position]int {
	counts := make(map[player.Position]int, len(Quota))
	for _, m := range s.Members {
		counts[m.Position]++
	}
	return counts
}

func (s Squad) IsComplete() bool {
	return len(s.Members) == Size
}

// CanAdd reports whether adding a player of the given position keeps the
// squad within its remaining quota slots.
func (s Squad) CanAdd(pos player.Position) error {
	if _, ok := player.AllPositions[pos]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPosition, pos)
	}
	if s.CountByPosition()[pos] >= Quota[pos] {
		return fmt.Errorf("%w: manager=%s position=%s max=%d", ErrPositionQuotaFull, s.ManagerID, pos, Quota[pos])
	}
	return nil
}

// ValidateComplete checks the 2/5/5/3 invariant on a full squad.
func (s Squad) ValidateComplete() error {
	if len(s.Members) != Size {
		return fmt.Errorf("%w: manager=%s size=%d want=%d", ErrSquadIncomplete, s.ManagerID, len(s.Members), Size)
	}

	seen := make(map[string]struct{}, len(s.Members))
	for _, m := range s.Members {
		if _, exists := seen[m.PlayerID]; exists {
			return fmt.Errorf("%w: manager=%s player=%s", ErrDuplicatePlayer, s.ManagerID, m.PlayerID)
		}
		seen[m.PlayerID] = struct{}{}
	}

	counts := s.CountByPosition()
	for pos, want := range Quota {
		if counts[pos] != want {
			return fmt.Errorf("%w: manager=%s position=%s have=%d want=%d", ErrPositionQuotaBroken, s.ManagerID, pos, counts[pos], want)
		}
	}

	return nil
}
