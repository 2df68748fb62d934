package transfer

import (
	"errors"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/player"
)

// ErrPositionMismatch rejects a swap whose incoming player does not cover
// the outgoing player's position.
var ErrPositionMismatch = errors.New("transfer position mismatch")

// Transfer is one applied in/out swap recorded against a (manager, gameweek).
type Transfer struct {
	ManagerID   string
	Gameweek    int
	OutPlayerID string
	InPlayerID  string
	Position    player.Position
	AppliedAt   time.Time
}

// PenaltyPointsPerStep is the escalation unit: the k-th transfer in a
// gameweek costs 2k points.
const PenaltyPointsPerStep = 2

// PenaltyPoints returns the total deduction for count transfers within one
// gameweek: sum of 2k for k=1..count.
func PenaltyPoints(count int) int {
	if count <= 0 {
		return 0
	}
	return PenaltyPointsPerStep * count * (count + 1) / 2
}
