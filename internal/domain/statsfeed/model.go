package statsfeed

import (
	"time"

	"github.com/openfantasy/draft-league/internal/domain/player"
)

// Snapshot is one materialized statistics document as produced by the
// nightly feed. It is replaced wholesale on every ingestion cycle; readers
// always see either the prior or the new complete document.
type Snapshot struct {
	UpdatedAt time.Time
	Season    string
	League    string
	// Note explains a degenerate document, e.g. a missing feed credential.
	Note    string
	Players []player.Player
}

// IsEmpty reports a valid but degenerate snapshot with no player records.
func (s Snapshot) IsEmpty() bool {
	return len(s.Players) == 0
}
