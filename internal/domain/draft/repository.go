package draft

import "context"

// Repository persists the single league-wide draft state. RecordPick appends
// to the pick log, advances the pick index and applies the phase change in
// one call.
type Repository interface {
	Get(ctx context.Context) (State, bool, error)
	Put(ctx context.Context, state State) error
	RecordPick(ctx context.Context, pick Pick, nextPhase Phase) error
}
