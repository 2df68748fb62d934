package statsfeed

import "context"

// Repository stores the current statistics snapshot. Put swaps the whole
// document atomically; Get never observes a partially applied update.
type Repository interface {
	Get(ctx context.Context) (Snapshot, bool, error)
	Put(ctx context.Context, snapshot Snapshot) error
}
