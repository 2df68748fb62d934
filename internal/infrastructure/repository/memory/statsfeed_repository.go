package memory

import (
	"context"
	"sync"

	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/statsfeed"
)

type StatsFeedRepository struct {
	mu       sync.RWMutex
	snapshot statsfeed.Snapshot
	exists   bool
}

func NewStatsFeedRepository() *StatsFeedRepository {
	return &StatsFeedRepository{}
}

func (r *StatsFeedRepository) Get(_ context.Context) (statsfeed.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.exists {
		return statsfeed.Snapshot{}, false, nil
	}
	return cloneSnapshot(r.snapshot), true, nil
}

func (r *StatsFeedRepository) Put(_ context.Context, snapshot statsfeed.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshot = cloneSnapshot(snapshot)
	r.exists = true
	return nil
}

func cloneSnapshot(snapshot statsfeed.Snapshot) statsfeed.Snapshot {
	snapshot.Players = append([]player.Player(nil), snapshot.Players...)
	return snapshot
}
