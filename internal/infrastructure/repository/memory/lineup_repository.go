package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openfantasy/draft-league/internal/domain/lineup"
)

type lineupKey struct {
	managerID string
	gameweek  int
}

type LineupRepository struct {
	mu    sync.RWMutex
	items map[lineupKey]lineup.Lineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[lineupKey]lineup.Lineup)}
}

func (r *LineupRepository) GetByManagerAndGameweek(_ context.Context, managerID string, gameweek int) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[lineupKey{managerID: managerID, gameweek: gameweek}]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return cloneLineup(item), true, nil
}

func (r *LineupRepository) ListByGameweek(_ context.Context, gameweek int) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Lineup, 0, len(r.items))
	for key, item := range r.items {
		if key.gameweek != gameweek {
			continue
		}
		out = append(out, cloneLineup(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ManagerID < out[j].ManagerID })

	return out, nil
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[lineupKey{managerID: item.ManagerID, gameweek: item.Gameweek}] = cloneLineup(item)
	return nil
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	item.DefenderIDs = append([]string(nil), item.DefenderIDs...)
	item.MidfielderIDs = append([]string(nil), item.MidfielderIDs...)
	item.ForwardIDs = append([]string(nil), item.ForwardIDs...)
	return item
}
