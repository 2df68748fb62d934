package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/openfantasy/draft-league/internal/domain/gameweek"
)

// GameweekRepository holds the league cursor and the immutable settlement
// log. Advance applies the settlement and the new cursor under one lock, so
// a half-advanced league is never observable.
type GameweekRepository struct {
	mu          sync.RWMutex
	state       gameweek.State
	settlements map[int]gameweek.Settlement
	lastSettled int
}

func NewGameweekRepository() *GameweekRepository {
	return &GameweekRepository{
		state:       gameweek.State{Phase: gameweek.PhaseSetup},
		settlements: make(map[int]gameweek.Settlement),
	}
}

func (r *GameweekRepository) GetState(_ context.Context) (gameweek.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state, nil
}

func (r *GameweekRepository) PutState(_ context.Context, state gameweek.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = state
	return nil
}

func (r *GameweekRepository) GetSettlement(_ context.Context, gw int) (gameweek.Settlement, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.settlements[gw]
	if !ok {
		return gameweek.Settlement{}, false, nil
	}
	return cloneSettlement(item), true, nil
}

func (r *GameweekRepository) ListSettlements(_ context.Context) ([]gameweek.Settlement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Settlement, 0, len(r.settlements))
	for _, item := range r.settlements {
		out = append(out, cloneSettlement(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Gameweek < out[j].Gameweek })

	return out, nil
}

func (r *GameweekRepository) Advance(_ context.Context, settlement gameweek.Settlement, next gameweek.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if settlement.Gameweek <= r.lastSettled {
		return fmt.Errorf("%w: gameweek=%d last_settled=%d", gameweek.ErrAlreadyAdvanced, settlement.Gameweek, r.lastSettled)
	}

	r.settlements[settlement.Gameweek] = cloneSettlement(settlement)
	r.lastSettled = settlement.Gameweek
	r.state = next
	return nil
}

func cloneSettlement(item gameweek.Settlement) gameweek.Settlement {
	item.Results = append([]gameweek.ManagerResult(nil), item.Results...)
	baselines := make(map[string]float64, len(item.PlayerBaselines))
	for id, points := range item.PlayerBaselines {
		baselines[id] = points
	}
	item.PlayerBaselines = baselines
	return item
}
