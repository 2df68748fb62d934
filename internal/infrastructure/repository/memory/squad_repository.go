package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/openfantasy/draft-league/internal/domain/squad"
)

// SquadRepository keeps every squad plus the league-wide ownership index
// (player id -> owning manager id). Both change under one lock so a squad
// and the index can never disagree.
type SquadRepository struct {
	mu     sync.RWMutex
	squads map[string]squad.Squad
	owners map[string]string
}

func NewSquadRepository() *SquadRepository {
	return &SquadRepository{
		squads: make(map[string]squad.Squad),
		owners: make(map[string]string),
	}
}

func (r *SquadRepository) GetByManager(_ context.Context, managerID string) (squad.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.squads[managerID]
	if !ok {
		return squad.Squad{}, false, nil
	}
	return cloneSquad(item), true, nil
}

func (r *SquadRepository) List(_ context.Context) ([]squad.Squad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]squad.Squad, 0, len(r.squads))
	for _, item := range r.squads {
		out = append(out, cloneSquad(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ManagerID < out[j].ManagerID })

	return out, nil
}

func (r *SquadRepository) OwnerOf(_ context.Context, playerID string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[playerID]
	return owner, ok, nil
}

func (r *SquadRepository) AddMember(_ context.Context, managerID string, member squad.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, owned := r.owners[member.PlayerID]; owned {
		return fmt.Errorf("%w: player=%s owner=%s", squad.ErrPlayerAlreadyOwned, member.PlayerID, owner)
	}

	item := r.squads[managerID]
	item.ManagerID = managerID
	item.Members = append(item.Members, member)
	r.squads[managerID] = item
	r.owners[member.PlayerID] = managerID

	return nil
}

func (r *SquadRepository) SwapMember(_ context.Context, managerID string, out, in squad.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.squads[managerID]
	if !ok {
		return fmt.Errorf("%w: player=%s manager=%s", squad.ErrPlayerNotInSquad, out.PlayerID, managerID)
	}
	if owner, owned := r.owners[in.PlayerID]; owned {
		return fmt.Errorf("%w: player=%s owner=%s", squad.ErrPlayerAlreadyOwned, in.PlayerID, owner)
	}

	replaced := false
	members := make([]squad.Member, 0, len(item.Members))
	for _, m := range item.Members {
		if m.PlayerID == out.PlayerID {
			members = append(members, in)
			replaced = true
			continue
		}
		members = append(members, m)
	}
	if !replaced {
		return fmt.Errorf("%w: player=%s manager=%s", squad.ErrPlayerNotInSquad, out.PlayerID, managerID)
	}

	item.Members = members
	r.squads[managerID] = item
	delete(r.owners, out.PlayerID)
	r.owners[in.PlayerID] = managerID

	return nil
}

func cloneSquad(item squad.Squad) squad.Squad {
	members := make([]squad.Member, 0, len(item.Members))
	members = append(members, item.Members...)
	item.Members = members
	return item
}
