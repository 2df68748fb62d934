package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openfantasy/draft-league/internal/domain/manager"
)

type ManagerRepository struct {
	mu    sync.RWMutex
	items map[string]manager.Manager
}

func NewManagerRepository(managers []manager.Manager) *ManagerRepository {
	items := make(map[string]manager.Manager, len(managers))
	for _, m := range managers {
		items[m.ID] = m
	}

	return &ManagerRepository{items: items}
}

func (r *ManagerRepository) GetByID(_ context.Context, managerID string) (manager.Manager, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[managerID]
	return item, ok, nil
}

func (r *ManagerRepository) List(_ context.Context) ([]manager.Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]manager.Manager, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *ManagerRepository) Upsert(_ context.Context, item manager.Manager) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}
