package memory

import (
	"context"
	"sync"

	"github.com/openfantasy/draft-league/internal/domain/transfer"
)

type TransferRepository struct {
	mu    sync.RWMutex
	items []transfer.Transfer
}

func NewTransferRepository() *TransferRepository {
	return &TransferRepository{}
}

func (r *TransferRepository) Record(_ context.Context, item transfer.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, item)
	return nil
}

func (r *TransferRepository) ListByManagerAndGameweek(_ context.Context, managerID string, gameweek int) ([]transfer.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]transfer.Transfer, 0)
	for _, item := range r.items {
		if item.ManagerID == managerID && item.Gameweek == gameweek {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *TransferRepository) CountByGameweek(_ context.Context, gameweek int) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, item := range r.items {
		if item.Gameweek == gameweek {
			counts[item.ManagerID]++
		}
	}

	return counts, nil
}
