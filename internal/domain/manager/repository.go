package manager

import "context"

// Repository exposes manager persistence operations.
type Repository interface {
	GetByID(ctx context.Context, managerID string) (Manager, bool, error)
	List(ctx context.Context) ([]Manager, error)
	Upsert(ctx context.Context, item Manager) error
}
