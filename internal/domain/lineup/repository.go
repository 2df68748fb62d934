package lineup

import "context"

// Repository exposes lineup persistence per (manager, gameweek).
type Repository interface {
	GetByManagerAndGameweek(ctx context.Context, managerID string, gameweek int) (Lineup, bool, error)
	ListByGameweek(ctx context.Context, gameweek int) ([]Lineup, error)
	Upsert(ctx context.Context, item Lineup) error
}
