package transfer

import "context"

// Repository persists transfer history and the per-gameweek counters the
// settlement penalty is computed from. Counters reset when the gameweek
// advances.
type Repository interface {
	Record(ctx context.Context, item Transfer) error
	ListByManagerAndGameweek(ctx context.Context, managerID string, gameweek int) ([]Transfer, error)
	CountByGameweek(ctx context.Context, gameweek int) (map[string]int, error)
}
