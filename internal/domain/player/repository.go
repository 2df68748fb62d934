package player

import "context"

// Repository exposes the league-wide player pool.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	List(ctx context.Context) ([]Player, error)
	ReplaceAll(ctx context.Context, players []Player) error
}
