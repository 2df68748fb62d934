package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/transfer"
)

type transferTableModel struct {
	ManagerID   string    `db:"manager_id"`
	Gameweek    int       `db:"gameweek"`
	OutPlayerID string    `db:"out_player_id"`
	InPlayerID  string    `db:"in_player_id"`
	Position    string    `db:"position"`
	AppliedAt   time.Time `db:"applied_at"`
}

type TransferRepository struct {
	db *sqlx.DB
}

func NewTransferRepository(db *sqlx.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Record(ctx context.Context, item transfer.Transfer) error {
	const query = `
INSERT INTO transfers (manager_id, gameweek, out_player_id, in_player_id, position, applied_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.ExecContext(ctx, query,
		item.ManagerID, item.Gameweek, item.OutPlayerID, item.InPlayerID,
		string(item.Position), item.AppliedAt,
	); err != nil {
		return fmt.Errorf("record transfer: %w", err)
	}
	return nil
}

func (r *TransferRepository) ListByManagerAndGameweek(ctx context.Context, managerID string, gameweek int) ([]transfer.Transfer, error) {
	const query = `
SELECT manager_id, gameweek, out_player_id, in_player_id, position, applied_at
FROM transfers
WHERE manager_id = $1 AND gameweek = $2
ORDER BY id`

	var rows []transferTableModel
	if err := r.db.SelectContext(ctx, &rows, query, managerID, gameweek); err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}

	out := make([]transfer.Transfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, transfer.Transfer{
			ManagerID:   row.ManagerID,
			Gameweek:    row.Gameweek,
			OutPlayerID: row.OutPlayerID,
			InPlayerID:  row.InPlayerID,
			Position:    player.Position(row.Position),
			AppliedAt:   row.AppliedAt,
		})
	}
	return out, nil
}

func (r *TransferRepository) CountByGameweek(ctx context.Context, gameweek int) (map[string]int, error) {
	const query = `
SELECT manager_id, COUNT(*) AS transfer_count
FROM transfers
WHERE gameweek = $1
GROUP BY manager_id`

	var rows []struct {
		ManagerID     string `db:"manager_id"`
		TransferCount int    `db:"transfer_count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, gameweek); err != nil {
		return nil, fmt.Errorf("count transfers: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.ManagerID] = row.TransferCount
	}
	return counts, nil
}
