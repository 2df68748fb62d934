package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/openfantasy/draft-league/internal/domain/lineup"
)

type lineupTableModel struct {
	ManagerID     string         `db:"manager_id"`
	Gameweek      int            `db:"gameweek"`
	GoalkeeperID  string         `db:"goalkeeper_id"`
	DefenderIDs   pq.StringArray `db:"defender_ids"`
	MidfielderIDs pq.StringArray `db:"midfielder_ids"`
	ForwardIDs    pq.StringArray `db:"forward_ids"`
	FlexID        string         `db:"flex_id"`
	CaptainID     string         `db:"captain_id"`
	SubmittedAt   time.Time      `db:"submitted_at"`
}

func lineupFromRow(row lineupTableModel) lineup.Lineup {
	return lineup.Lineup{
		ManagerID:     row.ManagerID,
		Gameweek:      row.Gameweek,
		GoalkeeperID:  row.GoalkeeperID,
		DefenderIDs:   append([]string(nil), row.DefenderIDs...),
		MidfielderIDs: append([]string(nil), row.MidfielderIDs...),
		ForwardIDs:    append([]string(nil), row.ForwardIDs...),
		FlexID:        row.FlexID,
		CaptainID:     row.CaptainID,
		SubmittedAt:   row.SubmittedAt,
	}
}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

const lineupSelectColumns = `manager_id, gameweek, goalkeeper_id, defender_ids, midfielder_ids, forward_ids, flex_id, captain_id, submitted_at`

func (r *LineupRepository) GetByManagerAndGameweek(ctx context.Context, managerID string, gameweek int) (lineup.Lineup, bool, error) {
	query := `SELECT ` + lineupSelectColumns + ` FROM lineups WHERE manager_id = $1 AND gameweek = $2`

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, managerID, gameweek); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	return lineupFromRow(row), true, nil
}

func (r *LineupRepository) ListByGameweek(ctx context.Context, gameweek int) ([]lineup.Lineup, error) {
	query := `SELECT ` + lineupSelectColumns + ` FROM lineups WHERE gameweek = $1 ORDER BY manager_id`

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, gameweek); err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}

	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineupFromRow(row))
	}
	return out, nil
}

func (r *LineupRepository) Upsert(ctx context.Context, item lineup.Lineup) error {
	const query = `
INSERT INTO lineups (manager_id, gameweek, goalkeeper_id, defender_ids, midfielder_ids, forward_ids, flex_id, captain_id, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (manager_id, gameweek) DO UPDATE SET
  goalkeeper_id = EXCLUDED.goalkeeper_id,
  defender_ids = EXCLUDED.defender_ids,
  midfielder_ids = EXCLUDED.midfielder_ids,
  forward_ids = EXCLUDED.forward_ids,
  flex_id = EXCLUDED.flex_id,
  captain_id = EXCLUDED.captain_id,
  submitted_at = EXCLUDED.submitted_at`

	if _, err := r.db.ExecContext(ctx, query,
		item.ManagerID, item.Gameweek, item.GoalkeeperID,
		pq.StringArray(item.DefenderIDs), pq.StringArray(item.MidfielderIDs), pq.StringArray(item.ForwardIDs),
		item.FlexID, item.CaptainID, item.SubmittedAt,
	); err != nil {
		return fmt.Errorf("upsert lineup: %w", err)
	}
	return nil
}
