package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/openfantasy/draft-league/internal/domain/gameweek"
)

// GameweekRepository keeps the single league_state row, the settlements log
// and per-settlement results. The player baselines document is a jsonb blob:
// it is only ever read wholesale by the next settlement.
type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

type settlementRow struct {
	Gameweek  int       `db:"gameweek"`
	Baselines []byte    `db:"player_baselines"`
	SettledAt time.Time `db:"settled_at"`
}

type settlementResultRow struct {
	Gameweek        int     `db:"gameweek"`
	ManagerID       string  `db:"manager_id"`
	GrossPoints     float64 `db:"gross_points"`
	TransferPenalty int     `db:"transfer_penalty"`
	NetPoints       float64 `db:"net_points"`
	CaptainID       string  `db:"captain_id"`
}

func (r *GameweekRepository) GetState(ctx context.Context) (gameweek.State, error) {
	const query = `SELECT phase, current_gameweek FROM league_state WHERE id = 1`

	var row struct {
		Phase           string `db:"phase"`
		CurrentGameweek int    `db:"current_gameweek"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return gameweek.State{Phase: gameweek.PhaseSetup}, nil
		}
		return gameweek.State{}, fmt.Errorf("get league state: %w", err)
	}

	return gameweek.State{Phase: gameweek.Phase(row.Phase), Current: row.CurrentGameweek}, nil
}

func (r *GameweekRepository) PutState(ctx context.Context, state gameweek.State) error {
	const query = `
INSERT INTO league_state (id, phase, current_gameweek)
VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET phase = EXCLUDED.phase, current_gameweek = EXCLUDED.current_gameweek`

	if _, err := r.db.ExecContext(ctx, query, string(state.Phase), state.Current); err != nil {
		return fmt.Errorf("put league state: %w", err)
	}
	return nil
}

func (r *GameweekRepository) GetSettlement(ctx context.Context, gw int) (gameweek.Settlement, bool, error) {
	const query = `SELECT gameweek, player_baselines, settled_at FROM settlements WHERE gameweek = $1`

	var row settlementRow
	if err := r.db.GetContext(ctx, &row, query, gw); err != nil {
		if isNotFound(err) {
			return gameweek.Settlement{}, false, nil
		}
		return gameweek.Settlement{}, false, fmt.Errorf("get settlement: %w", err)
	}

	item, err := r.settlementFromRow(ctx, row)
	if err != nil {
		return gameweek.Settlement{}, false, err
	}
	return item, true, nil
}

func (r *GameweekRepository) ListSettlements(ctx context.Context) ([]gameweek.Settlement, error) {
	const query = `SELECT gameweek, player_baselines, settled_at FROM settlements ORDER BY gameweek`

	var rows []settlementRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}

	out := make([]gameweek.Settlement, 0, len(rows))
	for _, row := range rows {
		item, err := r.settlementFromRow(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *GameweekRepository) Advance(ctx context.Context, settlement gameweek.Settlement, next gameweek.State) error {
	baselines, err := sonic.Marshal(settlement.PlayerBaselines)
	if err != nil {
		return fmt.Errorf("encode player baselines: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin advance: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// The settlement must be strictly ahead of everything already settled.
	var lastSettled int
	if err := tx.GetContext(ctx, &lastSettled, `SELECT COALESCE(MAX(gameweek), 0) FROM settlements`); err != nil {
		return fmt.Errorf("read last settled gameweek: %w", err)
	}
	if settlement.Gameweek <= lastSettled {
		return fmt.Errorf("%w: gameweek=%d last_settled=%d", gameweek.ErrAlreadyAdvanced, settlement.Gameweek, lastSettled)
	}

	const insertSettlement = `
INSERT INTO settlements (gameweek, player_baselines, settled_at)
VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, insertSettlement, settlement.Gameweek, baselines, settlement.SettledAt); err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}

	const insertResult = `
INSERT INTO settlement_results (gameweek, manager_id, gross_points, transfer_penalty, net_points, captain_id)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, result := range settlement.Results {
		if _, err := tx.ExecContext(ctx, insertResult,
			settlement.Gameweek, result.ManagerID, result.GrossPoints,
			result.TransferPenalty, result.NetPoints, result.CaptainID,
		); err != nil {
			return fmt.Errorf("insert settlement result manager=%s: %w", result.ManagerID, err)
		}
	}

	const updateState = `
INSERT INTO league_state (id, phase, current_gameweek)
VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET phase = EXCLUDED.phase, current_gameweek = EXCLUDED.current_gameweek`
	if _, err := tx.ExecContext(ctx, updateState, string(next.Phase), next.Current); err != nil {
		return fmt.Errorf("move league cursor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit advance: %w", err)
	}
	return nil
}

func (r *GameweekRepository) settlementFromRow(ctx context.Context, row settlementRow) (gameweek.Settlement, error) {
	baselines := make(map[string]float64)
	if len(row.Baselines) > 0 {
		if err := sonic.Unmarshal(row.Baselines, &baselines); err != nil {
			return gameweek.Settlement{}, fmt.Errorf("decode player baselines gameweek=%d: %w", row.Gameweek, err)
		}
	}

	const query = `
SELECT gameweek, manager_id, gross_points, transfer_penalty, net_points, captain_id
FROM settlement_results
WHERE gameweek = $1
ORDER BY manager_id`

	var resultRows []settlementResultRow
	if err := r.db.SelectContext(ctx, &resultRows, query, row.Gameweek); err != nil {
		return gameweek.Settlement{}, fmt.Errorf("list settlement results gameweek=%d: %w", row.Gameweek, err)
	}

	item := gameweek.Settlement{
		Gameweek:        row.Gameweek,
		Results:         make([]gameweek.ManagerResult, 0, len(resultRows)),
		PlayerBaselines: baselines,
		SettledAt:       row.SettledAt,
	}
	for _, result := range resultRows {
		item.Results = append(item.Results, gameweek.ManagerResult{
			ManagerID:       result.ManagerID,
			GrossPoints:     result.GrossPoints,
			TransferPenalty: result.TransferPenalty,
			NetPoints:       result.NetPoints,
			CaptainID:       result.CaptainID,
		})
	}
	return item, nil
}
