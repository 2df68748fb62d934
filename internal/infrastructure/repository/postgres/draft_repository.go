package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/openfantasy/draft-league/internal/domain/draft"
)

// DraftRepository keeps the single draft_state row plus the append-only
// draft_picks log.
type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

type draftStateRow struct {
	Phase        string         `db:"phase"`
	ManagerOrder pq.StringArray `db:"manager_order"`
	PickIndex    int            `db:"pick_index"`
}

type draftPickRow struct {
	PickIndex int       `db:"pick_index"`
	Round     int       `db:"round"`
	ManagerID string    `db:"manager_id"`
	PlayerID  string    `db:"player_id"`
	PickedAt  time.Time `db:"picked_at"`
}

func (r *DraftRepository) Get(ctx context.Context) (draft.State, bool, error) {
	const stateQuery = `SELECT phase, manager_order, pick_index FROM draft_state WHERE id = 1`

	var stateRow draftStateRow
	if err := r.db.GetContext(ctx, &stateRow, stateQuery); err != nil {
		if isNotFound(err) {
			return draft.State{}, false, nil
		}
		return draft.State{}, false, fmt.Errorf("get draft state: %w", err)
	}

	const picksQuery = `
SELECT pick_index, round, manager_id, player_id, picked_at
FROM draft_picks
ORDER BY pick_index`

	var pickRows []draftPickRow
	if err := r.db.SelectContext(ctx, &pickRows, picksQuery); err != nil {
		return draft.State{}, false, fmt.Errorf("list draft picks: %w", err)
	}

	state := draft.State{
		Phase:        draft.Phase(stateRow.Phase),
		ManagerOrder: append([]string(nil), stateRow.ManagerOrder...),
		PickIndex:    stateRow.PickIndex,
		Picks:        make([]draft.Pick, 0, len(pickRows)),
	}
	for _, row := range pickRows {
		state.Picks = append(state.Picks, draft.Pick{
			Index:     row.PickIndex,
			Round:     row.Round,
			ManagerID: row.ManagerID,
			PlayerID:  row.PlayerID,
			PickedAt:  row.PickedAt,
		})
	}
	return state, true, nil
}

func (r *DraftRepository) Put(ctx context.Context, state draft.State) error {
	const query = `
INSERT INTO draft_state (id, phase, manager_order, pick_index)
VALUES (1, $1, $2, $3)
ON CONFLICT (id) DO UPDATE SET phase = EXCLUDED.phase, manager_order = EXCLUDED.manager_order, pick_index = EXCLUDED.pick_index
WHERE draft_state.phase = $4`

	result, err := r.db.ExecContext(ctx, query,
		string(state.Phase), pq.StringArray(state.ManagerOrder), state.PickIndex,
		string(draft.PhaseNotStarted),
	)
	if err != nil {
		return fmt.Errorf("put draft state: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("put draft state affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w", draft.ErrAlreadyStarted)
	}
	return nil
}

func (r *DraftRepository) RecordPick(ctx context.Context, pick draft.Pick, nextPhase draft.Phase) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record pick: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertQuery = `
INSERT INTO draft_picks (pick_index, round, manager_id, player_id, picked_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertQuery,
		pick.Index, pick.Round, pick.ManagerID, pick.PlayerID, pick.PickedAt,
	); err != nil {
		return fmt.Errorf("insert draft pick: %w", err)
	}

	const updateQuery = `
UPDATE draft_state
SET pick_index = pick_index + 1, phase = $1
WHERE id = 1 AND pick_index = $2`
	result, err := tx.ExecContext(ctx, updateQuery, string(nextPhase), pick.Index)
	if err != nil {
		return fmt.Errorf("advance draft state: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("advance draft state affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("pick index %d does not match draft position", pick.Index)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record pick: %w", err)
	}
	return nil
}
