package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/squad"
)

// SquadRepository stores squads as squad_members rows. The primary key on
// player_id doubles as the league-wide ownership index.
type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

type squadMemberRow struct {
	ManagerID string `db:"manager_id"`
	PlayerID  string `db:"player_id"`
	Position  string `db:"position"`
}

func (r *SquadRepository) GetByManager(ctx context.Context, managerID string) (squad.Squad, bool, error) {
	const query = `
SELECT manager_id, player_id, position
FROM squad_members
WHERE manager_id = $1
ORDER BY picked_order`

	var rows []squadMemberRow
	if err := r.db.SelectContext(ctx, &rows, query, managerID); err != nil {
		return squad.Squad{}, false, fmt.Errorf("get squad members: %w", err)
	}
	if len(rows) == 0 {
		return squad.Squad{}, false, nil
	}

	item := squad.Squad{ManagerID: managerID, Members: make([]squad.Member, 0, len(rows))}
	for _, row := range rows {
		item.Members = append(item.Members, squad.Member{
			PlayerID: row.PlayerID,
			Position: player.Position(row.Position),
		})
	}
	return item, true, nil
}

func (r *SquadRepository) List(ctx context.Context) ([]squad.Squad, error) {
	const query = `
SELECT manager_id, player_id, position
FROM squad_members
ORDER BY manager_id, picked_order`

	var rows []squadMemberRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list squad members: %w", err)
	}

	out := make([]squad.Squad, 0)
	byManager := make(map[string]int)
	for _, row := range rows {
		idx, ok := byManager[row.ManagerID]
		if !ok {
			out = append(out, squad.Squad{ManagerID: row.ManagerID})
			idx = len(out) - 1
			byManager[row.ManagerID] = idx
		}
		out[idx].Members = append(out[idx].Members, squad.Member{
			PlayerID: row.PlayerID,
			Position: player.Position(row.Position),
		})
	}
	return out, nil
}

func (r *SquadRepository) OwnerOf(ctx context.Context, playerID string) (string, bool, error) {
	const query = `SELECT manager_id FROM squad_members WHERE player_id = $1`

	var owner string
	if err := r.db.GetContext(ctx, &owner, query, playerID); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("resolve player owner: %w", err)
	}
	return owner, true, nil
}

func (r *SquadRepository) AddMember(ctx context.Context, managerID string, member squad.Member) error {
	const query = `
INSERT INTO squad_members (manager_id, player_id, position, picked_order)
VALUES ($1, $2, $3, (SELECT COALESCE(MAX(picked_order), 0) + 1 FROM squad_members WHERE manager_id = $1))
ON CONFLICT (player_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, managerID, member.PlayerID, string(member.Position))
	if err != nil {
		return fmt.Errorf("add squad member: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("add squad member affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: player=%s", squad.ErrPlayerAlreadyOwned, member.PlayerID)
	}
	return nil
}

// SwapMember replaces out with in inside one transaction; the incoming
// player keeps the outgoing player's pick order so squad listings stay
// stable across transfers.
func (r *SquadRepository) SwapMember(ctx context.Context, managerID string, out, in squad.Member) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin squad swap: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var owner string
	err = tx.GetContext(ctx, &owner, `SELECT manager_id FROM squad_members WHERE player_id = $1 FOR UPDATE`, in.PlayerID)
	if err == nil {
		return fmt.Errorf("%w: player=%s owner=%s", squad.ErrPlayerAlreadyOwned, in.PlayerID, owner)
	}
	if !isNotFound(err) {
		return fmt.Errorf("check incoming player ownership: %w", err)
	}

	const query = `
UPDATE squad_members
SET player_id = $1, position = $2
WHERE manager_id = $3 AND player_id = $4`

	result, err := tx.ExecContext(ctx, query, in.PlayerID, string(in.Position), managerID, out.PlayerID)
	if err != nil {
		// FOR UPDATE cannot lock a row that does not exist yet, so a
		// concurrent insert of the incoming player surfaces here.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: player=%s", squad.ErrPlayerAlreadyOwned, in.PlayerID)
		}
		return fmt.Errorf("swap squad member: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("swap squad member affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: player=%s manager=%s", squad.ErrPlayerNotInSquad, out.PlayerID, managerID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit squad swap: %w", err)
	}
	return nil
}
