package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openfantasy/draft-league/internal/domain/manager"
	qb "github.com/openfantasy/draft-league/internal/platform/querybuilder"
)

type managerTableModel struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	TeamName string `db:"team_name"`
	IsAdmin  bool   `db:"is_admin"`
}

var managerColumns = []string{"id", "name", "team_name", "is_admin"}

type ManagerRepository struct {
	db *sqlx.DB
}

func NewManagerRepository(db *sqlx.DB) *ManagerRepository {
	return &ManagerRepository{db: db}
}

func (r *ManagerRepository) GetByID(ctx context.Context, managerID string) (manager.Manager, bool, error) {
	query, args, err := qb.Select(managerColumns...).
		From("managers").
		Where(qb.Eq("id", managerID)).
		ToSQL()
	if err != nil {
		return manager.Manager{}, false, fmt.Errorf("build get manager query: %w", err)
	}

	var row managerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return manager.Manager{}, false, nil
		}
		return manager.Manager{}, false, fmt.Errorf("get manager: %w", err)
	}

	return manager.Manager(row), true, nil
}

func (r *ManagerRepository) List(ctx context.Context) ([]manager.Manager, error) {
	query, args, err := qb.Select(managerColumns...).
		From("managers").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list managers query: %w", err)
	}

	var rows []managerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	out := make([]manager.Manager, 0, len(rows))
	for _, row := range rows {
		out = append(out, manager.Manager(row))
	}
	return out, nil
}

func (r *ManagerRepository) Upsert(ctx context.Context, item manager.Manager) error {
	query, args, err := qb.InsertInto("managers").
		Columns(managerColumns...).
		Values(item.ID, item.Name, item.TeamName, item.IsAdmin).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, team_name = EXCLUDED.team_name, is_admin = EXCLUDED.is_admin").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert manager query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert manager: %w", err)
	}
	return nil
}
