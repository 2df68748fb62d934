package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/statsfeed"
)

// StatsFeedRepository stores the single current snapshot as one row with a
// jsonb players document; the upsert swaps it atomically.
type StatsFeedRepository struct {
	db *sqlx.DB
}

func NewStatsFeedRepository(db *sqlx.DB) *StatsFeedRepository {
	return &StatsFeedRepository{db: db}
}

func (r *StatsFeedRepository) Get(ctx context.Context) (statsfeed.Snapshot, bool, error) {
	const query = `SELECT updated_at, season, league, note, players FROM stats_snapshot WHERE id = 1`

	var row struct {
		UpdatedAt time.Time `db:"updated_at"`
		Season    string    `db:"season"`
		League    string    `db:"league"`
		Note      string    `db:"note"`
		Players   []byte    `db:"players"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if isNotFound(err) {
			return statsfeed.Snapshot{}, false, nil
		}
		return statsfeed.Snapshot{}, false, fmt.Errorf("get stats snapshot: %w", err)
	}

	var players []player.Player
	if len(row.Players) > 0 {
		if err := sonic.Unmarshal(row.Players, &players); err != nil {
			return statsfeed.Snapshot{}, false, fmt.Errorf("decode snapshot players: %w", err)
		}
	}

	return statsfeed.Snapshot{
		UpdatedAt: row.UpdatedAt,
		Season:    row.Season,
		League:    row.League,
		Note:      row.Note,
		Players:   players,
	}, true, nil
}

func (r *StatsFeedRepository) Put(ctx context.Context, snapshot statsfeed.Snapshot) error {
	players, err := sonic.Marshal(snapshot.Players)
	if err != nil {
		return fmt.Errorf("encode snapshot players: %w", err)
	}

	const query = `
INSERT INTO stats_snapshot (id, updated_at, season, league, note, players)
VALUES (1, $1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
  updated_at = EXCLUDED.updated_at,
  season = EXCLUDED.season,
  league = EXCLUDED.league,
  note = EXCLUDED.note,
  players = EXCLUDED.players`

	if _, err := r.db.ExecContext(ctx, query,
		snapshot.UpdatedAt, snapshot.Season, snapshot.League, snapshot.Note, players,
	); err != nil {
		return fmt.Errorf("put stats snapshot: %w", err)
	}
	return nil
}
