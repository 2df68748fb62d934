package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/statsfeed"
	"github.com/openfantasy/draft-league/internal/platform/logging"
)

// StatsFeedProvider fetches the season-cumulative statistics document from
// the upstream feed. Implementations live under external/.
type StatsFeedProvider interface {
	FetchDocument(ctx context.Context) (ExternalStatsDocument, error)
}

type ExternalStatsDocument struct {
	UpdatedAt time.Time
	Season    string
	League    string
	Note      string
	Players   []ExternalPlayerRecord
}

type ExternalPlayerRecord struct {
	ID                string
	Name              string
	Club              string
	Position          string
	Goals             int
	Assists           int
	CleanSheets       int
	Saves             int
	PenaltySaves      int
	PenaltiesMissed   int
	GoalsConceded     int
	YellowCards       int
	RedCards          int
	OwnGoals          int
	TacklesWon        int
	Interceptions     int
	KeyPasses         int
	ShotsOnTarget     int
	BigChancesCreated int
	DribblesPast      int
	ManOfTheMatch     int
}

type RefreshResult struct {
	Players   int       `json:"players"`
	Skipped   int       `json:"skipped"`
	Note      string    `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

const defaultIngestionWorkers = 8

// IngestionService pulls the feed document, normalizes provider records into
// the player pool and swaps the statistics snapshot atomically. Settlement
// only ever sees a complete document.
type IngestionService struct {
	provider   StatsFeedProvider
	playerRepo player.Repository
	statsRepo  statsfeed.Repository
	logger     *logging.Logger
	maxWorkers int
	now        func() time.Time
}

func NewIngestionService(
	provider StatsFeedProvider,
	playerRepo player.Repository,
	statsRepo statsfeed.Repository,
	maxWorkers int,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultIngestionWorkers
	}

	return &IngestionService{
		provider:   provider,
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		logger:     logger,
		maxWorkers: maxWorkers,
		now:        time.Now,
	}
}

// Refresh fetches, normalizes and stores one feed document. An empty
// document is valid and stored as-is; its note explains why it is empty.
func (s *IngestionService) Refresh(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Refresh")
	defer span.End()

	doc, err := s.provider.FetchDocument(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("%w: fetch statistics feed: %v", ErrDependencyUnavailable, err)
	}

	players, skipped, err := s.normalize(doc.Players)
	if err != nil {
		return RefreshResult{}, err
	}

	updatedAt := doc.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now().UTC()
	}

	if len(players) > 0 {
		if err := s.playerRepo.ReplaceAll(ctx, players); err != nil {
			return RefreshResult{}, fmt.Errorf("replace player pool: %w", err)
		}
	}
	snapshot := statsfeed.Snapshot{
		UpdatedAt: updatedAt,
		Season:    strings.TrimSpace(doc.Season),
		League:    strings.TrimSpace(doc.League),
		Note:      strings.TrimSpace(doc.Note),
		Players:   players,
	}
	if err := s.statsRepo.Put(ctx, snapshot); err != nil {
		return RefreshResult{}, fmt.Errorf("store statistics snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "statistics snapshot refreshed",
		"players", len(players),
		"skipped", skipped,
		"season", snapshot.Season,
	)
	return RefreshResult{
		Players:   len(players),
		Skipped:   skipped,
		Note:      snapshot.Note,
		UpdatedAt: updatedAt,
	}, nil
}

// RunEvery re-runs Refresh on the interval until ctx is canceled. Intended
// to be called once from app wiring.
func (s *IngestionService) RunEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	wg := conc.NewWaitGroup()
	wg.Go(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Refresh(ctx); err != nil {
					s.logger.WarnContext(ctx, "background statistics refresh failed", "error", err.Error())
				}
			}
		}
	})
	wg.Wait()
}

// normalize maps provider records onto the domain player pool on a bounded
// worker pool. Records with a blank id or an unknown position are skipped
// and counted, never fatal.
func (s *IngestionService) normalize(records []ExternalPlayerRecord) ([]player.Player, int, error) {
	if len(records) == 0 {
		return nil, 0, nil
	}

	pool, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		return nil, 0, fmt.Errorf("create ingestion worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]player.Player, len(records))
	valid := make([]bool, len(records))
	var skipped atomic.Int64

	var workers sync.WaitGroup
	for idx, record := range records {
		idx, record := idx, record
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			item, ok := normalizeRecord(record)
			if !ok {
				skipped.Add(1)
				return
			}
			out[idx] = item
			valid[idx] = true
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, 0, fmt.Errorf("submit ingestion task: %w", err)
		}
	}
	workers.Wait()

	players := make([]player.Player, 0, len(records))
	for idx := range out {
		if valid[idx] {
			players = append(players, out[idx])
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, int(skipped.Load()), nil
}

func normalizeRecord(record ExternalPlayerRecord) (player.Player, bool) {
	item := player.Player{
		ID:       strings.TrimSpace(record.ID),
		Name:     strings.TrimSpace(record.Name),
		Club:     strings.TrimSpace(record.Club),
		Position: player.Position(strings.ToUpper(strings.TrimSpace(record.Position))),
		Stats: player.StatBag{
			Goals:             record.Goals,
			Assists:           record.Assists,
			CleanSheets:       record.CleanSheets,
			Saves:             record.Saves,
			PenaltySaves:      record.PenaltySaves,
			PenaltiesMissed:   record.PenaltiesMissed,
			GoalsConceded:     record.GoalsConceded,
			YellowCards:       record.YellowCards,
			RedCards:          record.RedCards,
			OwnGoals:          record.OwnGoals,
			TacklesWon:        record.TacklesWon,
			Interceptions:     record.Interceptions,
			KeyPasses:         record.KeyPasses,
			ShotsOnTarget:     record.ShotsOnTarget,
			BigChancesCreated: record.BigChancesCreated,
			DribblesPast:      record.DribblesPast,
			ManOfTheMatch:     record.ManOfTheMatch,
		},
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, false
	}
	return item, true
}
