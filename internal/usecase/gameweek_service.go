package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/gameweek"
	"github.com/openfantasy/draft-league/internal/domain/lineup"
	"github.com/openfantasy/draft-league/internal/domain/manager"
	"github.com/openfantasy/draft-league/internal/domain/scoring"
	"github.com/openfantasy/draft-league/internal/domain/squad"
	"github.com/openfantasy/draft-league/internal/domain/statsfeed"
	"github.com/openfantasy/draft-league/internal/domain/transfer"
	"github.com/openfantasy/draft-league/internal/platform/logging"
)

// MissingLineupPolicy decides what settlement does with a manager who never
// submitted a lineup for the closing gameweek.
type MissingLineupPolicy string

const (
	// MissingLineupRequire fails the advance, naming the manager.
	MissingLineupRequire MissingLineupPolicy = "require"
	// MissingLineupCarryForward reuses the manager's most recent lineup.
	MissingLineupCarryForward MissingLineupPolicy = "carry-forward"
	// MissingLineupZero settles the manager at zero gross points.
	MissingLineupZero MissingLineupPolicy = "zero"
)

func NormalizeMissingLineupPolicy(raw string) MissingLineupPolicy {
	switch MissingLineupPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case MissingLineupCarryForward:
		return MissingLineupCarryForward
	case MissingLineupZero:
		return MissingLineupZero
	default:
		return MissingLineupRequire
	}
}

// GameweekService owns the irreversible advance: it settles every manager's
// points for the closing gameweek against the current statistics snapshot,
// freezes the results and moves the league cursor forward.
type GameweekService struct {
	gameweekRepo gameweek.Repository
	lineupRepo   lineup.Repository
	transferRepo transfer.Repository
	statsRepo    statsfeed.Repository
	managerRepo  manager.Repository
	squadRepo    squad.Repository
	logger       *logging.Logger
	policy       MissingLineupPolicy
	now          func() time.Time
}

func NewGameweekService(
	gameweekRepo gameweek.Repository,
	lineupRepo lineup.Repository,
	transferRepo transfer.Repository,
	statsRepo statsfeed.Repository,
	managerRepo manager.Repository,
	squadRepo squad.Repository,
	policy MissingLineupPolicy,
	logger *logging.Logger,
) *GameweekService {
	if logger == nil {
		logger = logging.Default()
	}
	if policy == "" {
		policy = MissingLineupRequire
	}

	return &GameweekService{
		gameweekRepo: gameweekRepo,
		lineupRepo:   lineupRepo,
		transferRepo: transferRepo,
		statsRepo:    statsRepo,
		managerRepo:  managerRepo,
		squadRepo:    squadRepo,
		logger:       logger,
		policy:       policy,
		now:          time.Now,
	}
}

// Current returns the league cursor.
func (s *GameweekService) Current(ctx context.Context) (gameweek.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Current")
	defer span.End()

	state, err := s.gameweekRepo.GetState(ctx)
	if err != nil {
		return gameweek.State{}, fmt.Errorf("get league state: %w", err)
	}
	return state, nil
}

// Results returns the frozen settlement for a closed gameweek.
func (s *GameweekService) Results(ctx context.Context, gw int) (gameweek.Settlement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Results")
	defer span.End()

	if gw <= 0 {
		return gameweek.Settlement{}, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}

	settlement, exists, err := s.gameweekRepo.GetSettlement(ctx, gw)
	if err != nil {
		return gameweek.Settlement{}, fmt.Errorf("get settlement gameweek=%d: %w", gw, err)
	}
	if !exists {
		return gameweek.Settlement{}, fmt.Errorf("%w: gameweek %d has not settled", ErrNotFound, gw)
	}
	return settlement, nil
}

// Advance settles the current gameweek and opens the next one. Only an admin
// manager may trigger it, and it cannot be repeated or undone: a second call
// for the same gameweek fails without touching any settled result.
func (s *GameweekService) Advance(ctx context.Context, adminID string) (gameweek.Settlement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Advance")
	defer span.End()

	adminID = strings.TrimSpace(adminID)
	if adminID == "" {
		return gameweek.Settlement{}, fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}
	admin, exists, err := s.managerRepo.GetByID(ctx, adminID)
	if err != nil {
		return gameweek.Settlement{}, fmt.Errorf("get manager %s for advance: %w", adminID, err)
	}
	if !exists {
		return gameweek.Settlement{}, fmt.Errorf("%w: manager=%s", ErrNotFound, adminID)
	}
	if !admin.IsAdmin {
		return gameweek.Settlement{}, fmt.Errorf("%w: manager %s is not a league admin", ErrUnauthorized, adminID)
	}

	league, err := s.gameweekRepo.GetState(ctx)
	if err != nil {
		return gameweek.Settlement{}, fmt.Errorf("get league state before advance: %w", err)
	}
	switch league.Phase {
	case gameweek.PhaseActive:
	case gameweek.PhaseDraft:
		return gameweek.Settlement{}, fmt.Errorf("%w: %v", ErrIllegalTransition, gameweek.ErrDraftNotDone)
	default:
		return gameweek.Settlement{}, fmt.Errorf("%w: %v", ErrIllegalTransition, gameweek.ErrNotActive)
	}

	if _, settled, err := s.gameweekRepo.GetSettlement(ctx, league.Current); err != nil {
		return gameweek.Settlement{}, fmt.Errorf("check settlement gameweek=%d: %w", league.Current, err)
	} else if settled {
		return gameweek.Settlement{}, fmt.Errorf("%w: gameweek=%d", gameweek.ErrAlreadyAdvanced, league.Current)
	}

	snapshot, haveSnapshot, err := s.statsRepo.Get(ctx)
	if err != nil {
		return gameweek.Settlement{}, fmt.Errorf("get statistics snapshot for advance: %w", err)
	}
	if !haveSnapshot || snapshot.IsEmpty() {
		note := snapshot.Note
		if note == "" {
			note = "no statistics snapshot ingested"
		}
		return gameweek.Settlement{}, fmt.Errorf("%w: %s", ErrDataUnavailable, note)
	}

	// Season-cumulative points per player; each settlement stores them so
	// the next one can take the difference.
	cumulative := make(map[string]float64, len(snapshot.Players))
	for _, p := range snapshot.Players {
		cumulative[p.ID] = scoring.Points(p.Stats, p.Position)
	}
	baselines := map[string]float64{}
	if league.Current > 1 {
		previous, found, err := s.gameweekRepo.GetSettlement(ctx, league.Current-1)
		if err != nil {
			return gameweek.Settlement{}, fmt.Errorf("get baseline settlement gameweek=%d: %w", league.Current-1, err)
		}
		if found {
			baselines = previous.PlayerBaselines
		}
	}

	managers, err := s.managerRepo.List(ctx)
	if err != nil {
		return gameweek.Settlement{}, fmt.Errorf("list managers for advance: %w", err)
	}
	transferCounts, err := s.transferRepo.CountByGameweek(ctx, league.Current)
	if err != nil {
		return gameweek.Settlement{}, fmt.Errorf("count transfers gameweek=%d: %w", league.Current, err)
	}

	results := make([]gameweek.ManagerResult, 0, len(managers))
	for _, m := range managers {
		item, scoreable, err := s.resolveLineup(ctx, m.ID, league.Current)
		if err != nil {
			return gameweek.Settlement{}, err
		}

		gross := 0.0
		captainID := ""
		if scoreable {
			ownSquad, _, err := s.squadRepo.GetByManager(ctx, m.ID)
			if err != nil {
				return gameweek.Settlement{}, fmt.Errorf("get squad for settlement manager=%s: %w", m.ID, err)
			}
			captainID = item.CaptainID
			for _, playerID := range item.StarterIDs() {
				// Transfers can outdate a submitted or carried lineup;
				// a starter no longer in the squad scores nothing.
				if !ownSquad.Contains(playerID) {
					continue
				}
				delta := cumulative[playerID] - baselines[playerID]
				gross += delta
				if playerID == captainID {
					gross += delta * (scoring.CaptainMultiplier - 1)
				}
			}
		}

		penalty := transfer.PenaltyPoints(transferCounts[m.ID])
		results = append(results, gameweek.ManagerResult{
			ManagerID:       m.ID,
			GrossPoints:     gross,
			TransferPenalty: penalty,
			NetPoints:       gross - float64(penalty),
			CaptainID:       captainID,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ManagerID < results[j].ManagerID })

	settlement := gameweek.Settlement{
		Gameweek:        league.Current,
		Results:         results,
		PlayerBaselines: cumulative,
		SettledAt:       s.now().UTC(),
	}
	next := gameweek.State{Phase: gameweek.PhaseActive, Current: league.Current + 1}
	if err := s.gameweekRepo.Advance(ctx, settlement, next); err != nil {
		return gameweek.Settlement{}, fmt.Errorf("advance gameweek=%d: %w", league.Current, err)
	}

	s.logger.InfoContext(ctx, "gameweek settled",
		"gameweek", league.Current,
		"managers", len(results),
		"next", next.Current,
	)
	return settlement, nil
}

// resolveLineup applies the missing-lineup policy. The bool reports whether
// the returned lineup should be scored; under the zero policy a missing
// lineup settles at zero gross points.
func (s *GameweekService) resolveLineup(ctx context.Context, managerID string, gw int) (lineup.Lineup, bool, error) {
	item, exists, err := s.lineupRepo.GetByManagerAndGameweek(ctx, managerID, gw)
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("get lineup for settlement manager=%s gameweek=%d: %w", managerID, gw, err)
	}
	if exists {
		return item, true, nil
	}

	switch s.policy {
	case MissingLineupCarryForward:
		for prior := gw - 1; prior >= 1; prior-- {
			item, exists, err = s.lineupRepo.GetByManagerAndGameweek(ctx, managerID, prior)
			if err != nil {
				return lineup.Lineup{}, false, fmt.Errorf("get carried lineup manager=%s gameweek=%d: %w", managerID, prior, err)
			}
			if exists {
				item.Gameweek = gw
				return item, true, nil
			}
		}
		return lineup.Lineup{}, false, nil
	case MissingLineupZero:
		return lineup.Lineup{}, false, nil
	default:
		return lineup.Lineup{}, false, fmt.Errorf("%w: manager=%s gameweek=%d", lineup.ErrMissing, managerID, gw)
	}
}
