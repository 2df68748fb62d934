package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/gameweek"
	"github.com/openfantasy/draft-league/internal/domain/lineup"
	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/squad"
	"github.com/openfantasy/draft-league/internal/platform/logging"
)

type SubmitLineupInput struct {
	ManagerID     string
	GoalkeeperID  string
	DefenderIDs   []string
	MidfielderIDs []string
	ForwardIDs    []string
	FlexID        string
	CaptainID     string
}

// LineupService validates and stores starting lineups for the current
// gameweek. Submissions for settled gameweeks are impossible by
// construction: a lineup is always written against the live cursor.
type LineupService struct {
	lineupRepo   lineup.Repository
	squadRepo    squad.Repository
	playerRepo   player.Repository
	gameweekRepo gameweek.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewLineupService(
	lineupRepo lineup.Repository,
	squadRepo squad.Repository,
	playerRepo player.Repository,
	gameweekRepo gameweek.Repository,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LineupService{
		lineupRepo:   lineupRepo,
		squadRepo:    squadRepo,
		playerRepo:   playerRepo,
		gameweekRepo: gameweekRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *LineupService) GetByManagerAndGameweek(ctx context.Context, managerID string, gw int) (lineup.Lineup, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.GetByManagerAndGameweek")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	if managerID == "" {
		return lineup.Lineup{}, false, fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}
	if gw <= 0 {
		return lineup.Lineup{}, false, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}

	item, exists, err := s.lineupRepo.GetByManagerAndGameweek(ctx, managerID, gw)
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("get lineup manager=%s gameweek=%d: %w", managerID, gw, err)
	}
	return item, exists, nil
}

// Submit validates the proposed starters against the manager's current squad
// and the 1/4/4/2/1 formation, then overwrites any prior submission for the
// current gameweek.
func (s *LineupService) Submit(ctx context.Context, input SubmitLineupInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Submit")
	defer span.End()

	input.ManagerID = strings.TrimSpace(input.ManagerID)
	input.GoalkeeperID = strings.TrimSpace(input.GoalkeeperID)
	input.FlexID = strings.TrimSpace(input.FlexID)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	if input.ManagerID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}

	league, err := s.gameweekRepo.GetState(ctx)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get league state before lineup submit: %w", err)
	}
	if league.Phase != gameweek.PhaseActive {
		return lineup.Lineup{}, fmt.Errorf("%w: lineups are only accepted during an active gameweek, league phase is %s", ErrIllegalTransition, league.Phase)
	}

	item, err := s.buildLineup(ctx, input, league.Current)
	if err != nil {
		return lineup.Lineup{}, err
	}

	if err := s.lineupRepo.Upsert(ctx, item); err != nil {
		return lineup.Lineup{}, fmt.Errorf("store lineup manager=%s gameweek=%d: %w", input.ManagerID, league.Current, err)
	}

	s.logger.InfoContext(ctx, "lineup submitted", "manager_id", input.ManagerID, "gameweek", league.Current, "captain_id", input.CaptainID)
	return item, nil
}

// SetCaptain re-points the captain inside an already submitted lineup for
// the current gameweek.
func (s *LineupService) SetCaptain(ctx context.Context, managerID, captainID string) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.SetCaptain")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	captainID = strings.TrimSpace(captainID)
	if managerID == "" || captainID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: manager_id and captain_id are required", ErrInvalidInput)
	}

	league, err := s.gameweekRepo.GetState(ctx)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get league state before captain change: %w", err)
	}
	if league.Phase != gameweek.PhaseActive {
		return lineup.Lineup{}, fmt.Errorf("%w: captain can only change during an active gameweek, league phase is %s", ErrIllegalTransition, league.Phase)
	}

	item, exists, err := s.lineupRepo.GetByManagerAndGameweek(ctx, managerID, league.Current)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup for captain change manager=%s: %w", managerID, err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: no lineup submitted for manager=%s gameweek=%d", ErrNotFound, managerID, league.Current)
	}

	if !item.ContainsStarter(captainID) {
		return lineup.Lineup{}, fmt.Errorf("%w: captain %s is not among the starters of manager=%s", lineup.ErrInvalidFormation, captainID, managerID)
	}

	item.CaptainID = captainID
	item.SubmittedAt = s.now().UTC()
	if err := s.lineupRepo.Upsert(ctx, item); err != nil {
		return lineup.Lineup{}, fmt.Errorf("store captain change manager=%s: %w", managerID, err)
	}

	return item, nil
}

func (s *LineupService) buildLineup(ctx context.Context, input SubmitLineupInput, gw int) (lineup.Lineup, error) {
	defenderIDs, err := normalizeIDs(input.DefenderIDs)
	if err != nil {
		return lineup.Lineup{}, err
	}
	midfielderIDs, err := normalizeIDs(input.MidfielderIDs)
	if err != nil {
		return lineup.Lineup{}, err
	}
	forwardIDs, err := normalizeIDs(input.ForwardIDs)
	if err != nil {
		return lineup.Lineup{}, err
	}

	if input.GoalkeeperID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: goalkeeper slot must be filled", lineup.ErrInvalidFormation)
	}
	if len(defenderIDs) != lineup.DefenderSlots {
		return lineup.Lineup{}, fmt.Errorf("%w: defender slots need exactly %d players, got %d", lineup.ErrInvalidFormation, lineup.DefenderSlots, len(defenderIDs))
	}
	if len(midfielderIDs) != lineup.MidfielderSlots {
		return lineup.Lineup{}, fmt.Errorf("%w: midfielder slots need exactly %d players, got %d", lineup.ErrInvalidFormation, lineup.MidfielderSlots, len(midfielderIDs))
	}
	if len(forwardIDs) != lineup.ForwardSlots {
		return lineup.Lineup{}, fmt.Errorf("%w: forward slots need exactly %d players, got %d", lineup.ErrInvalidFormation, lineup.ForwardSlots, len(forwardIDs))
	}
	if input.FlexID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: flex slot must be filled", lineup.ErrInvalidFormation)
	}

	item := lineup.Lineup{
		ManagerID:     input.ManagerID,
		Gameweek:      gw,
		GoalkeeperID:  input.GoalkeeperID,
		DefenderIDs:   defenderIDs,
		MidfielderIDs: midfielderIDs,
		ForwardIDs:    forwardIDs,
		FlexID:        input.FlexID,
		CaptainID:     input.CaptainID,
		SubmittedAt:   s.now().UTC(),
	}

	starters := item.StarterIDs()
	starterSet := make(map[string]struct{}, len(starters))
	for _, id := range starters {
		if _, exists := starterSet[id]; exists {
			return lineup.Lineup{}, fmt.Errorf("%w: player %s appears in more than one slot", lineup.ErrInvalidFormation, id)
		}
		starterSet[id] = struct{}{}
	}

	if _, ok := starterSet[input.CaptainID]; !ok {
		return lineup.Lineup{}, fmt.Errorf("%w: captain %s must be one of the starters", lineup.ErrInvalidFormation, input.CaptainID)
	}

	ownSquad, exists, err := s.squadRepo.GetByManager(ctx, input.ManagerID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get squad for lineup manager=%s: %w", input.ManagerID, err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: manager %s has no squad", ErrNotFound, input.ManagerID)
	}
	for _, id := range starters {
		if !ownSquad.Contains(id) {
			return lineup.Lineup{}, fmt.Errorf("%w: player=%s manager=%s", squad.ErrPlayerNotInSquad, id, input.ManagerID)
		}
	}

	players, err := s.playerRepo.GetByIDs(ctx, starters)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get starters by ids: %w", err)
	}
	if len(players) != len(starters) {
		return lineup.Lineup{}, fmt.Errorf("%w: some starters are missing from the player pool", ErrNotFound)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	if byID[input.GoalkeeperID].Position != player.PositionGoalkeeper {
		return lineup.Lineup{}, fmt.Errorf("%w: goalkeeper slot holds %s who plays %s", lineup.ErrInvalidFormation, input.GoalkeeperID, byID[input.GoalkeeperID].Position)
	}
	for _, id := range defenderIDs {
		if byID[id].Position != player.PositionDefender {
			return lineup.Lineup{}, fmt.Errorf("%w: defender slot holds %s who plays %s", lineup.ErrInvalidFormation, id, byID[id].Position)
		}
	}
	for _, id := range midfielderIDs {
		if byID[id].Position != player.PositionMidfielder {
			return lineup.Lineup{}, fmt.Errorf("%w: midfielder slot holds %s who plays %s", lineup.ErrInvalidFormation, id, byID[id].Position)
		}
	}
	for _, id := range forwardIDs {
		if byID[id].Position != player.PositionForward {
			return lineup.Lineup{}, fmt.Errorf("%w: forward slot holds %s who plays %s", lineup.ErrInvalidFormation, id, byID[id].Position)
		}
	}
	if byID[input.FlexID].Position == player.PositionGoalkeeper {
		return lineup.Lineup{}, fmt.Errorf("%w: flex slot cannot hold a goalkeeper (%s)", lineup.ErrInvalidFormation, input.FlexID)
	}

	return item, nil
}

func normalizeIDs(ids []string) ([]string, error) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		cleaned = append(cleaned, id)
	}
	return cleaned, nil
}
