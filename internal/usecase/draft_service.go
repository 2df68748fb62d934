package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/draft"
	"github.com/openfantasy/draft-league/internal/domain/gameweek"
	"github.com/openfantasy/draft-league/internal/domain/manager"
	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/squad"
	"github.com/openfantasy/draft-league/internal/platform/logging"
)

// DraftService runs the snake draft: turn sequencing, pick legality and the
// transition into the first active gameweek once every squad is full.
type DraftService struct {
	draftRepo    draft.Repository
	squadRepo    squad.Repository
	managerRepo  manager.Repository
	playerRepo   player.Repository
	gameweekRepo gameweek.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewDraftService(
	draftRepo draft.Repository,
	squadRepo squad.Repository,
	managerRepo manager.Repository,
	playerRepo player.Repository,
	gameweekRepo gameweek.Repository,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DraftService{
		draftRepo:    draftRepo,
		squadRepo:    squadRepo,
		managerRepo:  managerRepo,
		playerRepo:   playerRepo,
		gameweekRepo: gameweekRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Start begins the draft with the given manager order. Legal only while the
// league is in the setup phase.
func (s *DraftService) Start(ctx context.Context, managerOrder []string) (draft.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Start")
	defer span.End()

	order := make([]string, 0, len(managerOrder))
	for _, id := range managerOrder {
		order = append(order, strings.TrimSpace(id))
	}

	league, err := s.gameweekRepo.GetState(ctx)
	if err != nil {
		return draft.State{}, fmt.Errorf("get league state before draft start: %w", err)
	}
	if league.Phase != gameweek.PhaseSetup {
		return draft.State{}, fmt.Errorf("%w: draft can only start from setup, league phase is %s", ErrIllegalTransition, league.Phase)
	}

	for _, managerID := range order {
		if _, exists, err := s.managerRepo.GetByID(ctx, managerID); err != nil {
			return draft.State{}, fmt.Errorf("get manager %s for draft order: %w", managerID, err)
		} else if !exists {
			return draft.State{}, fmt.Errorf("%w: manager=%s", ErrNotFound, managerID)
		}
	}

	state, err := draft.NewState(order)
	if err != nil {
		return draft.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.draftRepo.Put(ctx, state); err != nil {
		return draft.State{}, fmt.Errorf("store draft state: %w", err)
	}
	if err := s.gameweekRepo.PutState(ctx, gameweek.State{Phase: gameweek.PhaseDraft}); err != nil {
		return draft.State{}, fmt.Errorf("move league into draft phase: %w", err)
	}

	s.logger.InfoContext(ctx, "draft started", "managers", len(order), "total_picks", state.TotalPicks())
	return state, nil
}

// State returns the current draft state, including the append-only pick log.
func (s *DraftService) State(ctx context.Context) (draft.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.State")
	defer span.End()

	state, exists, err := s.draftRepo.Get(ctx)
	if err != nil {
		return draft.State{}, fmt.Errorf("get draft state: %w", err)
	}
	if !exists {
		return draft.State{Phase: draft.PhaseNotStarted}, nil
	}
	return state, nil
}

// MakePick validates and records one draft pick for the manager whose turn
// it is. On the final pick the league moves into gameweek 1.
func (s *DraftService) MakePick(ctx context.Context, managerID, playerID string) (draft.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.MakePick")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	playerID = strings.TrimSpace(playerID)
	if managerID == "" || playerID == "" {
		return draft.State{}, fmt.Errorf("%w: manager_id and player_id are required", ErrInvalidInput)
	}

	state, exists, err := s.draftRepo.Get(ctx)
	if err != nil {
		return draft.State{}, fmt.Errorf("get draft state for pick: %w", err)
	}
	if !exists || state.Phase == draft.PhaseNotStarted {
		return draft.State{}, fmt.Errorf("%w: %v", ErrIllegalTransition, draft.ErrNotStarted)
	}
	if state.Phase == draft.PhaseComplete {
		return draft.State{}, fmt.Errorf("%w: %v", ErrIllegalTransition, draft.ErrAlreadyComplete)
	}

	picker, ok := state.CurrentPicker()
	if !ok {
		return draft.State{}, fmt.Errorf("%w: %v", ErrIllegalTransition, draft.ErrNotStarted)
	}
	if picker != managerID {
		return draft.State{}, fmt.Errorf("%w: manager=%s current_picker=%s pick_index=%d", draft.ErrNotYourTurn, managerID, picker, state.PickIndex)
	}

	item, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return draft.State{}, fmt.Errorf("get player %s for pick: %w", playerID, err)
	}
	if !found {
		return draft.State{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	if owner, owned, err := s.squadRepo.OwnerOf(ctx, playerID); err != nil {
		return draft.State{}, fmt.Errorf("check ownership of player %s: %w", playerID, err)
	} else if owned {
		return draft.State{}, fmt.Errorf("%w: player=%s owner=%s", squad.ErrPlayerAlreadyOwned, playerID, owner)
	}

	current, _, err := s.squadRepo.GetByManager(ctx, managerID)
	if err != nil {
		return draft.State{}, fmt.Errorf("get squad for manager %s: %w", managerID, err)
	}
	current.ManagerID = managerID
	if err := current.CanAdd(item.Position); err != nil {
		return draft.State{}, err
	}

	if err := s.squadRepo.AddMember(ctx, managerID, squad.Member{PlayerID: playerID, Position: item.Position}); err != nil {
		return draft.State{}, fmt.Errorf("add player %s to squad of %s: %w", playerID, managerID, err)
	}

	pick := draft.Pick{
		Index:     state.PickIndex,
		Round:     state.Round(),
		ManagerID: managerID,
		PlayerID:  playerID,
		PickedAt:  s.now().UTC(),
	}

	nextPhase := draft.PhaseInProgress
	if state.PickIndex+1 == state.TotalPicks() {
		nextPhase = draft.PhaseComplete
	}
	if err := s.draftRepo.RecordPick(ctx, pick, nextPhase); err != nil {
		return draft.State{}, fmt.Errorf("record pick index=%d: %w", state.PickIndex, err)
	}

	if nextPhase == draft.PhaseComplete {
		if err := s.completeDraft(ctx); err != nil {
			return draft.State{}, err
		}
		s.logger.InfoContext(ctx, "draft complete", "picks", state.PickIndex+1)
	}

	updated, _, err := s.draftRepo.Get(ctx)
	if err != nil {
		return draft.State{}, fmt.Errorf("reload draft state after pick: %w", err)
	}
	return updated, nil
}

// completeDraft verifies every squad satisfies the full quota and opens
// gameweek 1.
func (s *DraftService) completeDraft(ctx context.Context) error {
	squads, err := s.squadRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list squads at draft completion: %w", err)
	}
	for _, item := range squads {
		if err := item.ValidateComplete(); err != nil {
			return fmt.Errorf("squad invalid at draft completion: %w", err)
		}
	}

	if err := s.gameweekRepo.PutState(ctx, gameweek.State{Phase: gameweek.PhaseActive, Current: 1}); err != nil {
		return fmt.Errorf("open gameweek 1 after draft: %w", err)
	}
	return nil
}
