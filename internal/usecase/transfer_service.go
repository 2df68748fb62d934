package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/gameweek"
	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/squad"
	"github.com/openfantasy/draft-league/internal/domain/transfer"
	"github.com/openfantasy/draft-league/internal/platform/logging"
)

// TransferService applies like-for-like squad swaps during active gameweeks
// and keeps the per-gameweek counters the settlement penalty is computed
// from.
type TransferService struct {
	transferRepo transfer.Repository
	squadRepo    squad.Repository
	playerRepo   player.Repository
	gameweekRepo gameweek.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewTransferService(
	transferRepo transfer.Repository,
	squadRepo squad.Repository,
	playerRepo player.Repository,
	gameweekRepo gameweek.Repository,
	logger *logging.Logger,
) *TransferService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TransferService{
		transferRepo: transferRepo,
		squadRepo:    squadRepo,
		playerRepo:   playerRepo,
		gameweekRepo: gameweekRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Apply swaps outPlayer for inPlayer in the manager's squad. The k-th
// transfer of a gameweek adds 2k points to that manager's settlement
// penalty; the counter resets when the gameweek advances.
func (s *TransferService) Apply(ctx context.Context, managerID, outPlayerID, inPlayerID string) (transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Apply")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	outPlayerID = strings.TrimSpace(outPlayerID)
	inPlayerID = strings.TrimSpace(inPlayerID)
	if managerID == "" || outPlayerID == "" || inPlayerID == "" {
		return transfer.Transfer{}, fmt.Errorf("%w: manager_id, out_player_id and in_player_id are required", ErrInvalidInput)
	}
	if outPlayerID == inPlayerID {
		return transfer.Transfer{}, fmt.Errorf("%w: out and in player must differ", ErrInvalidInput)
	}

	league, err := s.gameweekRepo.GetState(ctx)
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("get league state before transfer: %w", err)
	}
	if league.Phase != gameweek.PhaseActive {
		return transfer.Transfer{}, fmt.Errorf("%w: transfers are only allowed during an active gameweek, league phase is %s", ErrIllegalTransition, league.Phase)
	}

	ownSquad, exists, err := s.squadRepo.GetByManager(ctx, managerID)
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("get squad for transfer manager=%s: %w", managerID, err)
	}
	if !exists {
		return transfer.Transfer{}, fmt.Errorf("%w: manager %s has no squad", ErrNotFound, managerID)
	}
	if !ownSquad.Contains(outPlayerID) {
		return transfer.Transfer{}, fmt.Errorf("%w: player=%s manager=%s", squad.ErrPlayerNotInSquad, outPlayerID, managerID)
	}

	outPlayer, found, err := s.playerRepo.GetByID(ctx, outPlayerID)
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("get outgoing player %s: %w", outPlayerID, err)
	}
	if !found {
		return transfer.Transfer{}, fmt.Errorf("%w: player=%s", ErrNotFound, outPlayerID)
	}
	inPlayer, found, err := s.playerRepo.GetByID(ctx, inPlayerID)
	if err != nil {
		return transfer.Transfer{}, fmt.Errorf("get incoming player %s: %w", inPlayerID, err)
	}
	if !found {
		return transfer.Transfer{}, fmt.Errorf("%w: player=%s", ErrNotFound, inPlayerID)
	}

	if inPlayer.Position != outPlayer.Position {
		return transfer.Transfer{}, fmt.Errorf(
			"%w: out=%s plays %s, in=%s plays %s",
			transfer.ErrPositionMismatch, outPlayerID, outPlayer.Position, inPlayerID, inPlayer.Position,
		)
	}

	if owner, owned, err := s.squadRepo.OwnerOf(ctx, inPlayerID); err != nil {
		return transfer.Transfer{}, fmt.Errorf("check ownership of incoming player %s: %w", inPlayerID, err)
	} else if owned {
		return transfer.Transfer{}, fmt.Errorf("%w: player=%s owner=%s", squad.ErrPlayerAlreadyOwned, inPlayerID, owner)
	}

	if err := s.squadRepo.SwapMember(ctx, managerID,
		squad.Member{PlayerID: outPlayerID, Position: outPlayer.Position},
		squad.Member{PlayerID: inPlayerID, Position: inPlayer.Position},
	); err != nil {
		return transfer.Transfer{}, fmt.Errorf("swap %s for %s in squad of %s: %w", outPlayerID, inPlayerID, managerID, err)
	}

	item := transfer.Transfer{
		ManagerID:   managerID,
		Gameweek:    league.Current,
		OutPlayerID: outPlayerID,
		InPlayerID:  inPlayerID,
		Position:    inPlayer.Position,
		AppliedAt:   s.now().UTC(),
	}
	if err := s.transferRepo.Record(ctx, item); err != nil {
		return transfer.Transfer{}, fmt.Errorf("record transfer manager=%s gameweek=%d: %w", managerID, league.Current, err)
	}

	s.logger.InfoContext(ctx, "transfer applied",
		"manager_id", managerID,
		"gameweek", league.Current,
		"out_player_id", outPlayerID,
		"in_player_id", inPlayerID,
	)
	return item, nil
}

// ListByManager returns the transfer history of one manager for a gameweek,
// newest last.
func (s *TransferService) ListByManager(ctx context.Context, managerID string, gw int) ([]transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.ListByManager")
	defer span.End()

	managerID = strings.TrimSpace(managerID)
	if managerID == "" {
		return nil, fmt.Errorf("%w: manager_id is required", ErrInvalidInput)
	}
	if gw <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}

	items, err := s.transferRepo.ListByManagerAndGameweek(ctx, managerID, gw)
	if err != nil {
		return nil, fmt.Errorf("list transfers manager=%s gameweek=%d: %w", managerID, gw, err)
	}
	return items, nil
}
