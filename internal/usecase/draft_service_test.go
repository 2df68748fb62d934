package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/draft"
	"github.com/openfantasy/draft-league/internal/domain/gameweek"
	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/squad"
	"github.com/openfantasy/draft-league/internal/infrastructure/repository/memory"
	"github.com/openfantasy/draft-league/internal/platform/logging"
)

// leagueFixture wires every service against a fresh seeded memory store.
type leagueFixture struct {
	managerRepo  *memory.ManagerRepository
	playerRepo   *memory.PlayerRepository
	squadRepo    *memory.SquadRepository
	draftRepo    *memory.DraftRepository
	lineupRepo   *memory.LineupRepository
	transferRepo *memory.TransferRepository
	gameweekRepo *memory.GameweekRepository
	statsRepo    *memory.StatsFeedRepository

	draftSvc    *DraftService
	lineupSvc   *LineupService
	transferSvc *TransferService
	gameweekSvc *GameweekService
}

func newLeagueFixture(t *testing.T, policy MissingLineupPolicy) *leagueFixture {
	t.Helper()

	f := &leagueFixture{
		managerRepo:  memory.NewManagerRepository(memory.SeedManagers()),
		playerRepo:   memory.NewPlayerRepository(memory.SeedPlayers()),
		squadRepo:    memory.NewSquadRepository(),
		draftRepo:    memory.NewDraftRepository(),
		lineupRepo:   memory.NewLineupRepository(),
		transferRepo: memory.NewTransferRepository(),
		gameweekRepo: memory.NewGameweekRepository(),
		statsRepo:    memory.NewStatsFeedRepository(),
	}
	if err := f.statsRepo.Put(context.Background(), memory.SeedSnapshot(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	logger := logging.NewNop()
	f.draftSvc = NewDraftService(f.draftRepo, f.squadRepo, f.managerRepo, f.playerRepo, f.gameweekRepo, logger)
	f.lineupSvc = NewLineupService(f.lineupRepo, f.squadRepo, f.playerRepo, f.gameweekRepo, logger)
	f.transferSvc = NewTransferService(f.transferRepo, f.squadRepo, f.playerRepo, f.gameweekRepo, logger)
	f.gameweekSvc = NewGameweekService(f.gameweekRepo, f.lineupRepo, f.transferRepo, f.statsRepo, f.managerRepo, f.squadRepo, policy, logger)

	return f
}

// runFullDraft drafts both seeded managers to complete squads: each picker
// takes the first free pool player whose position still has quota room.
func runFullDraft(t *testing.T, f *leagueFixture) {
	t.Helper()
	ctx := context.Background()

	state, err := f.draftSvc.Start(ctx, []string{"mgr-alex", "mgr-sam"})
	if err != nil {
		t.Fatalf("start draft: %v", err)
	}

	pool := memory.SeedPlayers()
	for state.Phase == draft.PhaseInProgress {
		picker, ok := state.CurrentPicker()
		if !ok {
			t.Fatalf("no current picker at index %d", state.PickIndex)
		}

		playerID := nextLegalPick(t, f, picker, pool)
		state, err = f.draftSvc.MakePick(ctx, picker, playerID)
		if err != nil {
			t.Fatalf("pick %s for %s: %v", playerID, picker, err)
		}
	}

	if state.Phase != draft.PhaseComplete {
		t.Fatalf("draft did not complete, phase=%s", state.Phase)
	}
}

func nextLegalPick(t *testing.T, f *leagueFixture, managerID string, pool []player.Player) string {
	t.Helper()
	ctx := context.Background()

	own, _, err := f.squadRepo.GetByManager(ctx, managerID)
	if err != nil {
		t.Fatalf("get squad for %s: %v", managerID, err)
	}
	for _, candidate := range pool {
		if _, owned, err := f.squadRepo.OwnerOf(ctx, candidate.ID); err != nil {
			t.Fatalf("ownership of %s: %v", candidate.ID, err)
		} else if owned {
			continue
		}
		if own.CanAdd(candidate.Position) == nil {
			return candidate.ID
		}
	}
	t.Fatalf("no legal pick left for %s", managerID)
	return ""
}

// squadByPosition groups a manager's members per position, in draft order.
func squadByPosition(t *testing.T, f *leagueFixture, managerID string) map[player.Position][]string {
	t.Helper()

	own, exists, err := f.squadRepo.GetByManager(context.Background(), managerID)
	if err != nil || !exists {
		t.Fatalf("get squad for %s: exists=%v err=%v", managerID, exists, err)
	}

	out := make(map[player.Position][]string)
	for _, m := range own.Members {
		out[m.Position] = append(out[m.Position], m.PlayerID)
	}
	return out
}

func TestDraftService_Start_OnlyFromSetup(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)

	if _, err := f.draftSvc.Start(t.Context(), []string{"mgr-alex", "mgr-sam"}); err != nil {
		t.Fatalf("start draft: %v", err)
	}
	if _, err := f.draftSvc.Start(t.Context(), []string{"mgr-sam", "mgr-alex"}); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition on restart, got %v", err)
	}
}

func TestDraftService_Start_UnknownManager(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)

	if _, err := f.draftSvc.Start(t.Context(), []string{"mgr-alex", "mgr-ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDraftService_MakePick_OutOfTurn(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)

	if _, err := f.draftSvc.Start(t.Context(), []string{"mgr-alex", "mgr-sam"}); err != nil {
		t.Fatalf("start draft: %v", err)
	}
	if _, err := f.draftSvc.MakePick(t.Context(), "mgr-sam", "gk-01"); !errors.Is(err, draft.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
}

func TestDraftService_MakePick_BeforeStart(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)

	if _, err := f.draftSvc.MakePick(t.Context(), "mgr-alex", "gk-01"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
}

func TestDraftService_MakePick_TakenPlayer(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)

	if _, err := f.draftSvc.Start(t.Context(), []string{"mgr-alex", "mgr-sam"}); err != nil {
		t.Fatalf("start draft: %v", err)
	}
	if _, err := f.draftSvc.MakePick(t.Context(), "mgr-alex", "gk-01"); err != nil {
		t.Fatalf("first pick: %v", err)
	}
	// snake order: sam holds picks two and three
	if _, err := f.draftSvc.MakePick(t.Context(), "mgr-sam", "gk-01"); !errors.Is(err, squad.ErrPlayerAlreadyOwned) {
		t.Fatalf("expected ErrPlayerAlreadyOwned, got %v", err)
	}
}

func TestDraftService_MakePick_PositionQuota(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	ctx := t.Context()

	if _, err := f.draftSvc.Start(ctx, []string{"mgr-alex", "mgr-sam"}); err != nil {
		t.Fatalf("start draft: %v", err)
	}

	// Picks run alex, sam, sam, alex, alex in the snake. Alex's third
	// goalkeeper must bounce off the 2-GK quota.
	picks := []struct{ managerID, playerID string }{
		{"mgr-alex", "gk-01"},
		{"mgr-sam", "gk-02"},
		{"mgr-sam", "gk-03"},
		{"mgr-alex", "gk-04"},
	}
	for _, p := range picks {
		if _, err := f.draftSvc.MakePick(ctx, p.managerID, p.playerID); err != nil {
			t.Fatalf("pick %s for %s: %v", p.playerID, p.managerID, err)
		}
	}

	if _, err := f.draftSvc.MakePick(ctx, "mgr-alex", "gk-05"); !errors.Is(err, squad.ErrPositionQuotaFull) {
		t.Fatalf("expected ErrPositionQuotaFull, got %v", err)
	}
}

func TestDraftService_FullDraft_OpensGameweekOne(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	state, err := f.gameweekRepo.GetState(t.Context())
	if err != nil {
		t.Fatalf("get league state: %v", err)
	}
	if state.Phase != gameweek.PhaseActive || state.Current != 1 {
		t.Fatalf("expected active gameweek 1, got phase=%s current=%d", state.Phase, state.Current)
	}

	squads, err := f.squadRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list squads: %v", err)
	}
	if len(squads) != 2 {
		t.Fatalf("expected 2 squads, got %d", len(squads))
	}
	for _, item := range squads {
		if err := item.ValidateComplete(); err != nil {
			t.Fatalf("squad %s incomplete after draft: %v", item.ManagerID, err)
		}
	}
}

func TestDraftService_FullDraft_GlobalUniqueOwnership(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	squads, err := f.squadRepo.List(t.Context())
	if err != nil {
		t.Fatalf("list squads: %v", err)
	}

	seen := make(map[string]string)
	for _, item := range squads {
		for _, m := range item.Members {
			if other, taken := seen[m.PlayerID]; taken {
				t.Fatalf("player %s owned by both %s and %s", m.PlayerID, other, item.ManagerID)
			}
			seen[m.PlayerID] = item.ManagerID
		}
	}
	if len(seen) != 2*squad.Size {
		t.Fatalf("expected %d owned players, got %d", 2*squad.Size, len(seen))
	}
}
