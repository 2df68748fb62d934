package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/gameweek"
	"github.com/openfantasy/draft-league/internal/infrastructure/repository/memory"
	idgen "github.com/openfantasy/draft-league/internal/platform/id"
	"github.com/openfantasy/draft-league/internal/platform/logging"
)

func newLeagueService(managerRepo *memory.ManagerRepository, gameweekRepo *memory.GameweekRepository) *LeagueService {
	return NewLeagueService(managerRepo, gameweekRepo, idgen.NewRandomGenerator(), logging.NewNop())
}

func TestLeagueService_RegisterManager_FirstIsAdmin(t *testing.T) {
	managerRepo := memory.NewManagerRepository(nil)
	svc := newLeagueService(managerRepo, memory.NewGameweekRepository())

	first, err := svc.RegisterManager(t.Context(), RegisterManagerInput{Name: "Alex", TeamName: "Northbank Rovers"})
	if err != nil {
		t.Fatalf("register first manager: %v", err)
	}
	if !first.IsAdmin {
		t.Fatalf("expected first manager to be admin")
	}
	if first.ID == "" {
		t.Fatalf("expected generated manager id")
	}

	second, err := svc.RegisterManager(t.Context(), RegisterManagerInput{Name: "Sam", TeamName: "Dockside Athletic"})
	if err != nil {
		t.Fatalf("register second manager: %v", err)
	}
	if second.IsAdmin {
		t.Fatalf("expected exactly one admin")
	}
}

func TestLeagueService_RegisterManager_NameTaken(t *testing.T) {
	svc := newLeagueService(memory.NewManagerRepository(nil), memory.NewGameweekRepository())

	if _, err := svc.RegisterManager(t.Context(), RegisterManagerInput{Name: "Alex", TeamName: "Northbank Rovers"}); err != nil {
		t.Fatalf("register manager: %v", err)
	}
	if _, err := svc.RegisterManager(t.Context(), RegisterManagerInput{Name: "  alex ", TeamName: "Other"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for taken name, got %v", err)
	}
}

func TestLeagueService_RegisterManager_ClosedAfterSetup(t *testing.T) {
	gameweekRepo := memory.NewGameweekRepository()
	if err := gameweekRepo.PutState(t.Context(), gameweek.State{Phase: gameweek.PhaseDraft}); err != nil {
		t.Fatalf("put state: %v", err)
	}
	svc := newLeagueService(memory.NewManagerRepository(nil), gameweekRepo)

	if _, err := svc.RegisterManager(t.Context(), RegisterManagerInput{Name: "Late", TeamName: "Latecomers"}); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition once draft started, got %v", err)
	}
}

func TestLeagueService_Standings_RanksByNetPoints(t *testing.T) {
	managerRepo := memory.NewManagerRepository(memory.SeedManagers())
	gameweekRepo := memory.NewGameweekRepository()
	svc := newLeagueService(managerRepo, gameweekRepo)

	if err := gameweekRepo.PutState(t.Context(), gameweek.State{Phase: gameweek.PhaseActive, Current: 1}); err != nil {
		t.Fatalf("put state: %v", err)
	}

	settleAt := time.Date(2026, 8, 15, 21, 0, 0, 0, time.UTC)
	settlements := []gameweek.Settlement{
		{
			Gameweek: 1,
			Results: []gameweek.ManagerResult{
				{ManagerID: "mgr-alex", GrossPoints: 40, NetPoints: 40},
				{ManagerID: "mgr-sam", GrossPoints: 55, NetPoints: 55},
			},
			PlayerBaselines: map[string]float64{},
			SettledAt:       settleAt,
		},
		{
			Gameweek: 2,
			Results: []gameweek.ManagerResult{
				{ManagerID: "mgr-alex", GrossPoints: 30, TransferPenalty: 6, NetPoints: 24},
				{ManagerID: "mgr-sam", GrossPoints: 8, NetPoints: 8},
			},
			PlayerBaselines: map[string]float64{},
			SettledAt:       settleAt.Add(7 * 24 * time.Hour),
		},
	}
	for i, settlement := range settlements {
		next := gameweek.State{Phase: gameweek.PhaseActive, Current: i + 2}
		if err := gameweekRepo.Advance(t.Context(), settlement, next); err != nil {
			t.Fatalf("store settlement %d: %v", settlement.Gameweek, err)
		}
	}

	rows, err := svc.Standings(t.Context())
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ManagerID != "mgr-alex" || rows[0].Rank != 1 || rows[0].TotalPoints != 64 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].ManagerID != "mgr-sam" || rows[1].Rank != 2 || rows[1].TotalPoints != 63 {
		t.Fatalf("unexpected runner-up: %+v", rows[1])
	}
}

func TestLeagueService_Standings_TieBreaksOnTeamName(t *testing.T) {
	managerRepo := memory.NewManagerRepository(memory.SeedManagers())
	svc := newLeagueService(managerRepo, memory.NewGameweekRepository())

	rows, err := svc.Standings(t.Context())
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	// No settlements: everyone at zero, alphabetical by team name.
	if rows[0].TeamName != "Dockside Athletic" || rows[1].TeamName != "Northbank Rovers" {
		t.Fatalf("unexpected tie order: %q then %q", rows[0].TeamName, rows[1].TeamName)
	}
}

func TestLeagueService_ListManagers_SortedByName(t *testing.T) {
	svc := newLeagueService(memory.NewManagerRepository(memory.SeedManagers()), memory.NewGameweekRepository())

	items, err := svc.ListManagers(t.Context())
	if err != nil {
		t.Fatalf("list managers: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Alex" || items[1].Name != "Sam" {
		t.Fatalf("unexpected manager order: %+v", items)
	}
}
