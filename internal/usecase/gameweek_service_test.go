package usecase

import (
	"errors"
	"math"
	"testing"

	"github.com/openfantasy/draft-league/internal/domain/gameweek"
	"github.com/openfantasy/draft-league/internal/domain/lineup"
	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/scoring"
	"github.com/openfantasy/draft-league/internal/infrastructure/repository/memory"
)

// expectedGross recomputes a gameweek-one gross from the seeded season
// stats: every baseline is zero so each starter contributes their full
// season points, the captain twice.
func expectedGross(item lineup.Lineup) float64 {
	pool := make(map[string]player.Player)
	for _, p := range memory.SeedPlayers() {
		pool[p.ID] = p
	}

	gross := 0.0
	for _, id := range item.StarterIDs() {
		pts := scoring.Points(pool[id].Stats, pool[id].Position)
		gross += pts
		if id == item.CaptainID {
			gross += pts * (scoring.CaptainMultiplier - 1)
		}
	}
	return gross
}

func findResult(t *testing.T, settlement gameweek.Settlement, managerID string) gameweek.ManagerResult {
	t.Helper()
	for _, result := range settlement.Results {
		if result.ManagerID == managerID {
			return result
		}
	}
	t.Fatalf("no result for manager %s", managerID)
	return gameweek.ManagerResult{}
}

func TestGameweekService_Advance_AdminOnly(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	if _, err := f.gameweekSvc.Advance(t.Context(), "mgr-sam"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-admin, got %v", err)
	}
}

func TestGameweekService_Advance_RequiresActivePhase(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)

	if _, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition in setup phase, got %v", err)
	}

	if _, err := f.draftSvc.Start(t.Context(), []string{"mgr-alex", "mgr-sam"}); err != nil {
		t.Fatalf("start draft: %v", err)
	}
	if _, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition mid-draft, got %v", err)
	}
}

func TestGameweekService_Advance_MissingLineupFailsUnderRequire(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	if _, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex"); !errors.Is(err, lineup.ErrMissing) {
		t.Fatalf("expected ErrMissing under require policy, got %v", err)
	}
}

func TestGameweekService_Advance_SettlesAndMovesCursor(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	alexLineup, err := f.lineupSvc.Submit(t.Context(), validLineupInput(t, f, "mgr-alex"))
	if err != nil {
		t.Fatalf("submit alex lineup: %v", err)
	}
	samLineup, err := f.lineupSvc.Submit(t.Context(), validLineupInput(t, f, "mgr-sam"))
	if err != nil {
		t.Fatalf("submit sam lineup: %v", err)
	}

	settlement, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if settlement.Gameweek != 1 {
		t.Fatalf("expected settlement for gameweek 1, got %d", settlement.Gameweek)
	}
	if len(settlement.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(settlement.Results))
	}

	for _, tc := range []struct {
		managerID string
		item      lineup.Lineup
	}{
		{"mgr-alex", alexLineup},
		{"mgr-sam", samLineup},
	} {
		result := findResult(t, settlement, tc.managerID)
		want := expectedGross(tc.item)
		if math.Abs(result.GrossPoints-want) > 1e-9 {
			t.Fatalf("%s gross: got %.3f want %.3f", tc.managerID, result.GrossPoints, want)
		}
		if result.TransferPenalty != 0 {
			t.Fatalf("%s penalty: got %d want 0", tc.managerID, result.TransferPenalty)
		}
		if math.Abs(result.NetPoints-want) > 1e-9 {
			t.Fatalf("%s net: got %.3f want %.3f", tc.managerID, result.NetPoints, want)
		}
		if result.CaptainID != tc.item.CaptainID {
			t.Fatalf("%s captain: got %s want %s", tc.managerID, result.CaptainID, tc.item.CaptainID)
		}
	}

	state, err := f.gameweekSvc.Current(t.Context())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if state.Phase != gameweek.PhaseActive || state.Current != 2 {
		t.Fatalf("expected active gameweek 2, got phase=%s current=%d", state.Phase, state.Current)
	}
}

func TestGameweekService_Advance_TransferPenaltyApplied(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupCarryForward)
	runFullDraft(t, f)

	if _, err := f.lineupSvc.Submit(t.Context(), validLineupInput(t, f, "mgr-alex")); err != nil {
		t.Fatalf("submit alex lineup: %v", err)
	}
	if _, err := f.lineupSvc.Submit(t.Context(), validLineupInput(t, f, "mgr-sam")); err != nil {
		t.Fatalf("submit sam lineup: %v", err)
	}

	// Three like-for-like swaps of bench players: escalating penalty 2+4+6
	// without touching the submitted starters.
	byPos := squadByPosition(t, f, "mgr-alex")
	for _, bench := range []struct {
		pos player.Position
		idx int
	}{
		{player.PositionGoalkeeper, 1},
		{player.PositionMidfielder, 4},
		{player.PositionForward, 2},
	} {
		out := byPos[bench.pos][bench.idx]
		in := freeAgent(t, f, bench.pos)
		if _, err := f.transferSvc.Apply(t.Context(), "mgr-alex", out, in); err != nil {
			t.Fatalf("transfer %s for %s: %v", in, out, err)
		}
	}

	settlement, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	alex := findResult(t, settlement, "mgr-alex")
	if alex.TransferPenalty != 12 {
		t.Fatalf("expected penalty 12 after three transfers, got %d", alex.TransferPenalty)
	}
	if math.Abs(alex.NetPoints-(alex.GrossPoints-12)) > 1e-9 {
		t.Fatalf("net does not reflect penalty: gross=%.3f net=%.3f", alex.GrossPoints, alex.NetPoints)
	}

	// Counter resets with the cursor: gameweek 2 settles penalty-free.
	second, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex")
	if err != nil {
		t.Fatalf("second advance: %v", err)
	}
	if got := findResult(t, second, "mgr-alex").TransferPenalty; got != 0 {
		t.Fatalf("expected penalty reset in gameweek 2, got %d", got)
	}
}

func TestGameweekService_Advance_SkipsTransferredOutStarter(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	alexLineup, err := f.lineupSvc.Submit(t.Context(), validLineupInput(t, f, "mgr-alex"))
	if err != nil {
		t.Fatalf("submit alex lineup: %v", err)
	}
	if _, err := f.lineupSvc.Submit(t.Context(), validLineupInput(t, f, "mgr-sam")); err != nil {
		t.Fatalf("submit sam lineup: %v", err)
	}

	// Swap out a non-captain starter after the lineup is in; the stored
	// lineup now names a player alex no longer owns.
	out := alexLineup.ForwardIDs[0]
	in := freeAgent(t, f, player.PositionForward)
	if _, err := f.transferSvc.Apply(t.Context(), "mgr-alex", out, in); err != nil {
		t.Fatalf("transfer %s for %s: %v", in, out, err)
	}

	settlement, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	pool := make(map[string]player.Player)
	for _, p := range memory.SeedPlayers() {
		pool[p.ID] = p
	}
	want := expectedGross(alexLineup) - scoring.Points(pool[out].Stats, pool[out].Position)

	alex := findResult(t, settlement, "mgr-alex")
	if math.Abs(alex.GrossPoints-want) > 1e-9 {
		t.Fatalf("departed starter still scored: got %.3f want %.3f", alex.GrossPoints, want)
	}
	if alex.TransferPenalty != 2 {
		t.Fatalf("expected penalty 2 for one transfer, got %d", alex.TransferPenalty)
	}
}

func TestGameweekService_Advance_ZeroPolicy(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupZero)
	runFullDraft(t, f)

	settlement, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	for _, result := range settlement.Results {
		if result.GrossPoints != 0 || result.CaptainID != "" {
			t.Fatalf("expected zero settlement for %s, got %+v", result.ManagerID, result)
		}
	}
}

func TestGameweekService_Advance_CarryForwardReusesLineup(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupCarryForward)
	runFullDraft(t, f)

	alexLineup, err := f.lineupSvc.Submit(t.Context(), validLineupInput(t, f, "mgr-alex"))
	if err != nil {
		t.Fatalf("submit alex lineup: %v", err)
	}
	if _, err := f.lineupSvc.Submit(t.Context(), validLineupInput(t, f, "mgr-sam")); err != nil {
		t.Fatalf("submit sam lineup: %v", err)
	}

	if _, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex"); err != nil {
		t.Fatalf("first advance: %v", err)
	}

	// Nobody resubmits; the feed has not moved, so carried lineups score a
	// zero delta but keep their captain on record.
	second, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex")
	if err != nil {
		t.Fatalf("second advance: %v", err)
	}
	alex := findResult(t, second, "mgr-alex")
	if alex.GrossPoints != 0 {
		t.Fatalf("expected zero delta on unchanged stats, got %.3f", alex.GrossPoints)
	}
	if alex.CaptainID != alexLineup.CaptainID {
		t.Fatalf("expected carried captain %s, got %s", alexLineup.CaptainID, alex.CaptainID)
	}
}

func TestGameweekService_Advance_SettlementIsImmutable(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupZero)
	runFullDraft(t, f)

	first, err := f.gameweekSvc.Advance(t.Context(), "mgr-alex")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}

	// Replaying the same settlement against the repository must bounce.
	err = f.gameweekRepo.Advance(t.Context(), first, gameweek.State{Phase: gameweek.PhaseActive, Current: 2})
	if !errors.Is(err, gameweek.ErrAlreadyAdvanced) {
		t.Fatalf("expected ErrAlreadyAdvanced on replay, got %v", err)
	}

	stored, err := f.gameweekSvc.Results(t.Context(), 1)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if stored.Gameweek != 1 || len(stored.Results) != len(first.Results) {
		t.Fatalf("settled results changed: %+v", stored)
	}
}

func TestGameweekService_Results_Unsettled(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)

	if _, err := f.gameweekSvc.Results(t.Context(), 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unsettled gameweek, got %v", err)
	}
}

func TestGameweekService_Advance_NoSnapshot(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupZero)
	runFullDraft(t, f)

	// Same league, but settlement reads from a store that never ingested.
	emptyRepo := memory.NewStatsFeedRepository()
	svc := NewGameweekService(f.gameweekRepo, f.lineupRepo, f.transferRepo, emptyRepo, f.managerRepo, f.squadRepo, MissingLineupZero, nil)

	if _, err := svc.Advance(t.Context(), "mgr-alex"); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable without snapshot, got %v", err)
	}
}
