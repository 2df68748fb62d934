package usecase

import (
	"errors"
	"testing"

	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/squad"
	"github.com/openfantasy/draft-league/internal/domain/transfer"
	"github.com/openfantasy/draft-league/internal/infrastructure/repository/memory"
)

// freeAgent returns the first unowned pool player of the given position.
func freeAgent(t *testing.T, f *leagueFixture, pos player.Position) string {
	t.Helper()

	for _, candidate := range memory.SeedPlayers() {
		if candidate.Position != pos {
			continue
		}
		if _, owned, err := f.squadRepo.OwnerOf(t.Context(), candidate.ID); err != nil {
			t.Fatalf("ownership of %s: %v", candidate.ID, err)
		} else if !owned {
			return candidate.ID
		}
	}
	t.Fatalf("no free agent at position %s", pos)
	return ""
}

func TestTransferService_Apply_LikeForLike(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	byPos := squadByPosition(t, f, "mgr-alex")
	out := byPos[player.PositionDefender][0]
	in := freeAgent(t, f, player.PositionDefender)

	item, err := f.transferSvc.Apply(t.Context(), "mgr-alex", out, in)
	if err != nil {
		t.Fatalf("apply transfer: %v", err)
	}
	if item.Gameweek != 1 || item.Position != player.PositionDefender {
		t.Fatalf("unexpected transfer record: %+v", item)
	}

	own, _, err := f.squadRepo.GetByManager(t.Context(), "mgr-alex")
	if err != nil {
		t.Fatalf("get squad: %v", err)
	}
	if own.Contains(out) || !own.Contains(in) {
		t.Fatalf("swap not applied: out=%v in=%v", own.Contains(out), own.Contains(in))
	}
	if err := own.ValidateComplete(); err != nil {
		t.Fatalf("squad broken after transfer: %v", err)
	}
}

func TestTransferService_Apply_PositionMismatch(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	byPos := squadByPosition(t, f, "mgr-alex")
	out := byPos[player.PositionDefender][0]
	in := freeAgent(t, f, player.PositionMidfielder)

	if _, err := f.transferSvc.Apply(t.Context(), "mgr-alex", out, in); !errors.Is(err, transfer.ErrPositionMismatch) {
		t.Fatalf("expected ErrPositionMismatch for cross-position swap, got %v", err)
	}
}

func TestTransferService_Apply_TargetAlreadyOwned(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	alexPos := squadByPosition(t, f, "mgr-alex")
	samPos := squadByPosition(t, f, "mgr-sam")

	out := alexPos[player.PositionForward][0]
	in := samPos[player.PositionForward][0]
	if _, err := f.transferSvc.Apply(t.Context(), "mgr-alex", out, in); !errors.Is(err, squad.ErrPlayerAlreadyOwned) {
		t.Fatalf("expected ErrPlayerAlreadyOwned, got %v", err)
	}
}

func TestTransferService_Apply_OutPlayerNotOwned(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	out := freeAgent(t, f, player.PositionForward)
	in := freeAgent(t, f, player.PositionMidfielder)
	if _, err := f.transferSvc.Apply(t.Context(), "mgr-alex", out, in); !errors.Is(err, squad.ErrPlayerNotInSquad) {
		t.Fatalf("expected ErrPlayerNotInSquad, got %v", err)
	}
}

func TestTransferService_Apply_OnlyDuringActiveGameweek(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)

	if _, err := f.transferSvc.Apply(t.Context(), "mgr-alex", "def-01", "def-06"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition before active phase, got %v", err)
	}
}

func TestTransferService_Apply_ReversalStillCounts(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	byPos := squadByPosition(t, f, "mgr-alex")
	original := byPos[player.PositionDefender][0]
	replacement := freeAgent(t, f, player.PositionDefender)

	if _, err := f.transferSvc.Apply(t.Context(), "mgr-alex", original, replacement); err != nil {
		t.Fatalf("first transfer: %v", err)
	}
	if _, err := f.transferSvc.Apply(t.Context(), "mgr-alex", replacement, original); err != nil {
		t.Fatalf("reversal transfer: %v", err)
	}

	own, _, err := f.squadRepo.GetByManager(t.Context(), "mgr-alex")
	if err != nil {
		t.Fatalf("get squad: %v", err)
	}
	if !own.Contains(original) || own.Contains(replacement) {
		t.Fatalf("reversal did not restore membership")
	}

	// The counter is append-only: the penalty for the pair stays owed.
	items, err := f.transferSvc.ListByManager(t.Context(), "mgr-alex", 1)
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 recorded transfers, got %d", len(items))
	}
	if got := transfer.PenaltyPoints(len(items)); got != 6 {
		t.Fatalf("expected penalty 6 for two transfers, got %d", got)
	}
}
