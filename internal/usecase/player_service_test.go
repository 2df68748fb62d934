package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/scoring"
	"github.com/openfantasy/draft-league/internal/infrastructure/repository/memory"
)

func newPlayerService(t *testing.T) *PlayerService {
	t.Helper()

	statsRepo := memory.NewStatsFeedRepository()
	if err := statsRepo.Put(t.Context(), memory.SeedSnapshot(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}
	return NewPlayerService(memory.NewPlayerRepository(memory.SeedPlayers()), statsRepo)
}

func TestPlayerService_List_SortedBySeasonPoints(t *testing.T) {
	svc := newPlayerService(t)

	views, err := svc.List(t.Context(), "")
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(views) != len(memory.SeedPlayers()) {
		t.Fatalf("expected full pool, got %d", len(views))
	}

	for i := 1; i < len(views); i++ {
		prev, cur := views[i-1], views[i]
		if prev.SeasonPoints < cur.SeasonPoints {
			t.Fatalf("not sorted by points at %d: %.2f before %.2f", i, prev.SeasonPoints, cur.SeasonPoints)
		}
		if prev.SeasonPoints == cur.SeasonPoints && prev.ID > cur.ID {
			t.Fatalf("tie not broken by id at %d: %s before %s", i, prev.ID, cur.ID)
		}
	}
}

func TestPlayerService_List_PositionFilter(t *testing.T) {
	svc := newPlayerService(t)

	views, err := svc.List(t.Context(), "gk")
	if err != nil {
		t.Fatalf("list goalkeepers: %v", err)
	}
	if len(views) == 0 {
		t.Fatalf("expected goalkeepers in the pool")
	}
	for _, view := range views {
		if view.Position != player.PositionGoalkeeper {
			t.Fatalf("filter leaked %s (%s)", view.ID, view.Position)
		}
	}
}

func TestPlayerService_List_UnknownPosition(t *testing.T) {
	svc := newPlayerService(t)

	if _, err := svc.List(t.Context(), "libero"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown position, got %v", err)
	}
}

func TestPlayerService_GetByID(t *testing.T) {
	svc := newPlayerService(t)

	view, err := svc.GetByID(t.Context(), "mid-01")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if view.ID != "mid-01" || view.Position != player.PositionMidfielder {
		t.Fatalf("unexpected player: %+v", view.Player)
	}
	if want := scoring.Points(view.Stats, view.Position); view.SeasonPoints != want {
		t.Fatalf("season points: got %.2f want %.2f", view.SeasonPoints, want)
	}
}

func TestPlayerService_GetByID_NotFound(t *testing.T) {
	svc := newPlayerService(t)

	if _, err := svc.GetByID(t.Context(), "mid-99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
