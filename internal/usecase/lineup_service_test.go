package usecase

import (
	"errors"
	"testing"

	"github.com/openfantasy/draft-league/internal/domain/lineup"
	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/squad"
)

// validLineupInput builds a legal 1-4-4-2 plus flex submission from the
// manager's drafted squad: the fifth defender fills the flex slot.
func validLineupInput(t *testing.T, f *leagueFixture, managerID string) SubmitLineupInput {
	t.Helper()

	byPos := squadByPosition(t, f, managerID)
	return SubmitLineupInput{
		ManagerID:     managerID,
		GoalkeeperID:  byPos[player.PositionGoalkeeper][0],
		DefenderIDs:   byPos[player.PositionDefender][:4],
		MidfielderIDs: byPos[player.PositionMidfielder][:4],
		ForwardIDs:    byPos[player.PositionForward][:2],
		FlexID:        byPos[player.PositionDefender][4],
		CaptainID:     byPos[player.PositionMidfielder][0],
	}
}

func TestLineupService_Submit_Valid(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	input := validLineupInput(t, f, "mgr-alex")
	item, err := f.lineupSvc.Submit(t.Context(), input)
	if err != nil {
		t.Fatalf("submit lineup: %v", err)
	}
	if item.Gameweek != 1 {
		t.Fatalf("expected gameweek 1, got %d", item.Gameweek)
	}
	if len(item.StarterIDs()) != lineup.StarterSize {
		t.Fatalf("expected %d starters, got %d", lineup.StarterSize, len(item.StarterIDs()))
	}
	if item.CaptainID != input.CaptainID {
		t.Fatalf("unexpected captain: %s", item.CaptainID)
	}
}

func TestLineupService_Submit_Resubmission(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	input := validLineupInput(t, f, "mgr-alex")
	if _, err := f.lineupSvc.Submit(t.Context(), input); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	byPos := squadByPosition(t, f, "mgr-alex")
	input.FlexID = byPos[player.PositionMidfielder][4]
	updated, err := f.lineupSvc.Submit(t.Context(), input)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if updated.FlexID != input.FlexID {
		t.Fatalf("resubmission did not replace flex, got %s", updated.FlexID)
	}
}

func TestLineupService_Submit_GoalkeeperInFlex(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	byPos := squadByPosition(t, f, "mgr-alex")
	input := validLineupInput(t, f, "mgr-alex")
	input.FlexID = byPos[player.PositionGoalkeeper][1]

	if _, err := f.lineupSvc.Submit(t.Context(), input); !errors.Is(err, lineup.ErrInvalidFormation) {
		t.Fatalf("expected ErrInvalidFormation for goalkeeper in flex, got %v", err)
	}
}

func TestLineupService_Submit_WrongSlotPosition(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	byPos := squadByPosition(t, f, "mgr-alex")
	input := validLineupInput(t, f, "mgr-alex")
	input.DefenderIDs = append([]string(nil), input.DefenderIDs...)
	input.DefenderIDs[0] = byPos[player.PositionMidfielder][4]

	if _, err := f.lineupSvc.Submit(t.Context(), input); !errors.Is(err, lineup.ErrInvalidFormation) {
		t.Fatalf("expected ErrInvalidFormation for midfielder in defender slot, got %v", err)
	}
}

func TestLineupService_Submit_DuplicateStarter(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	input := validLineupInput(t, f, "mgr-alex")
	input.FlexID = input.DefenderIDs[0]

	if _, err := f.lineupSvc.Submit(t.Context(), input); !errors.Is(err, lineup.ErrInvalidFormation) {
		t.Fatalf("expected ErrInvalidFormation for duplicate starter, got %v", err)
	}
}

func TestLineupService_Submit_PlayerOutsideSquad(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	samPos := squadByPosition(t, f, "mgr-sam")
	input := validLineupInput(t, f, "mgr-alex")
	input.DefenderIDs = append([]string(nil), input.DefenderIDs...)
	input.DefenderIDs[0] = samPos[player.PositionDefender][0]

	if _, err := f.lineupSvc.Submit(t.Context(), input); !errors.Is(err, squad.ErrPlayerNotInSquad) {
		t.Fatalf("expected ErrPlayerNotInSquad, got %v", err)
	}
}

func TestLineupService_Submit_CaptainMustStart(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	byPos := squadByPosition(t, f, "mgr-alex")
	input := validLineupInput(t, f, "mgr-alex")
	input.CaptainID = byPos[player.PositionForward][2]

	if _, err := f.lineupSvc.Submit(t.Context(), input); !errors.Is(err, lineup.ErrInvalidFormation) {
		t.Fatalf("expected ErrInvalidFormation for benched captain, got %v", err)
	}
}

func TestLineupService_Submit_RequiresActivePhase(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)

	input := SubmitLineupInput{
		ManagerID:     "mgr-alex",
		GoalkeeperID:  "gk-01",
		DefenderIDs:   []string{"def-01", "def-02", "def-03", "def-04"},
		MidfielderIDs: []string{"mid-01", "mid-02", "mid-03", "mid-04"},
		ForwardIDs:    []string{"fwd-01", "fwd-02"},
		FlexID:        "def-05",
		CaptainID:     "mid-01",
	}
	if _, err := f.lineupSvc.Submit(t.Context(), input); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition outside active phase, got %v", err)
	}
}

func TestLineupService_SetCaptain(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	input := validLineupInput(t, f, "mgr-alex")
	if _, err := f.lineupSvc.Submit(t.Context(), input); err != nil {
		t.Fatalf("submit lineup: %v", err)
	}

	updated, err := f.lineupSvc.SetCaptain(t.Context(), "mgr-alex", input.ForwardIDs[0])
	if err != nil {
		t.Fatalf("set captain: %v", err)
	}
	if updated.CaptainID != input.ForwardIDs[0] {
		t.Fatalf("captain not updated, got %s", updated.CaptainID)
	}
}

func TestLineupService_SetCaptain_MustBeStarter(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	input := validLineupInput(t, f, "mgr-alex")
	if _, err := f.lineupSvc.Submit(t.Context(), input); err != nil {
		t.Fatalf("submit lineup: %v", err)
	}

	byPos := squadByPosition(t, f, "mgr-alex")
	benched := byPos[player.PositionForward][2]
	if _, err := f.lineupSvc.SetCaptain(t.Context(), "mgr-alex", benched); !errors.Is(err, lineup.ErrInvalidFormation) {
		t.Fatalf("expected ErrInvalidFormation for benched captain, got %v", err)
	}
}

func TestLineupService_SetCaptain_WithoutLineup(t *testing.T) {
	f := newLeagueFixture(t, MissingLineupRequire)
	runFullDraft(t, f)

	if _, err := f.lineupSvc.SetCaptain(t.Context(), "mgr-alex", "mid-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without submitted lineup, got %v", err)
	}
}
