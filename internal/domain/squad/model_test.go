package squad

import (
	"errors"
	"testing"

	"github.com/openfantasy/draft-league/internal/domain/player"
)

func fullSquad(managerID string) Squad {
	members := make([]Member, 0, Size)
	add := func(pos player.Position, count int, prefix string) {
		for i := 0; i < count; i++ {
			members = append(members, Member{
				PlayerID: prefix + string(rune('a'+i)),
				Position: pos,
			})
		}
	}
	add(player.PositionGoalkeeper, 2, "gk-")
	add(player.PositionDefender, 5, "def-")
	add(player.PositionMidfielder, 5, "mid-")
	add(player.PositionForward, 3, "fwd-")

	return Squad{ManagerID: managerID, Members: members}
}

func TestSquad_ValidateComplete(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Squad)
		targetErr error
	}{
		{
			name:   "valid full squad",
			mutate: func(_ *Squad) {},
		},
		{
			name: "missing member",
			mutate: func(s *Squad) {
				s.Members = s.Members[:Size-1]
			},
			targetErr: ErrSquadIncomplete,
		},
		{
			name: "duplicate player",
			mutate: func(s *Squad) {
				s.Members[1].PlayerID = s.Members[0].PlayerID
			},
			targetErr: ErrDuplicatePlayer,
		},
		{
			name: "broken quota",
			mutate: func(s *Squad) {
				// Third goalkeeper in place of a forward.
				s.Members[Size-1].Position = player.PositionGoalkeeper
			},
			targetErr: ErrPositionQuotaBroken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := fullSquad("m1")
			tc.mutate(&s)

			err := s.ValidateComplete()
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("ValidateComplete failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestSquad_CanAdd(t *testing.T) {
	s := fullSquad("m1")
	if err := s.CanAdd(player.PositionForward); !errors.Is(err, ErrPositionQuotaFull) {
		t.Fatalf("expected %v on full squad, got %v", ErrPositionQuotaFull, err)
	}

	s.Members = s.Members[:Size-1] // drop one forward
	if err := s.CanAdd(player.PositionForward); err != nil {
		t.Fatalf("CanAdd with open forward slot failed: %v", err)
	}
	if err := s.CanAdd(player.PositionGoalkeeper); !errors.Is(err, ErrPositionQuotaFull) {
		t.Fatalf("expected %v for third goalkeeper, got %v", ErrPositionQuotaFull, err)
	}
	if err := s.CanAdd(player.Position("WING")); !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("expected %v, got %v", ErrUnknownPosition, err)
	}
}
