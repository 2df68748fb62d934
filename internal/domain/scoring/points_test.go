package scoring

import (
	"testing"

	"github.com/openfantasy/draft-league/internal/domain/player"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		name  string
		pos   player.Position
		stats player.StatBag
		want  float64
	}{
		{
			name: "defender worked example",
			pos:  player.PositionDefender,
			stats: player.StatBag{
				Goals:         2,
				Assists:       1,
				CleanSheets:   1,
				TacklesWon:    3,
				Interceptions: 2,
				YellowCards:   1,
			},
			want: 23,
		},
		{
			name:  "goalkeeper save floor",
			pos:   player.PositionGoalkeeper,
			stats: player.StatBag{Saves: 7},
			want:  2,
		},
		{
			name: "goalkeeper full line",
			pos:  player.PositionGoalkeeper,
			stats: player.StatBag{
				CleanSheets:   3,
				Saves:         10,
				PenaltySaves:  1,
				GoalsConceded: 5,
			},
			want: 3*4 + 3 + 5 - 2,
		},
		{
			name: "goalkeeper big chances excluded",
			pos:  player.PositionGoalkeeper,
			stats: player.StatBag{
				BigChancesCreated: 4,
			},
			want: 0,
		},
		{
			name: "midfielder half point dribbles",
			pos:  player.PositionMidfielder,
			stats: player.StatBag{
				Goals:        1,
				DribblesPast: 3,
			},
			want: 6.5,
		},
		{
			name: "forward with universal terms",
			pos:  player.PositionForward,
			stats: player.StatBag{
				Goals:             2,
				Assists:           1,
				ShotsOnTarget:     4,
				BigChancesCreated: 2,
				ManOfTheMatch:     1,
				RedCards:          1,
				PenaltiesMissed:   1,
			},
			want: 8 + 3 + 4 + 2 + 3 - 3 - 2,
		},
		{
			name:  "zero value bag scores zero",
			pos:   player.PositionMidfielder,
			stats: player.StatBag{},
			want:  0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Points(tc.stats, tc.pos)
			if got != tc.want {
				t.Fatalf("Points() = %v, want %v", got, tc.want)
			}

			// Same inputs must always produce the same output.
			if again := Points(tc.stats, tc.pos); again != got {
				t.Fatalf("Points() not deterministic: first=%v second=%v", got, again)
			}
		})
	}
}
