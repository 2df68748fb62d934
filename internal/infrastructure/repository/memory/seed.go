package memory

import (
	"time"

	"github.com/openfantasy/draft-league/internal/domain/manager"
	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/domain/statsfeed"
)

// SeedManagers gives a local deployment two ready participants so the draft
// can start immediately. The first one is the league admin.
func SeedManagers() []manager.Manager {
	return []manager.Manager{
		{ID: "mgr-alex", Name: "Alex", TeamName: "Northbank Rovers", IsAdmin: true},
		{ID: "mgr-sam", Name: "Sam", TeamName: "Dockside Athletic", IsAdmin: false},
	}
}

// SeedPlayers is a pool large enough for two full squads with slack in every
// position: 6 GK, 12 DEF, 12 MID, 8 FWD.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "gk-01", Name: "Andriy Holm", Club: "Northfield", Position: player.PositionGoalkeeper, Stats: player.StatBag{CleanSheets: 4, Saves: 31, GoalsConceded: 9}},
		{ID: "gk-02", Name: "Teo Reyes", Club: "Harbour City", Position: player.PositionGoalkeeper, Stats: player.StatBag{CleanSheets: 3, Saves: 27, PenaltySaves: 1, GoalsConceded: 11}},
		{ID: "gk-03", Name: "Milan Kovar", Club: "Eastgate", Position: player.PositionGoalkeeper, Stats: player.StatBag{CleanSheets: 2, Saves: 22, GoalsConceded: 14}},
		{ID: "gk-04", Name: "Jonas Berg", Club: "Riverdale", Position: player.PositionGoalkeeper, Stats: player.StatBag{CleanSheets: 2, Saves: 19, GoalsConceded: 15}},
		{ID: "gk-05", Name: "Sefu Okafor", Club: "Westmoor", Position: player.PositionGoalkeeper, Stats: player.StatBag{CleanSheets: 1, Saves: 25, GoalsConceded: 18}},
		{ID: "gk-06", Name: "Dario Lemos", Club: "Southport", Position: player.PositionGoalkeeper, Stats: player.StatBag{CleanSheets: 1, Saves: 16, GoalsConceded: 20}},

		{ID: "def-01", Name: "Hugo Mertens", Club: "Northfield", Position: player.PositionDefender, Stats: player.StatBag{Goals: 2, Assists: 1, CleanSheets: 4, TacklesWon: 18, Interceptions: 14}},
		{ID: "def-02", Name: "Karim Said", Club: "Harbour City", Position: player.PositionDefender, Stats: player.StatBag{Goals: 1, CleanSheets: 3, TacklesWon: 22, Interceptions: 17, YellowCards: 3}},
		{ID: "def-03", Name: "Pavel Novak", Club: "Eastgate", Position: player.PositionDefender, Stats: player.StatBag{CleanSheets: 2, TacklesWon: 15, Interceptions: 19}},
		{ID: "def-04", Name: "Liam Doyle", Club: "Riverdale", Position: player.PositionDefender, Stats: player.StatBag{Goals: 1, Assists: 2, CleanSheets: 2, TacklesWon: 12, Interceptions: 9}},
		{ID: "def-05", Name: "Mateus Rocha", Club: "Westmoor", Position: player.PositionDefender, Stats: player.StatBag{CleanSheets: 1, TacklesWon: 20, Interceptions: 11, YellowCards: 4}},
		{ID: "def-06", Name: "Oren Tal", Club: "Southport", Position: player.PositionDefender, Stats: player.StatBag{CleanSheets: 1, TacklesWon: 10, Interceptions: 13}},
		{ID: "def-07", Name: "Felix Braun", Club: "Northfield", Position: player.PositionDefender, Stats: player.StatBag{Assists: 1, CleanSheets: 4, TacklesWon: 8, Interceptions: 7}},
		{ID: "def-08", Name: "Ivan Petrov", Club: "Harbour City", Position: player.PositionDefender, Stats: player.StatBag{CleanSheets: 3, TacklesWon: 14, Interceptions: 10, RedCards: 1}},
		{ID: "def-09", Name: "Cole Mensah", Club: "Eastgate", Position: player.PositionDefender, Stats: player.StatBag{Goals: 1, CleanSheets: 2, TacklesWon: 16, Interceptions: 12}},
		{ID: "def-10", Name: "Arne Vik", Club: "Riverdale", Position: player.PositionDefender, Stats: player.StatBag{CleanSheets: 2, TacklesWon: 11, Interceptions: 8}},
		{ID: "def-11", Name: "Tomas Silva", Club: "Westmoor", Position: player.PositionDefender, Stats: player.StatBag{CleanSheets: 1, TacklesWon: 9, Interceptions: 15, OwnGoals: 1}},
		{ID: "def-12", Name: "Ezra Cohen", Club: "Southport", Position: player.PositionDefender, Stats: player.StatBag{CleanSheets: 1, TacklesWon: 13, Interceptions: 6}},

		{ID: "mid-01", Name: "Nico Vidal", Club: "Northfield", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 6, Assists: 5, CleanSheets: 4, KeyPasses: 21, ShotsOnTarget: 14, DribblesPast: 18, BigChancesCreated: 7}},
		{ID: "mid-02", Name: "Yusuf Demir", Club: "Harbour City", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 4, Assists: 7, CleanSheets: 3, KeyPasses: 25, ShotsOnTarget: 10, DribblesPast: 12, BigChancesCreated: 9}},
		{ID: "mid-03", Name: "Jan Kowal", Club: "Eastgate", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 3, Assists: 4, CleanSheets: 2, KeyPasses: 17, ShotsOnTarget: 9, DribblesPast: 8, BigChancesCreated: 5}},
		{ID: "mid-04", Name: "Marco Deluca", Club: "Riverdale", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 5, Assists: 2, CleanSheets: 2, KeyPasses: 12, ShotsOnTarget: 16, DribblesPast: 10, ManOfTheMatch: 2}},
		{ID: "mid-05", Name: "Dele Akin", Club: "Westmoor", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 2, Assists: 6, CleanSheets: 1, KeyPasses: 19, ShotsOnTarget: 7, DribblesPast: 15, BigChancesCreated: 6}},
		{ID: "mid-06", Name: "Stefan Ilic", Club: "Southport", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 2, Assists: 3, CleanSheets: 1, KeyPasses: 14, ShotsOnTarget: 8, DribblesPast: 6, YellowCards: 5}},
		{ID: "mid-07", Name: "Remy Fortin", Club: "Northfield", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 1, Assists: 4, CleanSheets: 4, KeyPasses: 16, ShotsOnTarget: 5, DribblesPast: 9}},
		{ID: "mid-08", Name: "Luka Babic", Club: "Harbour City", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 3, Assists: 1, CleanSheets: 3, KeyPasses: 10, ShotsOnTarget: 11, DribblesPast: 7}},
		{ID: "mid-09", Name: "Owen Pryce", Club: "Eastgate", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 1, Assists: 2, CleanSheets: 2, KeyPasses: 13, ShotsOnTarget: 6, DribblesPast: 11}},
		{ID: "mid-10", Name: "Andre Gomes", Club: "Riverdale", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 2, Assists: 2, CleanSheets: 2, KeyPasses: 9, ShotsOnTarget: 7, DribblesPast: 5, PenaltiesMissed: 1}},
		{ID: "mid-11", Name: "Kenji Sato", Club: "Westmoor", Position: player.PositionMidfielder, Stats: player.StatBag{Goals: 1, Assists: 3, CleanSheets: 1, KeyPasses: 15, ShotsOnTarget: 4, DribblesPast: 13}},
		{ID: "mid-12", Name: "Bram Visser", Club: "Southport", Position: player.PositionMidfielder, Stats: player.StatBag{Assists: 2, CleanSheets: 1, KeyPasses: 11, ShotsOnTarget: 3, DribblesPast: 4}},

		{ID: "fwd-01", Name: "Viktor Lund", Club: "Northfield", Position: player.PositionForward, Stats: player.StatBag{Goals: 12, Assists: 3, ShotsOnTarget: 29, BigChancesCreated: 4, ManOfTheMatch: 3}},
		{ID: "fwd-02", Name: "Rafa Duarte", Club: "Harbour City", Position: player.PositionForward, Stats: player.StatBag{Goals: 9, Assists: 5, ShotsOnTarget: 24, BigChancesCreated: 6}},
		{ID: "fwd-03", Name: "Emeka Obi", Club: "Eastgate", Position: player.PositionForward, Stats: player.StatBag{Goals: 7, Assists: 2, ShotsOnTarget: 20, BigChancesCreated: 3, YellowCards: 2}},
		{ID: "fwd-04", Name: "Casper Holt", Club: "Riverdale", Position: player.PositionForward, Stats: player.StatBag{Goals: 6, Assists: 4, ShotsOnTarget: 17, BigChancesCreated: 5}},
		{ID: "fwd-05", Name: "Mario Vela", Club: "Westmoor", Position: player.PositionForward, Stats: player.StatBag{Goals: 5, Assists: 1, ShotsOnTarget: 15, PenaltiesMissed: 1}},
		{ID: "fwd-06", Name: "Henrik Dahl", Club: "Southport", Position: player.PositionForward, Stats: player.StatBag{Goals: 4, Assists: 2, ShotsOnTarget: 12, BigChancesCreated: 2}},
		{ID: "fwd-07", Name: "Tariq Aziz", Club: "Northfield", Position: player.PositionForward, Stats: player.StatBag{Goals: 3, Assists: 3, ShotsOnTarget: 10}},
		{ID: "fwd-08", Name: "Joel Nkunda", Club: "Harbour City", Position: player.PositionForward, Stats: player.StatBag{Goals: 2, Assists: 1, ShotsOnTarget: 8, RedCards: 1}},
	}
}

// SeedSnapshot wraps the seeded pool in a statistics snapshot so settlement
// works out of the box on a fresh memory store.
func SeedSnapshot(now time.Time) statsfeed.Snapshot {
	return statsfeed.Snapshot{
		UpdatedAt: now,
		Season:    "2025/2026",
		League:    "Premier League",
		Note:      "seeded pool for local play",
		Players:   SeedPlayers(),
	}
}
