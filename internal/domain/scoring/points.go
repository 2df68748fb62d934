package scoring

import "github.com/openfantasy/draft-league/internal/domain/player"

// Points maps a season-cumulative stat bag and a position to fantasy points.
// This is the only scoring formula in the repository: ingestion precompute
// and gameweek settlement both call it, so the two can never diverge.
//
// Division results truncate toward zero (all inputs are non-negative counts).
// The only fractional term is the midfielder dribbles bonus.
func Points(stats player.StatBag, pos player.Position) float64 {
	points := 0.0

	switch pos {
	case player.PositionGoalkeeper:
		points += float64(stats.CleanSheets * 4)
		points += float64(stats.Saves / 3)
		points += float64(stats.PenaltySaves * 5)
		points -= float64(stats.GoalsConceded / 2)
	case player.PositionDefender:
		points += float64(stats.Goals * 6)
		points += float64(stats.Assists * 3)
		points += float64(stats.CleanSheets * 4)
		points += float64(stats.TacklesWon)
		points += float64(stats.Interceptions)
	case player.PositionMidfielder:
		points += float64(stats.Goals * 5)
		points += float64(stats.Assists * 3)
		points += float64(stats.CleanSheets)
		points += float64(stats.KeyPasses)
		points += float64(stats.ShotsOnTarget)
		points += float64(stats.DribblesPast) * 0.5
	case player.PositionForward:
		points += float64(stats.Goals * 4)
		points += float64(stats.Assists * 3)
		points += float64(stats.ShotsOnTarget)
	}

	// Big chances count for every outfield position; the published table
	// excludes goalkeepers.
	if pos != player.PositionGoalkeeper {
		points += float64(stats.BigChancesCreated)
	}

	points += float64(stats.ManOfTheMatch * 3)
	points -= float64(stats.YellowCards)
	points -= float64(stats.RedCards * 3)
	points -= float64(stats.OwnGoals * 2)
	points -= float64(stats.PenaltiesMissed * 2)

	return points
}

// CaptainMultiplier is applied to the designated captain's settled points.
const CaptainMultiplier = 2
