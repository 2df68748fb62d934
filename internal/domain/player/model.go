package player

import "fmt"

// Position represents football position categories used across draft,
// lineup and scoring rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// StatBag holds a player's season-cumulative raw statistics. Every field
// defaults to zero at construction; the ingestion cycle replaces the whole
// bag, it is never partially patched.
type StatBag struct {
	Goals             int
	Assists           int
	CleanSheets       int
	Saves             int
	PenaltySaves      int
	PenaltiesMissed   int
	GoalsConceded     int
	YellowCards       int
	RedCards          int
	OwnGoals          int
	TacklesWon        int
	Interceptions     int
	KeyPasses         int
	ShotsOnTarget     int
	BigChancesCreated int
	DribblesPast      int
	ManOfTheMatch     int
}

// Player is a draftable athlete in the league-wide pool. Ownership is
// relational (a squad holds the reference), never a field on the player.
type Player struct {
	ID       string
	Name     string
	Club     string
	Position Position
	Stats    StatBag
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Club == "" {
		return fmt.Errorf("player club is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}
