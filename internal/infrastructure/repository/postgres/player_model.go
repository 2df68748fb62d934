package postgres

import "github.com/openfantasy/draft-league/internal/domain/player"

type playerTableModel struct {
	ID                string `db:"id"`
	Name              string `db:"name"`
	Club              string `db:"club"`
	Position          string `db:"position"`
	Goals             int    `db:"goals"`
	Assists           int    `db:"assists"`
	CleanSheets       int    `db:"clean_sheets"`
	Saves             int    `db:"saves"`
	PenaltySaves      int    `db:"penalty_saves"`
	PenaltiesMissed   int    `db:"penalties_missed"`
	GoalsConceded     int    `db:"goals_conceded"`
	YellowCards       int    `db:"yellow_cards"`
	RedCards          int    `db:"red_cards"`
	OwnGoals          int    `db:"own_goals"`
	TacklesWon        int    `db:"tackles_won"`
	Interceptions     int    `db:"interceptions"`
	KeyPasses         int    `db:"key_passes"`
	ShotsOnTarget     int    `db:"shots_on_target"`
	BigChancesCreated int    `db:"big_chances_created"`
	DribblesPast      int    `db:"dribbles_past"`
	ManOfTheMatch     int    `db:"man_of_the_match"`
}

var playerColumns = []string{
	"id", "name", "club", "position",
	"goals", "assists", "clean_sheets", "saves", "penalty_saves",
	"penalties_missed", "goals_conceded", "yellow_cards", "red_cards",
	"own_goals", "tackles_won", "interceptions", "key_passes",
	"shots_on_target", "big_chances_created", "dribbles_past",
	"man_of_the_match",
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.ID,
		Name:     row.Name,
		Club:     row.Club,
		Position: player.Position(row.Position),
		Stats: player.StatBag{
			Goals:             row.Goals,
			Assists:           row.Assists,
			CleanSheets:       row.CleanSheets,
			Saves:             row.Saves,
			PenaltySaves:      row.PenaltySaves,
			PenaltiesMissed:   row.PenaltiesMissed,
			GoalsConceded:     row.GoalsConceded,
			YellowCards:       row.YellowCards,
			RedCards:          row.RedCards,
			OwnGoals:          row.OwnGoals,
			TacklesWon:        row.TacklesWon,
			Interceptions:     row.Interceptions,
			KeyPasses:         row.KeyPasses,
			ShotsOnTarget:     row.ShotsOnTarget,
			BigChancesCreated: row.BigChancesCreated,
			DribblesPast:      row.DribblesPast,
			ManOfTheMatch:     row.ManOfTheMatch,
		},
	}
}

func playerRowValues(item player.Player) []any {
	return []any{
		item.ID, item.Name, item.Club, string(item.Position),
		item.Stats.Goals, item.Stats.Assists, item.Stats.CleanSheets,
		item.Stats.Saves, item.Stats.PenaltySaves, item.Stats.PenaltiesMissed,
		item.Stats.GoalsConceded, item.Stats.YellowCards, item.Stats.RedCards,
		item.Stats.OwnGoals, item.Stats.TacklesWon, item.Stats.Interceptions,
		item.Stats.KeyPasses, item.Stats.ShotsOnTarget,
		item.Stats.BigChancesCreated, item.Stats.DribblesPast,
		item.Stats.ManOfTheMatch,
	}
}
