package httpapi

import (
	"net/http"

	"github.com/openfantasy/draft-league/internal/domain/player"
	"github.com/openfantasy/draft-league/internal/usecase"
)

type playerStatsDTO struct {
	Goals             int `json:"goals"`
	Assists           int `json:"assists"`
	CleanSheets       int `json:"clean_sheets"`
	Saves             int `json:"saves"`
	PenaltySaves      int `json:"penalty_saves"`
	PenaltiesMissed   int `json:"penalties_missed"`
	GoalsConceded     int `json:"goals_conceded"`
	YellowCards       int `json:"yellow_cards"`
	RedCards          int `json:"red_cards"`
	OwnGoals          int `json:"own_goals"`
	TacklesWon        int `json:"tackles_won"`
	Interceptions     int `json:"interceptions"`
	KeyPasses         int `json:"key_passes"`
	ShotsOnTarget     int `json:"shots_on_target"`
	BigChancesCreated int `json:"big_chances_created"`
	DribblesPast      int `json:"dribbles_past"`
	ManOfTheMatch     int `json:"man_of_the_match"`
}

type playerDTO struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Club         string         `json:"club"`
	Position     string         `json:"position"`
	SeasonPoints float64        `json:"season_points"`
	Stats        playerStatsDTO `json:"stats"`
}

func playerViewToDTO(view usecase.PlayerView) playerDTO {
	return playerDTO{
		ID:           view.ID,
		Name:         view.Name,
		Club:         view.Club,
		Position:     string(view.Position),
		SeasonPoints: view.SeasonPoints,
		Stats:        statBagToDTO(view.Stats),
	}
}

func statBagToDTO(stats player.StatBag) playerStatsDTO {
	return playerStatsDTO{
		Goals:             stats.Goals,
		Assists:           stats.Assists,
		CleanSheets:       stats.CleanSheets,
		Saves:             stats.Saves,
		PenaltySaves:      stats.PenaltySaves,
		PenaltiesMissed:   stats.PenaltiesMissed,
		GoalsConceded:     stats.GoalsConceded,
		YellowCards:       stats.YellowCards,
		RedCards:          stats.RedCards,
		OwnGoals:          stats.OwnGoals,
		TacklesWon:        stats.TacklesWon,
		Interceptions:     stats.Interceptions,
		KeyPasses:         stats.KeyPasses,
		ShotsOnTarget:     stats.ShotsOnTarget,
		BigChancesCreated: stats.BigChancesCreated,
		DribblesPast:      stats.DribblesPast,
		ManOfTheMatch:     stats.ManOfTheMatch,
	}
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	views, err := h.playerService.List(ctx, r.URL.Query().Get("position"))
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(views))
	for _, view := range views {
		items = append(items, playerViewToDTO(view))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	view, err := h.playerService.GetByID(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerViewToDTO(view))
}
