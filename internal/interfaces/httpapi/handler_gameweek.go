package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/gameweek"
	"github.com/openfantasy/draft-league/internal/usecase"
)

type gameweekStateDTO struct {
	Phase   string `json:"phase"`
	Current int    `json:"current"`
}

type managerResultDTO struct {
	ManagerID       string  `json:"manager_id"`
	GrossPoints     float64 `json:"gross_points"`
	TransferPenalty int     `json:"transfer_penalty"`
	NetPoints       float64 `json:"net_points"`
	CaptainID       string  `json:"captain_id,omitempty"`
}

type settlementDTO struct {
	Gameweek  int                `json:"gameweek"`
	Results   []managerResultDTO `json:"results"`
	SettledAt time.Time          `json:"settled_at"`
}

func settlementToDTO(settlement gameweek.Settlement) settlementDTO {
	results := make([]managerResultDTO, 0, len(settlement.Results))
	for _, result := range settlement.Results {
		results = append(results, managerResultDTO{
			ManagerID:       result.ManagerID,
			GrossPoints:     result.GrossPoints,
			TransferPenalty: result.TransferPenalty,
			NetPoints:       result.NetPoints,
			CaptainID:       result.CaptainID,
		})
	}
	return settlementDTO{
		Gameweek:  settlement.Gameweek,
		Results:   results,
		SettledAt: settlement.SettledAt,
	}
}

func (h *Handler) GetCurrentGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentGameweek")
	defer span.End()

	state, err := h.gameweekService.Current(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get current gameweek failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekStateDTO{
		Phase:   string(state.Phase),
		Current: state.Current,
	})
}

func (h *Handler) GetGameweekResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameweekResults")
	defer span.End()

	raw := r.PathValue("gameweek")
	gw, err := strconv.Atoi(raw)
	if err != nil || gw <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: invalid gameweek %q", usecase.ErrInvalidInput, raw))
		return
	}

	settlement, err := h.gameweekService.Results(ctx, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "get gameweek results failed", "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementToDTO(settlement))
}

func (h *Handler) AdvanceGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceGameweek")
	defer span.End()

	managerID, err := requireManagerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	settlement, err := h.gameweekService.Advance(ctx, managerID)
	if err != nil {
		h.logger.WarnContext(ctx, "advance gameweek failed", "manager_id", managerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "gameweek settled",
		"gameweek", settlement.Gameweek,
		"managers", len(settlement.Results),
	)
	writeSuccess(ctx, w, http.StatusOK, settlementToDTO(settlement))
}
