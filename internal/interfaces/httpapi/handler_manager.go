package httpapi

import (
	"net/http"

	"github.com/openfantasy/draft-league/internal/domain/manager"
	"github.com/openfantasy/draft-league/internal/usecase"
)

type registerManagerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	TeamName string `json:"team_name" validate:"required,max=100"`
}

type managerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TeamName string `json:"team_name"`
	IsAdmin  bool   `json:"is_admin"`
}

func managerToDTO(item manager.Manager) managerDTO {
	return managerDTO{
		ID:       item.ID,
		Name:     item.Name,
		TeamName: item.TeamName,
		IsAdmin:  item.IsAdmin,
	}
}

func (h *Handler) RegisterManager(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterManager")
	defer span.End()

	var req registerManagerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.RegisterManager(ctx, usecase.RegisterManagerInput{
		Name:     req.Name,
		TeamName: req.TeamName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register manager failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, managerToDTO(item))
}

func (h *Handler) ListManagers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListManagers")
	defer span.End()

	managers, err := h.leagueService.ListManagers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list managers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]managerDTO, 0, len(managers))
	for _, m := range managers {
		items = append(items, managerToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

type standingRowDTO struct {
	Rank        int     `json:"rank"`
	ManagerID   string  `json:"manager_id"`
	Name        string  `json:"name"`
	TeamName    string  `json:"team_name"`
	TotalPoints float64 `json:"total_points"`
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	rows, err := h.leagueService.Standings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingRowDTO{
			Rank:        row.Rank,
			ManagerID:   row.ManagerID,
			Name:        row.Name,
			TeamName:    row.TeamName,
			TotalPoints: row.TotalPoints,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
