package httpapi

import (
	"net/http"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/transfer"
)

type applyTransferRequest struct {
	OutPlayerID string `json:"out_player_id" validate:"required"`
	InPlayerID  string `json:"in_player_id" validate:"required"`
}

type transferDTO struct {
	ManagerID   string    `json:"manager_id"`
	Gameweek    int       `json:"gameweek"`
	OutPlayerID string    `json:"out_player_id"`
	InPlayerID  string    `json:"in_player_id"`
	Position    string    `json:"position"`
	AppliedAt   time.Time `json:"applied_at"`
}

func transferToDTO(item transfer.Transfer) transferDTO {
	return transferDTO{
		ManagerID:   item.ManagerID,
		Gameweek:    item.Gameweek,
		OutPlayerID: item.OutPlayerID,
		InPlayerID:  item.InPlayerID,
		Position:    string(item.Position),
		AppliedAt:   item.AppliedAt,
	}
}

func (h *Handler) ApplyTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyTransfer")
	defer span.End()

	managerID, err := requireManagerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req applyTransferRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.transferService.Apply(ctx, managerID, req.OutPlayerID, req.InPlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "apply transfer failed",
			"manager_id", managerID,
			"out_player_id", req.OutPlayerID,
			"in_player_id", req.InPlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, transferToDTO(item))
}

type transferHistoryDTO struct {
	ManagerID    string        `json:"manager_id"`
	Gameweek     int           `json:"gameweek"`
	Transfers    []transferDTO `json:"transfers"`
	PenaltyTotal int           `json:"penalty_total"`
}

func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransfers")
	defer span.End()

	managerID := r.PathValue("managerID")
	gw, err := h.resolveGameweekQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.transferService.ListByManager(ctx, managerID, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "list transfers failed", "manager_id", managerID, "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]transferDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, transferToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, transferHistoryDTO{
		ManagerID:    managerID,
		Gameweek:     gw,
		Transfers:    dtos,
		PenaltyTotal: transfer.PenaltyPoints(len(dtos)),
	})
}
