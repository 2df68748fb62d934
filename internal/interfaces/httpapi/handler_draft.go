package httpapi

import (
	"net/http"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/draft"
)

type startDraftRequest struct {
	ManagerOrder []string `json:"manager_order" validate:"required,min=2,dive,required"`
}

type makePickRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type draftPickDTO struct {
	Index     int       `json:"index"`
	Round     int       `json:"round"`
	ManagerID string    `json:"manager_id"`
	PlayerID  string    `json:"player_id"`
	PickedAt  time.Time `json:"picked_at"`
}

type draftStateDTO struct {
	Phase         string         `json:"phase"`
	ManagerOrder  []string       `json:"manager_order"`
	PickIndex     int            `json:"pick_index"`
	TotalPicks    int            `json:"total_picks"`
	CurrentPicker string         `json:"current_picker,omitempty"`
	Picks         []draftPickDTO `json:"picks"`
}

func draftStateToDTO(state draft.State) draftStateDTO {
	picks := make([]draftPickDTO, 0, len(state.Picks))
	for _, pick := range state.Picks {
		picks = append(picks, draftPickDTO{
			Index:     pick.Index,
			Round:     pick.Round,
			ManagerID: pick.ManagerID,
			PlayerID:  pick.PlayerID,
			PickedAt:  pick.PickedAt,
		})
	}

	dto := draftStateDTO{
		Phase:        string(state.Phase),
		ManagerOrder: state.ManagerOrder,
		PickIndex:    state.PickIndex,
		TotalPicks:   state.TotalPicks(),
		Picks:        picks,
	}
	if picker, ok := state.CurrentPicker(); ok {
		dto.CurrentPicker = picker
	}
	return dto
}

func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartDraft")
	defer span.End()

	var req startDraftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.draftService.Start(ctx, req.ManagerOrder)
	if err != nil {
		h.logger.WarnContext(ctx, "start draft failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, draftStateToDTO(state))
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	state, err := h.draftService.State(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get draft state failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(state))
}

func (h *Handler) MakePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MakePick")
	defer span.End()

	managerID, err := requireManagerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req makePickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.draftService.MakePick(ctx, managerID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "draft pick failed", "manager_id", managerID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftStateToDTO(state))
}
