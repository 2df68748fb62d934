package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/openfantasy/draft-league/internal/domain/lineup"
	"github.com/openfantasy/draft-league/internal/usecase"
)

type submitLineupRequest struct {
	GoalkeeperID  string   `json:"goalkeeper_id" validate:"required"`
	DefenderIDs   []string `json:"defender_ids" validate:"required,len=4,dive,required"`
	MidfielderIDs []string `json:"midfielder_ids" validate:"required,len=4,dive,required"`
	ForwardIDs    []string `json:"forward_ids" validate:"required,len=2,dive,required"`
	FlexID        string   `json:"flex_id" validate:"required"`
	CaptainID     string   `json:"captain_id" validate:"required"`
}

type setCaptainRequest struct {
	CaptainID string `json:"captain_id" validate:"required"`
}

type lineupDTO struct {
	ManagerID     string    `json:"manager_id"`
	Gameweek      int       `json:"gameweek"`
	GoalkeeperID  string    `json:"goalkeeper_id"`
	DefenderIDs   []string  `json:"defender_ids"`
	MidfielderIDs []string  `json:"midfielder_ids"`
	ForwardIDs    []string  `json:"forward_ids"`
	FlexID        string    `json:"flex_id"`
	CaptainID     string    `json:"captain_id"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

func lineupToDTO(item lineup.Lineup) lineupDTO {
	return lineupDTO{
		ManagerID:     item.ManagerID,
		Gameweek:      item.Gameweek,
		GoalkeeperID:  item.GoalkeeperID,
		DefenderIDs:   item.DefenderIDs,
		MidfielderIDs: item.MidfielderIDs,
		ForwardIDs:    item.ForwardIDs,
		FlexID:        item.FlexID,
		CaptainID:     item.CaptainID,
		SubmittedAt:   item.SubmittedAt,
	}
}

func (h *Handler) SubmitLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitLineup")
	defer span.End()

	managerID, err := requireManagerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Submit(ctx, usecase.SubmitLineupInput{
		ManagerID:     managerID,
		GoalkeeperID:  req.GoalkeeperID,
		DefenderIDs:   req.DefenderIDs,
		MidfielderIDs: req.MidfielderIDs,
		ForwardIDs:    req.ForwardIDs,
		FlexID:        req.FlexID,
		CaptainID:     req.CaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit lineup failed", "manager_id", managerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}

func (h *Handler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCaptain")
	defer span.End()

	managerID, err := requireManagerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setCaptainRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.SetCaptain(ctx, managerID, req.CaptainID)
	if err != nil {
		h.logger.WarnContext(ctx, "set captain failed", "manager_id", managerID, "captain_id", req.CaptainID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	managerID := r.PathValue("managerID")
	gw, err := h.resolveGameweekQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, exists, err := h.lineupService.GetByManagerAndGameweek(ctx, managerID, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "manager_id", managerID, "gameweek", gw, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeError(ctx, w, fmt.Errorf("%w: no lineup for manager=%s gameweek=%d", usecase.ErrNotFound, managerID, gw))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}

// resolveGameweekQuery reads the gameweek query parameter, falling back to
// the league's current gameweek.
func (h *Handler) resolveGameweekQuery(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("gameweek"))
	if raw == "" {
		state, err := h.gameweekService.Current(r.Context())
		if err != nil {
			return 0, err
		}
		return state.Current, nil
	}

	gw, err := strconv.Atoi(raw)
	if err != nil || gw <= 0 {
		return 0, fmt.Errorf("%w: invalid gameweek %q", usecase.ErrInvalidInput, raw)
	}
	return gw, nil
}
