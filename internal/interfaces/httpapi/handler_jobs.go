package httpapi

import (
	"net/http"
)

func (h *Handler) RefreshStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshStats")
	defer span.End()

	result, err := h.ingestionService.Refresh(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh stats job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "refresh stats job finished",
		"players", result.Players,
		"skipped", result.Skipped,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
