package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/little-league/internal/usecase"
)

func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Sync")
	defer span.End()

	result, err := h.reconcileService.Refresh(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync schedules failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) LastSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LastSync")
	defer span.End()

	result, ok := h.reconcileService.LastResult()
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no sync has run yet", usecase.ErrNotFound))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
