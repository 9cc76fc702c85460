package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/little-league/internal/usecase"
)

const maxScoreBodyBytes = 16 << 10

type submitScoreRequest struct {
	HomeScore *int   `json:"home_score" validate:"omitempty,min=0,max=2147483647"`
	AwayScore *int   `json:"away_score" validate:"omitempty,min=0,max=2147483647"`
	UpdatedBy string `json:"updated_by" validate:"omitempty,max=100"`
}

func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitScore")
	defer span.End()

	key := r.PathValue("gameKey")
	var req submitScoreRequest
	decoder := jsoniter.NewDecoder(http.MaxBytesReader(w, r.Body, maxScoreBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %w", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.scoreService.SubmitScore(ctx, usecase.SubmitScoreInput{
		GameKey:   key,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		UpdatedBy: req.UpdatedBy,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit score failed", "game_key", key, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(item))
}

func (h *Handler) RemoveScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveScore")
	defer span.End()

	key := r.PathValue("gameKey")
	item, scheduled, err := h.scoreService.RemoveScore(ctx, key)
	if err != nil {
		h.logger.WarnContext(ctx, "remove score failed", "game_key", key, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := removeScoreDTO{GameKey: key, Removed: true, Scheduled: scheduled}
	if scheduled {
		dto := gameToDTO(item)
		out.Game = &dto
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOverrides")
	defer span.End()

	items, err := h.scoreService.ListOverrides(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list score overrides failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]overrideDTO, 0, len(items))
	for _, item := range items {
		out = append(out, overrideToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
