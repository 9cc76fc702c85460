package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisions")
	defer span.End()

	items, err := h.scheduleService.ListDivisions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list divisions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]divisionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, divisionSummaryToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListDivisionGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisionGames")
	defer span.End()

	divisionName := strings.TrimSpace(r.PathValue("division"))
	games, err := h.scheduleService.ListGames(ctx, divisionName)
	if err != nil {
		h.logger.WarnContext(ctx, "list division games failed", "division", divisionName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gamesToDTO(games))
}

func (h *Handler) ListDivisionTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisionTeams")
	defer span.End()

	divisionName := strings.TrimSpace(r.PathValue("division"))
	teams, err := h.scheduleService.ListTeams(ctx, divisionName)
	if err != nil {
		h.logger.WarnContext(ctx, "list division teams failed", "division", divisionName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teams)
}

func (h *Handler) ListTeamGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamGames")
	defer span.End()

	divisionName := strings.TrimSpace(r.PathValue("division"))
	team := strings.TrimSpace(r.PathValue("team"))
	games, err := h.scheduleService.ListTeamGames(ctx, divisionName, team)
	if err != nil {
		h.logger.WarnContext(ctx, "list team games failed", "division", divisionName, "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamGamesDTO{
		Division: divisionName,
		Team:     team,
		Games:    gamesToDTO(games),
	})
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	key := r.PathValue("gameKey")
	item, err := h.scheduleService.GetGame(ctx, key)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(item))
}
