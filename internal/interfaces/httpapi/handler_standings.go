package httpapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/little-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

var standingsCSVHeader = []string{"position", "team", "wins", "losses", "ties", "games_played", "win_pct", "runs_for", "runs_against", "run_differential"}

func (h *Handler) ListAllStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAllStandings")
	defer span.End()

	items, err := h.standingService.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]divisionStandingsDTO, 0, len(items))
	for _, item := range items {
		out = append(out, standingsToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListDivisionStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisionStandings")
	defer span.End()

	divisionName := strings.TrimSpace(r.PathValue("division"))
	item, err := h.standingService.ListByDivision(ctx, divisionName)
	if err != nil {
		h.logger.WarnContext(ctx, "list division standings failed", "division", divisionName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(item))
}

func (h *Handler) ExportDivisionStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportDivisionStandings")
	defer span.End()

	divisionName := strings.TrimSpace(r.PathValue("division"))
	item, err := h.standingService.ListByDivision(ctx, divisionName)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := writeStandingsCSV(buf, item); err != nil {
		h.logger.ErrorContext(ctx, "encode standings csv failed", "division", divisionName, "error", err)
		writeInternalError(ctx, w)
		return
	}

	filename := strings.ToLower(strings.ReplaceAll(item.Division, " ", "-")) + "-standings.csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}

func writeStandingsCSV(buf *bytebufferpool.ByteBuffer, item usecase.DivisionStandings) error {
	writer := csv.NewWriter(buf)
	if err := writer.Write(standingsCSVHeader); err != nil {
		return err
	}
	for i, row := range item.Rows {
		record := []string{
			strconv.Itoa(i + 1),
			row.Team,
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Losses),
			strconv.Itoa(row.Ties),
			strconv.Itoa(row.GamesPlayed()),
			strconv.FormatFloat(row.WinPct(), 'f', 3, 64),
			strconv.Itoa(row.RunsFor),
			strconv.Itoa(row.RunsAgainst),
			strconv.Itoa(row.RunDifferential()),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
