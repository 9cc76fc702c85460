package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/little-league/internal/platform/logging"
	"github.com/riskibarqy/little-league/internal/platform/resilience"
	"github.com/riskibarqy/little-league/internal/usecase"
)

// SourceHealth reports the circuit state of every remote schedule source.
type SourceHealth interface {
	Breakers() []resilience.CircuitSnapshot
}

type Services struct {
	Schedule  *usecase.ScheduleService
	Standings *usecase.StandingService
	Scores    *usecase.ScoreService
	Ticker    *usecase.TickerService
	Reconcile *usecase.ReconcileService
	Sources   SourceHealth
}

type Handler struct {
	scheduleService  *usecase.ScheduleService
	standingService  *usecase.StandingService
	scoreService     *usecase.ScoreService
	tickerService    *usecase.TickerService
	reconcileService *usecase.ReconcileService
	sources          SourceHealth
	logger           *logging.Logger
	validator        *validator.Validate
	startedAt        time.Time
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scheduleService:  services.Schedule,
		standingService:  services.Standings,
		scoreService:     services.Scores,
		tickerService:    services.Ticker,
		reconcileService: services.Reconcile,
		sources:          services.Sources,
		logger:           logger,
		validator:        validator.New(),
		startedAt:        time.Now(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	out := healthDTO{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Games:         h.reconcileService.Current().Len(),
	}
	if last, ok := h.reconcileService.LastResult(); ok {
		summary := syncSummaryToDTO(last)
		out.LastSync = &summary
		if last.FailedCount > 0 {
			out.Status = "degraded"
		}
	}
	if h.sources != nil {
		out.Sources = h.sources.Breakers()
		for _, item := range out.Sources {
			if item.State == resilience.CircuitStateOpen {
				out.Status = "degraded"
			}
		}
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// parseLimit reads the optional limit query parameter. Zero means default.
func parseLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: limit must be positive integer", usecase.ErrInvalidInput)
	}
	return v, nil
}
