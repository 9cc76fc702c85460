package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/little-league/internal/domain/division"
	"github.com/riskibarqy/little-league/internal/domain/game"
	"github.com/riskibarqy/little-league/internal/domain/scoreoverride"
	"github.com/riskibarqy/little-league/internal/platform/id"
	"github.com/riskibarqy/little-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	reconcileStatusUpdated  = "updated"
	reconcileStatusFailed   = "failed"
	reconcileStatusRetained = "retained"

	defaultReconcileWorkers = 4
)

// ScheduleSource fetches the raw rows of one division's schedule sheet.
type ScheduleSource interface {
	FetchRows(ctx context.Context, d division.Division) ([]game.RawRow, error)
}

// CollectionReader exposes the latest reconciled games.
type CollectionReader interface {
	Current() *game.Collection
}

type ReconcileConfig struct {
	MaxWorkers int
	Now        func() time.Time
	IDs        id.Generator
}

type DivisionReport struct {
	Division   string `json:"division"`
	Status     string `json:"status"`
	Rows       int    `json:"rows"`
	Games      int    `json:"games"`
	Dropped    int    `json:"dropped"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type ReconcileResult struct {
	RunID            string           `json:"run_id"`
	StartedAt        time.Time        `json:"started_at"`
	FinishedAt       time.Time        `json:"finished_at"`
	Games            int              `json:"games"`
	OverridesApplied int              `json:"overrides_applied"`
	Unassigned       int              `json:"unassigned"`
	UpdatedCount     int              `json:"updated_count"`
	FailedCount      int              `json:"failed_count"`
	Divisions        []DivisionReport `json:"divisions"`
}

// Failures lists the divisions that kept their previous games.
func (r ReconcileResult) Failures() []DivisionReport {
	out := make([]DivisionReport, 0, r.FailedCount)
	for _, item := range r.Divisions {
		if item.Status == reconcileStatusFailed {
			out = append(out, item)
		}
	}
	return out
}

// ReconcileService owns the authoritative game collection. Remote rows are
// normalized per division, remembered as the division base, and overlaid with
// stored score overrides before publication. Readers always see a complete
// immutable collection.
type ReconcileService struct {
	divisionRepo division.Repository
	overrideRepo scoreoverride.Repository
	source       ScheduleSource
	logger       *logging.Logger
	maxWorkers   int
	now          func() time.Time
	ids          id.Generator

	mu      sync.Mutex
	base    map[string][]game.Game
	current atomic.Pointer[game.Collection]
	last    atomic.Pointer[ReconcileResult]
}

func NewReconcileService(
	divisionRepo division.Repository,
	overrideRepo scoreoverride.Repository,
	source ScheduleSource,
	cfg ReconcileConfig,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultReconcileWorkers
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.IDs == nil {
		cfg.IDs = id.NewUUIDGenerator()
	}

	s := &ReconcileService{
		divisionRepo: divisionRepo,
		overrideRepo: overrideRepo,
		source:       source,
		logger:       logger,
		maxWorkers:   cfg.MaxWorkers,
		now:          cfg.Now,
		ids:          cfg.IDs,
		base:         make(map[string][]game.Game),
	}
	s.current.Store(game.EmptyCollection(nil))
	return s
}

// Current returns the latest published collection. It is never nil.
func (s *ReconcileService) Current() *game.Collection {
	return s.current.Load()
}

// LastResult reports the most recent reconciliation, if any.
func (s *ReconcileService) LastResult() (ReconcileResult, bool) {
	last := s.last.Load()
	if last == nil {
		return ReconcileResult{}, false
	}
	return *last, true
}

// Reconcile merges raw rows keyed by division name. Rows under the empty key
// are grouped by their own division column. Divisions absent from the input
// keep their previous games.
func (s *ReconcileService) Reconcile(ctx context.Context, rowsByDivision map[string][]game.RawRow) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.Reconcile")
	defer span.End()

	divisions, err := s.listDivisions(ctx)
	if err != nil {
		return ReconcileResult{}, err
	}

	result, err := s.startResult()
	if err != nil {
		return ReconcileResult{}, err
	}
	names := make([]string, 0, len(rowsByDivision))
	for name := range rowsByDivision {
		names = append(names, name)
	}
	// Named batches first, then combined rows, so append order is stable.
	sort.Slice(names, func(i, j int) bool {
		ei, ej := strings.TrimSpace(names[i]) == "", strings.TrimSpace(names[j]) == ""
		if ei != ej {
			return ej
		}
		return names[i] < names[j]
	})

	batches := make(map[string][]game.RawRow, len(rowsByDivision))
	for _, name := range names {
		rows := rowsByDivision[name]
		if strings.TrimSpace(name) == "" {
			for _, row := range rows {
				cell := game.Normalize(row).Division
				d, ok := findDivision(divisions, cell)
				if !ok {
					result.Unassigned++
					continue
				}
				batches[d.Name] = append(batches[d.Name], row)
			}
			continue
		}

		d, ok := findDivision(divisions, name)
		if !ok {
			result.Divisions = append(result.Divisions, DivisionReport{
				Division: strings.TrimSpace(name),
				Status:   reconcileStatusFailed,
				Rows:     len(rows),
				Message:  "unknown division",
			})
			continue
		}
		batches[d.Name] = append(batches[d.Name], rows...)
	}

	updates := make(map[string][]game.Game, len(batches))
	for _, d := range divisions {
		rows, ok := batches[d.Name]
		if !ok {
			continue
		}
		started := time.Now()
		games, dropped := normalizeBatch(d.Name, rows)
		updates[d.Name] = games
		result.Divisions = append(result.Divisions, DivisionReport{
			Division:   d.Name,
			Status:     reconcileStatusUpdated,
			Rows:       len(rows),
			Games:      len(games),
			Dropped:    dropped,
			DurationMs: time.Since(started).Milliseconds(),
		})
	}

	return s.merge(ctx, divisions, updates, result)
}

// Refresh fetches every configured division concurrently and reconciles the
// results. A division whose fetch fails keeps its previous games.
func (s *ReconcileService) Refresh(ctx context.Context) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.Refresh")
	defer span.End()

	if s.source == nil {
		return ReconcileResult{}, fmt.Errorf("%w: schedule source is not configured", ErrDependencyUnavailable)
	}

	divisions, err := s.listDivisions(ctx)
	if err != nil {
		return ReconcileResult{}, err
	}

	type fetchOutcome struct {
		division division.Division
		rows     []game.RawRow
		err      error
		duration time.Duration
	}

	result, err := s.startResult()
	if err != nil {
		return ReconcileResult{}, err
	}
	workers := s.maxWorkers
	if workers > len(divisions) {
		workers = len(divisions)
	}
	if workers < 1 {
		workers = 1
	}

	fetches := pool.NewWithResults[fetchOutcome]().WithMaxGoroutines(workers)
	for _, d := range divisions {
		d := d
		if strings.TrimSpace(d.SourceURL) == "" {
			result.Divisions = append(result.Divisions, DivisionReport{
				Division: d.Name,
				Status:   reconcileStatusRetained,
				Message:  "no source configured",
			})
			continue
		}
		fetches.Go(func() fetchOutcome {
			started := time.Now()
			rows, fetchErr := s.source.FetchRows(ctx, d)
			return fetchOutcome{division: d, rows: rows, err: fetchErr, duration: time.Since(started)}
		})
	}
	outcomes := fetches.Wait()

	updates := make(map[string][]game.Game, len(outcomes))
	for _, outcome := range outcomes {
		report := DivisionReport{
			Division:   outcome.division.Name,
			Rows:       len(outcome.rows),
			DurationMs: outcome.duration.Milliseconds(),
		}
		if outcome.err != nil {
			report.Status = reconcileStatusFailed
			report.Message = outcome.err.Error()
			s.logger.WarnContext(ctx, "division refresh failed, keeping previous games",
				"division", outcome.division.Name,
				"error", outcome.err,
			)
			result.Divisions = append(result.Divisions, report)
			continue
		}

		games, dropped := normalizeBatch(outcome.division.Name, outcome.rows)
		updates[outcome.division.Name] = games
		report.Status = reconcileStatusUpdated
		report.Games = len(games)
		report.Dropped = dropped
		result.Divisions = append(result.Divisions, report)
	}

	return s.merge(ctx, divisions, updates, result)
}

// ApplyOverrides republishes the current base with freshly loaded overrides.
func (s *ReconcileService) ApplyOverrides(ctx context.Context) (*game.Collection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ApplyOverrides")
	defer span.End()

	divisions, err := s.listDivisions(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collection, _, err := s.publish(ctx, divisions, s.base)
	if err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *ReconcileService) merge(
	ctx context.Context,
	divisions []division.Division,
	updates map[string][]game.Game,
	result ReconcileResult,
) (ReconcileResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string][]game.Game, len(s.base)+len(updates))
	for name, games := range s.base {
		next[name] = games
	}
	for name, games := range updates {
		next[name] = games
	}

	collection, applied, err := s.publish(ctx, divisions, next)
	if err != nil {
		return ReconcileResult{}, err
	}
	s.base = next

	result.FinishedAt = s.now()
	result.Games = collection.Len()
	result.OverridesApplied = applied
	for _, item := range result.Divisions {
		switch item.Status {
		case reconcileStatusUpdated:
			result.UpdatedCount++
		case reconcileStatusFailed:
			result.FailedCount++
		}
	}
	sortReports(divisions, result.Divisions)

	stored := result
	stored.Divisions = append([]DivisionReport(nil), result.Divisions...)
	s.last.Store(&stored)

	s.logger.InfoContext(ctx, "schedule reconciled",
		"run_id", result.RunID,
		"games", result.Games,
		"overrides_applied", result.OverridesApplied,
		"updated", result.UpdatedCount,
		"failed", result.FailedCount,
		"unassigned", result.Unassigned,
	)
	return result, nil
}

// publish overlays overrides on base and swaps the current collection. The
// previous collection stays published when overrides cannot be read.
func (s *ReconcileService) publish(
	ctx context.Context,
	divisions []division.Division,
	base map[string][]game.Game,
) (*game.Collection, int, error) {
	overrides, err := s.overrideRepo.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list score overrides: %v", ErrDependencyUnavailable, err)
	}
	byKey := make(map[string]scoreoverride.Override, len(overrides))
	for _, item := range overrides {
		byKey[item.Key] = item
	}

	order := make([]string, 0, len(divisions))
	for _, d := range divisions {
		order = append(order, d.Name)
	}

	applied := 0
	collection := game.NewCollection(order, base).Overlay(func(key string) (*int, *int, bool) {
		item, ok := byKey[key]
		if !ok {
			return nil, nil, false
		}
		applied++
		return item.HomeScore, item.AwayScore, true
	})

	s.current.Store(collection)
	return collection, applied, nil
}

func (s *ReconcileService) startResult() (ReconcileResult, error) {
	runID, err := s.ids.NewID()
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("generate run id: %w", err)
	}
	return ReconcileResult{RunID: runID, StartedAt: s.now()}, nil
}

func (s *ReconcileService) listDivisions(ctx context.Context) ([]division.Division, error) {
	divisions, err := s.divisionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	return divisions, nil
}

// normalizeBatch turns one division's rows into keyed games. Rows missing a
// team are dropped. The batch division is authoritative for every row.
func normalizeBatch(divisionName string, rows []game.RawRow) ([]game.Game, int) {
	games := make([]game.Game, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		g := game.Normalize(row)
		g.Division = divisionName
		if !g.Complete() {
			dropped++
			continue
		}
		g.Key = g.ComputeKey()
		games = append(games, g)
	}

	deduped := game.Dedupe(games)
	return deduped, dropped
}

func findDivision(divisions []division.Division, name string) (division.Division, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return division.Division{}, false
	}
	for _, d := range divisions {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return division.Division{}, false
}

func sortReports(divisions []division.Division, reports []DivisionReport) {
	order := make(map[string]int, len(divisions))
	for i, d := range divisions {
		order[d.Name] = i
	}
	rank := func(name string) int {
		if i, ok := order[name]; ok {
			return i
		}
		return len(divisions)
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return rank(reports[i].Division) < rank(reports[j].Division)
	})
}
