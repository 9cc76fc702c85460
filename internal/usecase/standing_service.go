package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/little-league/internal/domain/division"
	"github.com/riskibarqy/little-league/internal/domain/standing"
)

const defaultStandingWorkers = 4

type DivisionStandings struct {
	Division string
	Rows     []standing.Row
}

// StandingService derives standings from the current reconciled games on
// every call.
type StandingService struct {
	divisionRepo division.Repository
	games        CollectionReader
	maxWorkers   int
}

func NewStandingService(divisionRepo division.Repository, games CollectionReader, maxWorkers int) *StandingService {
	if maxWorkers <= 0 {
		maxWorkers = defaultStandingWorkers
	}
	return &StandingService{
		divisionRepo: divisionRepo,
		games:        games,
		maxWorkers:   maxWorkers,
	}
}

func (s *StandingService) ListByDivision(ctx context.Context, name string) (DivisionStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListByDivision")
	defer span.End()

	d, err := resolveDivision(ctx, s.divisionRepo, name)
	if err != nil {
		return DivisionStandings{}, err
	}
	if !d.Scoring {
		return DivisionStandings{}, fmt.Errorf("%w: division %s does not keep standings", ErrInvalidInput, d.Name)
	}

	return s.compute(d), nil
}

// ListAll computes every scoring division, preserving configured order.
func (s *StandingService) ListAll(ctx context.Context) ([]DivisionStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListAll")
	defer span.End()

	divisions, err := s.divisionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}

	scoring := make([]division.Division, 0, len(divisions))
	for _, d := range divisions {
		if d.Scoring {
			scoring = append(scoring, d)
		}
	}
	out := make([]DivisionStandings, len(scoring))
	if len(scoring) == 0 {
		return out, nil
	}

	workerCount := s.maxWorkers
	if workerCount > len(scoring) {
		workerCount = len(scoring)
	}
	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for i, d := range scoring {
		i, d := i, d
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			out[i] = s.compute(d)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit standings task: %w", err)
		}
	}
	wg.Wait()

	return out, nil
}

func (s *StandingService) compute(d division.Division) DivisionStandings {
	games := s.games.Current().Division(d.Name)
	return DivisionStandings{
		Division: d.Name,
		Rows:     standing.Compute(d.Name, games, d.Roster...),
	}
}
