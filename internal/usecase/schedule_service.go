package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/little-league/internal/domain/division"
	"github.com/riskibarqy/little-league/internal/domain/game"
)

type DivisionSummary struct {
	Division division.Division
	Games    int
	Finals   int
	Teams    int
}

// ScheduleService answers read-only schedule questions over the current games.
type ScheduleService struct {
	divisionRepo division.Repository
	games        CollectionReader
}

func NewScheduleService(divisionRepo division.Repository, games CollectionReader) *ScheduleService {
	return &ScheduleService{
		divisionRepo: divisionRepo,
		games:        games,
	}
}

func (s *ScheduleService) ListDivisions(ctx context.Context) ([]DivisionSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListDivisions")
	defer span.End()

	divisions, err := s.divisionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}

	current := s.games.Current()
	out := make([]DivisionSummary, 0, len(divisions))
	for _, d := range divisions {
		games := current.Division(d.Name)
		finals := 0
		for _, g := range games {
			if g.Final() {
				finals++
			}
		}
		out = append(out, DivisionSummary{
			Division: d,
			Games:    len(games),
			Finals:   finals,
			Teams:    len(game.Teams(games, d.Roster)),
		})
	}
	return out, nil
}

func (s *ScheduleService) ListGames(ctx context.Context, divisionName string) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListGames")
	defer span.End()

	d, err := resolveDivision(ctx, s.divisionRepo, divisionName)
	if err != nil {
		return nil, err
	}
	return s.games.Current().Division(d.Name), nil
}

func (s *ScheduleService) GetGame(ctx context.Context, key string) (game.Game, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GetGame")
	defer span.End()

	key = strings.TrimSpace(key)
	if key == "" {
		return game.Game{}, fmt.Errorf("%w: game key is required", ErrInvalidInput)
	}
	item, exists := s.games.Current().Get(key)
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, key)
	}
	return item, nil
}

func (s *ScheduleService) ListTeams(ctx context.Context, divisionName string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListTeams")
	defer span.End()

	d, err := resolveDivision(ctx, s.divisionRepo, divisionName)
	if err != nil {
		return nil, err
	}
	return game.Teams(s.games.Current().Division(d.Name), d.Roster), nil
}

func (s *ScheduleService) ListTeamGames(ctx context.Context, divisionName, team string) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListTeamGames")
	defer span.End()

	team = strings.TrimSpace(team)
	if team == "" {
		return nil, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}

	d, err := resolveDivision(ctx, s.divisionRepo, divisionName)
	if err != nil {
		return nil, err
	}

	games := s.games.Current().Division(d.Name)
	for _, name := range game.Teams(games, d.Roster) {
		if name == team {
			return game.TeamSchedule(games, team), nil
		}
	}
	return nil, fmt.Errorf("%w: team=%s division=%s", ErrNotFound, team, d.Name)
}
