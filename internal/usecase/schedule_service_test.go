package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/little-league/internal/domain/division"
	divisionmock "github.com/riskibarqy/little-league/internal/mocks/domain/division"
	"github.com/stretchr/testify/mock"
)

func TestScheduleService_ListDivisions(t *testing.T) {
	t.Parallel()

	divisionRepo := divisionmock.NewRepository(t)
	divisionRepo.On("List", mock.Anything).Return(leagueDivisions(), nil).Once()

	service := NewScheduleService(divisionRepo, staticGames{collection: sampleCollection()})
	got, err := service.ListDivisions(context.Background())
	if err != nil {
		t.Fatalf("list divisions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 divisions, got %d", len(got))
	}
	if got[0].Division.Name != "Majors" || got[0].Games != 3 || got[0].Finals != 2 || got[0].Teams != 3 {
		t.Fatalf("unexpected majors summary: %+v", got[0])
	}
	if got[1].Teams != 3 {
		t.Fatalf("expected roster team counted in AAA, got %d", got[1].Teams)
	}
}

func TestScheduleService_ListTeamGames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	divisionRepo := divisionmock.NewRepository(t)
	divisionRepo.On("GetByName", mock.Anything, "AAA").Return(divisionByName("AAA"), true, nil).Times(2)

	service := NewScheduleService(divisionRepo, staticGames{collection: sampleCollection()})
	games, err := service.ListTeamGames(ctx, "AAA", "Team 1")
	if err != nil {
		t.Fatalf("list team games: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	if _, err := service.ListTeamGames(ctx, "AAA", "Team 42"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
}

func TestScheduleService_GetGame(t *testing.T) {
	t.Parallel()

	service := NewScheduleService(divisionmock.NewRepository(t), staticGames{collection: sampleCollection()})
	all := sampleCollection().All()

	got, err := service.GetGame(context.Background(), all[0].Key)
	if err != nil || got.Home != "Tigers" {
		t.Fatalf("unexpected game %+v err=%v", got, err)
	}
	if _, err := service.GetGame(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.GetGame(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScheduleService_ListGames_UnknownDivision(t *testing.T) {
	t.Parallel()

	divisionRepo := divisionmock.NewRepository(t)
	divisionRepo.On("GetByName", mock.Anything, "Minors").Return(division.Division{}, false, nil).Once()

	service := NewScheduleService(divisionRepo, staticGames{collection: sampleCollection()})
	if _, err := service.ListGames(context.Background(), "Minors"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
