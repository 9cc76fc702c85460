package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/little-league/internal/domain/game"
	"github.com/riskibarqy/little-league/internal/domain/scoreoverride"
	divisionmock "github.com/riskibarqy/little-league/internal/mocks/domain/division"
	scoreoverridemock "github.com/riskibarqy/little-league/internal/mocks/domain/scoreoverride"
	"github.com/riskibarqy/little-league/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

var (
	majorsKey = game.Key("Majors", "2024-04-01", "18:00", "Tigers", "Cubs")
	tballKey  = game.Key("T-Ball", "2024-04-01", "10:00", "Ants", "Bees")
)

func newScoreFixture(t *testing.T) (*ScoreService, *ReconcileService, *divisionmock.Repository, *scoreoverridemock.Repository) {
	t.Helper()

	reconciler, divisionRepo, overrideRepo := newReconcileFixture(t, nil)
	overrideRepo.On("List", mock.Anything).Return([]scoreoverride.Override{}, nil).Once()
	if _, err := reconciler.Reconcile(context.Background(), map[string][]game.RawRow{
		"Majors": {sheetRow("Majors", "2024-04-01", "18:00", "Tigers", "Cubs", "5", "3")},
		"T-Ball": {sheetRow("T-Ball", "2024-04-01", "10:00", "Ants", "Bees", "", "")},
	}); err != nil {
		t.Fatalf("seed reconcile: %v", err)
	}

	service := NewScoreService(divisionRepo, overrideRepo, reconciler, logging.NewNop())
	return service, reconciler, divisionRepo, overrideRepo
}

func TestScoreService_SubmitScore_AppliesImmediately(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, reconciler, divisionRepo, overrideRepo := newScoreFixture(t)

	divisionRepo.On("GetByName", mock.Anything, "Majors").Return(divisionByName("Majors"), true, nil).Once()
	overrideRepo.
		On("Put", mock.Anything, mock.MatchedBy(func(o scoreoverride.Override) bool {
			return o.Key == majorsKey && *o.HomeScore == 7 && *o.AwayScore == 6 && o.UpdatedBy == "scorekeeper" && !o.UpdatedAt.IsZero()
		})).
		Return(nil).
		Once()
	overrideRepo.
		On("List", mock.Anything).
		Return([]scoreoverride.Override{{Key: majorsKey, HomeScore: game.Score(7), AwayScore: game.Score(6)}}, nil).
		Once()

	got, err := service.SubmitScore(ctx, SubmitScoreInput{
		GameKey:   " " + majorsKey + " ",
		HomeScore: game.Score(7),
		AwayScore: game.Score(6),
		UpdatedBy: " scorekeeper ",
	})
	if err != nil {
		t.Fatalf("submit score: %v", err)
	}
	if *got.HomeScore != 7 || *got.AwayScore != 6 {
		t.Fatalf("unexpected returned score: %d-%d", *got.HomeScore, *got.AwayScore)
	}

	published, _ := reconciler.Current().Get(majorsKey)
	if *published.HomeScore != 7 {
		t.Fatalf("expected override published, got %d", *published.HomeScore)
	}
}

func TestScoreService_SubmitScore_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		service, _, _, _ := newScoreFixture(t)
		_, err := service.SubmitScore(ctx, SubmitScoreInput{GameKey: "  "})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown game", func(t *testing.T) {
		service, _, _, _ := newScoreFixture(t)
		_, err := service.SubmitScore(ctx, SubmitScoreInput{GameKey: "Majors|x|y|A|B", HomeScore: game.Score(1)})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("non scoring division", func(t *testing.T) {
		service, _, divisionRepo, _ := newScoreFixture(t)
		divisionRepo.On("GetByName", mock.Anything, "T-Ball").Return(divisionByName("T-Ball"), true, nil).Once()
		_, err := service.SubmitScore(ctx, SubmitScoreInput{GameKey: tballKey, HomeScore: game.Score(3), AwayScore: game.Score(2)})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative score", func(t *testing.T) {
		service, _, divisionRepo, _ := newScoreFixture(t)
		divisionRepo.On("GetByName", mock.Anything, "Majors").Return(divisionByName("Majors"), true, nil).Once()
		_, err := service.SubmitScore(ctx, SubmitScoreInput{GameKey: majorsKey, HomeScore: game.Score(-1)})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("score above max", func(t *testing.T) {
		service, _, divisionRepo, _ := newScoreFixture(t)
		divisionRepo.On("GetByName", mock.Anything, "Majors").Return(divisionByName("Majors"), true, nil).Once()
		_, err := service.SubmitScore(ctx, SubmitScoreInput{GameKey: majorsKey, HomeScore: game.Score(1), AwayScore: game.Score(game.MaxScore + 1)})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestScoreService_SubmitScore_StoreFailure(t *testing.T) {
	t.Parallel()

	service, _, divisionRepo, overrideRepo := newScoreFixture(t)
	divisionRepo.On("GetByName", mock.Anything, "Majors").Return(divisionByName("Majors"), true, nil).Once()
	overrideRepo.On("Put", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := service.SubmitScore(context.Background(), SubmitScoreInput{GameKey: majorsKey, HomeScore: game.Score(1), AwayScore: game.Score(0)})
	if err == nil {
		t.Fatalf("expected store failure to surface")
	}
}

func TestScoreService_RemoveScore_RestoresRemoteScore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, _, overrideRepo := newScoreFixture(t)

	overrideRepo.On("Get", mock.Anything, majorsKey).Return(scoreoverride.Override{Key: majorsKey, HomeScore: game.Score(9)}, true, nil).Once()
	overrideRepo.On("Remove", mock.Anything, majorsKey).Return(nil).Once()
	overrideRepo.On("List", mock.Anything).Return([]scoreoverride.Override{}, nil).Once()

	got, scheduled, err := service.RemoveScore(ctx, majorsKey)
	if err != nil {
		t.Fatalf("remove score: %v", err)
	}
	if !scheduled || *got.HomeScore != 5 || *got.AwayScore != 3 {
		t.Fatalf("expected remote 5-3 restored, got %+v scheduled=%t", got, scheduled)
	}
}

func TestScoreService_RemoveScore_MissingOverride(t *testing.T) {
	t.Parallel()

	service, _, _, overrideRepo := newScoreFixture(t)
	overrideRepo.On("Get", mock.Anything, majorsKey).Return(scoreoverride.Override{}, false, nil).Once()

	_, _, err := service.RemoveScore(context.Background(), majorsKey)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
