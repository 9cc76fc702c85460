package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/little-league/internal/domain/division"
	"github.com/riskibarqy/little-league/internal/domain/game"
	"github.com/riskibarqy/little-league/internal/domain/scoreoverride"
	"github.com/riskibarqy/little-league/internal/platform/logging"
)

// OverrideApplier republishes the game collection after an override change.
type OverrideApplier interface {
	CollectionReader
	ApplyOverrides(ctx context.Context) (*game.Collection, error)
}

type SubmitScoreInput struct {
	GameKey   string
	HomeScore *int
	AwayScore *int
	UpdatedBy string
}

// ScoreService records manual score corrections.
type ScoreService struct {
	divisionRepo division.Repository
	overrideRepo scoreoverride.Repository
	games        OverrideApplier
	logger       *logging.Logger
	now          func() time.Time
}

func NewScoreService(
	divisionRepo division.Repository,
	overrideRepo scoreoverride.Repository,
	games OverrideApplier,
	logger *logging.Logger,
) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreService{
		divisionRepo: divisionRepo,
		overrideRepo: overrideRepo,
		games:        games,
		logger:       logger,
		now:          time.Now,
	}
}

// SubmitScore stores an override for an existing game of a scoring division
// and applies it to the published collection right away.
func (s *ScoreService) SubmitScore(ctx context.Context, input SubmitScoreInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.SubmitScore")
	defer span.End()

	key := strings.TrimSpace(input.GameKey)
	if key == "" {
		return game.Game{}, fmt.Errorf("%w: game key is required", ErrInvalidInput)
	}

	current, exists := s.games.Current().Get(key)
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, key)
	}

	d, err := resolveDivision(ctx, s.divisionRepo, current.Division)
	if err != nil {
		return game.Game{}, err
	}
	if !d.Scoring {
		return game.Game{}, fmt.Errorf("%w: division %s does not record scores", ErrInvalidInput, d.Name)
	}

	item := scoreoverride.Override{
		Key:       key,
		HomeScore: input.HomeScore,
		AwayScore: input.AwayScore,
		UpdatedBy: strings.TrimSpace(input.UpdatedBy),
		UpdatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.overrideRepo.Put(ctx, item); err != nil {
		return game.Game{}, fmt.Errorf("put score override: %w", err)
	}

	collection, err := s.games.ApplyOverrides(ctx)
	if err != nil {
		return game.Game{}, fmt.Errorf("apply score overrides: %w", err)
	}
	updated, exists := collection.Get(key)
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, key)
	}

	s.logger.InfoContext(ctx, "score override saved",
		"game_key", key,
		"division", d.Name,
		"updated_by", item.UpdatedBy,
	)
	return updated, nil
}

// RemoveScore deletes an override so the remote score shows again.
func (s *ScoreService) RemoveScore(ctx context.Context, key string) (game.Game, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.RemoveScore")
	defer span.End()

	key = strings.TrimSpace(key)
	if key == "" {
		return game.Game{}, false, fmt.Errorf("%w: game key is required", ErrInvalidInput)
	}

	_, exists, err := s.overrideRepo.Get(ctx, key)
	if err != nil {
		return game.Game{}, false, fmt.Errorf("get score override: %w", err)
	}
	if !exists {
		return game.Game{}, false, fmt.Errorf("%w: score override=%s", ErrNotFound, key)
	}

	if err := s.overrideRepo.Remove(ctx, key); err != nil {
		return game.Game{}, false, fmt.Errorf("remove score override: %w", err)
	}

	collection, err := s.games.ApplyOverrides(ctx)
	if err != nil {
		return game.Game{}, false, fmt.Errorf("apply score overrides: %w", err)
	}

	s.logger.InfoContext(ctx, "score override removed", "game_key", key)

	updated, stillScheduled := collection.Get(key)
	return updated, stillScheduled, nil
}

func (s *ScoreService) ListOverrides(ctx context.Context) ([]scoreoverride.Override, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.ListOverrides")
	defer span.End()

	items, err := s.overrideRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list score overrides: %w", err)
	}
	return items, nil
}
