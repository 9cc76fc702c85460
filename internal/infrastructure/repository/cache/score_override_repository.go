package cache

import (
	"context"

	"github.com/riskibarqy/little-league/internal/domain/scoreoverride"
	basecache "github.com/riskibarqy/little-league/internal/platform/cache"
)

const scoreOverrideListKey = "score_override:list"

// ScoreOverrideRepository caches the active override list in front of a
// durable store. Writes invalidate the cached list after they succeed.
type ScoreOverrideRepository struct {
	next  scoreoverride.Repository
	cache *basecache.Store[[]scoreoverride.Override]
}

func NewScoreOverrideRepository(next scoreoverride.Repository, cache *basecache.Store[[]scoreoverride.Override]) *ScoreOverrideRepository {
	return &ScoreOverrideRepository{next: next, cache: cache}
}

func (r *ScoreOverrideRepository) Get(ctx context.Context, key string) (scoreoverride.Override, bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return scoreoverride.Override{}, false, err
	}
	for _, item := range items {
		if item.Key == key {
			return item, true, nil
		}
	}
	return scoreoverride.Override{}, false, nil
}

func (r *ScoreOverrideRepository) Put(ctx context.Context, item scoreoverride.Override) error {
	if err := r.next.Put(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, scoreOverrideListKey)
	return nil
}

func (r *ScoreOverrideRepository) Remove(ctx context.Context, key string) error {
	if err := r.next.Remove(ctx, key); err != nil {
		return err
	}
	r.cache.Delete(ctx, scoreOverrideListKey)
	return nil
}

func (r *ScoreOverrideRepository) List(ctx context.Context) ([]scoreoverride.Override, error) {
	items, err := r.cache.GetOrLoad(ctx, scoreOverrideListKey, func(ctx context.Context) ([]scoreoverride.Override, error) {
		loaded, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]scoreoverride.Override(nil), loaded...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]scoreoverride.Override(nil), items...), nil
}
