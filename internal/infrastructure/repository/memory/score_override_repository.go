package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/little-league/internal/domain/scoreoverride"
)

type ScoreOverrideRepository struct {
	mu    sync.RWMutex
	items map[string]scoreoverride.Override
}

func NewScoreOverrideRepository() *ScoreOverrideRepository {
	return &ScoreOverrideRepository{items: make(map[string]scoreoverride.Override)}
}

func (r *ScoreOverrideRepository) Get(_ context.Context, key string) (scoreoverride.Override, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key]
	if !ok {
		return scoreoverride.Override{}, false, nil
	}

	return cloneOverride(item), true, nil
}

func (r *ScoreOverrideRepository) Put(_ context.Context, item scoreoverride.Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.Key] = cloneOverride(item)
	return nil
}

func (r *ScoreOverrideRepository) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, key)
	return nil
}

// List returns overrides ordered by game key.
func (r *ScoreOverrideRepository) List(_ context.Context) ([]scoreoverride.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoreoverride.Override, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneOverride(item))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})

	return out, nil
}

func cloneOverride(o scoreoverride.Override) scoreoverride.Override {
	copied := o
	copied.HomeScore = copyInt(o.HomeScore)
	copied.AwayScore = copyInt(o.AwayScore)
	return copied
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
