package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/little-league/internal/domain/division"
)

type DivisionRepository struct {
	mu     sync.RWMutex
	items  map[string]division.Division
	orders []string
}

// NewDivisionRepository keeps divisions in the given display order. Lookups
// by name ignore case.
func NewDivisionRepository(divisions []division.Division) *DivisionRepository {
	items := make(map[string]division.Division, len(divisions))
	orders := make([]string, 0, len(divisions))

	for _, d := range divisions {
		key := divisionKey(d.Name)
		if _, exists := items[key]; !exists {
			orders = append(orders, key)
		}
		items[key] = cloneDivision(d)
	}

	return &DivisionRepository{
		items:  items,
		orders: orders,
	}
}

func (r *DivisionRepository) List(_ context.Context) ([]division.Division, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]division.Division, 0, len(r.orders))
	for _, key := range r.orders {
		out = append(out, cloneDivision(r.items[key]))
	}

	return out, nil
}

func (r *DivisionRepository) GetByName(_ context.Context, name string) (division.Division, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[divisionKey(name)]
	if !ok {
		return division.Division{}, false, nil
	}

	return cloneDivision(d), true, nil
}

func divisionKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func cloneDivision(d division.Division) division.Division {
	copied := d
	copied.Roster = append([]string(nil), d.Roster...)
	return copied
}
