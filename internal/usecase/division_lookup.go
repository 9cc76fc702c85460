package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/little-league/internal/domain/division"
)

func resolveDivision(ctx context.Context, repo division.Repository, name string) (division.Division, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return division.Division{}, fmt.Errorf("%w: division is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByName(ctx, name)
	if err != nil {
		return division.Division{}, fmt.Errorf("get division: %w", err)
	}
	if !exists {
		return division.Division{}, fmt.Errorf("%w: division=%s", ErrNotFound, name)
	}

	return item, nil
}
