package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/little-league/internal/domain/scoreoverride"
	qb "github.com/riskibarqy/little-league/internal/platform/querybuilder"
)

const scoreOverrideColumns = "id, game_key, home_score, away_score, updated_by, created_at, updated_at, deleted_at"

type ScoreOverrideRepository struct {
	db *sqlx.DB
}

func NewScoreOverrideRepository(db *sqlx.DB) *ScoreOverrideRepository {
	return &ScoreOverrideRepository{db: db}
}

func (r *ScoreOverrideRepository) Get(ctx context.Context, key string) (scoreoverride.Override, bool, error) {
	query, args, err := qb.Select(scoreOverrideColumns).From("score_overrides").
		Where(
			qb.Eq("game_key", key),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return scoreoverride.Override{}, false, fmt.Errorf("build get score override query: %w", err)
	}

	var row scoreOverrideTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoreoverride.Override{}, false, nil
		}
		return scoreoverride.Override{}, false, fmt.Errorf("get score override: %w", err)
	}

	return scoreOverrideFromRow(row), true, nil
}

// Put upserts by game key and revives a soft-deleted row.
func (r *ScoreOverrideRepository) Put(ctx context.Context, item scoreoverride.Override) error {
	insertModel := scoreOverrideInsertModel{
		GameKey:   item.Key,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		UpdatedBy: item.UpdatedBy,
		UpdatedAt: item.UpdatedAt,
	}
	query, args, err := qb.InsertModel(qb.Dollar, "score_overrides", insertModel, `ON CONFLICT (game_key)
DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    updated_by = EXCLUDED.updated_by,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert score override query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert score override: %w", err)
	}

	return nil
}

func (r *ScoreOverrideRepository) Remove(ctx context.Context, key string) error {
	query, args, err := qb.Update("score_overrides").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("game_key", key),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove score override query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove score override: %w", err)
	}

	return nil
}

func (r *ScoreOverrideRepository) List(ctx context.Context) ([]scoreoverride.Override, error) {
	query, args, err := qb.Select(scoreOverrideColumns).From("score_overrides").
		Where(qb.IsNull("deleted_at")).
		OrderBy("game_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list score overrides query: %w", err)
	}

	var rows []scoreOverrideTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list score overrides: %w", err)
	}

	out := make([]scoreoverride.Override, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoreOverrideFromRow(row))
	}
	return out, nil
}

func scoreOverrideFromRow(row scoreOverrideTableModel) scoreoverride.Override {
	return scoreoverride.Override{
		Key:       row.GameKey,
		HomeScore: row.HomeScore,
		AwayScore: row.AwayScore,
		UpdatedBy: row.UpdatedBy,
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
