package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/little-league/internal/domain/scoreoverride"
	qb "github.com/riskibarqy/little-league/internal/platform/querybuilder"
)

const scoreOverrideColumns = "game_key, home_score, away_score, updated_by, updated_at"

type scoreOverrideRow struct {
	GameKey   string `db:"game_key"`
	HomeScore *int   `db:"home_score"`
	AwayScore *int   `db:"away_score"`
	UpdatedBy string `db:"updated_by"`
	UpdatedAt string `db:"updated_at"`
}

// ScoreOverrideRepository keeps overrides in a local sqlite file so manual
// corrections survive restarts without a database server.
type ScoreOverrideRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewScoreOverrideRepository(db *sqlx.DB) *ScoreOverrideRepository {
	return &ScoreOverrideRepository{db: db, now: time.Now}
}

func (r *ScoreOverrideRepository) Get(ctx context.Context, key string) (scoreoverride.Override, bool, error) {
	query, args, err := qb.Select(scoreOverrideColumns).Dialect(qb.Question).From("score_overrides").
		Where(
			qb.Eq("game_key", key),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return scoreoverride.Override{}, false, fmt.Errorf("build get score override query: %w", err)
	}

	var row scoreOverrideRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return scoreoverride.Override{}, false, nil
		}
		return scoreoverride.Override{}, false, fmt.Errorf("get score override: %w", err)
	}

	item, err := scoreOverrideFromRow(row)
	if err != nil {
		return scoreoverride.Override{}, false, err
	}
	return item, true, nil
}

func (r *ScoreOverrideRepository) Put(ctx context.Context, item scoreoverride.Override) error {
	updatedAt := item.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = r.now()
	}
	row := scoreOverrideRow{
		GameKey:   item.Key,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		UpdatedBy: item.UpdatedBy,
		UpdatedAt: formatTime(updatedAt),
	}
	query, args, err := qb.InsertModel(qb.Question, "score_overrides", row, `ON CONFLICT (game_key)
DO UPDATE SET
    home_score = excluded.home_score,
    away_score = excluded.away_score,
    updated_by = excluded.updated_by,
    updated_at = excluded.updated_at,
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
	now := formatTime(r.now())
	query, args, err := qb.Update("score_overrides").Dialect(qb.Question).
		Set("deleted_at", now).
		Set("updated_at", now).
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
	query, args, err := qb.Select(scoreOverrideColumns).Dialect(qb.Question).From("score_overrides").
		Where(qb.IsNull("deleted_at")).
		OrderBy("game_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list score overrides query: %w", err)
	}

	var rows []scoreOverrideRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list score overrides: %w", err)
	}

	out := make([]scoreoverride.Override, 0, len(rows))
	for _, row := range rows {
		item, err := scoreOverrideFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func scoreOverrideFromRow(row scoreOverrideRow) (scoreoverride.Override, error) {
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return scoreoverride.Override{}, fmt.Errorf("parse updated_at for %s: %w", row.GameKey, err)
	}
	return scoreoverride.Override{
		Key:       row.GameKey,
		HomeScore: row.HomeScore,
		AwayScore: row.AwayScore,
		UpdatedBy: row.UpdatedBy,
		UpdatedAt: updatedAt,
	}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
