package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("game_key", "home_score").
		From("score_overrides").
		Where(Eq("game_key", "Majors|d|t|A|B"), IsNull("deleted_at")).
		OrderBy("game_key").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_key, home_score FROM score_overrides WHERE game_key = $1 AND deleted_at IS NULL ORDER BY game_key LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "Majors|d|t|A|B" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_QuestionDialect(t *testing.T) {
	query, args, err := Select("game_key").
		Dialect(Question).
		From("score_overrides").
		Where(Eq("game_key", "k"), Expr("updated_at > ?", "2024-01-01")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT game_key FROM score_overrides WHERE game_key = ? AND updated_at > ?"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("score_overrides").
		Columns("game_key", "home_score").
		Values("k1", 5).
		Suffix("ON CONFLICT (game_key) DO UPDATE SET home_score = EXCLUDED.home_score").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO score_overrides (game_key, home_score) VALUES ($1, $2) ON CONFLICT (game_key) DO UPDATE SET home_score = EXCLUDED.home_score"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "k1" || args[1] != 5 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	deletedAt := time.Date(2024, 4, 6, 0, 0, 0, 0, time.UTC)
	query, args, err := Update("score_overrides").
		Set("deleted_at", deletedAt).
		SetExpr("updated_at", "NOW()").
		Where(Eq("game_key", "k1"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE score_overrides SET deleted_at = $1, updated_at = NOW() WHERE game_key = $2 AND deleted_at IS NULL"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != "k1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Key       string `db:"game_key"`
		HomeScore *int   `db:"home_score"`
		skipped   string
		Ignored   string `db:"-"`
	}

	query, args, err := InsertModel(Question, "score_overrides", row{Key: "k1", skipped: "x"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	if query != "INSERT INTO score_overrides (game_key, home_score) VALUES (?, ?)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "k1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel(Dollar, "t", nil, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
