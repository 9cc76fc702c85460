package postgres

import "time"

type scoreOverrideTableModel struct {
	ID        int64      `db:"id"`
	GameKey   string     `db:"game_key"`
	HomeScore *int       `db:"home_score"`
	AwayScore *int       `db:"away_score"`
	UpdatedBy string     `db:"updated_by"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type scoreOverrideInsertModel struct {
	GameKey   string    `db:"game_key"`
	HomeScore *int      `db:"home_score"`
	AwayScore *int      `db:"away_score"`
	UpdatedBy string    `db:"updated_by"`
	UpdatedAt time.Time `db:"updated_at"`
}
