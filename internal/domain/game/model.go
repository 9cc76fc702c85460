package game

// RawRow is one untrusted source row keyed by column name.
type RawRow map[string]string

// Game is a normalized scheduled game. A nil score means the game has not been played.
type Game struct {
	Key       string
	Division  string
	Date      string
	Time      string
	Field     string
	Home      string
	Away      string
	HomeScore *int
	AwayScore *int
}

// Complete reports whether both participants are known.
func (g Game) Complete() bool {
	return g.Home != "" && g.Away != ""
}

// Final reports whether both scores are recorded.
func (g Game) Final() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// Involves reports whether team plays in the game.
func (g Game) Involves(team string) bool {
	return g.Home == team || g.Away == team
}

// ComputeKey returns the natural key of the game.
func (g Game) ComputeKey() string {
	return Key(g.Division, g.Date, g.Time, g.Home, g.Away)
}

// WithScores returns a copy of g carrying the given scores.
func (g Game) WithScores(home, away *int) Game {
	g.HomeScore = copyScore(home)
	g.AwayScore = copyScore(away)
	return g
}

func (g Game) clone() Game {
	g.HomeScore = copyScore(g.HomeScore)
	g.AwayScore = copyScore(g.AwayScore)
	return g
}

func copyScore(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Score is a convenience constructor for an optional score.
func Score(v int) *int {
	return &v
}
