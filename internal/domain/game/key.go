package game

import "strings"

const keySeparator = "|"

// Key builds the natural game key. Scores never participate, so a score
// correction keeps the same key.
func Key(division, date, clock, home, away string) string {
	return strings.Join([]string{
		strings.TrimSpace(division),
		strings.TrimSpace(date),
		strings.TrimSpace(clock),
		strings.TrimSpace(home),
		strings.TrimSpace(away),
	}, keySeparator)
}
