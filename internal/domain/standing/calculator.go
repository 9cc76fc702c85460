package standing

import (
	"sort"
	"strings"

	"github.com/riskibarqy/little-league/internal/domain/game"
)

// Compute derives the standings of one division from scratch. Every team in a
// complete game gets a row even before a score exists; seeds add zero rows for
// roster teams that have not appeared yet. The result is ordered by win
// percentage, run differential, runs scored and team name, and does not depend
// on the order of games.
func Compute(division string, games []game.Game, seeds ...string) []Row {
	table := make(map[string]*Row)
	ensure := func(team string) *Row {
		row, ok := table[team]
		if !ok {
			row = &Row{Team: team}
			table[team] = row
		}
		return row
	}

	for _, team := range seeds {
		if team = strings.TrimSpace(team); team != "" {
			ensure(team)
		}
	}

	for _, g := range games {
		if g.Division != division || !g.Complete() {
			continue
		}
		home := ensure(g.Home)
		away := ensure(g.Away)
		if !g.Final() {
			continue
		}

		hs, as := *g.HomeScore, *g.AwayScore
		home.RunsFor += hs
		home.RunsAgainst += as
		away.RunsFor += as
		away.RunsAgainst += hs

		switch {
		case hs > as:
			home.Wins++
			away.Losses++
		case hs < as:
			away.Wins++
			home.Losses++
		default:
			home.Ties++
			away.Ties++
		}
	}

	out := make([]Row, 0, len(table))
	for _, row := range table {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func less(a, b Row) bool {
	if c := comparePct(a, b); c != 0 {
		return c > 0
	}
	if a.RunDifferential() != b.RunDifferential() {
		return a.RunDifferential() > b.RunDifferential()
	}
	if a.RunsFor != b.RunsFor {
		return a.RunsFor > b.RunsFor
	}
	return a.Team < b.Team
}

// comparePct compares win percentages exactly using half-game units:
// (2W+T)/2P against (2W'+T')/2P' by cross multiplication.
func comparePct(a, b Row) int {
	an, ad := int64(2*a.Wins+a.Ties), int64(2*a.GamesPlayed())
	bn, bd := int64(2*b.Wins+b.Ties), int64(2*b.GamesPlayed())
	if ad == 0 {
		an, ad = 0, 1
	}
	if bd == 0 {
		bn, bd = 0, 1
	}

	left, right := an*bd, bn*ad
	switch {
	case left > right:
		return 1
	case left < right:
		return -1
	default:
		return 0
	}
}
