package game

import (
	"sort"
	"strings"
	"time"
)

// DefaultRecentFinals is the ticker size used when callers do not pick one.
const DefaultRecentFinals = 5

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
	"2 Jan 2006",
}

var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3:04 pm",
	"3:04pm",
	"15:04",
	"15:04:05",
	"3 PM",
	"3PM",
	"3pm",
}

// ParseDate reads a sheet date. loc anchors the returned midnight.
func ParseDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseClock reads a start time as minutes after midnight.
func ParseClock(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// TodayGames returns games dated on today's calendar day, ordered by start
// time then key. Games with unreadable times sort after timed ones.
func TodayGames(games []Game, today time.Time) []Game {
	loc := today.Location()
	y, m, d := today.Date()

	out := make([]Game, 0)
	for _, g := range games {
		date, ok := ParseDate(g.Date, loc)
		if !ok {
			continue
		}
		gy, gm, gd := date.Date()
		if gy == y && gm == m && gd == d {
			out = append(out, g)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if clockLess(out[i], out[j]) {
			return true
		}
		if clockLess(out[j], out[i]) {
			return false
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// RecentFinals returns the last n games with both scores recorded, in load
// order. n <= 0 selects DefaultRecentFinals.
func RecentFinals(games []Game, n int) []Game {
	if n <= 0 {
		n = DefaultRecentFinals
	}

	finals := make([]Game, 0, n)
	for _, g := range games {
		if g.Final() {
			finals = append(finals, g)
		}
	}
	if len(finals) > n {
		finals = finals[len(finals)-n:]
	}
	return finals
}

// UpcomingGames returns the first n unplayed games dated today or later,
// ordered by date then start time. Games without a readable date are skipped.
func UpcomingGames(games []Game, today time.Time, n int) []Game {
	if n <= 0 {
		n = DefaultRecentFinals
	}
	loc := today.Location()
	y, m, d := today.Date()
	floor := time.Date(y, m, d, 0, 0, 0, 0, loc)

	type dated struct {
		game Game
		date time.Time
	}
	candidates := make([]dated, 0)
	for _, g := range games {
		if g.Final() {
			continue
		}
		date, ok := ParseDate(g.Date, loc)
		if !ok || date.Before(floor) {
			continue
		}
		candidates = append(candidates, dated{game: g, date: date})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].date.Equal(candidates[j].date) {
			return candidates[i].date.Before(candidates[j].date)
		}
		return clockLess(candidates[i].game, candidates[j].game)
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]Game, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.game)
	}
	return out
}

// Teams lists every team playing in games, sorted by name, merged with roster.
func Teams(games []Game, roster []string) []string {
	set := make(map[string]struct{}, len(roster))
	for _, name := range roster {
		if name = strings.TrimSpace(name); name != "" {
			set[name] = struct{}{}
		}
	}
	for _, g := range games {
		if g.Home != "" {
			set[g.Home] = struct{}{}
		}
		if g.Away != "" {
			set[g.Away] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// TeamSchedule filters games to those involving team, keeping load order.
func TeamSchedule(games []Game, team string) []Game {
	out := make([]Game, 0)
	for _, g := range games {
		if g.Involves(team) {
			out = append(out, g)
		}
	}
	return out
}

func clockLess(a, b Game) bool {
	ac, aok := ParseClock(a.Time)
	bc, bok := ParseClock(b.Time)
	switch {
	case aok && bok:
		return ac < bc
	case aok != bok:
		return aok
	default:
		return false
	}
}
