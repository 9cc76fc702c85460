package game

import (
	"testing"
	"time"
)

func newGame(division, date, clock, home, away string, homeScore, awayScore *int) Game {
	g := Game{
		Division:  division,
		Date:      date,
		Time:      clock,
		Home:      home,
		Away:      away,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
	g.Key = g.ComputeKey()
	return g
}

func TestTodayGames_FiltersAndOrdersByStartTime(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("PDT", -7*3600)
	today := time.Date(2024, 4, 6, 15, 30, 0, 0, loc)
	games := []Game{
		newGame("AAA", "4/6/2024", "6:00 PM", "Team 3", "Team 4", nil, nil),
		newGame("AAA", "2024-04-05", "9:00 AM", "Team 1", "Team 2", nil, nil),
		newGame("Majors", "2024-04-06", "9:00 AM", "Team 5", "Team 6", nil, nil),
		newGame("AA", "Apr 6, 2024", "", "Team 7", "Team 8", nil, nil),
		newGame("AA", "not a date", "10:00", "Team 9", "Team 10", nil, nil),
	}

	got := TodayGames(games, today)
	if len(got) != 3 {
		t.Fatalf("expected 3 games today, got %d", len(got))
	}
	if got[0].Home != "Team 5" || got[1].Home != "Team 3" || got[2].Home != "Team 7" {
		t.Fatalf("unexpected order: %s, %s, %s", got[0].Home, got[1].Home, got[2].Home)
	}
}

func TestTodayGames_BreaksTiesByKey(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 4, 6, 8, 0, 0, 0, time.UTC)
	games := []Game{
		newGame("Majors", "2024-04-06", "", "Zebras", "Yaks", nil, nil),
		newGame("Majors", "2024-04-06", "6:00 PM", "Tigers", "Cubs", nil, nil),
		newGame("AAA", "2024-04-06", "18:00", "Team 3", "Team 4", nil, nil),
		newGame("Majors", "2024-04-06", "TBD", "Bears", "Owls", nil, nil),
		newGame("AA", "2024-04-06", "9:00 AM", "Team 7", "Team 8", nil, nil),
	}

	got := TodayGames(games, today)
	want := []string{
		"AA|2024-04-06|9:00 AM|Team 7|Team 8",
		"AAA|2024-04-06|18:00|Team 3|Team 4",
		"Majors|2024-04-06|6:00 PM|Tigers|Cubs",
		"Majors|2024-04-06|TBD|Bears|Owls",
		"Majors|2024-04-06||Zebras|Yaks",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d games, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Key != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i].Key)
		}
	}
}

func TestRecentFinals_LastNInLoadOrder(t *testing.T) {
	t.Parallel()

	games := make([]Game, 0)
	for i := 0; i < 8; i++ {
		var home, away *int
		if i != 3 {
			home, away = Score(i), Score(0)
		}
		games = append(games, newGame("Majors", "2024-04-01", "18:00", "Home", string(rune('A'+i)), home, away))
	}
	games = append(games, newGame("Majors", "2024-04-02", "18:00", "Home", "Z", Score(1), nil))

	got := RecentFinals(games, 0)
	if len(got) != DefaultRecentFinals {
		t.Fatalf("expected %d finals, got %d", DefaultRecentFinals, len(got))
	}
	wantAways := []string{"C", "E", "F", "G", "H"}
	for i, want := range wantAways {
		if got[i].Away != want {
			t.Fatalf("final %d: expected away %s, got %s", i, want, got[i].Away)
		}
	}

	if got := RecentFinals(games[:2], 5); len(got) != 2 {
		t.Fatalf("expected all finals when fewer than n, got %d", len(got))
	}
}

func TestUpcomingGames_SkipsPlayedAndPast(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 4, 6, 12, 0, 0, 0, time.UTC)
	games := []Game{
		newGame("AAA", "2024-04-09", "6:00 PM", "Team 1", "Team 2", nil, nil),
		newGame("AAA", "2024-04-05", "6:00 PM", "Team 3", "Team 4", nil, nil),
		newGame("AAA", "2024-04-06", "9:00 AM", "Team 5", "Team 6", Score(1), Score(2)),
		newGame("AAA", "2024-04-07", "5:30 PM", "Team 7", "Team 8", nil, nil),
		newGame("AAA", "2024-04-07", "9:00 AM", "Team 9", "Team 10", nil, nil),
	}

	got := UpcomingGames(games, today, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming games, got %d", len(got))
	}
	if got[0].Home != "Team 9" || got[1].Home != "Team 7" {
		t.Fatalf("unexpected upcoming order: %s, %s", got[0].Home, got[1].Home)
	}
}

func TestTeamsAndTeamSchedule(t *testing.T) {
	t.Parallel()

	games := []Game{
		newGame("AA", "2024-04-01", "18:00", "Tigers", "Cubs", nil, nil),
		newGame("AA", "2024-04-02", "18:00", "Cubs", "Bears", nil, nil),
	}

	teams := Teams(games, []string{"Owls", "Tigers", " "})
	want := []string{"Bears", "Cubs", "Owls", "Tigers"}
	if len(teams) != len(want) {
		t.Fatalf("unexpected teams: %v", teams)
	}
	for i := range want {
		if teams[i] != want[i] {
			t.Fatalf("unexpected teams: %v", teams)
		}
	}

	schedule := TeamSchedule(games, "Cubs")
	if len(schedule) != 2 {
		t.Fatalf("expected Cubs to play twice, got %d", len(schedule))
	}
	if len(TeamSchedule(games, "Owls")) != 0 {
		t.Fatalf("expected no games for roster-only team")
	}
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"6:00 PM": 18 * 60,
		"9:15am":  9*60 + 15,
		"18:30":   18*60 + 30,
		"3PM":     15 * 60,
	}
	for raw, want := range cases {
		got, ok := ParseClock(raw)
		if !ok || got != want {
			t.Fatalf("ParseClock(%q): got=%d ok=%t want=%d", raw, got, ok, want)
		}
	}
	if _, ok := ParseClock("dusk"); ok {
		t.Fatalf("expected unreadable clock")
	}
}
