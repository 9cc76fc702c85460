package usecase

import (
	"context"
	"sync"

	"github.com/riskibarqy/little-league/internal/domain/division"
	"github.com/riskibarqy/little-league/internal/domain/game"
)

func leagueDivisions() []division.Division {
	return []division.Division{
		{Name: "Majors", Scoring: true, SourceURL: "https://sheets.example/majors.csv"},
		{Name: "AAA", Scoring: true, SourceURL: "https://sheets.example/aaa.csv", Roster: []string{"Team 9"}},
		{Name: "T-Ball"},
	}
}

func divisionByName(name string) division.Division {
	for _, d := range leagueDivisions() {
		if d.Name == name {
			return d
		}
	}
	return division.Division{}
}

func sheetRow(divisionName, date, clock, home, away, homeScore, awayScore string) game.RawRow {
	return game.RawRow{
		"Division":   divisionName,
		"Date":       date,
		"Time":       clock,
		"Field":      "Field 1",
		"Home":       home,
		"Away":       away,
		"Home Score": homeScore,
		"Away Score": awayScore,
	}
}

type stubSource struct {
	mu    sync.Mutex
	rows  map[string][]game.RawRow
	errs  map[string]error
	calls map[string]int
}

func newStubSource() *stubSource {
	return &stubSource{
		rows:  make(map[string][]game.RawRow),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (s *stubSource) set(name string, rows []game.RawRow, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[name] = rows
	s.errs[name] = err
}

func (s *stubSource) FetchRows(_ context.Context, d division.Division) ([]game.RawRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[d.Name]++
	if err := s.errs[d.Name]; err != nil {
		return nil, err
	}
	return s.rows[d.Name], nil
}

type staticGames struct {
	collection *game.Collection
}

func (s staticGames) Current() *game.Collection {
	return s.collection
}

func keyed(g game.Game) game.Game {
	g.Key = g.ComputeKey()
	return g
}

func sampleCollection() *game.Collection {
	return game.NewCollection([]string{"Majors", "AAA", "T-Ball"}, map[string][]game.Game{
		"Majors": {
			keyed(game.Game{Division: "Majors", Date: "2024-04-01", Time: "6:00 PM", Home: "Tigers", Away: "Cubs", HomeScore: game.Score(5), AwayScore: game.Score(3)}),
			keyed(game.Game{Division: "Majors", Date: "2024-04-06", Time: "6:00 PM", Home: "Cubs", Away: "Bears"}),
			keyed(game.Game{Division: "Majors", Date: "2024-04-06", Time: "9:00 AM", Home: "Bears", Away: "Tigers", HomeScore: game.Score(1), AwayScore: game.Score(1)}),
		},
		"AAA": {
			keyed(game.Game{Division: "AAA", Date: "2024-04-02", Time: "5:30 PM", Home: "Team 1", Away: "Team 2", HomeScore: game.Score(0), AwayScore: game.Score(7)}),
			keyed(game.Game{Division: "AAA", Date: "2024-04-10", Time: "5:30 PM", Home: "Team 2", Away: "Team 1"}),
		},
		"T-Ball": {
			keyed(game.Game{Division: "T-Ball", Date: "2024-04-06", Time: "10:00", Home: "Ants", Away: "Bees"}),
		},
	})
}
