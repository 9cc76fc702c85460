package scoreoverride

import (
	"math"
	"testing"

	"github.com/riskibarqy/little-league/internal/domain/game"
)

func TestOverride_Validate(t *testing.T) {
	t.Parallel()

	const key = "Majors|2024-04-01|6:00 PM|Tigers|Cubs"
	cases := []struct {
		name    string
		item    Override
		wantErr bool
	}{
		{name: "both scores", item: Override{Key: key, HomeScore: game.Score(5), AwayScore: game.Score(3)}},
		{name: "cleared", item: Override{Key: key}},
		{name: "at max", item: Override{Key: key, HomeScore: game.Score(game.MaxScore), AwayScore: game.Score(0)}},
		{name: "blank key", item: Override{Key: "  ", HomeScore: game.Score(1)}, wantErr: true},
		{name: "negative home", item: Override{Key: key, HomeScore: game.Score(-1)}, wantErr: true},
		{name: "negative away", item: Override{Key: key, AwayScore: game.Score(-1)}, wantErr: true},
		{name: "home above max", item: Override{Key: key, HomeScore: game.Score(game.MaxScore + 1)}, wantErr: true},
		{name: "away max int", item: Override{Key: key, AwayScore: game.Score(math.MaxInt)}, wantErr: true},
	}
	for _, tc := range cases {
		err := tc.item.Validate()
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: wantErr=%t got=%v", tc.name, tc.wantErr, err)
		}
	}
}
