package scoreoverride

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/little-league/internal/domain/game"
)

// Override is a manually recorded score for one game key. It takes precedence
// over whatever the remote sheet reports until an admin removes it. A nil
// score clears the game back to not played.
type Override struct {
	Key       string
	HomeScore *int
	AwayScore *int
	UpdatedBy string
	UpdatedAt time.Time
}

func (o Override) Validate() error {
	if strings.TrimSpace(o.Key) == "" {
		return fmt.Errorf("game key is required")
	}
	if err := validScore("home", o.HomeScore); err != nil {
		return err
	}
	if err := validScore("away", o.AwayScore); err != nil {
		return err
	}

	return nil
}

func validScore(side string, v *int) error {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > game.MaxScore {
		return fmt.Errorf("%s score must be between 0 and %d", side, game.MaxScore)
	}
	return nil
}
