package httpapi

import (
	"time"

	"github.com/riskibarqy/little-league/internal/domain/game"
	"github.com/riskibarqy/little-league/internal/domain/scoreoverride"
	"github.com/riskibarqy/little-league/internal/domain/standing"
	"github.com/riskibarqy/little-league/internal/platform/resilience"
	"github.com/riskibarqy/little-league/internal/usecase"
)

type healthDTO struct {
	Status        string                       `json:"status"`
	UptimeSeconds int64                        `json:"uptime_seconds"`
	Games         int                          `json:"games"`
	LastSync      *syncSummaryDTO              `json:"last_sync,omitempty"`
	Sources       []resilience.CircuitSnapshot `json:"sources,omitempty"`
}

type syncSummaryDTO struct {
	RunID        string    `json:"run_id"`
	FinishedAt   time.Time `json:"finished_at"`
	Games        int       `json:"games"`
	UpdatedCount int       `json:"updated_count"`
	FailedCount  int       `json:"failed_count"`
}

type divisionDTO struct {
	Name      string `json:"name"`
	Scoring   bool   `json:"scoring"`
	HasSource bool   `json:"has_source"`
	Games     int    `json:"games"`
	Finals    int    `json:"finals"`
	Teams     int    `json:"teams"`
}

type gameDTO struct {
	Key       string `json:"key"`
	Division  string `json:"division"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Field     string `json:"field"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
	Final     bool   `json:"final"`
}

type teamGamesDTO struct {
	Division string    `json:"division"`
	Team     string    `json:"team"`
	Games    []gameDTO `json:"games"`
}

type standingRowDTO struct {
	Position        int     `json:"position"`
	Team            string  `json:"team"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	Ties            int     `json:"ties"`
	GamesPlayed     int     `json:"games_played"`
	WinPct          float64 `json:"win_pct"`
	RunsFor         int     `json:"runs_for"`
	RunsAgainst     int     `json:"runs_against"`
	RunDifferential int     `json:"run_differential"`
}

type divisionStandingsDTO struct {
	Division string           `json:"division"`
	Rows     []standingRowDTO `json:"rows"`
}

type overrideDTO struct {
	GameKey   string    `json:"game_key"`
	HomeScore *int      `json:"home_score"`
	AwayScore *int      `json:"away_score"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type removeScoreDTO struct {
	GameKey   string   `json:"game_key"`
	Removed   bool     `json:"removed"`
	Scheduled bool     `json:"scheduled"`
	Game      *gameDTO `json:"game,omitempty"`
}

func syncSummaryToDTO(result usecase.ReconcileResult) syncSummaryDTO {
	return syncSummaryDTO{
		RunID:        result.RunID,
		FinishedAt:   result.FinishedAt,
		Games:        result.Games,
		UpdatedCount: result.UpdatedCount,
		FailedCount:  result.FailedCount,
	}
}

func divisionSummaryToDTO(item usecase.DivisionSummary) divisionDTO {
	return divisionDTO{
		Name:      item.Division.Name,
		Scoring:   item.Division.Scoring,
		HasSource: item.Division.SourceURL != "",
		Games:     item.Games,
		Finals:    item.Finals,
		Teams:     item.Teams,
	}
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
		Key:       g.Key,
		Division:  g.Division,
		Date:      g.Date,
		Time:      g.Time,
		Field:     g.Field,
		Home:      g.Home,
		Away:      g.Away,
		HomeScore: g.HomeScore,
		AwayScore: g.AwayScore,
		Final:     g.Final(),
	}
}

func gamesToDTO(games []game.Game) []gameDTO {
	out := make([]gameDTO, 0, len(games))
	for _, g := range games {
		out = append(out, gameToDTO(g))
	}
	return out
}

func standingsToDTO(item usecase.DivisionStandings) divisionStandingsDTO {
	rows := make([]standingRowDTO, 0, len(item.Rows))
	for i, row := range item.Rows {
		rows = append(rows, standingRowToDTO(i+1, row))
	}
	return divisionStandingsDTO{Division: item.Division, Rows: rows}
}

func standingRowToDTO(position int, row standing.Row) standingRowDTO {
	return standingRowDTO{
		Position:        position,
		Team:            row.Team,
		Wins:            row.Wins,
		Losses:          row.Losses,
		Ties:            row.Ties,
		GamesPlayed:     row.GamesPlayed(),
		WinPct:          row.WinPct(),
		RunsFor:         row.RunsFor,
		RunsAgainst:     row.RunsAgainst,
		RunDifferential: row.RunDifferential(),
	}
}

func overrideToDTO(item scoreoverride.Override) overrideDTO {
	return overrideDTO{
		GameKey:   item.Key,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		UpdatedBy: item.UpdatedBy,
		UpdatedAt: item.UpdatedAt,
	}
}
