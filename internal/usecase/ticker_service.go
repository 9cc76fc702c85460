package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/little-league/internal/domain/game"
)

const maxTickerLimit = 50

type TickerConfig struct {
	Location *time.Location
	Now      func() time.Time
}

// TickerService serves the small recency lists shown on the home screen.
type TickerService struct {
	games    CollectionReader
	location *time.Location
	now      func() time.Time
}

func NewTickerService(games CollectionReader, cfg TickerConfig) *TickerService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &TickerService{
		games:    games,
		location: cfg.Location,
		now:      cfg.Now,
	}
}

// Today lists games scheduled on the league's current calendar day.
func (s *TickerService) Today(ctx context.Context) ([]game.Game, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TickerService.Today")
	defer span.End()

	return game.TodayGames(s.games.Current().All(), s.today()), nil
}

// RecentFinals lists the most recent completed games in load order.
func (s *TickerService) RecentFinals(ctx context.Context, limit int) ([]game.Game, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TickerService.RecentFinals")
	defer span.End()

	limit, err := normalizeTickerLimit(limit)
	if err != nil {
		return nil, err
	}
	return game.RecentFinals(s.games.Current().All(), limit), nil
}

// Upcoming lists the next unplayed games from today on.
func (s *TickerService) Upcoming(ctx context.Context, limit int) ([]game.Game, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TickerService.Upcoming")
	defer span.End()

	limit, err := normalizeTickerLimit(limit)
	if err != nil {
		return nil, err
	}
	return game.UpcomingGames(s.games.Current().All(), s.today(), limit), nil
}

func (s *TickerService) today() time.Time {
	return s.now().In(s.location)
}

func normalizeTickerLimit(limit int) (int, error) {
	if limit < 0 {
		return 0, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	if limit == 0 {
		return game.DefaultRecentFinals, nil
	}
	if limit > maxTickerLimit {
		return maxTickerLimit, nil
	}
	return limit, nil
}
