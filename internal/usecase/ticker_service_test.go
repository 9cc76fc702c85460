package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTickerFixture() *TickerService {
	loc := time.FixedZone("PDT", -7*3600)
	// 02:00 UTC on the 7th is still the evening of the 6th in the league zone.
	now := time.Date(2024, 4, 7, 2, 0, 0, 0, time.UTC)
	return NewTickerService(staticGames{collection: sampleCollection()}, TickerConfig{
		Location: loc,
		Now:      func() time.Time { return now },
	})
}

func TestTickerService_TodayUsesLeagueTimezone(t *testing.T) {
	t.Parallel()

	got, err := newTickerFixture().Today(context.Background())
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 games today, got %d", len(got))
	}
	if got[0].Time != "9:00 AM" || got[1].Time != "10:00" || got[2].Time != "6:00 PM" {
		t.Fatalf("unexpected order: %s, %s, %s", got[0].Time, got[1].Time, got[2].Time)
	}
}

func TestTickerService_RecentFinals(t *testing.T) {
	t.Parallel()

	service := newTickerFixture()
	got, err := service.RecentFinals(context.Background(), 2)
	if err != nil {
		t.Fatalf("recent finals: %v", err)
	}
	if len(got) != 2 || got[0].Home != "Bears" || got[1].Home != "Team 1" {
		t.Fatalf("unexpected finals: %+v", got)
	}

	all, err := service.RecentFinals(context.Background(), 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all 3 finals with default limit, got %d err=%v", len(all), err)
	}

	if _, err := service.RecentFinals(context.Background(), -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative limit, got %v", err)
	}
}

func TestTickerService_Upcoming(t *testing.T) {
	t.Parallel()

	got, err := newTickerFixture().Upcoming(context.Background(), 5)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 upcoming games, got %d", len(got))
	}
	if got[0].Home != "Ants" || got[1].Home != "Cubs" || got[2].Home != "Team 2" {
		t.Fatalf("unexpected upcoming order: %s, %s, %s", got[0].Home, got[1].Home, got[2].Home)
	}
}
