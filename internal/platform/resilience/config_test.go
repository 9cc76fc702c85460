package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryConfig_DelayIsLinearAndCapped(t *testing.T) {
	cfg := NormalizeRetryConfig(RetryConfig{MaxRetries: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: 250 * time.Millisecond})

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 250 * time.Millisecond, 250 * time.Millisecond}
	for attempt, expected := range want {
		if got := cfg.Delay(attempt); got != expected {
			t.Fatalf("attempt %d: got=%s want=%s", attempt, got, expected)
		}
	}
}

func TestNormalizeRetryConfig_Defaults(t *testing.T) {
	cfg := NormalizeRetryConfig(RetryConfig{MaxRetries: -2})
	if cfg.MaxRetries != 0 || cfg.BaseDelay != time.Second || cfg.MaxDelay != 10*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestSleep_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
