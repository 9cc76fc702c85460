package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/little-league/internal/domain/scoreoverride"
	scoreoverridemock "github.com/riskibarqy/little-league/internal/mocks/domain/scoreoverride"
	basecache "github.com/riskibarqy/little-league/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestScoreOverrideRepository_ListIsCachedUntilWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := scoreoverridemock.NewRepository(t)
	repo := NewScoreOverrideRepository(next, basecache.NewStore[[]scoreoverride.Override](time.Minute))

	next.On("List", mock.Anything).Return([]scoreoverride.Override{{Key: "a"}}, nil).Once()
	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx)
		if err != nil || len(items) != 1 {
			t.Fatalf("list %d: items=%v err=%v", i, items, err)
		}
	}
	if _, ok, err := repo.Get(ctx, "a"); err != nil || !ok {
		t.Fatalf("expected cached get to find a: ok=%t err=%v", ok, err)
	}

	next.On("Put", mock.Anything, mock.Anything).Return(nil).Once()
	next.On("List", mock.Anything).Return([]scoreoverride.Override{{Key: "a"}, {Key: "b"}}, nil).Once()
	if err := repo.Put(ctx, scoreoverride.Override{Key: "b"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	items, err := repo.List(ctx)
	if err != nil || len(items) != 2 {
		t.Fatalf("expected reload after put, got items=%v err=%v", items, err)
	}
}

func TestScoreOverrideRepository_FailedWriteKeepsCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := scoreoverridemock.NewRepository(t)
	repo := NewScoreOverrideRepository(next, basecache.NewStore[[]scoreoverride.Override](time.Minute))

	next.On("List", mock.Anything).Return([]scoreoverride.Override{{Key: "a"}}, nil).Once()
	next.On("Remove", mock.Anything, "a").Return(errors.New("locked")).Once()

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := repo.Remove(ctx, "a"); err == nil {
		t.Fatalf("expected remove error")
	}
	if items, err := repo.List(ctx); err != nil || len(items) != 1 {
		t.Fatalf("expected cached list after failed remove, items=%v err=%v", items, err)
	}
}

func TestScoreOverrideRepository_PutDuringListLoadStaysVisible(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := scoreoverridemock.NewRepository(t)
	repo := NewScoreOverrideRepository(next, basecache.NewStore[[]scoreoverride.Override](time.Minute))

	started := make(chan struct{})
	release := make(chan struct{})
	next.On("List", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]scoreoverride.Override{}, nil).Once()
	next.On("Put", mock.Anything, mock.Anything).Return(nil).Once()
	next.On("List", mock.Anything).Return([]scoreoverride.Override{{Key: "b"}}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := repo.List(ctx)
		done <- err
	}()

	<-started
	if err := repo.Put(ctx, scoreoverride.Override{Key: "b"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	items, err := repo.List(ctx)
	if err != nil || len(items) != 1 || items[0].Key != "b" {
		t.Fatalf("expected list after put to include b, items=%v err=%v", items, err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("in-flight list: %v", err)
	}

	if _, ok, err := repo.Get(ctx, "b"); err != nil || !ok {
		t.Fatalf("expected b to stay visible after the older load finished, ok=%t err=%v", ok, err)
	}
	if items, err := repo.List(ctx); err != nil || len(items) != 1 {
		t.Fatalf("expected cached list with b, items=%v err=%v", items, err)
	}
}
