package sweeper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/mocks"
	"github.com/ispcore/ipam/internal/store"
	"github.com/ispcore/ipam/internal/sweeper"
)

// testSweeperMocks contains all the mocks needed for testing the sweeper
type testSweeperMocks struct {
	ctrl       *gomock.Controller
	maintainer *mocks.MockLeaseMaintainer
	clock      *mocks.MockClock
	sweeper    sweeper.Sweeper
}

func setupTestSweeper(t *testing.T) *testSweeperMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)
	tm := &testSweeperMocks{
		ctrl:       ctrl,
		maintainer: mocks.NewMockLeaseMaintainer(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}

	tm.sweeper = sweeper.NewAllocationSweeper(&sweeper.AllocationSweeperConfig{
		Interval:      time.Hour,
		RetentionDays: 30,
		MaxRetries:    2,
	}, tm.maintainer, tm.clock)
	sweeper.SetRetryDelay(tm.sweeper, time.Millisecond)

	now := time.Now()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(now).Return(time.Second).AnyTimes()

	return tm
}

// neverFires keeps the loop parked between cycles
func neverFires(time.Duration) <-chan time.Time {
	return make(chan time.Time)
}

func TestAllocationSweeper_Name(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tm.ctrl.Finish()

	assert.Equal(t, "allocation-sweeper", tm.sweeper.Name())
}

func TestAllocationSweeper_RunsCycleThenStops(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tm.ctrl.Finish()

	cycleDone := make(chan struct{})
	gomock.InOrder(
		tm.maintainer.EXPECT().ExpireLeases(gomock.Any()).Return(int64(4), nil),
		tm.maintainer.EXPECT().CleanupExpiredAllocations(gomock.Any(), 30).
			DoAndReturn(func(context.Context, int) (*store.CleanupResult, error) {
				close(cycleDone)
				return &store.CleanupResult{ExpiredCount: 2, HistoryCount: 6}, nil
			}),
	)
	tm.clock.EXPECT().After(time.Hour).DoAndReturn(neverFires).AnyTimes()

	errCh := make(chan error, 1)
	go func() {
		errCh <- tm.sweeper.Start(context.Background())
	}()

	select {
	case <-cycleDone:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep cycle did not run")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tm.sweeper.Stop(stopCtx))
	require.NoError(t, <-errCh)
}

func TestAllocationSweeper_RetriesFailedStep(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tm.ctrl.Finish()

	cycleDone := make(chan struct{})
	gomock.InOrder(
		tm.maintainer.EXPECT().ExpireLeases(gomock.Any()).Return(int64(0), errors.New("connection reset")),
		tm.maintainer.EXPECT().ExpireLeases(gomock.Any()).Return(int64(1), nil),
		tm.maintainer.EXPECT().CleanupExpiredAllocations(gomock.Any(), 30).
			DoAndReturn(func(context.Context, int) (*store.CleanupResult, error) {
				close(cycleDone)
				return &store.CleanupResult{}, nil
			}),
	)
	tm.clock.EXPECT().After(gomock.Any()).DoAndReturn(neverFires).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- tm.sweeper.Start(ctx)
	}()

	select {
	case <-cycleDone:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep cycle did not complete")
	}

	cancel()
	require.NoError(t, <-errCh)
}

func TestAllocationSweeper_GivesUpAfterMaxRetries(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tm.ctrl.Finish()

	parked := make(chan struct{})
	// first attempt plus two retries, then cleanup is skipped for this cycle
	tm.maintainer.EXPECT().ExpireLeases(gomock.Any()).Return(int64(0), errors.New("connection reset")).Times(3)
	tm.clock.EXPECT().After(time.Hour).DoAndReturn(func(time.Duration) <-chan time.Time {
		close(parked)
		return make(chan time.Time)
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- tm.sweeper.Start(ctx)
	}()

	select {
	case <-parked:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not wait for the next cycle")
	}

	cancel()
	require.NoError(t, <-errCh)
}

func TestAllocationSweeper_StopWhenNotRunning(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tm.ctrl.Finish()

	assert.NoError(t, tm.sweeper.Stop(context.Background()))
}

func TestAllocationSweeper_RestartAfterStop(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tm.ctrl.Finish()

	cycles := make(chan struct{}, 2)
	tm.maintainer.EXPECT().ExpireLeases(gomock.Any()).Return(int64(0), nil).Times(2)
	tm.maintainer.EXPECT().CleanupExpiredAllocations(gomock.Any(), 30).
		DoAndReturn(func(context.Context, int) (*store.CleanupResult, error) {
			cycles <- struct{}{}
			return &store.CleanupResult{}, nil
		}).Times(2)
	tm.clock.EXPECT().After(time.Hour).DoAndReturn(neverFires).AnyTimes()

	for run := 1; run <= 2; run++ {
		errCh := make(chan error, 1)
		go func() {
			errCh <- tm.sweeper.Start(context.Background())
		}()

		select {
		case <-cycles:
		case <-time.After(5 * time.Second):
			t.Fatalf("sweep cycle of run %d did not run", run)
		}

		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		require.NoError(t, tm.sweeper.Stop(stopCtx))
		cancel()
		require.NoError(t, <-errCh)
	}

	// stopping an idle sweeper twice is harmless
	assert.NoError(t, tm.sweeper.Stop(context.Background()))
}

func TestAllocationSweeper_SecondStartWhileRunning(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tm.ctrl.Finish()

	cycleDone := make(chan struct{})
	tm.maintainer.EXPECT().ExpireLeases(gomock.Any()).Return(int64(0), nil)
	tm.maintainer.EXPECT().CleanupExpiredAllocations(gomock.Any(), 30).
		DoAndReturn(func(context.Context, int) (*store.CleanupResult, error) {
			close(cycleDone)
			return &store.CleanupResult{}, nil
		})
	tm.clock.EXPECT().After(time.Hour).DoAndReturn(neverFires).AnyTimes()

	errCh := make(chan error, 1)
	go func() {
		errCh <- tm.sweeper.Start(context.Background())
	}()
	<-cycleDone

	assert.ErrorContains(t, tm.sweeper.Start(context.Background()), "already running")

	require.NoError(t, tm.sweeper.Stop(context.Background()))
	require.NoError(t, <-errCh)
}
