package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/ispcore/ipam/internal/adapter"
	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/store"
)

const (
	DEFAULT_SWEEP_INTERVAL = time.Hour // Time to sleep between sweep cycles
)

// LeaseMaintainer is the part of the allocation engine the sweeper drives.
// ipam.Engine satisfies it.
//
//go:generate mockgen -source=allocation.go -destination=../mocks/lease_maintainer.go -package=mocks -mock_names=LeaseMaintainer=MockLeaseMaintainer
type LeaseMaintainer interface {
	ExpireLeases(ctx context.Context) (int64, error)
	CleanupExpiredAllocations(ctx context.Context, retentionDays int) (*store.CleanupResult, error)
}

// AllocationSweeperConfig holds configuration for the allocation sweeper
type AllocationSweeperConfig struct {
	Interval      time.Duration // Time between cycles
	RetentionDays int           // Keep expired rows and history this long
	MaxRetries    uint64        // Retries per step before the cycle gives up
}

// allocationSweeper expires ended leases and purges old expired allocations
type allocationSweeper struct {
	config     *AllocationSweeperConfig
	maintainer LeaseMaintainer
	clock      adapter.Clock
	retryDelay time.Duration

	// per-run channels, nil while idle
	mu        sync.Mutex
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewAllocationSweeper creates a new allocation sweeper
func NewAllocationSweeper(config *AllocationSweeperConfig, maintainer LeaseMaintainer, clock adapter.Clock) Sweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_SWEEP_INTERVAL
	}
	return &allocationSweeper{
		config:     config,
		maintainer: maintainer,
		clock:      clock,
		retryDelay: 5 * time.Second,
	}
}

// Name returns the sweeper's name
func (s *allocationSweeper) Name() string {
	return "allocation-sweeper"
}

// Start runs a cycle immediately, then one per interval until stopped.
// A stopped sweeper may be started again.
func (s *allocationSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.stopChan != nil {
		s.mu.Unlock()
		return fmt.Errorf("sweeper already running")
	}
	stopChan, stoppedCh := make(chan struct{}), make(chan struct{})
	s.stopChan, s.stoppedCh = stopChan, stoppedCh
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.stopChan, s.stoppedCh = nil, nil
		s.mu.Unlock()
		close(stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting allocation sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("retention_days", s.config.RetentionDays),
	)

	for {
		if err := s.runSweepCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Allocation sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-stopChan:
			logger.InfoCtx(ctx, "Allocation sweeper stop requested")
			return nil
		case <-s.clock.After(s.config.Interval):
		}
	}
}

// Stop signals the loop and waits for the running cycle to finish
func (s *allocationSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	stopChan, stoppedCh := s.stopChan, s.stoppedCh
	if stopChan != nil {
		select {
		case <-stopChan:
		default:
			close(stopChan)
		}
	}
	s.mu.Unlock()

	if stopChan == nil {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping allocation sweeper")
	select {
	case <-stoppedCh:
		logger.InfoCtx(ctx, "Allocation sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Allocation sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle expires leases first so this cycle's cleanup can already see them
func (s *allocationSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	var expired int64
	err := s.retry(ctx, "expire leases", func() error {
		var err error
		expired, err = s.maintainer.ExpireLeases(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to expire leases: %w", err)
	}

	var result *store.CleanupResult
	err = s.retry(ctx, "cleanup expired allocations", func() error {
		var err error
		result, err = s.maintainer.CleanupExpiredAllocations(ctx, s.config.RetentionDays)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to cleanup expired allocations: %w", err)
	}

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int64("expired", expired),
		zap.Int64("purged_allocations", result.ExpiredCount),
		zap.Int64("purged_history", result.HistoryCount),
	)
	return nil
}

func (s *allocationSweeper) retry(ctx context.Context, step string, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.retryDelay
	b.MaxInterval = 2 * time.Minute
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	policy := backoff.WithContext(backoff.WithMaxRetries(b, s.config.MaxRetries), ctx)

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Sweep step failed, retrying",
			zap.String("step", step),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, policy, notifyOnError); err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount+1, err)
	}
	return nil
}
