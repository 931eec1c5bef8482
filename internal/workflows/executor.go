package workflows

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/ispcore/ipam/internal/adapter"
	"github.com/ispcore/ipam/internal/coordination"
	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/messaging"
	"github.com/ispcore/ipam/internal/store"
)

// Executor defines the activities of the migration worker
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_migration.go -package=mocks -mock_names=Executor=MockMigrationExecutor
type Executor interface {
	// MarkMigrationRunning moves a run to running; false when it was cancelled before the worker started
	MarkMigrationRunning(ctx context.Context, runID string) (bool, error)

	// ListMigrationCandidates lists the profile's subscribers holding an address in the old pool
	ListMigrationCandidates(ctx context.Context, oldPoolID uint64, profileID uint64) ([]store.MigrationCandidate, error)

	// SnapshotAssignments records username -> address for every candidate before anything moves.
	// Entries already in the backup are kept so a retried workflow never overwrites the original address.
	SnapshotAssignments(ctx context.Context, runID string, candidates []store.MigrationCandidate) (int, error)

	// ReassignBatch re-homes a batch of subscribers into the new pool, checking for cancellation per subscriber
	ReassignBatch(ctx context.Context, input ReassignBatchInput) (*BatchResult, error)

	// RecordMigrationProgress writes the progress counters
	RecordMigrationProgress(ctx context.Context, runID string, progress coordination.Progress) error

	// FinishMigrationRun writes the final status and returns it; a cancellation recorded meanwhile wins
	FinishMigrationRun(ctx context.Context, input FinishInput) (domain.MigrationStatus, error)
}

// ExecutorConfig sizes the per-batch worker pool
type ExecutorConfig struct {
	Concurrency int
}

type executor struct {
	store            store.Store
	coordination     coordination.Store
	publisher        messaging.Publisher
	json             adapter.JSON
	clock            adapter.Clock
	temporalActivity adapter.Activity
	config           ExecutorConfig
}

// NewExecutor creates a new migration executor
func NewExecutor(
	store store.Store,
	coordinationStore coordination.Store,
	publisher messaging.Publisher,
	jsonAdapter adapter.JSON,
	clock adapter.Clock,
	temporalActivity adapter.Activity,
	config ExecutorConfig,
) Executor {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &executor{
		store:            store,
		coordination:     coordinationStore,
		publisher:        publisher,
		json:             jsonAdapter,
		clock:            clock,
		temporalActivity: temporalActivity,
		config:           config,
	}
}

func (e *executor) MarkMigrationRunning(ctx context.Context, runID string) (bool, error) {
	// the index transition is the claim; a cancel that got there first wins
	claimed, err := e.store.TransitionMigrationRunStatus(ctx, runID,
		[]domain.MigrationStatus{domain.MigrationStatusInitializing}, domain.MigrationStatusRunning, nil)
	if err != nil {
		return false, fmt.Errorf("failed to update run index: %w", err)
	}
	if !claimed {
		run, err := e.store.GetMigrationRun(ctx, runID)
		if err != nil {
			return false, err
		}
		if run == nil {
			return false, fmt.Errorf("%w: %s", domain.ErrMigrationNotFound, runID)
		}
		// running means an earlier attempt of this activity made the claim
		if run.Status != domain.MigrationStatusRunning {
			logger.InfoCtx(ctx, "Migration cancelled before start",
				zap.String("runID", runID),
				zap.String("status", string(run.Status)))
			return false, nil
		}
	}

	now := e.clock.Now()
	written, err := e.coordination.TransitionStatus(ctx, runID,
		[]domain.MigrationStatus{domain.MigrationStatusInitializing, domain.MigrationStatusRunning},
		coordination.StatusRecord{
			Status:    domain.MigrationStatusRunning,
			StartedAt: &now,
		})
	if err != nil {
		return false, err
	}
	if !written {
		logger.InfoCtx(ctx, "Migration cancelled while starting", zap.String("runID", runID))
		return false, nil
	}

	return true, nil
}

func (e *executor) ListMigrationCandidates(ctx context.Context, oldPoolID uint64, profileID uint64) ([]store.MigrationCandidate, error) {
	candidates, err := e.store.ListMigrationCandidates(ctx, oldPoolID, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list migration candidates: %w", err)
	}
	return candidates, nil
}

func (e *executor) SnapshotAssignments(ctx context.Context, runID string, candidates []store.MigrationCandidate) (int, error) {
	backup, err := e.coordination.GetBackup(ctx, runID)
	if err != nil {
		return 0, err
	}
	if backup == nil {
		backup = coordination.Backup{}
	}

	for _, c := range candidates {
		if _, ok := backup[c.Username]; ok {
			continue
		}
		backup[c.Username] = c.IPAddress
	}

	if err := e.coordination.SetBackup(ctx, runID, backup); err != nil {
		return 0, err
	}

	logger.InfoCtx(ctx, "Snapshot of current assignments written",
		zap.String("runID", runID),
		zap.Int("entries", len(backup)))

	return len(backup), nil
}

func (e *executor) ReassignBatch(ctx context.Context, input ReassignBatchInput) (*BatchResult, error) {
	var (
		mu        sync.Mutex
		result    = &BatchResult{FailedUsernames: []string{}}
		cancelErr error
	)

	pool := pond.NewPool(e.config.Concurrency, pond.WithContext(ctx))
	for _, candidate := range input.Candidates {
		pool.Submit(func() {
			cancelled, err := e.isCancelled(ctx, input.RunID)
			if err != nil {
				mu.Lock()
				cancelErr = err
				mu.Unlock()
				return
			}
			if cancelled {
				mu.Lock()
				result.Cancelled = true
				mu.Unlock()
				return
			}

			_, err = e.store.ReassignSubscriber(ctx, store.ReassignSubscriberInput{
				Username:         candidate.Username,
				FromAllocationID: candidate.AllocationID,
				ToPoolID:         input.NewPoolID,
			})

			mu.Lock()
			defer mu.Unlock()
			result.Processed++
			if err != nil {
				// a retried batch finds its earlier successes already released
				if errors.Is(err, domain.ErrAlreadyReleased) {
					result.Succeeded++
					return
				}
				logger.WarnCtx(ctx, "Failed to reassign subscriber",
					zap.String("runID", input.RunID),
					zap.String("username", candidate.Username),
					zap.Error(err))
				result.Failed++
				result.FailedUsernames = append(result.FailedUsernames, candidate.Username)
				return
			}
			result.Succeeded++
			e.temporalActivity.RecordHeartbeat(ctx, result.Processed)
		})
	}
	pool.StopAndWait()

	if cancelErr != nil {
		return nil, fmt.Errorf("failed to check cancellation: %w", cancelErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Strings(result.FailedUsernames)
	return result, nil
}

func (e *executor) RecordMigrationProgress(ctx context.Context, runID string, progress coordination.Progress) error {
	return e.coordination.SetProgress(ctx, runID, progress)
}

func (e *executor) FinishMigrationRun(ctx context.Context, input FinishInput) (domain.MigrationStatus, error) {
	runID := input.Request.RunID

	// a pending cancellation wins over whatever the worker reached
	status := domain.MigrationStatusCancelled
	finished, err := e.transitionRun(ctx, runID, []domain.MigrationStatus{domain.MigrationStatusCancelling}, status, input.Summary)
	if err != nil {
		return "", err
	}
	if !finished {
		status = input.Status
		finished, err = e.transitionRun(ctx, runID, []domain.MigrationStatus{
			domain.MigrationStatusInitializing,
			domain.MigrationStatusRunning,
		}, status, input.Summary)
		if err != nil {
			return "", err
		}
	}
	if !finished {
		// final already, e.g. rolled back or a retry of this activity; only the status key is repaired
		run, err := e.store.GetMigrationRun(ctx, runID)
		if err != nil {
			return "", err
		}
		if run == nil {
			return "", fmt.Errorf("%w: %s", domain.ErrMigrationNotFound, runID)
		}
		status = run.Status
	}

	now := e.clock.Now()
	written, err := e.coordination.TransitionStatus(ctx, runID, []domain.MigrationStatus{
		domain.MigrationStatusInitializing,
		domain.MigrationStatusRunning,
		domain.MigrationStatusCancelled,
	}, coordination.StatusRecord{
		Status:     status,
		FinishedAt: &now,
		Error:      input.Error,
	})
	if err != nil {
		return "", err
	}

	if !finished {
		logger.InfoCtx(ctx, "Migration run already finished",
			zap.String("runID", runID),
			zap.String("status", string(status)),
			zap.String("reported", string(input.Status)),
			zap.Bool("statusRepaired", written))
		return status, nil
	}

	payload := domain.MigrationEvent{
		RunID:     runID,
		OldPoolID: input.Request.OldPoolID,
		NewPoolID: input.Request.NewPoolID,
		ProfileID: input.Request.ProfileID,
		Status:    status,
	}
	if input.Summary != nil {
		payload.Processed = input.Summary.Processed
		payload.Failed = input.Summary.Failed
	}
	event := domain.NewMigrationEvent(domain.MigrationEventType(status), e.clock.Now(), payload)
	if err := e.publisher.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish migration event", zap.String("runID", runID), zap.Error(err))
	}

	logger.InfoCtx(ctx, "Migration run finished", zap.String("runID", runID), zap.String("status", string(status)))
	return status, nil
}

// transitionRun finalizes the run index when its status is one of from
func (e *executor) transitionRun(ctx context.Context, runID string, from []domain.MigrationStatus, status domain.MigrationStatus, summary *MigrationSummary) (bool, error) {
	var data datatypes.JSON
	if summary != nil {
		s := *summary
		s.Status = status
		raw, err := e.json.Marshal(s)
		if err != nil {
			return false, fmt.Errorf("failed to marshal summary: %w", err)
		}
		data = datatypes.JSON(raw)
	}

	ok, err := e.store.TransitionMigrationRunStatus(ctx, runID, from, status, data)
	if err != nil {
		return false, fmt.Errorf("failed to update run index: %w", err)
	}
	return ok, nil
}

// isCancelled reads the cancellation token. A missing status key is not a cancellation;
// any final status stops the worker as well.
func (e *executor) isCancelled(ctx context.Context, runID string) (bool, error) {
	st, err := e.coordination.GetStatus(ctx, runID)
	if err != nil {
		return false, err
	}
	return st != nil && st.Status.IsTerminal(), nil
}
