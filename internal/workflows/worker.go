package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/ispcore/ipam/internal/coordination"
	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/store"
)

// MigrationWorker runs pool migrations
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_migration.go -package=mocks -mock_names=MigrationWorker=MockMigrationWorker
type MigrationWorker interface {
	// MigratePoolForProfile re-homes every subscriber of a profile from one pool to another
	MigratePoolForProfile(ctx workflow.Context, req MigrationRequest) (*MigrationSummary, error)
}

// MigrationWorkerConfig tunes the migration workflow
type MigrationWorkerConfig struct {
	// BatchSize is the number of subscribers per ReassignBatch activity
	BatchSize int
}

type migrationWorker struct {
	config   MigrationWorkerConfig
	executor Executor
}

// NewMigrationWorker creates a new migration worker
func NewMigrationWorker(executor Executor, config MigrationWorkerConfig) MigrationWorker {
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	return &migrationWorker{
		config:   config,
		executor: executor,
	}
}

// MigratePoolForProfile snapshots current assignments, then moves subscribers batch by batch.
// Progress is written after every batch. The run stops early when an operator cancels it.
func (w *migrationWorker) MigratePoolForProfile(ctx workflow.Context, req MigrationRequest) (*MigrationSummary, error) {
	logger.InfoWf(ctx, "Starting pool migration",
		zap.String("runID", req.RunID),
		zap.Uint64("oldPoolID", req.OldPoolID),
		zap.Uint64("newPoolID", req.NewPoolID),
		zap.Uint64("profileID", req.ProfileID),
	)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    3,
		},
	})

	summary := &MigrationSummary{
		RunID:           req.RunID,
		FailedUsernames: []string{},
	}

	// Step 1: flip the run to running unless it was cancelled while queued
	var started bool
	if err := workflow.ExecuteActivity(ctx, w.executor.MarkMigrationRunning, req.RunID).Get(ctx, &started); err != nil {
		return w.fail(ctx, req, summary, fmt.Errorf("failed to mark migration running: %w", err))
	}
	if !started {
		return w.finish(ctx, req, summary, domain.MigrationStatusCancelled)
	}

	// Step 2: who has to move
	var candidates []store.MigrationCandidate
	if err := workflow.ExecuteActivity(ctx, w.executor.ListMigrationCandidates, req.OldPoolID, req.ProfileID).Get(ctx, &candidates); err != nil {
		return w.fail(ctx, req, summary, fmt.Errorf("failed to list migration candidates: %w", err))
	}
	summary.Total = len(candidates)

	// Step 3: backup before any mutation
	if err := workflow.ExecuteActivity(ctx, w.executor.SnapshotAssignments, req.RunID, candidates).Get(ctx, nil); err != nil {
		return w.fail(ctx, req, summary, fmt.Errorf("failed to snapshot assignments: %w", err))
	}

	if err := w.recordProgress(ctx, summary); err != nil {
		return w.fail(ctx, req, summary, err)
	}

	// Step 4: batches. A batch is never retried as a whole; per-subscriber failures are counted instead.
	batchCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		HeartbeatTimeout:    2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	for start := 0; start < len(candidates); start += w.config.BatchSize {
		end := min(start+w.config.BatchSize, len(candidates))

		var result BatchResult
		err := workflow.ExecuteActivity(batchCtx, w.executor.ReassignBatch, ReassignBatchInput{
			RunID:      req.RunID,
			NewPoolID:  req.NewPoolID,
			Candidates: candidates[start:end],
		}).Get(ctx, &result)
		if err != nil {
			return w.fail(ctx, req, summary, fmt.Errorf("failed to reassign batch %d-%d: %w", start, end, err))
		}

		summary.Processed += result.Processed
		summary.Succeeded += result.Succeeded
		summary.Failed += result.Failed
		summary.FailedUsernames = append(summary.FailedUsernames, result.FailedUsernames...)

		if err := w.recordProgress(ctx, summary); err != nil {
			return w.fail(ctx, req, summary, err)
		}

		if result.Cancelled {
			logger.InfoWf(ctx, "Migration cancelled", zap.String("runID", req.RunID), zap.Int("processed", summary.Processed))
			return w.finish(ctx, req, summary, domain.MigrationStatusCancelled)
		}
	}

	return w.finish(ctx, req, summary, domain.MigrationStatusCompleted)
}

func (w *migrationWorker) recordProgress(ctx workflow.Context, summary *MigrationSummary) error {
	progress := coordination.Progress{
		Processed:       summary.Processed,
		Total:           summary.Total,
		Failed:          summary.Failed,
		FailedUsernames: summary.FailedUsernames,
		Percentage:      summary.Percentage(),
	}
	if err := workflow.ExecuteActivity(ctx, w.executor.RecordMigrationProgress, summary.RunID, progress).Get(ctx, nil); err != nil {
		return fmt.Errorf("failed to record progress: %w", err)
	}
	return nil
}

func (w *migrationWorker) finish(ctx workflow.Context, req MigrationRequest, summary *MigrationSummary, status domain.MigrationStatus) (*MigrationSummary, error) {
	var final domain.MigrationStatus
	err := workflow.ExecuteActivity(ctx, w.executor.FinishMigrationRun, FinishInput{
		Request: req,
		Status:  status,
		Summary: summary,
	}).Get(ctx, &final)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to finish migration run"), zap.Error(err), zap.String("runID", req.RunID))
		return nil, err
	}

	summary.Status = final
	logger.InfoWf(ctx, "Pool migration finished",
		zap.String("runID", req.RunID),
		zap.String("status", string(final)),
		zap.Int("total", summary.Total),
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// fail records the failed status and returns the original error to Temporal
func (w *migrationWorker) fail(ctx workflow.Context, req MigrationRequest, summary *MigrationSummary, cause error) (*MigrationSummary, error) {
	logger.ErrorWf(ctx, cause, zap.String("runID", req.RunID))

	err := workflow.ExecuteActivity(ctx, w.executor.FinishMigrationRun, FinishInput{
		Request: req,
		Status:  domain.MigrationStatusFailed,
		Summary: summary,
		Error:   cause.Error(),
	}).Get(ctx, nil)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to record migration failure"), zap.Error(err), zap.String("runID", req.RunID))
	}

	return nil, cause
}
