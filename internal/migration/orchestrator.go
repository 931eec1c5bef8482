package migration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/ispcore/ipam/internal/adapter"
	"github.com/ispcore/ipam/internal/coordination"
	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/messaging"
	"github.com/ispcore/ipam/internal/providers/temporal"
	"github.com/ispcore/ipam/internal/store"
	"github.com/ispcore/ipam/internal/store/schema"
	"github.com/ispcore/ipam/internal/workflows"
)

// DefaultHistoryLimit bounds GetMigrationHistory when no limit is given
const DefaultHistoryLimit = 50

// PoolSummary identifies a pool in a validation result
type PoolSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Range string `json:"range"`
}

// ValidationResult is the outcome of ValidateMigration
type ValidationResult struct {
	Valid         bool         `json:"valid"`
	Message       string       `json:"message"`
	CustomerCount int64        `json:"customer_count"`
	AvailableIPs  int64        `json:"available_ips"`
	OldPool       *PoolSummary `json:"old_pool,omitempty"`
	NewPool       *PoolSummary `json:"new_pool,omitempty"`
}

// RollbackResult is the outcome of Rollback
type RollbackResult struct {
	Restored        int      `json:"restored"`
	Failed          int      `json:"failed"`
	FailedUsernames []string `json:"failed_usernames"`
}

// HistoryEntry joins the durable run index with whatever coordination data has not expired yet
type HistoryEntry struct {
	RunID      string                       `json:"run_id"`
	OldPoolID  uint64                       `json:"old_pool_id"`
	NewPoolID  uint64                       `json:"new_pool_id"`
	ProfileID  uint64                       `json:"profile_id"`
	RunStatus  domain.MigrationStatus       `json:"run_status"`
	StartedAt  time.Time                    `json:"started_at"`
	FinishedAt *time.Time                   `json:"finished_at,omitempty"`
	WorkflowID *string                      `json:"workflow_id,omitempty"`
	Summary    *workflows.MigrationSummary  `json:"summary,omitempty"`
	Metadata   *coordination.Metadata       `json:"metadata"`
	Status     *coordination.StatusRecord   `json:"status"`
	Progress   *coordination.Progress       `json:"progress"`
	Rollback   *coordination.RollbackRecord `json:"rollback,omitempty"`
}

// Config holds orchestrator settings
type Config struct {
	// TaskQueue is the Temporal task queue served by worker-migration
	TaskQueue string
	// WorkflowExecutionTimeout bounds a whole run
	WorkflowExecutionTimeout time.Duration
}

// Orchestrator validates, starts and supervises pool migrations
//
//go:generate mockgen -source=orchestrator.go -destination=../mocks/orchestrator.go -package=mocks -mock_names=Orchestrator=MockOrchestrator
type Orchestrator interface {
	// ValidateMigration checks capacity; it never fails, problems are reported in the result
	ValidateMigration(ctx context.Context, oldPoolID, newPoolID, profileID uint64) *ValidationResult
	// StartMigration seeds the run and hands it to the migration worker without waiting
	StartMigration(ctx context.Context, oldPoolID, newPoolID, profileID uint64) (string, error)
	// GetProgress returns nil when the progress key is absent
	GetProgress(ctx context.Context, runID string) (*coordination.Progress, error)
	// GetStatus returns nil when the status key is absent
	GetStatus(ctx context.Context, runID string) (*coordination.StatusRecord, error)
	// GetMetadata returns nil when the metadata key is absent
	GetMetadata(ctx context.Context, runID string) (*coordination.Metadata, error)
	// CancelMigration marks the run cancelled; false when the run already stopped
	CancelMigration(ctx context.Context, runID string) (bool, error)
	// Rollback restores every backed-up address, best effort per subscriber
	Rollback(ctx context.Context, runID string) (*RollbackResult, error)
	// GetMigrationHistory lists the latest runs, newest first
	GetMigrationHistory(ctx context.Context, limit int) ([]HistoryEntry, error)
}

type orchestrator struct {
	store        store.Store
	coordination coordination.Store
	engine       ipam.Engine
	temporal     temporal.TemporalOrchestrator
	publisher    messaging.Publisher
	json         adapter.JSON
	clock        adapter.Clock
	config       Config
}

// NewOrchestrator creates a migration orchestrator
func NewOrchestrator(
	st store.Store,
	coordinationStore coordination.Store,
	engine ipam.Engine,
	temporalOrchestrator temporal.TemporalOrchestrator,
	publisher messaging.Publisher,
	jsonAdapter adapter.JSON,
	clock adapter.Clock,
	config Config,
) Orchestrator {
	if config.WorkflowExecutionTimeout <= 0 {
		config.WorkflowExecutionTimeout = 24 * time.Hour
	}
	return &orchestrator{
		store:        st,
		coordination: coordinationStore,
		engine:       engine,
		temporal:     temporalOrchestrator,
		publisher:    publisher,
		json:         jsonAdapter,
		clock:        clock,
		config:       config,
	}
}

func (o *orchestrator) ValidateMigration(ctx context.Context, oldPoolID, newPoolID, profileID uint64) *ValidationResult {
	result, err := o.validate(ctx, oldPoolID, newPoolID, profileID)
	if err != nil {
		logger.WarnCtx(ctx, "Migration validation failed",
			zap.Uint64("oldPoolID", oldPoolID),
			zap.Uint64("newPoolID", newPoolID),
			zap.Uint64("profileID", profileID),
			zap.Error(err))
		if result == nil {
			result = &ValidationResult{}
		}
		result.Valid = false
		result.Message = "Validation failed: " + err.Error()
	}
	return result
}

func (o *orchestrator) validate(ctx context.Context, oldPoolID, newPoolID, profileID uint64) (*ValidationResult, error) {
	result := &ValidationResult{}

	if oldPoolID == newPoolID {
		return result, errors.New("source and destination pools must differ")
	}

	oldPool, err := o.engine.GetPool(ctx, oldPoolID)
	if err != nil {
		return result, err
	}
	result.OldPool = summarizePool(oldPool)

	newPool, err := o.engine.GetPool(ctx, newPoolID)
	if err != nil {
		return result, err
	}
	result.NewPool = summarizePool(newPool)

	result.CustomerCount, err = o.store.CountSubscribersByProfile(ctx, profileID)
	if err != nil {
		return result, err
	}

	utilization, err := o.engine.GetPoolUtilization(ctx, newPoolID)
	if err != nil {
		return result, err
	}
	result.AvailableIPs = utilization.Available

	if result.AvailableIPs < result.CustomerCount {
		result.Message = fmt.Sprintf("Insufficient IP addresses. Need %d, available %d", result.CustomerCount, result.AvailableIPs)
		return result, nil
	}

	result.Valid = true
	result.Message = "Migration can proceed"
	return result, nil
}

func summarizePool(p *schema.IPPool) *PoolSummary {
	return &PoolSummary{
		ID:    p.ID,
		Name:  p.Name,
		Range: p.StartIP + " - " + p.EndIP,
	}
}

func (o *orchestrator) StartMigration(ctx context.Context, oldPoolID, newPoolID, profileID uint64) (string, error) {
	runID := uuid.NewString()
	now := o.clock.Now()

	// the run index insert is the cross-run lock, so it goes first
	err := o.store.CreateMigrationRun(ctx, store.CreateMigrationRunInput{
		RunID:     runID,
		OldPoolID: oldPoolID,
		NewPoolID: newPoolID,
		ProfileID: profileID,
		StartedAt: now,
	})
	if err != nil {
		return "", err
	}

	if err := o.seed(ctx, runID, oldPoolID, newPoolID, profileID, now); err != nil {
		o.abortStart(ctx, runID, err)
		return "", err
	}

	worker := workflows.NewMigrationWorker(nil, workflows.MigrationWorkerConfig{})
	options := client.StartWorkflowOptions{
		ID:                       WorkflowID(runID),
		TaskQueue:                o.config.TaskQueue,
		WorkflowExecutionTimeout: o.config.WorkflowExecutionTimeout,
		WorkflowIDReusePolicy:    enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	wfRun, err := o.temporal.ExecuteWorkflow(ctx, options, worker.MigratePoolForProfile, workflows.MigrationRequest{
		RunID:     runID,
		OldPoolID: oldPoolID,
		NewPoolID: newPoolID,
		ProfileID: profileID,
	})
	if err != nil {
		err = domain.NewInfrastructureError("start migration workflow", err)
		o.abortStart(ctx, runID, err)
		return "", err
	}

	if wfRun != nil {
		if err := o.store.SetMigrationRunWorkflow(ctx, runID, wfRun.GetID(), wfRun.GetRunID()); err != nil {
			logger.WarnCtx(ctx, "Failed to record migration workflow", zap.String("runID", runID), zap.Error(err))
		}
	}

	o.publish(ctx, domain.EventMigrationStarted, runID, oldPoolID, newPoolID, profileID, domain.MigrationStatusInitializing)

	logger.InfoCtx(ctx, "Migration started",
		zap.String("runID", runID),
		zap.Uint64("oldPoolID", oldPoolID),
		zap.Uint64("newPoolID", newPoolID),
		zap.Uint64("profileID", profileID))

	return runID, nil
}

// WorkflowID is the Temporal workflow id of a run
func WorkflowID(runID string) string {
	return "ip-migration-" + runID
}

func (o *orchestrator) seed(ctx context.Context, runID string, oldPoolID, newPoolID, profileID uint64, now time.Time) error {
	if err := o.coordination.SetProgress(ctx, runID, coordination.Progress{}); err != nil {
		return err
	}
	if err := o.coordination.SetStatus(ctx, runID, coordination.StatusRecord{
		Status:    domain.MigrationStatusInitializing,
		StartedAt: &now,
	}); err != nil {
		return err
	}
	return o.coordination.SetMetadata(ctx, runID, coordination.Metadata{
		RunID:     runID,
		OldPoolID: oldPoolID,
		NewPoolID: newPoolID,
		ProfileID: profileID,
		StartedAt: now,
	})
}

// abortStart releases the cross-run lock of a run that never reached the worker
func (o *orchestrator) abortStart(ctx context.Context, runID string, cause error) {
	logger.ErrorCtx(ctx, cause, zap.String("runID", runID))
	_, err := o.store.TransitionMigrationRunStatus(ctx, runID,
		[]domain.MigrationStatus{domain.MigrationStatusInitializing}, domain.MigrationStatusFailed, nil)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("runID", runID))
	}
}

func (o *orchestrator) GetProgress(ctx context.Context, runID string) (*coordination.Progress, error) {
	return o.coordination.GetProgress(ctx, runID)
}

func (o *orchestrator) GetStatus(ctx context.Context, runID string) (*coordination.StatusRecord, error) {
	return o.coordination.GetStatus(ctx, runID)
}

func (o *orchestrator) GetMetadata(ctx context.Context, runID string) (*coordination.Metadata, error) {
	return o.coordination.GetMetadata(ctx, runID)
}

func (o *orchestrator) CancelMigration(ctx context.Context, runID string) (bool, error) {
	run, err := o.store.GetMigrationRun(ctx, runID)
	if err != nil {
		return false, err
	}
	if run == nil {
		return false, fmt.Errorf("%w: %s", domain.ErrMigrationNotFound, runID)
	}
	if run.Status == domain.MigrationStatusCancelling {
		return true, nil
	}
	if run.Status.IsTerminal() {
		logger.InfoCtx(ctx, "Migration already stopped", zap.String("runID", runID), zap.String("status", string(run.Status)))
		return false, nil
	}

	// the run keeps its lock as cancelling until the worker acknowledges
	ok, err := o.store.TransitionMigrationRunStatus(ctx, runID, []domain.MigrationStatus{
		domain.MigrationStatusInitializing,
		domain.MigrationStatusRunning,
	}, domain.MigrationStatusCancelling, nil)
	if err != nil {
		return false, err
	}
	if !ok {
		logger.InfoCtx(ctx, "Migration stopped before it could be cancelled", zap.String("runID", runID))
		return false, nil
	}

	now := o.clock.Now()
	written, err := o.coordination.TransitionStatus(ctx, runID, []domain.MigrationStatus{
		domain.MigrationStatusInitializing,
		domain.MigrationStatusRunning,
	}, coordination.StatusRecord{
		Status:      domain.MigrationStatusCancelled,
		CancelledAt: &now,
	})
	if err != nil {
		return false, err
	}
	if !written {
		logger.WarnCtx(ctx, "Migration status key already final; the worker settles the run index", zap.String("runID", runID))
	}

	o.publish(ctx, domain.EventMigrationCancelled, runID, run.OldPoolID, run.NewPoolID, run.ProfileID, domain.MigrationStatusCancelled)

	logger.InfoCtx(ctx, "Migration cancellation requested", zap.String("runID", runID))
	return true, nil
}

func (o *orchestrator) Rollback(ctx context.Context, runID string) (*RollbackResult, error) {
	backup, err := o.coordination.GetBackup(ctx, runID)
	if err != nil {
		return nil, err
	}
	if backup == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBackupNotFound, runID)
	}

	run, err := o.store.GetMigrationRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if err := o.ensureStopped(ctx, runID, run); err != nil {
		return nil, err
	}

	usernames := make([]string, 0, len(backup))
	for username := range backup {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	result := &RollbackResult{FailedUsernames: []string{}}
	for _, username := range usernames {
		if err := o.store.RestoreSubscriberAddress(ctx, username, backup[username]); err != nil {
			logger.WarnCtx(ctx, "Failed to restore subscriber address",
				zap.String("runID", runID),
				zap.String("username", username),
				zap.String("address", backup[username]),
				zap.Error(err))
			result.Failed++
			result.FailedUsernames = append(result.FailedUsernames, username)
			continue
		}
		result.Restored++
	}

	now := o.clock.Now()
	if err := o.coordination.SetRollback(ctx, runID, coordination.RollbackRecord{
		Status:          domain.MigrationStatusRollbackComplete,
		Restored:        result.Restored,
		Failed:          result.Failed,
		FailedUsernames: result.FailedUsernames,
		RolledBackAt:    now,
	}); err != nil {
		return nil, err
	}
	if err := o.coordination.SetStatus(ctx, runID, coordination.StatusRecord{
		Status:     domain.MigrationStatusRollbackComplete,
		FinishedAt: &now,
		Restored:   &result.Restored,
		Failed:     &result.Failed,
	}); err != nil {
		return nil, err
	}

	if run != nil {
		_, err := o.store.TransitionMigrationRunStatus(ctx, runID, []domain.MigrationStatus{
			domain.MigrationStatusCompleted,
			domain.MigrationStatusCancelled,
			domain.MigrationStatusFailed,
			domain.MigrationStatusRollbackComplete,
		}, domain.MigrationStatusRollbackComplete, nil)
		if err != nil && !errors.Is(err, domain.ErrMigrationNotFound) {
			return nil, err
		}
		o.publish(ctx, domain.EventMigrationRolledBack, runID, run.OldPoolID, run.NewPoolID, run.ProfileID, domain.MigrationStatusRollbackComplete)
	}

	logger.InfoCtx(ctx, "Migration rolled back",
		zap.String("runID", runID),
		zap.Int("restored", result.Restored),
		zap.Int("failed", result.Failed))

	return result, nil
}

// ensureStopped refuses a rollback while the worker may still be moving subscribers.
// The run index is authoritative; the status key only decides for runs the index never saw.
func (o *orchestrator) ensureStopped(ctx context.Context, runID string, run *schema.MigrationRun) error {
	if run != nil {
		if run.Status.IsActive() {
			return fmt.Errorf("%w: run %s is %s", domain.ErrMigrationConflict, runID, run.Status)
		}
		return nil
	}

	status, err := o.coordination.GetStatus(ctx, runID)
	if err != nil {
		return err
	}
	if status != nil && status.Status.IsActive() {
		return fmt.Errorf("%w: run %s is %s", domain.ErrMigrationConflict, runID, status.Status)
	}
	return nil
}

func (o *orchestrator) GetMigrationHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	runs, err := o.store.ListMigrationRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(runs))
	for _, run := range runs {
		entry := HistoryEntry{
			RunID:      run.RunID,
			OldPoolID:  run.OldPoolID,
			NewPoolID:  run.NewPoolID,
			ProfileID:  run.ProfileID,
			RunStatus:  run.Status,
			StartedAt:  run.StartedAt,
			FinishedAt: run.FinishedAt,
			WorkflowID: run.WorkflowID,
		}

		if len(run.Summary) > 0 {
			var summary workflows.MigrationSummary
			if err := o.json.Unmarshal(run.Summary, &summary); err != nil {
				logger.WarnCtx(ctx, "Invalid migration summary", zap.String("runID", run.RunID), zap.Error(err))
			} else {
				entry.Summary = &summary
			}
		}

		// coordination keys expire independently; a missing or unreadable key leaves its field nil
		if entry.Metadata, err = o.coordination.GetMetadata(ctx, run.RunID); err != nil {
			logger.WarnCtx(ctx, "Failed to read migration metadata", zap.String("runID", run.RunID), zap.Error(err))
		}
		if entry.Status, err = o.coordination.GetStatus(ctx, run.RunID); err != nil {
			logger.WarnCtx(ctx, "Failed to read migration status", zap.String("runID", run.RunID), zap.Error(err))
		}
		if entry.Progress, err = o.coordination.GetProgress(ctx, run.RunID); err != nil {
			logger.WarnCtx(ctx, "Failed to read migration progress", zap.String("runID", run.RunID), zap.Error(err))
		}
		if entry.Rollback, err = o.coordination.GetRollback(ctx, run.RunID); err != nil {
			logger.WarnCtx(ctx, "Failed to read migration rollback", zap.String("runID", run.RunID), zap.Error(err))
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func (o *orchestrator) publish(ctx context.Context, eventType domain.EventType, runID string, oldPoolID, newPoolID, profileID uint64, status domain.MigrationStatus) {
	event := domain.NewMigrationEvent(eventType, o.clock.Now(), domain.MigrationEvent{
		RunID:     runID,
		OldPoolID: oldPoolID,
		NewPoolID: newPoolID,
		ProfileID: profileID,
		Status:    status,
	})
	if err := o.publisher.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish migration event", zap.String("runID", runID), zap.Error(err))
	}
}
