package migration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	temporalmocks "go.temporal.io/sdk/mocks"
	"gorm.io/datatypes"

	"github.com/ispcore/ipam/internal/adapter"
	"github.com/ispcore/ipam/internal/coordination"
	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/migration"
	"github.com/ispcore/ipam/internal/mocks"
	"github.com/ispcore/ipam/internal/store"
	"github.com/ispcore/ipam/internal/store/schema"
)

type fixture struct {
	store        *mocks.MockStore
	engine       *mocks.MockEngine
	temporal     *mocks.MockTemporalOrchestrator
	publisher    *mocks.MockPublisher
	clock        *mocks.MockClock
	mr           *miniredis.Miniredis
	coordination coordination.Store
	orchestrator migration.Orchestrator
	now          time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	mr := miniredis.RunT(t)
	client := adapter.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{
		store:        mocks.NewMockStore(ctrl),
		engine:       mocks.NewMockEngine(ctrl),
		temporal:     mocks.NewMockTemporalOrchestrator(ctrl),
		publisher:    mocks.NewMockPublisher(ctrl),
		clock:        mocks.NewMockClock(ctrl),
		mr:           mr,
		coordination: coordination.NewRedisStore(client, adapter.NewJSON()),
		now:          time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
	}
	f.clock.EXPECT().Now().Return(f.now).AnyTimes()

	f.orchestrator = migration.NewOrchestrator(
		f.store,
		f.coordination,
		f.engine,
		f.temporal,
		f.publisher,
		adapter.NewJSON(),
		f.clock,
		migration.Config{TaskQueue: "ipam-migration"},
	)
	return f
}

func pool(id uint64, name, start, end string) *schema.IPPool {
	return &schema.IPPool{ID: id, Name: name, StartIP: start, EndIP: end}
}

func TestValidateMigration_Valid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.engine.EXPECT().GetPool(ctx, uint64(1)).Return(pool(1, "legacy", "10.0.0.1", "10.0.0.254"), nil)
	f.engine.EXPECT().GetPool(ctx, uint64(2)).Return(pool(2, "fresh", "10.1.0.1", "10.1.1.254"), nil)
	f.store.EXPECT().CountSubscribersByProfile(ctx, uint64(7)).Return(int64(50), nil)
	f.engine.EXPECT().GetPoolUtilization(ctx, uint64(2)).Return(&ipam.Utilization{PoolID: 2, Total: 508, Available: 500}, nil)

	result := f.orchestrator.ValidateMigration(ctx, 1, 2, 7)
	assert.True(t, result.Valid)
	assert.Equal(t, int64(50), result.CustomerCount)
	assert.Equal(t, int64(500), result.AvailableIPs)
	require.NotNil(t, result.OldPool)
	assert.Equal(t, "10.0.0.1 - 10.0.0.254", result.OldPool.Range)
	require.NotNil(t, result.NewPool)
	assert.Equal(t, "fresh", result.NewPool.Name)
}

func TestValidateMigration_InsufficientCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.engine.EXPECT().GetPool(ctx, uint64(1)).Return(pool(1, "legacy", "10.0.0.1", "10.0.0.254"), nil)
	f.engine.EXPECT().GetPool(ctx, uint64(2)).Return(pool(2, "small", "10.2.0.1", "10.2.0.62"), nil)
	f.store.EXPECT().CountSubscribersByProfile(ctx, uint64(7)).Return(int64(50), nil)
	f.engine.EXPECT().GetPoolUtilization(ctx, uint64(2)).Return(&ipam.Utilization{PoolID: 2, Total: 62, Allocated: 22, Available: 40}, nil)

	result := f.orchestrator.ValidateMigration(ctx, 1, 2, 7)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "Need 50, available 40")
	assert.Equal(t, int64(40), result.AvailableIPs)
}

func TestValidateMigration_SamePool(t *testing.T) {
	f := newFixture(t)

	result := f.orchestrator.ValidateMigration(context.Background(), 3, 3, 7)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "Validation failed")
}

func TestValidateMigration_UnknownPoolDoesNotError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.engine.EXPECT().GetPool(ctx, uint64(1)).Return(nil, domain.ErrPoolNotFound)

	result := f.orchestrator.ValidateMigration(ctx, 1, 2, 7)
	assert.False(t, result.Valid)
	assert.Equal(t, "Validation failed: pool not found", result.Message)
	assert.Nil(t, result.OldPool)
}

func TestStartMigration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var runID string
	f.store.EXPECT().CreateMigrationRun(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, in store.CreateMigrationRunInput) error {
			runID = in.RunID
			assert.Equal(t, uint64(1), in.OldPoolID)
			assert.Equal(t, uint64(2), in.NewPoolID)
			assert.Equal(t, uint64(7), in.ProfileID)
			assert.True(t, f.now.Equal(in.StartedAt))
			return nil
		})

	wfRun := new(temporalmocks.WorkflowRun)
	wfRun.On("GetID").Return("ip-migration-x")
	wfRun.On("GetRunID").Return("temporal-run-1")

	f.temporal.EXPECT().ExecuteWorkflow(ctx, gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, opts client.StartWorkflowOptions, _ interface{}, args ...interface{}) (client.WorkflowRun, error) {
			assert.Equal(t, migration.WorkflowID(runID), opts.ID)
			assert.Equal(t, "ipam-migration", opts.TaskQueue)
			require.Len(t, args, 1)

			// the worker sees a seeded run before it starts
			st, err := f.coordination.GetStatus(ctx, runID)
			require.NoError(t, err)
			require.NotNil(t, st)
			assert.Equal(t, domain.MigrationStatusInitializing, st.Status)
			return wfRun, nil
		})
	f.store.EXPECT().SetMigrationRunWorkflow(ctx, gomock.Any(), "ip-migration-x", "temporal-run-1").Return(nil)
	f.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.Event) error {
			assert.Equal(t, domain.EventMigrationStarted, e.Type)
			assert.Equal(t, "ipam.migration.started", e.Subject())
			return nil
		})

	id, err := f.orchestrator.StartMigration(ctx, 1, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, runID, id)

	progress, err := f.orchestrator.GetProgress(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, 0, progress.Processed)
	assert.Equal(t, 0.0, progress.Percentage)

	meta, err := f.orchestrator.GetMetadata(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, uint64(7), meta.ProfileID)

	wfRun.AssertExpectations(t)
}

func TestStartMigration_Conflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().CreateMigrationRun(ctx, gomock.Any()).Return(domain.ErrMigrationConflict)

	_, err := f.orchestrator.StartMigration(ctx, 1, 2, 7)
	assert.ErrorIs(t, err, domain.ErrMigrationConflict)
	assert.Empty(t, f.mr.Keys())
}

func TestStartMigration_WorkflowStartFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().CreateMigrationRun(ctx, gomock.Any()).Return(nil)
	f.temporal.EXPECT().ExecuteWorkflow(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("temporal unavailable"))
	f.store.EXPECT().TransitionMigrationRunStatus(ctx, gomock.Any(),
		[]domain.MigrationStatus{domain.MigrationStatusInitializing}, domain.MigrationStatusFailed, datatypes.JSON(nil)).Return(true, nil)

	_, err := f.orchestrator.StartMigration(ctx, 1, 2, 7)
	assert.ErrorIs(t, err, domain.ErrInfrastructure)
}

func TestCancelMigration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().GetMigrationRun(ctx, "run-1").
		Return(&schema.MigrationRun{RunID: "run-1", Status: domain.MigrationStatusRunning, OldPoolID: 1, NewPoolID: 2, ProfileID: 7}, nil)
	f.store.EXPECT().TransitionMigrationRunStatus(ctx, "run-1", []domain.MigrationStatus{
		domain.MigrationStatusInitializing,
		domain.MigrationStatusRunning,
	}, domain.MigrationStatusCancelling, datatypes.JSON(nil)).Return(true, nil)
	f.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).Return(nil)

	ok, err := f.orchestrator.CancelMigration(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, ok)

	st, err := f.orchestrator.GetStatus(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, domain.MigrationStatusCancelled, st.Status)
	require.NotNil(t, st.CancelledAt)
	assert.True(t, f.now.Equal(*st.CancelledAt))
}

func TestCancelMigration_AlreadyPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().GetMigrationRun(ctx, "run-1b").
		Return(&schema.MigrationRun{RunID: "run-1b", Status: domain.MigrationStatusCancelling}, nil)

	ok, err := f.orchestrator.CancelMigration(ctx, "run-1b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCancelMigration_WorkerFinishedFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coordination.SetStatus(ctx, "run-1c", coordination.StatusRecord{Status: domain.MigrationStatusCompleted}))
	f.store.EXPECT().GetMigrationRun(ctx, "run-1c").
		Return(&schema.MigrationRun{RunID: "run-1c", Status: domain.MigrationStatusRunning}, nil)
	// the worker finalized the index between the read and the transition
	f.store.EXPECT().TransitionMigrationRunStatus(ctx, "run-1c", gomock.Any(), domain.MigrationStatusCancelling, datatypes.JSON(nil)).
		Return(false, nil)

	ok, err := f.orchestrator.CancelMigration(ctx, "run-1c")
	require.NoError(t, err)
	assert.False(t, ok)

	st, err := f.coordination.GetStatus(ctx, "run-1c")
	require.NoError(t, err)
	assert.Equal(t, domain.MigrationStatusCompleted, st.Status)
}

func TestCancelMigration_AlreadyFinished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().GetMigrationRun(ctx, "run-2").
		Return(&schema.MigrationRun{RunID: "run-2", Status: domain.MigrationStatusCompleted}, nil)

	ok, err := f.orchestrator.CancelMigration(ctx, "run-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCancelMigration_Unknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().GetMigrationRun(ctx, "nope").Return(nil, nil)

	_, err := f.orchestrator.CancelMigration(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrMigrationNotFound)
}

func TestRollback_NoBackup(t *testing.T) {
	f := newFixture(t)

	_, err := f.orchestrator.Rollback(context.Background(), "run-3")
	assert.ErrorIs(t, err, domain.ErrBackupNotFound)
}

func TestRollback_PartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coordination.SetBackup(ctx, "run-4", coordination.Backup{
		"alice": "10.0.0.5",
		"bob":   "10.0.0.9",
	}))
	require.NoError(t, f.coordination.SetStatus(ctx, "run-4", coordination.StatusRecord{Status: domain.MigrationStatusCompleted}))

	run := &schema.MigrationRun{RunID: "run-4", Status: domain.MigrationStatusCompleted, OldPoolID: 1, NewPoolID: 2, ProfileID: 7}
	f.store.EXPECT().GetMigrationRun(ctx, "run-4").Return(run, nil)

	gomock.InOrder(
		f.store.EXPECT().RestoreSubscriberAddress(ctx, "alice", "10.0.0.5").Return(nil),
		f.store.EXPECT().RestoreSubscriberAddress(ctx, "bob", "10.0.0.9").Return(domain.ErrNoCapacity),
	)
	f.store.EXPECT().TransitionMigrationRunStatus(ctx, "run-4", gomock.Any(), domain.MigrationStatusRollbackComplete, datatypes.JSON(nil)).
		DoAndReturn(func(_ context.Context, _ string, from []domain.MigrationStatus, _ domain.MigrationStatus, _ datatypes.JSON) (bool, error) {
			for _, st := range from {
				assert.False(t, st.IsActive(), "rollback must not claim an active run")
			}
			return true, nil
		})
	f.publisher.EXPECT().PublishEvent(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.Event) error {
			assert.Equal(t, domain.EventMigrationRolledBack, e.Type)
			return nil
		})

	result, err := f.orchestrator.Rollback(ctx, "run-4")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Restored)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"bob"}, result.FailedUsernames)

	st, err := f.coordination.GetStatus(ctx, "run-4")
	require.NoError(t, err)
	assert.Equal(t, domain.MigrationStatusRollbackComplete, st.Status)
	require.NotNil(t, st.Restored)
	assert.Equal(t, 1, *st.Restored)

	record, err := f.coordination.GetRollback(ctx, "run-4")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, []string{"bob"}, record.FailedUsernames)
}

func TestRollback_RefusedWhileRunning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coordination.SetBackup(ctx, "run-5", coordination.Backup{"alice": "10.0.0.5"}))
	require.NoError(t, f.coordination.SetStatus(ctx, "run-5", coordination.StatusRecord{Status: domain.MigrationStatusRunning}))
	f.store.EXPECT().GetMigrationRun(ctx, "run-5").Return(&schema.MigrationRun{RunID: "run-5", Status: domain.MigrationStatusRunning}, nil)

	_, err := f.orchestrator.Rollback(ctx, "run-5")
	assert.ErrorIs(t, err, domain.ErrMigrationConflict)
}

func TestRollback_RefusedWhileCancelling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coordination.SetBackup(ctx, "run-5b", coordination.Backup{"alice": "10.0.0.5"}))
	require.NoError(t, f.coordination.SetStatus(ctx, "run-5b", coordination.StatusRecord{Status: domain.MigrationStatusCancelled}))
	// the worker has not acknowledged the cancellation yet
	f.store.EXPECT().GetMigrationRun(ctx, "run-5b").Return(&schema.MigrationRun{RunID: "run-5b", Status: domain.MigrationStatusCancelling}, nil)

	_, err := f.orchestrator.Rollback(ctx, "run-5b")
	assert.ErrorIs(t, err, domain.ErrMigrationConflict)

	st, err := f.coordination.GetStatus(ctx, "run-5b")
	require.NoError(t, err)
	assert.Equal(t, domain.MigrationStatusCancelled, st.Status)
}

func TestRollback_AfterCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.coordination.SetBackup(ctx, "run-6", coordination.Backup{"alice": "10.0.0.5"}))
	require.NoError(t, f.coordination.SetStatus(ctx, "run-6", coordination.StatusRecord{Status: domain.MigrationStatusCancelled}))
	// index row already purged
	f.store.EXPECT().GetMigrationRun(ctx, "run-6").Return(nil, nil)
	f.store.EXPECT().RestoreSubscriberAddress(ctx, "alice", "10.0.0.5").Return(nil)

	result, err := f.orchestrator.Rollback(ctx, "run-6")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Restored)
	assert.Empty(t, result.FailedUsernames)
}

func TestGetMigrationHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	finished := f.now.Add(time.Hour)
	f.store.EXPECT().ListMigrationRuns(ctx, migration.DefaultHistoryLimit).Return([]schema.MigrationRun{
		{
			RunID:      "run-new",
			OldPoolID:  1,
			NewPoolID:  2,
			ProfileID:  7,
			Status:     domain.MigrationStatusCompleted,
			StartedAt:  f.now,
			FinishedAt: &finished,
			Summary:    datatypes.JSON(`{"run_id":"run-new","status":"completed","total":3,"processed":3,"succeeded":3,"failed":0,"failed_usernames":[]}`),
		},
		{RunID: "run-old", Status: domain.MigrationStatusFailed, StartedAt: f.now.Add(-time.Hour)},
	}, nil)

	require.NoError(t, f.coordination.SetProgress(ctx, "run-new", coordination.Progress{Processed: 3, Total: 3, Percentage: 100}))

	entries, err := f.orchestrator.GetMigrationHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "run-new", entries[0].RunID)
	require.NotNil(t, entries[0].Summary)
	assert.Equal(t, 3, entries[0].Summary.Succeeded)
	require.NotNil(t, entries[0].Progress)
	assert.Equal(t, 100.0, entries[0].Progress.Percentage)

	// coordination keys of the older run have expired
	assert.Nil(t, entries[1].Progress)
	assert.Nil(t, entries[1].Metadata)
	assert.Nil(t, entries[1].Status)
}
