package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"

	"github.com/ispcore/ipam/internal/coordination"
	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/mocks"
	"github.com/ispcore/ipam/internal/store"
	"github.com/ispcore/ipam/internal/workflows"
)

// MigrationWorkflowTestSuite is the test suite for the pool migration workflow
type MigrationWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env      *testsuite.TestWorkflowEnvironment
	ctrl     *gomock.Controller
	executor *mocks.MockMigrationExecutor
	worker   workflows.MigrationWorker
}

func (s *MigrationWorkflowTestSuite) SetupTest() {
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockMigrationExecutor(s.ctrl)
	s.worker = workflows.NewMigrationWorker(s.executor, workflows.MigrationWorkerConfig{BatchSize: 2})
}

func (s *MigrationWorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

func TestMigrationWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(MigrationWorkflowTestSuite))
}

func testRequest() workflows.MigrationRequest {
	return workflows.MigrationRequest{
		RunID:     "6f1f6f0e-7a55-4f4b-9a43-3e1c1b0f8c11",
		OldPoolID: 1,
		NewPoolID: 2,
		ProfileID: 7,
	}
}

func candidates(usernames ...string) []store.MigrationCandidate {
	out := make([]store.MigrationCandidate, 0, len(usernames))
	for i, u := range usernames {
		out = append(out, store.MigrationCandidate{
			Username:     u,
			AllocationID: uint64(i + 1),
			SubnetID:     1,
			IPAddress:    "10.0.0." + string(rune('1'+i)),
		})
	}
	return out
}

func (s *MigrationWorkflowTestSuite) TestMigratePoolForProfile_Success() {
	req := testRequest()
	all := candidates("alice", "bob", "carol")

	s.env.OnActivity(s.executor.MarkMigrationRunning, mock.Anything, req.RunID).Return(true, nil)
	s.env.OnActivity(s.executor.ListMigrationCandidates, mock.Anything, req.OldPoolID, req.ProfileID).Return(all, nil)
	s.env.OnActivity(s.executor.SnapshotAssignments, mock.Anything, req.RunID, all).Return(3, nil)

	s.env.OnActivity(s.executor.ReassignBatch, mock.Anything, workflows.ReassignBatchInput{
		RunID: req.RunID, NewPoolID: req.NewPoolID, Candidates: all[0:2],
	}).Return(&workflows.BatchResult{Processed: 2, Succeeded: 2, FailedUsernames: []string{}}, nil).Once()
	s.env.OnActivity(s.executor.ReassignBatch, mock.Anything, workflows.ReassignBatchInput{
		RunID: req.RunID, NewPoolID: req.NewPoolID, Candidates: all[2:3],
	}).Return(&workflows.BatchResult{Processed: 1, Failed: 1, FailedUsernames: []string{"carol"}}, nil).Once()

	var progress []coordination.Progress
	s.env.OnActivity(s.executor.RecordMigrationProgress, mock.Anything, req.RunID, mock.Anything).
		Return(func(_ context.Context, _ string, p coordination.Progress) error {
			progress = append(progress, p)
			return nil
		}).Times(3)

	s.env.OnActivity(s.executor.FinishMigrationRun, mock.Anything, mock.MatchedBy(func(in workflows.FinishInput) bool {
		return in.Status == domain.MigrationStatusCompleted && in.Summary != nil && in.Summary.Processed == 3
	})).Return(domain.MigrationStatusCompleted, nil)

	s.env.ExecuteWorkflow(s.worker.MigratePoolForProfile, req)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var summary workflows.MigrationSummary
	s.NoError(s.env.GetWorkflowResult(&summary))
	s.Equal(domain.MigrationStatusCompleted, summary.Status)
	s.Equal(3, summary.Total)
	s.Equal(3, summary.Processed)
	s.Equal(2, summary.Succeeded)
	s.Equal(1, summary.Failed)
	s.Equal([]string{"carol"}, summary.FailedUsernames)

	s.Require().Len(progress, 3)
	s.Equal(0, progress[0].Processed)
	s.Equal(3, progress[0].Total)
	s.Equal(66.67, progress[1].Percentage)
	s.Equal(100.0, progress[2].Percentage)
	s.Equal([]string{"carol"}, progress[2].FailedUsernames)
}

func (s *MigrationWorkflowTestSuite) TestMigratePoolForProfile_CancelledBeforeStart() {
	req := testRequest()

	s.env.OnActivity(s.executor.MarkMigrationRunning, mock.Anything, req.RunID).Return(false, nil)
	s.env.OnActivity(s.executor.FinishMigrationRun, mock.Anything, mock.MatchedBy(func(in workflows.FinishInput) bool {
		return in.Status == domain.MigrationStatusCancelled
	})).Return(domain.MigrationStatusCancelled, nil)

	s.env.ExecuteWorkflow(s.worker.MigratePoolForProfile, req)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var summary workflows.MigrationSummary
	s.NoError(s.env.GetWorkflowResult(&summary))
	s.Equal(domain.MigrationStatusCancelled, summary.Status)
	s.Equal(0, summary.Processed)
}

func (s *MigrationWorkflowTestSuite) TestMigratePoolForProfile_CancelledMidway() {
	req := testRequest()
	all := candidates("alice", "bob", "carol", "dave")

	s.env.OnActivity(s.executor.MarkMigrationRunning, mock.Anything, req.RunID).Return(true, nil)
	s.env.OnActivity(s.executor.ListMigrationCandidates, mock.Anything, req.OldPoolID, req.ProfileID).Return(all, nil)
	s.env.OnActivity(s.executor.SnapshotAssignments, mock.Anything, req.RunID, all).Return(4, nil)
	s.env.OnActivity(s.executor.ReassignBatch, mock.Anything, mock.Anything).
		Return(&workflows.BatchResult{Processed: 1, Succeeded: 1, FailedUsernames: []string{}, Cancelled: true}, nil).Once()
	s.env.OnActivity(s.executor.RecordMigrationProgress, mock.Anything, req.RunID, mock.Anything).Return(nil).Times(2)
	s.env.OnActivity(s.executor.FinishMigrationRun, mock.Anything, mock.MatchedBy(func(in workflows.FinishInput) bool {
		return in.Status == domain.MigrationStatusCancelled && in.Summary.Processed == 1
	})).Return(domain.MigrationStatusCancelled, nil)

	s.env.ExecuteWorkflow(s.worker.MigratePoolForProfile, req)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var summary workflows.MigrationSummary
	s.NoError(s.env.GetWorkflowResult(&summary))
	s.Equal(domain.MigrationStatusCancelled, summary.Status)
	s.Equal(4, summary.Total)
	s.Equal(1, summary.Processed)
}

func (s *MigrationWorkflowTestSuite) TestMigratePoolForProfile_NoCandidates() {
	req := testRequest()

	s.env.OnActivity(s.executor.MarkMigrationRunning, mock.Anything, req.RunID).Return(true, nil)
	s.env.OnActivity(s.executor.ListMigrationCandidates, mock.Anything, req.OldPoolID, req.ProfileID).
		Return([]store.MigrationCandidate{}, nil)
	s.env.OnActivity(s.executor.SnapshotAssignments, mock.Anything, req.RunID, mock.Anything).Return(0, nil)
	s.env.OnActivity(s.executor.RecordMigrationProgress, mock.Anything, req.RunID, mock.Anything).Return(nil).Once()
	s.env.OnActivity(s.executor.FinishMigrationRun, mock.Anything, mock.Anything).Return(domain.MigrationStatusCompleted, nil)

	s.env.ExecuteWorkflow(s.worker.MigratePoolForProfile, req)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *MigrationWorkflowTestSuite) TestMigratePoolForProfile_BatchErrorMarksFailed() {
	req := testRequest()
	all := candidates("alice")

	s.env.OnActivity(s.executor.MarkMigrationRunning, mock.Anything, req.RunID).Return(true, nil)
	s.env.OnActivity(s.executor.ListMigrationCandidates, mock.Anything, req.OldPoolID, req.ProfileID).Return(all, nil)
	s.env.OnActivity(s.executor.SnapshotAssignments, mock.Anything, req.RunID, all).Return(1, nil)
	s.env.OnActivity(s.executor.RecordMigrationProgress, mock.Anything, req.RunID, mock.Anything).Return(nil).Once()
	s.env.OnActivity(s.executor.ReassignBatch, mock.Anything, mock.Anything).
		Return(nil, errors.New("redis unavailable")).Once()
	s.env.OnActivity(s.executor.FinishMigrationRun, mock.Anything, mock.MatchedBy(func(in workflows.FinishInput) bool {
		return in.Status == domain.MigrationStatusFailed && in.Error != ""
	})).Return(domain.MigrationStatusFailed, nil)

	s.env.ExecuteWorkflow(s.worker.MigratePoolForProfile, req)

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}

func (s *MigrationWorkflowTestSuite) TestMigratePoolForProfile_SnapshotErrorMarksFailed() {
	req := testRequest()
	all := candidates("alice")

	s.env.OnActivity(s.executor.MarkMigrationRunning, mock.Anything, req.RunID).Return(true, nil)
	s.env.OnActivity(s.executor.ListMigrationCandidates, mock.Anything, req.OldPoolID, req.ProfileID).Return(all, nil)
	s.env.OnActivity(s.executor.SnapshotAssignments, mock.Anything, req.RunID, all).Return(0, errors.New("redis unavailable"))
	s.env.OnActivity(s.executor.FinishMigrationRun, mock.Anything, mock.MatchedBy(func(in workflows.FinishInput) bool {
		return in.Status == domain.MigrationStatusFailed
	})).Return(domain.MigrationStatusFailed, nil)

	s.env.ExecuteWorkflow(s.worker.MigratePoolForProfile, req)

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}
