package temporal

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
)

// NewSentryActivityInterceptor creates a worker interceptor that gives every activity
// execution its own Sentry hub tagged with the workflow it belongs to
func NewSentryActivityInterceptor() interceptor.WorkerInterceptor {
	return &SentryActivityInterceptor{}
}

// SentryActivityInterceptor injects a Sentry hub into activity contexts
type SentryActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
}

func (s *SentryActivityInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	i := &sentryActivityInboundInterceptor{}
	i.Next = next
	return i
}

type sentryActivityInboundInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
}

// ExecuteActivity makes logger.ErrorCtx in activities report with the run's tags
func (s *sentryActivityInboundInterceptor) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (interface{}, error) {
	hub := sentry.CurrentHub().Clone()

	if activity.IsActivity(ctx) {
		info := activity.GetInfo(ctx)
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("activity_type", info.ActivityType.Name)
			if info.WorkflowType != nil {
				scope.SetTag("workflow_type", info.WorkflowType.Name)
			}
			scope.SetTag("workflow_id", info.WorkflowExecution.ID)
			scope.SetTag("task_queue", info.TaskQueue)
		})
	}

	return s.Next.ExecuteActivity(sentry.SetHubOnContext(ctx, hub), in)
}
