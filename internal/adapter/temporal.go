package adapter

import (
	"context"

	"go.temporal.io/sdk/activity"
)

// Activity wraps the activity package calls the migration executor makes,
// so activities can be unit tested outside a Temporal worker.
//
//go:generate mockgen -source=temporal.go -destination=../mocks/temporal.go -package=mocks -mock_names=Activity=MockActivity
type Activity interface {
	// RecordHeartbeat reports liveness and progress details for long activities
	RecordHeartbeat(ctx context.Context, details ...interface{})

	// IsActivity reports whether ctx belongs to a running activity
	IsActivity(ctx context.Context) bool
}

type realActivity struct{}

// NewActivity creates the activity adapter used in production
func NewActivity() Activity {
	return realActivity{}
}

func (realActivity) RecordHeartbeat(ctx context.Context, details ...interface{}) {
	activity.RecordHeartbeat(ctx, details...)
}

func (realActivity) IsActivity(ctx context.Context) bool {
	return activity.IsActivity(ctx)
}
