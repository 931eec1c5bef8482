package sweeper

import (
	"context"
)

// Sweeper is a periodic maintenance loop run by cmd/sweeper.
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start blocks, running one cycle immediately and then one per interval, until ctx is done or Stop is called
	Start(ctx context.Context) error

	// Stop asks the loop to exit and waits for the current cycle, bounded by ctx
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
