package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/ispcore/ipam/internal/domain"
)

// MigrationRun represents the ip_migration_runs table, the durable index of pool migrations.
// Partial unique indexes on profile_id and new_pool_id over active statuses keep two
// runs from working the same profile or destination pool at once.
type MigrationRun struct {
	// RunID is the generated run identifier
	RunID string `gorm:"column:run_id;primaryKey;type:uuid"`
	// OldPoolID is the source pool
	OldPoolID uint64 `gorm:"column:old_pool_id;not null"`
	// NewPoolID is the destination pool
	NewPoolID uint64 `gorm:"column:new_pool_id;not null"`
	// ProfileID selects the subscribers being re-homed
	ProfileID uint64 `gorm:"column:profile_id;not null"`
	// Status mirrors the last status written by the orchestrator or worker
	Status domain.MigrationStatus `gorm:"column:status;not null"`
	// WorkflowID is the orchestrator workflow ID running the migration
	WorkflowID *string `gorm:"column:workflow_id"`
	// WorkflowRunID is the orchestrator workflow run ID
	WorkflowRunID *string `gorm:"column:workflow_run_id"`
	// Summary holds the final counters once the run stops
	Summary datatypes.JSON `gorm:"column:summary;type:jsonb"`
	// StartedAt is the timestamp when the run was requested
	StartedAt time.Time `gorm:"column:started_at;not null"`
	// FinishedAt is set when the run reaches a terminal status
	FinishedAt *time.Time `gorm:"column:finished_at"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when the row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the MigrationRun model
func (MigrationRun) TableName() string {
	return "ip_migration_runs"
}
