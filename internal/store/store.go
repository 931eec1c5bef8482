package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store is the system of record for pools, subnets, allocations and migration runs
type Store interface {
	// =============================================================================
	// Pools
	// =============================================================================

	// CreatePool creates a pool; returns domain.ErrPoolNameTaken for a duplicate name
	CreatePool(ctx context.Context, input CreatePoolInput) (*schema.IPPool, error)
	// GetPool returns nil when the pool does not exist
	GetPool(ctx context.Context, poolID uint64) (*schema.IPPool, error)
	// ListPools returns every pool ordered by id
	ListPools(ctx context.Context) ([]schema.IPPool, error)
	// UpdatePool applies the non-nil fields of input
	UpdatePool(ctx context.Context, poolID uint64, input UpdatePoolInput) (*schema.IPPool, error)
	// DeletePool removes a pool and its subnets; refused while any address is allocated
	DeletePool(ctx context.Context, poolID uint64) error

	// =============================================================================
	// Subnets
	// =============================================================================

	// CreateSubnet creates a subnet; returns domain.ErrSubnetOverlap if it intersects an existing one
	CreateSubnet(ctx context.Context, input CreateSubnetInput) (*schema.IPSubnet, error)
	// GetSubnet returns nil when the subnet does not exist
	GetSubnet(ctx context.Context, subnetID uint64) (*schema.IPSubnet, error)
	// ListSubnets lists subnets, optionally restricted to one pool
	ListSubnets(ctx context.Context, poolID *uint64) ([]schema.IPSubnet, error)
	// UpdateSubnet changes the mutable fields of a subnet
	UpdateSubnet(ctx context.Context, subnetID uint64, input UpdateSubnetInput) (*schema.IPSubnet, error)
	// DeleteSubnet removes a subnet; refused while any address is allocated
	DeleteSubnet(ctx context.Context, subnetID uint64) error

	// =============================================================================
	// Allocations
	// =============================================================================

	// AllocateAddress binds the lowest free address of an active subnet while holding its row lock
	AllocateAddress(ctx context.Context, input AllocateAddressInput) (*schema.IPAllocation, error)
	// ReleaseAllocation releases an allocated row while holding its row lock
	ReleaseAllocation(ctx context.Context, allocationID uint64) (*schema.IPAllocation, error)
	// GetAllocation returns nil when the allocation does not exist
	GetAllocation(ctx context.Context, allocationID uint64) (*schema.IPAllocation, error)
	// ListAllocations returns a filtered page of allocations and the total match count
	ListAllocations(ctx context.Context, filter AllocationFilter) ([]schema.IPAllocation, uint64, error)
	// GetAllocatedAddresses returns the addresses currently allocated in a subnet
	GetAllocatedAddresses(ctx context.Context, subnetID uint64) ([]string, error)
	// GetAllocationHistory returns the history rows of one allocation, oldest first
	GetAllocationHistory(ctx context.Context, allocationID uint64) ([]schema.IPAllocationHistory, error)
	// GetSubnetAllocationCounts aggregates active allocations per subnet of a pool in one query
	GetSubnetAllocationCounts(ctx context.Context, poolID uint64) ([]SubnetAllocationCount, error)
	// ExpireLeases marks allocations whose lease ended before now as expired
	ExpireLeases(ctx context.Context, now time.Time) (int64, error)
	// CleanupExpiredAllocations deletes expired allocations and history rows released before cutoff
	CleanupExpiredAllocations(ctx context.Context, cutoff time.Time) (*CleanupResult, error)

	// =============================================================================
	// Subscribers and migration
	// =============================================================================

	// CountSubscribersByProfile counts subscribers attached to a service profile
	CountSubscribersByProfile(ctx context.Context, profileID uint64) (int64, error)
	// ListMigrationCandidates lists profile subscribers holding an allocated address in a pool
	ListMigrationCandidates(ctx context.Context, poolID uint64, profileID uint64) ([]MigrationCandidate, error)
	// ReassignSubscriber moves a subscriber's allocation into the destination pool in one transaction
	ReassignSubscriber(ctx context.Context, input ReassignSubscriberInput) (*schema.IPAllocation, error)
	// GetSubscriberAddress returns the Framed-IP-Address of a username, or "" when absent
	GetSubscriberAddress(ctx context.Context, username string) (string, error)
	// RestoreSubscriberAddress binds username back to address and rewrites its Framed-IP-Address
	RestoreSubscriberAddress(ctx context.Context, username string, address string) error

	// CreateMigrationRun indexes a run; returns domain.ErrMigrationConflict when another
	// active run already holds the profile or the destination pool
	CreateMigrationRun(ctx context.Context, input CreateMigrationRunInput) error
	// GetMigrationRun returns nil when the run is unknown
	GetMigrationRun(ctx context.Context, runID string) (*schema.MigrationRun, error)
	// ListMigrationRuns returns the most recent runs first
	ListMigrationRuns(ctx context.Context, limit int) ([]schema.MigrationRun, error)
	// TransitionMigrationRunStatus moves a run to status only while its indexed status is one of
	// from, stamping the finish time for terminal statuses. It reports false when the run is in
	// another status and returns domain.ErrMigrationNotFound when the run is unknown.
	TransitionMigrationRunStatus(ctx context.Context, runID string, from []domain.MigrationStatus, status domain.MigrationStatus, summary datatypes.JSON) (bool, error)
	// SetMigrationRunWorkflow records the workflow executing a run
	SetMigrationRunWorkflow(ctx context.Context, runID string, workflowID string, workflowRunID string) error
}

// CreatePoolInput is the input for CreatePool
type CreatePoolInput struct {
	Name        string
	Description *string
	StartIP     string
	EndIP       string
	Gateway     *string
	DNSServers  []string
	UsageClass  string
	VLANID      *int
	Status      domain.ResourceStatus
}

// UpdatePoolInput is the input for UpdatePool. Nil fields are left unchanged.
type UpdatePoolInput struct {
	Name        *string
	Description *string
	Gateway     *string
	DNSServers  []string
	UsageClass  *string
	VLANID      *int
	Status      *domain.ResourceStatus
}

// CreateSubnetInput is the input for CreateSubnet
type CreateSubnetInput struct {
	PoolID       uint64
	Network      string
	PrefixLength int
	Gateway      *string
	VLANID       *int
	Description  *string
	Status       domain.ResourceStatus
}

// UpdateSubnetInput is the input for UpdateSubnet. Network and prefix are immutable.
type UpdateSubnetInput struct {
	Gateway     *string
	VLANID      *int
	Description *string
	Status      *domain.ResourceStatus
}

// AllocateAddressInput is the input for AllocateAddress
type AllocateAddressInput struct {
	SubnetID   uint64
	MACAddress string
	Username   string
	ExpiresAt  *time.Time
}

// AllocationFilter narrows ListAllocations
type AllocationFilter struct {
	SubnetID *uint64
	Status   *domain.AllocationStatus
	Username *string
	Limit    int
	Offset   uint64
}

// SubnetAllocationCount is one row of the per-subnet utilization aggregate
type SubnetAllocationCount struct {
	SubnetID     uint64 `gorm:"column:subnet_id"`
	PrefixLength int    `gorm:"column:prefix_length"`
	Allocated    int64  `gorm:"column:allocated"`
}

// CleanupResult reports what CleanupExpiredAllocations removed
type CleanupResult struct {
	ExpiredCount int64 `json:"expired_count"`
	HistoryCount int64 `json:"history_count"`
}

// MigrationCandidate is a subscriber whose address must move during a migration
type MigrationCandidate struct {
	Username     string `gorm:"column:username" json:"username"`
	MACAddress   string `gorm:"column:mac_address" json:"mac_address"`
	AllocationID uint64 `gorm:"column:allocation_id" json:"allocation_id"`
	SubnetID     uint64 `gorm:"column:subnet_id" json:"subnet_id"`
	IPAddress    string `gorm:"column:ip_address" json:"ip_address"`
}

// ReassignSubscriberInput is the input for ReassignSubscriber
type ReassignSubscriberInput struct {
	Username         string
	FromAllocationID uint64
	ToPoolID         uint64
}

// CreateMigrationRunInput is the input for CreateMigrationRun
type CreateMigrationRunInput struct {
	RunID     string
	OldPoolID uint64
	NewPoolID uint64
	ProfileID uint64
	StartedAt time.Time
}
