package graphql

import (
	"context"

	"github.com/ispcore/ipam/internal/api/rest"
	"github.com/ispcore/ipam/internal/api/rest/dto"
	apierrors "github.com/ispcore/ipam/internal/api/shared/errors"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/migration"
)

// fieldResolver produces the value of one Query field; the result is projected by the selection set
type fieldResolver func(ctx context.Context, a args) (interface{}, error)

// Resolver answers Query fields with the same bodies the REST handlers return
type Resolver struct {
	engine       ipam.Engine
	orchestrator migration.Orchestrator
}

// NewResolver creates a new resolver
func NewResolver(engine ipam.Engine, orchestrator migration.Orchestrator) *Resolver {
	return &Resolver{engine: engine, orchestrator: orchestrator}
}

func (r *Resolver) fields() map[string]fieldResolver {
	return map[string]fieldResolver{
		"pools":              r.pools,
		"pool":               r.pool,
		"subnets":            r.subnets,
		"subnet":             r.subnet,
		"pool_utilization":   r.poolUtilization,
		"available_ips":      r.availableIPs,
		"allocations":        r.allocations,
		"allocation_history": r.allocationHistory,
		"migrations":         r.migrations,
		"migration":          r.migration,
		"validate_migration": r.validateMigration,
	}
}

func (r *Resolver) pools(ctx context.Context, _ args) (interface{}, error) {
	pools, err := r.engine.ListPools(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewPoolListResponse(pools), nil
}

func (r *Resolver) pool(ctx context.Context, a args) (interface{}, error) {
	id, err := a.requiredUint64("id")
	if err != nil {
		return nil, err
	}
	pool, err := r.engine.GetPool(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPoolResponse(pool), nil
}

func (r *Resolver) subnets(ctx context.Context, a args) (interface{}, error) {
	poolID, err := a.optionalUint64("pool_id")
	if err != nil {
		return nil, err
	}
	subnets, err := r.engine.ListSubnets(ctx, poolID)
	if err != nil {
		return nil, err
	}
	return dto.NewSubnetListResponse(subnets), nil
}

func (r *Resolver) subnet(ctx context.Context, a args) (interface{}, error) {
	id, err := a.requiredUint64("id")
	if err != nil {
		return nil, err
	}
	subnet, err := r.engine.GetSubnet(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSubnetResponse(subnet), nil
}

func (r *Resolver) poolUtilization(ctx context.Context, a args) (interface{}, error) {
	id, err := a.requiredUint64("pool_id")
	if err != nil {
		return nil, err
	}
	return r.engine.GetPoolUtilization(ctx, id)
}

func (r *Resolver) availableIPs(ctx context.Context, a args) (interface{}, error) {
	id, err := a.requiredUint64("subnet_id")
	if err != nil {
		return nil, err
	}
	addresses, err := r.engine.GetAvailableIPs(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.AvailableIPsResponse{SubnetID: id, Count: len(addresses), Addresses: addresses}, nil
}

func (r *Resolver) allocations(ctx context.Context, a args) (interface{}, error) {
	subnetID, err := a.optionalUint64("subnet_id")
	if err != nil {
		return nil, err
	}
	offset, err := a.optionalUint64("offset")
	if err != nil {
		return nil, err
	}
	limit, err := a.integer("limit")
	if err != nil {
		return nil, err
	}

	query := rest.ListAllocationsQueryParams{
		SubnetID: subnetID,
		Status:   a.optionalText("status"),
		Username: a.optionalText("username"),
		Limit:    limit,
	}
	if offset != nil {
		query.Offset = *offset
	}
	if err := query.Validate(); err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	allocations, total, err := r.engine.ListAllocations(ctx, query.Filter())
	if err != nil {
		return nil, err
	}
	return dto.NewAllocationListResponse(allocations, total, query.Offset), nil
}

func (r *Resolver) allocationHistory(ctx context.Context, a args) (interface{}, error) {
	id, err := a.requiredUint64("allocation_id")
	if err != nil {
		return nil, err
	}
	rows, err := r.engine.GetAllocationHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewAllocationHistoryResponse(rows), nil
}

func (r *Resolver) migrations(ctx context.Context, a args) (interface{}, error) {
	limit, err := a.integer("limit")
	if err != nil {
		return nil, err
	}
	query := rest.MigrationHistoryQueryParams{Limit: limit}
	if err := query.Validate(); err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	return r.orchestrator.GetMigrationHistory(ctx, query.Limit)
}

func (r *Resolver) migration(ctx context.Context, a args) (interface{}, error) {
	runID := a.text("run_id")

	progress, err := r.orchestrator.GetProgress(ctx, runID)
	if err != nil {
		return nil, err
	}
	status, err := r.orchestrator.GetStatus(ctx, runID)
	if err != nil {
		return nil, err
	}
	metadata, err := r.orchestrator.GetMetadata(ctx, runID)
	if err != nil {
		return nil, err
	}
	if progress == nil && status == nil && metadata == nil {
		return nil, nil
	}

	return dto.MigrationStateResponse{
		RunID:    runID,
		Progress: progress,
		Status:   status,
		Metadata: metadata,
	}, nil
}

func (r *Resolver) validateMigration(ctx context.Context, a args) (interface{}, error) {
	oldPoolID, err := a.requiredUint64("old_pool_id")
	if err != nil {
		return nil, err
	}
	newPoolID, err := a.requiredUint64("new_pool_id")
	if err != nil {
		return nil, err
	}
	profileID, err := a.requiredUint64("profile_id")
	if err != nil {
		return nil, err
	}
	return r.orchestrator.ValidateMigration(ctx, oldPoolID, newPoolID, profileID), nil
}
