package ipam

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"go.uber.org/zap"

	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/ipcalc"
	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/store"
	"github.com/ispcore/ipam/internal/store/schema"
)

// =============================================================================
// Pools
// =============================================================================

func (e *engine) CreatePool(ctx context.Context, input store.CreatePoolInput) (*schema.IPPool, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: pool name is required", domain.ErrInvalidRange)
	}
	if _, err := ipcalc.ParseRange(input.StartIP, input.EndIP); err != nil {
		return nil, err
	}
	if err := validateOptionalIPv4("gateway", input.Gateway); err != nil {
		return nil, err
	}
	for _, dns := range input.DNSServers {
		if err := validateOptionalIPv4("dns server", &dns); err != nil {
			return nil, err
		}
	}
	if err := validateVLAN(input.VLANID); err != nil {
		return nil, err
	}
	if input.Status != "" && !domain.IsValidResourceStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidRange, input.Status)
	}

	pool, err := e.store.CreatePool(ctx, input)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Created pool", zap.Uint64("poolID", pool.ID), zap.String("name", pool.Name))
	return pool, nil
}

func (e *engine) GetPool(ctx context.Context, poolID uint64) (*schema.IPPool, error) {
	pool, err := e.store.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrPoolNotFound, poolID)
	}
	return pool, nil
}

func (e *engine) ListPools(ctx context.Context) ([]schema.IPPool, error) {
	return e.store.ListPools(ctx)
}

func (e *engine) UpdatePool(ctx context.Context, poolID uint64, input store.UpdatePoolInput) (*schema.IPPool, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: pool name is required", domain.ErrInvalidRange)
		}
		input.Name = &name
	}
	if err := validateOptionalIPv4("gateway", input.Gateway); err != nil {
		return nil, err
	}
	if err := validateVLAN(input.VLANID); err != nil {
		return nil, err
	}
	if input.Status != nil && !domain.IsValidResourceStatus(*input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidRange, *input.Status)
	}
	return e.store.UpdatePool(ctx, poolID, input)
}

func (e *engine) DeletePool(ctx context.Context, poolID uint64) error {
	if err := e.store.DeletePool(ctx, poolID); err != nil {
		return err
	}
	logger.InfoCtx(ctx, "Deleted pool", zap.Uint64("poolID", poolID))
	return nil
}

// =============================================================================
// Subnets
// =============================================================================

func (e *engine) CreateSubnet(ctx context.Context, input store.CreateSubnetInput) (*schema.IPSubnet, error) {
	if input.PrefixLength < domain.MinSubnetPrefix || input.PrefixLength > domain.MaxSubnetPrefix {
		return nil, fmt.Errorf("%w: prefix length must be between %d and %d",
			domain.ErrInvalidRange, domain.MinSubnetPrefix, domain.MaxSubnetPrefix)
	}
	p, err := ipcalc.ParsePrefix(input.Network, input.PrefixLength)
	if err != nil {
		return nil, err
	}
	if err := validateVLAN(input.VLANID); err != nil {
		return nil, err
	}
	if input.Gateway != nil {
		if err := validateOptionalIPv4("gateway", input.Gateway); err != nil {
			return nil, err
		}
		if !ipcalc.Contains(p.Addr().String(), input.PrefixLength, *input.Gateway) {
			return nil, fmt.Errorf("%w: gateway %s is outside %s", domain.ErrInvalidRange, *input.Gateway, p)
		}
	}

	subnet, err := e.store.CreateSubnet(ctx, input)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Created subnet",
		zap.Uint64("subnetID", subnet.ID),
		zap.Uint64("poolID", subnet.PoolID),
		zap.String("cidr", subnet.CIDR()))
	return subnet, nil
}

func (e *engine) GetSubnet(ctx context.Context, subnetID uint64) (*schema.IPSubnet, error) {
	subnet, err := e.store.GetSubnet(ctx, subnetID)
	if err != nil {
		return nil, err
	}
	if subnet == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrSubnetNotFound, subnetID)
	}
	return subnet, nil
}

func (e *engine) ListSubnets(ctx context.Context, poolID *uint64) ([]schema.IPSubnet, error) {
	return e.store.ListSubnets(ctx, poolID)
}

func (e *engine) UpdateSubnet(ctx context.Context, subnetID uint64, input store.UpdateSubnetInput) (*schema.IPSubnet, error) {
	if err := validateOptionalIPv4("gateway", input.Gateway); err != nil {
		return nil, err
	}
	if err := validateVLAN(input.VLANID); err != nil {
		return nil, err
	}
	if input.Status != nil && !domain.IsValidResourceStatus(*input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidRange, *input.Status)
	}
	return e.store.UpdateSubnet(ctx, subnetID, input)
}

func (e *engine) DeleteSubnet(ctx context.Context, subnetID uint64) error {
	if err := e.store.DeleteSubnet(ctx, subnetID); err != nil {
		return err
	}
	logger.InfoCtx(ctx, "Deleted subnet", zap.Uint64("subnetID", subnetID))
	return nil
}

// =============================================================================
// Allocations
// =============================================================================

func (e *engine) ListAllocations(ctx context.Context, filter store.AllocationFilter) ([]schema.IPAllocation, uint64, error) {
	return e.store.ListAllocations(ctx, filter)
}

func (e *engine) GetAllocationHistory(ctx context.Context, allocationID uint64) ([]schema.IPAllocationHistory, error) {
	return e.store.GetAllocationHistory(ctx, allocationID)
}

func validateOptionalIPv4(field string, value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	addr, err := netip.ParseAddr(*value)
	if err != nil || !addr.Is4() {
		return fmt.Errorf("%w: %s %q is not an IPv4 address", domain.ErrInvalidRange, field, *value)
	}
	return nil
}

func validateVLAN(vlanID *int) error {
	if vlanID == nil {
		return nil
	}
	if *vlanID < domain.MinVLANID || *vlanID > domain.MaxVLANID {
		return fmt.Errorf("%w: VLAN id must be between %d and %d", domain.ErrInvalidRange, domain.MinVLANID, domain.MaxVLANID)
	}
	return nil
}
