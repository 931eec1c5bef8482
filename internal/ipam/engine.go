package ipam

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/ispcore/ipam/internal/adapter"
	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/ipcalc"
	"github.com/ispcore/ipam/internal/logger"
	"github.com/ispcore/ipam/internal/messaging"
	"github.com/ispcore/ipam/internal/store"
	"github.com/ispcore/ipam/internal/store/schema"
)

// Config holds engine defaults
type Config struct {
	// DefaultLease applies when AllocateOptions carries no lease; zero means no expiry
	DefaultLease time.Duration
}

// AllocateOptions tunes a single allocation
type AllocateOptions struct {
	LeaseDuration time.Duration
}

// Utilization summarizes the address usage of a pool
type Utilization struct {
	PoolID             uint64  `json:"pool_id"`
	Total              int64   `json:"total"`
	Allocated          int64   `json:"allocated"`
	Available          int64   `json:"available"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// Engine allocates, releases and reports on addresses
//
//go:generate mockgen -source=engine.go -destination=../mocks/engine.go -package=mocks -mock_names=Engine=MockEngine
type Engine interface {
	// AllocateIP binds the lowest free address of an active subnet to a consumer
	AllocateIP(ctx context.Context, subnetID uint64, mac, username string, opts AllocateOptions) (*schema.IPAllocation, error)
	// ReleaseIP releases an allocated address; false with the reason when nothing changed
	ReleaseIP(ctx context.Context, allocationID uint64) (bool, error)
	// GetAvailableIPs lists the free hosts of a subnet; empty for an unknown subnet
	GetAvailableIPs(ctx context.Context, subnetID uint64) ([]string, error)
	// GetPoolUtilization aggregates allocation counts over every subnet of a pool
	GetPoolUtilization(ctx context.Context, poolID uint64) (*Utilization, error)
	// CleanupExpiredAllocations purges expired rows released more than retentionDays ago
	CleanupExpiredAllocations(ctx context.Context, retentionDays int) (*store.CleanupResult, error)
	// ExpireLeases expires allocations whose lease has ended
	ExpireLeases(ctx context.Context) (int64, error)

	CreatePool(ctx context.Context, input store.CreatePoolInput) (*schema.IPPool, error)
	GetPool(ctx context.Context, poolID uint64) (*schema.IPPool, error)
	ListPools(ctx context.Context) ([]schema.IPPool, error)
	UpdatePool(ctx context.Context, poolID uint64, input store.UpdatePoolInput) (*schema.IPPool, error)
	DeletePool(ctx context.Context, poolID uint64) error

	CreateSubnet(ctx context.Context, input store.CreateSubnetInput) (*schema.IPSubnet, error)
	GetSubnet(ctx context.Context, subnetID uint64) (*schema.IPSubnet, error)
	ListSubnets(ctx context.Context, poolID *uint64) ([]schema.IPSubnet, error)
	UpdateSubnet(ctx context.Context, subnetID uint64, input store.UpdateSubnetInput) (*schema.IPSubnet, error)
	DeleteSubnet(ctx context.Context, subnetID uint64) error

	ListAllocations(ctx context.Context, filter store.AllocationFilter) ([]schema.IPAllocation, uint64, error)
	GetAllocationHistory(ctx context.Context, allocationID uint64) ([]schema.IPAllocationHistory, error)
}

type engine struct {
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	config    Config
}

// NewEngine creates the allocation engine
func NewEngine(st store.Store, publisher messaging.Publisher, clock adapter.Clock, cfg Config) Engine {
	return &engine{
		store:     st,
		publisher: publisher,
		clock:     clock,
		config:    cfg,
	}
}

// AllocateIP validates the consumer, then lets the store pick and bind the first free
// address under the subnet row lock.
func (e *engine) AllocateIP(ctx context.Context, subnetID uint64, mac, username string, opts AllocateOptions) (*schema.IPAllocation, error) {
	if !domain.IsValidMACAddress(mac) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMACAddress, mac)
	}
	if !domain.IsValidUsername(username) {
		return nil, domain.ErrInvalidUsername
	}

	input := store.AllocateAddressInput{
		SubnetID:   subnetID,
		MACAddress: mac,
		Username:   username,
	}
	lease := opts.LeaseDuration
	if lease <= 0 {
		lease = e.config.DefaultLease
	}
	if lease > 0 {
		expiresAt := e.clock.Now().Add(lease)
		input.ExpiresAt = &expiresAt
	}

	allocation, err := e.store.AllocateAddress(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrInfrastructure) {
			logger.ErrorCtx(ctx, err, zap.Uint64("subnetID", subnetID), zap.String("username", username))
		} else {
			logger.WarnCtx(ctx, "Allocation refused",
				zap.Uint64("subnetID", subnetID),
				zap.String("username", username),
				zap.Error(err))
		}
		return nil, err
	}

	logger.InfoCtx(ctx, "Allocated IP address",
		zap.Uint64("allocationID", allocation.ID),
		zap.Uint64("subnetID", subnetID),
		zap.String("ip", allocation.IPAddress),
		zap.String("username", username))

	e.publish(ctx, domain.EventAllocationAllocated, allocation)

	return allocation, nil
}

func (e *engine) ReleaseIP(ctx context.Context, allocationID uint64) (bool, error) {
	allocation, err := e.store.ReleaseAllocation(ctx, allocationID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAllocationNotFound):
			logger.WarnCtx(ctx, "Allocation not found", zap.Uint64("allocationID", allocationID))
		case errors.Is(err, domain.ErrAlreadyReleased):
			logger.WarnCtx(ctx, "Allocation already released", zap.Uint64("allocationID", allocationID))
		default:
			logger.ErrorCtx(ctx, err, zap.Uint64("allocationID", allocationID))
		}
		return false, err
	}

	logger.InfoCtx(ctx, "Released IP address",
		zap.Uint64("allocationID", allocation.ID),
		zap.String("ip", allocation.IPAddress))

	e.publish(ctx, domain.EventAllocationReleased, allocation)

	return true, nil
}

func (e *engine) GetAvailableIPs(ctx context.Context, subnetID uint64) ([]string, error) {
	subnet, err := e.store.GetSubnet(ctx, subnetID)
	if err != nil {
		return nil, err
	}
	if subnet == nil {
		return []string{}, nil
	}
	// rows older than the prefix bound are refused rather than walked
	if subnet.PrefixLength < domain.MinSubnetPrefix {
		return nil, fmt.Errorf("%w: subnet %d is a /%d, listings are limited to /%d or longer",
			domain.ErrInvalidRange, subnetID, subnet.PrefixLength, domain.MinSubnetPrefix)
	}
	prefix, err := ipcalc.ParsePrefix(subnet.Network, subnet.PrefixLength)
	if err != nil {
		return nil, err
	}

	allocated, err := e.store.GetAllocatedAddresses(ctx, subnetID)
	if err != nil {
		return nil, err
	}
	used := make(map[string]struct{}, len(allocated))
	for _, a := range allocated {
		used[a] = struct{}{}
	}

	available := make([]string, 0, max(0, ipcalc.SubnetSize(subnet.PrefixLength)-len(used)))
	for h := range ipcalc.Hosts(prefix) {
		s := h.String()
		if _, ok := used[s]; !ok {
			available = append(available, s)
		}
	}
	return available, nil
}

func (e *engine) GetPoolUtilization(ctx context.Context, poolID uint64) (*Utilization, error) {
	pool, err := e.store.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrPoolNotFound, poolID)
	}

	counts, err := e.store.GetSubnetAllocationCounts(ctx, poolID)
	if err != nil {
		return nil, err
	}

	u := ComputeUtilization(counts)
	u.PoolID = poolID
	return &u, nil
}

// ComputeUtilization sums subnet sizes and allocated counts.
// The percentage is rounded to two decimals and is 0 for an empty pool.
func ComputeUtilization(counts []store.SubnetAllocationCount) Utilization {
	var u Utilization
	for _, c := range counts {
		u.Total += int64(ipcalc.SubnetSize(c.PrefixLength))
		u.Allocated += c.Allocated
	}
	u.Available = u.Total - u.Allocated
	if u.Available < 0 {
		u.Available = 0
	}
	if u.Total > 0 {
		u.UtilizationPercent = math.Round(float64(u.Allocated)/float64(u.Total)*100*100) / 100
	}
	return u
}

func (e *engine) CleanupExpiredAllocations(ctx context.Context, retentionDays int) (*store.CleanupResult, error) {
	if retentionDays < 0 {
		retentionDays = 0
	}
	cutoff := e.clock.Now().AddDate(0, 0, -retentionDays)

	result, err := e.store.CleanupExpiredAllocations(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Cleaned up expired allocations",
		zap.Int("retentionDays", retentionDays),
		zap.Int64("expired_count", result.ExpiredCount),
		zap.Int64("history_count", result.HistoryCount))

	return result, nil
}

func (e *engine) ExpireLeases(ctx context.Context) (int64, error) {
	n, err := e.store.ExpireLeases(ctx, e.clock.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.InfoCtx(ctx, "Expired leases", zap.Int64("count", n))
	}
	return n, nil
}

// publish is best effort; the allocation is already committed
func (e *engine) publish(ctx context.Context, eventType domain.EventType, a *schema.IPAllocation) {
	event := domain.NewAllocationEvent(eventType, e.clock.Now(), domain.AllocationEvent{
		AllocationID: a.ID,
		SubnetID:     a.SubnetID,
		IPAddress:    a.IPAddress,
		MACAddress:   a.MACAddress,
		Username:     a.Username,
	})
	if err := e.publisher.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish allocation event",
			zap.String("type", string(eventType)),
			zap.Uint64("allocationID", a.ID),
			zap.Error(err))
	}
}
