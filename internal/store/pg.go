package store

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/ipcalc"
	"github.com/ispcore/ipam/internal/store/schema"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// calculateSafeBatchSize keeps bulk inserts under PostgreSQL's 65535 bind parameter limit.
// A fixed headroom covers GORM-added columns and ON CONFLICT parameters.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	safeBatchSize := max((maxParams-totalHeadroom)/fieldsPerRecord, 1)
	if safeBatchSize > totalRecords {
		return totalRecords
	}
	return safeBatchSize
}

// businessErrors are outcomes callers branch on; everything else leaving a
// transaction is treated as an infrastructure failure.
var businessErrors = []error{
	domain.ErrPoolNotFound,
	domain.ErrSubnetNotFound,
	domain.ErrAllocationNotFound,
	domain.ErrMigrationNotFound,
	domain.ErrNoCapacity,
	domain.ErrAlreadyReleased,
	domain.ErrInvalidRange,
	domain.ErrSubnetOverlap,
	domain.ErrPoolNameTaken,
	domain.ErrPoolInUse,
	domain.ErrSubnetInUse,
	domain.ErrMigrationConflict,
	domain.ErrInfrastructure,
}

func wrapTxError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return domain.NewInfrastructureError(op, err)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}

// =============================================================================
// Pools
// =============================================================================

// CreatePool creates a pool; a duplicate name yields domain.ErrPoolNameTaken
func (s *pgStore) CreatePool(ctx context.Context, input CreatePoolInput) (*schema.IPPool, error) {
	pool := &schema.IPPool{
		Name:        input.Name,
		Description: input.Description,
		StartIP:     input.StartIP,
		EndIP:       input.EndIP,
		Gateway:     input.Gateway,
		DNSServers:  datatypes.NewJSONSlice(input.DNSServers),
		UsageClass:  input.UsageClass,
		VLANID:      input.VLANID,
		Status:      input.Status,
	}
	if pool.DNSServers == nil {
		pool.DNSServers = datatypes.NewJSONSlice([]string{})
	}
	if pool.UsageClass == "" {
		pool.UsageClass = "pppoe"
	}
	if pool.Status == "" {
		pool.Status = domain.ResourceStatusActive
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(pool)
	if result.Error != nil {
		return nil, domain.NewInfrastructureError("create pool", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrPoolNameTaken, input.Name)
	}

	return pool, nil
}

// GetPool retrieves a pool by ID
func (s *pgStore) GetPool(ctx context.Context, poolID uint64) (*schema.IPPool, error) {
	var pool schema.IPPool
	err := s.db.WithContext(ctx).Where("id = ?", poolID).First(&pool).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.NewInfrastructureError("get pool", err)
	}
	return &pool, nil
}

// ListPools retrieves every pool
func (s *pgStore) ListPools(ctx context.Context) ([]schema.IPPool, error) {
	var pools []schema.IPPool
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&pools).Error; err != nil {
		return nil, domain.NewInfrastructureError("list pools", err)
	}
	return pools, nil
}

// UpdatePool applies the non-nil fields of input
func (s *pgStore) UpdatePool(ctx context.Context, poolID uint64, input UpdatePoolInput) (*schema.IPPool, error) {
	updates := make(map[string]interface{})
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Gateway != nil {
		updates["gateway"] = *input.Gateway
	}
	if input.DNSServers != nil {
		updates["dns_servers"] = datatypes.NewJSONSlice(input.DNSServers)
	}
	if input.UsageClass != nil {
		updates["usage_class"] = *input.UsageClass
	}
	if input.VLANID != nil {
		updates["vlan_id"] = *input.VLANID
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).
			Model(&schema.IPPool{}).
			Where("id = ?", poolID).
			Updates(updates)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("%w: %s", domain.ErrPoolNameTaken, *input.Name)
			}
			return nil, domain.NewInfrastructureError("update pool", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrPoolNotFound
		}
	}

	pool, err := s.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, domain.ErrPoolNotFound
	}
	return pool, nil
}

// DeletePool removes a pool and, by cascade, its subnets.
// The subnet rows are locked first so no allocation can land while the check runs.
func (s *pgStore) DeletePool(ctx context.Context, poolID uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pool schema.IPPool
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", poolID).
			First(&pool).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPoolNotFound
			}
			return fmt.Errorf("failed to lock pool: %w", err)
		}

		var subnetIDs []uint64
		err = tx.Model(&schema.IPSubnet{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pool_id = ?", poolID).
			Pluck("id", &subnetIDs).Error
		if err != nil {
			return fmt.Errorf("failed to lock subnets: %w", err)
		}

		if len(subnetIDs) > 0 {
			var active int64
			err = tx.Model(&schema.IPAllocation{}).
				Where("subnet_id IN ? AND status = ?", subnetIDs, domain.AllocationStatusAllocated).
				Count(&active).Error
			if err != nil {
				return fmt.Errorf("failed to count active allocations: %w", err)
			}
			if active > 0 {
				return domain.ErrPoolInUse
			}
		}

		if err := tx.Delete(&schema.IPPool{}, poolID).Error; err != nil {
			return fmt.Errorf("failed to delete pool: %w", err)
		}
		return nil
	})

	return wrapTxError("delete pool", err)
}

// =============================================================================
// Subnets
// =============================================================================

// CreateSubnet creates a subnet after checking it against every existing subnet.
// The table lock serializes concurrent creations so two overlapping blocks cannot both pass the check.
func (s *pgStore) CreateSubnet(ctx context.Context, input CreateSubnetInput) (*schema.IPSubnet, error) {
	candidate, err := ipcalc.ParsePrefix(input.Network, input.PrefixLength)
	if err != nil {
		return nil, err
	}

	subnet := &schema.IPSubnet{
		PoolID:       input.PoolID,
		Network:      candidate.Addr().String(),
		PrefixLength: input.PrefixLength,
		Gateway:      input.Gateway,
		VLANID:       input.VLANID,
		Description:  input.Description,
		Status:       input.Status,
	}
	if subnet.Status == "" {
		subnet.Status = domain.ResourceStatusActive
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pool schema.IPPool
		err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Where("id = ?", input.PoolID).
			First(&pool).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPoolNotFound
			}
			return fmt.Errorf("failed to lock pool: %w", err)
		}

		if err := tx.Exec("LOCK TABLE ip_subnets IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return fmt.Errorf("failed to lock subnets table: %w", err)
		}

		refs, err := subnetRefs(tx)
		if err != nil {
			return err
		}
		matches, err := ipcalc.DetectOverlap(candidate, refs, nil)
		if err != nil {
			return err
		}
		if len(matches) > 0 {
			return fmt.Errorf("%w: %s/%d overlaps subnet %d (%s/%d)", domain.ErrSubnetOverlap,
				subnet.Network, subnet.PrefixLength, matches[0].ID, matches[0].Network, matches[0].PrefixLength)
		}

		if err := tx.Create(subnet).Error; err != nil {
			return fmt.Errorf("failed to create subnet: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, wrapTxError("create subnet", err)
	}

	return subnet, nil
}

func subnetRefs(tx *gorm.DB) ([]ipcalc.SubnetRef, error) {
	var subnets []schema.IPSubnet
	if err := tx.Select("id", "network", "prefix_length").Find(&subnets).Error; err != nil {
		return nil, fmt.Errorf("failed to list subnets: %w", err)
	}
	refs := make([]ipcalc.SubnetRef, 0, len(subnets))
	for _, sn := range subnets {
		refs = append(refs, ipcalc.SubnetRef{ID: sn.ID, Network: sn.Network, PrefixLength: sn.PrefixLength})
	}
	return refs, nil
}

// GetSubnet retrieves a subnet by ID
func (s *pgStore) GetSubnet(ctx context.Context, subnetID uint64) (*schema.IPSubnet, error) {
	var subnet schema.IPSubnet
	err := s.db.WithContext(ctx).Where("id = ?", subnetID).First(&subnet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.NewInfrastructureError("get subnet", err)
	}
	return &subnet, nil
}

// ListSubnets lists subnets, optionally for a single pool
func (s *pgStore) ListSubnets(ctx context.Context, poolID *uint64) ([]schema.IPSubnet, error) {
	query := s.db.WithContext(ctx).Order("id ASC")
	if poolID != nil {
		query = query.Where("pool_id = ?", *poolID)
	}

	var subnets []schema.IPSubnet
	if err := query.Find(&subnets).Error; err != nil {
		return nil, domain.NewInfrastructureError("list subnets", err)
	}
	return subnets, nil
}

// UpdateSubnet changes gateway, VLAN, description or status
func (s *pgStore) UpdateSubnet(ctx context.Context, subnetID uint64, input UpdateSubnetInput) (*schema.IPSubnet, error) {
	updates := make(map[string]interface{})
	if input.Gateway != nil {
		updates["gateway"] = *input.Gateway
	}
	if input.VLANID != nil {
		updates["vlan_id"] = *input.VLANID
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).
			Model(&schema.IPSubnet{}).
			Where("id = ?", subnetID).
			Updates(updates)
		if result.Error != nil {
			return nil, domain.NewInfrastructureError("update subnet", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrSubnetNotFound
		}
	}

	subnet, err := s.GetSubnet(ctx, subnetID)
	if err != nil {
		return nil, err
	}
	if subnet == nil {
		return nil, domain.ErrSubnetNotFound
	}
	return subnet, nil
}

// DeleteSubnet removes a subnet with no allocated addresses
func (s *pgStore) DeleteSubnet(ctx context.Context, subnetID uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockSubnet(tx, subnetID); err != nil {
			return err
		}

		var active int64
		err := tx.Model(&schema.IPAllocation{}).
			Where("subnet_id = ? AND status = ?", subnetID, domain.AllocationStatusAllocated).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to count active allocations: %w", err)
		}
		if active > 0 {
			return domain.ErrSubnetInUse
		}

		if err := tx.Delete(&schema.IPSubnet{}, subnetID).Error; err != nil {
			return fmt.Errorf("failed to delete subnet: %w", err)
		}
		return nil
	})

	return wrapTxError("delete subnet", err)
}

// lockSubnet takes the row lock that serializes allocation within a subnet
func lockSubnet(tx *gorm.DB, subnetID uint64) (*schema.IPSubnet, error) {
	var subnet schema.IPSubnet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", subnetID).
		First(&subnet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrSubnetNotFound, subnetID)
		}
		return nil, fmt.Errorf("failed to lock subnet %d: %w", subnetID, err)
	}
	return &subnet, nil
}

// =============================================================================
// Allocations
// =============================================================================

// AllocateAddress binds the lowest free host of an active subnet.
// The subnet row lock is held until the allocation and its history row are written.
func (s *pgStore) AllocateAddress(ctx context.Context, input AllocateAddressInput) (*schema.IPAllocation, error) {
	var allocation *schema.IPAllocation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subnet, err := lockSubnet(tx, input.SubnetID)
		if err != nil {
			return err
		}
		if subnet.Status != domain.ResourceStatusActive {
			return fmt.Errorf("%w: subnet %d is %s", domain.ErrSubnetNotFound, subnet.ID, subnet.Status)
		}

		addr, ok, err := firstFreeAddress(tx, subnet)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.NoCapacityError{SubnetID: subnet.ID}
		}

		allocation, err = createAllocation(tx, subnet.ID, addr.String(), input.MACAddress, input.Username, input.ExpiresAt)
		return err
	})
	if err != nil {
		return nil, wrapTxError("allocate address", err)
	}

	return allocation, nil
}

// firstFreeAddress must run with the subnet row locked
func firstFreeAddress(tx *gorm.DB, subnet *schema.IPSubnet) (netip.Addr, bool, error) {
	prefix, err := ipcalc.ParsePrefix(subnet.Network, subnet.PrefixLength)
	if err != nil {
		return netip.Addr{}, false, err
	}

	var taken []string
	err = tx.Model(&schema.IPAllocation{}).
		Where("subnet_id = ? AND status = ?", subnet.ID, domain.AllocationStatusAllocated).
		Pluck("ip_address", &taken).Error
	if err != nil {
		return netip.Addr{}, false, fmt.Errorf("failed to load allocated addresses: %w", err)
	}

	used := make(map[string]struct{}, len(taken))
	for _, a := range taken {
		used[a] = struct{}{}
	}

	addr, ok := ipcalc.FirstFree(prefix, func(a netip.Addr) bool {
		_, inUse := used[a.String()]
		return inUse
	})
	return addr, ok, nil
}

func createAllocation(tx *gorm.DB, subnetID uint64, address, mac, username string, expiresAt *time.Time) (*schema.IPAllocation, error) {
	allocation := &schema.IPAllocation{
		SubnetID:    subnetID,
		IPAddress:   address,
		MACAddress:  mac,
		Username:    username,
		Status:      domain.AllocationStatusAllocated,
		AllocatedAt: time.Now().UTC(),
		ExpiresAt:   expiresAt,
	}
	if err := tx.Create(allocation).Error; err != nil {
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}

	history := schema.NewAllocationHistory(allocation, domain.HistoryActionAllocated)
	if err := tx.Create(history).Error; err != nil {
		return nil, fmt.Errorf("failed to create allocation history: %w", err)
	}

	return allocation, nil
}

// releaseAllocation must run with the allocation row locked
func releaseAllocation(tx *gorm.DB, allocation *schema.IPAllocation) error {
	now := time.Now().UTC()
	err := tx.Model(allocation).Updates(map[string]interface{}{
		"status":      domain.AllocationStatusReleased,
		"released_at": now,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to release allocation %d: %w", allocation.ID, err)
	}
	allocation.Status = domain.AllocationStatusReleased
	allocation.ReleasedAt = &now

	history := schema.NewAllocationHistory(allocation, domain.HistoryActionReleased)
	if err := tx.Create(history).Error; err != nil {
		return fmt.Errorf("failed to create allocation history: %w", err)
	}
	return nil
}

func lockAllocation(tx *gorm.DB, allocationID uint64) (*schema.IPAllocation, error) {
	var allocation schema.IPAllocation
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", allocationID).
		First(&allocation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrAllocationNotFound, allocationID)
		}
		return nil, fmt.Errorf("failed to lock allocation %d: %w", allocationID, err)
	}
	if allocation.Status != domain.AllocationStatusAllocated {
		return &allocation, fmt.Errorf("%w: allocation %d is %s", domain.ErrAlreadyReleased, allocation.ID, allocation.Status)
	}
	return &allocation, nil
}

// ReleaseAllocation releases one allocation under its own row lock
func (s *pgStore) ReleaseAllocation(ctx context.Context, allocationID uint64) (*schema.IPAllocation, error) {
	var allocation *schema.IPAllocation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		allocation, err = lockAllocation(tx, allocationID)
		if err != nil {
			return err
		}
		return releaseAllocation(tx, allocation)
	})
	if err != nil {
		return nil, wrapTxError("release allocation", err)
	}

	return allocation, nil
}

// GetAllocation retrieves an allocation by ID
func (s *pgStore) GetAllocation(ctx context.Context, allocationID uint64) (*schema.IPAllocation, error) {
	var allocation schema.IPAllocation
	err := s.db.WithContext(ctx).Where("id = ?", allocationID).First(&allocation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.NewInfrastructureError("get allocation", err)
	}
	return &allocation, nil
}

// ListAllocations retrieves allocations matching filter, newest first
func (s *pgStore) ListAllocations(ctx context.Context, filter AllocationFilter) ([]schema.IPAllocation, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.IPAllocation{})
	if filter.SubnetID != nil {
		query = query.Where("subnet_id = ?", *filter.SubnetID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Username != nil {
		query = query.Where("username = ?", *filter.Username)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInfrastructureError("count allocations", err)
	}

	var allocations []schema.IPAllocation
	err := query.
		Order("id DESC").
		Limit(normalizeLimit(filter.Limit)).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&allocations).Error
	if err != nil {
		return nil, 0, domain.NewInfrastructureError("list allocations", err)
	}

	return allocations, uint64(total), nil //nolint:gosec,G115
}

// GetAllocatedAddresses returns the active addresses of a subnet
func (s *pgStore) GetAllocatedAddresses(ctx context.Context, subnetID uint64) ([]string, error) {
	var addresses []string
	err := s.db.WithContext(ctx).
		Model(&schema.IPAllocation{}).
		Where("subnet_id = ? AND status = ?", subnetID, domain.AllocationStatusAllocated).
		Pluck("ip_address", &addresses).Error
	if err != nil {
		return nil, domain.NewInfrastructureError("get allocated addresses", err)
	}
	return addresses, nil
}

// GetAllocationHistory returns the history of one allocation
func (s *pgStore) GetAllocationHistory(ctx context.Context, allocationID uint64) ([]schema.IPAllocationHistory, error) {
	var history []schema.IPAllocationHistory
	err := s.db.WithContext(ctx).
		Where("allocation_id = ?", allocationID).
		Order("id ASC").
		Find(&history).Error
	if err != nil {
		return nil, domain.NewInfrastructureError("get allocation history", err)
	}
	return history, nil
}

// GetSubnetAllocationCounts aggregates allocated rows per subnet of a pool with a single GROUP BY
func (s *pgStore) GetSubnetAllocationCounts(ctx context.Context, poolID uint64) ([]SubnetAllocationCount, error) {
	var counts []SubnetAllocationCount
	err := s.db.WithContext(ctx).
		Table("ip_subnets AS s").
		Select("s.id AS subnet_id, s.prefix_length, COUNT(a.id) AS allocated").
		Joins("LEFT JOIN ip_allocations AS a ON a.subnet_id = s.id AND a.status = ?", domain.AllocationStatusAllocated).
		Where("s.pool_id = ?", poolID).
		Group("s.id, s.prefix_length").
		Order("s.id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, domain.NewInfrastructureError("count pool allocations", err)
	}
	return counts, nil
}

// ExpireLeases marks every allocation whose lease ended at or before now as expired.
// Rows locked by a concurrent release are skipped and picked up on the next run.
func (s *pgStore) ExpireLeases(ctx context.Context, now time.Time) (int64, error) {
	var expired int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var due []schema.IPAllocation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", domain.AllocationStatusAllocated, now).
			Find(&due).Error
		if err != nil {
			return fmt.Errorf("failed to load expired leases: %w", err)
		}
		if len(due) == 0 {
			return nil
		}

		ids := make([]uint64, 0, len(due))
		histories := make([]*schema.IPAllocationHistory, 0, len(due))
		for i := range due {
			ids = append(ids, due[i].ID)
			due[i].Status = domain.AllocationStatusExpired
			due[i].ReleasedAt = due[i].ExpiresAt
			histories = append(histories, schema.NewAllocationHistory(&due[i], domain.HistoryActionExpired))
		}

		result := tx.Model(&schema.IPAllocation{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":      domain.AllocationStatusExpired,
				"released_at": gorm.Expr("expires_at"),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to expire leases: %w", result.Error)
		}
		expired = result.RowsAffected

		batchSize := calculateSafeBatchSize(len(histories), 9)
		if err := tx.CreateInBatches(histories, batchSize).Error; err != nil {
			return fmt.Errorf("failed to create expiry history: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, wrapTxError("expire leases", err)
	}

	return expired, nil
}

// CleanupExpiredAllocations deletes expired allocations and history older than cutoff.
// Only status=expired allocation rows are eligible; allocated rows are never touched.
func (s *pgStore) CleanupExpiredAllocations(ctx context.Context, cutoff time.Time) (*CleanupResult, error) {
	result := &CleanupResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted := tx.
			Where("status = ? AND COALESCE(released_at, expires_at, updated_at) < ?", domain.AllocationStatusExpired, cutoff).
			Delete(&schema.IPAllocation{})
		if deleted.Error != nil {
			return fmt.Errorf("failed to delete expired allocations: %w", deleted.Error)
		}
		result.ExpiredCount = deleted.RowsAffected

		history := tx.
			Where("released_at IS NOT NULL AND released_at < ?", cutoff).
			Delete(&schema.IPAllocationHistory{})
		if history.Error != nil {
			return fmt.Errorf("failed to delete allocation history: %w", history.Error)
		}
		result.HistoryCount = history.RowsAffected

		return nil
	})
	if err != nil {
		return nil, wrapTxError("cleanup expired allocations", err)
	}

	return result, nil
}

// =============================================================================
// Subscribers and migration
// =============================================================================

// CountSubscribersByProfile counts subscribers attached to a profile
func (s *pgStore) CountSubscribersByProfile(ctx context.Context, profileID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.NetworkUser{}).
		Where("profile_id = ?", profileID).
		Count(&count).Error
	if err != nil {
		return 0, domain.NewInfrastructureError("count subscribers", err)
	}
	return count, nil
}

// ListMigrationCandidates lists the profile's subscribers with an allocated address in the pool
func (s *pgStore) ListMigrationCandidates(ctx context.Context, poolID uint64, profileID uint64) ([]MigrationCandidate, error) {
	var candidates []MigrationCandidate
	err := s.db.WithContext(ctx).
		Table("network_users AS u").
		Select("u.username, a.mac_address, a.id AS allocation_id, a.subnet_id, a.ip_address").
		Joins("JOIN ip_allocations AS a ON a.username = u.username AND a.status = ?", domain.AllocationStatusAllocated).
		Joins("JOIN ip_subnets AS s ON s.id = a.subnet_id").
		Where("u.profile_id = ? AND s.pool_id = ?", profileID, poolID).
		Order("u.username ASC, a.id ASC").
		Scan(&candidates).Error
	if err != nil {
		return nil, domain.NewInfrastructureError("list migration candidates", err)
	}
	return candidates, nil
}

// ReassignSubscriber releases the subscriber's current allocation and binds the lowest
// free address of the destination pool, scanning its active subnets in id order.
// Subnet locks are always taken in ascending id order.
func (s *pgStore) ReassignSubscriber(ctx context.Context, input ReassignSubscriberInput) (*schema.IPAllocation, error) {
	var allocation *schema.IPAllocation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := lockAllocation(tx, input.FromAllocationID)
		if err != nil {
			return err
		}
		if current.Username != input.Username {
			return fmt.Errorf("%w: allocation %d belongs to %s", domain.ErrAllocationNotFound, current.ID, current.Username)
		}

		var subnetIDs []uint64
		err = tx.Model(&schema.IPSubnet{}).
			Where("pool_id = ? AND status = ?", input.ToPoolID, domain.ResourceStatusActive).
			Order("id ASC").
			Pluck("id", &subnetIDs).Error
		if err != nil {
			return fmt.Errorf("failed to list destination subnets: %w", err)
		}

		for _, subnetID := range subnetIDs {
			subnet, err := lockSubnet(tx, subnetID)
			if err != nil {
				return err
			}
			addr, ok, err := firstFreeAddress(tx, subnet)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			if err := releaseAllocation(tx, current); err != nil {
				return err
			}
			allocation, err = createAllocation(tx, subnet.ID, addr.String(), current.MACAddress, current.Username, current.ExpiresAt)
			if err != nil {
				return err
			}
			return setFramedIPAddress(tx, current.Username, allocation.IPAddress)
		}

		return fmt.Errorf("%w in pool %d", domain.ErrNoCapacity, input.ToPoolID)
	})
	if err != nil {
		return nil, wrapTxError("reassign subscriber", err)
	}

	return allocation, nil
}

// setFramedIPAddress rewrites the RADIUS reply attribute derived from the allocation store
func setFramedIPAddress(tx *gorm.DB, username, address string) error {
	result := tx.Model(&schema.RadReply{}).
		Where("username = ? AND attribute = ?", username, domain.FramedIPAddressAttribute).
		Updates(map[string]interface{}{"value": address, "op": ":="})
	if result.Error != nil {
		return fmt.Errorf("failed to update radreply for %s: %w", username, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	reply := &schema.RadReply{
		Username:  username,
		Attribute: domain.FramedIPAddressAttribute,
		Op:        ":=",
		Value:     address,
	}
	if err := tx.Create(reply).Error; err != nil {
		return fmt.Errorf("failed to create radreply for %s: %w", username, err)
	}
	return nil
}

// GetSubscriberAddress returns the Framed-IP-Address value of username
func (s *pgStore) GetSubscriberAddress(ctx context.Context, username string) (string, error) {
	var reply schema.RadReply
	err := s.db.WithContext(ctx).
		Where("username = ? AND attribute = ?", username, domain.FramedIPAddressAttribute).
		First(&reply).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", domain.NewInfrastructureError("get subscriber address", err)
	}
	return reply.Value, nil
}

// RestoreSubscriberAddress binds username back to address.
// The allocation store stays authoritative: the subscriber's current allocations are
// released, address is re-allocated inside the managed subnet that contains it, and
// only then is the Framed-IP-Address attribute rewritten.
func (s *pgStore) RestoreSubscriberAddress(ctx context.Context, username string, address string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs, err := subnetRefs(tx)
		if err != nil {
			return err
		}
		var target *ipcalc.SubnetRef
		for i := range refs {
			if ipcalc.Contains(refs[i].Network, refs[i].PrefixLength, address) {
				target = &refs[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("%w: %s is not inside any managed subnet", domain.ErrInvalidRange, address)
		}

		subnet, err := lockSubnet(tx, target.ID)
		if err != nil {
			return err
		}

		var holder schema.IPAllocation
		err = tx.Where("subnet_id = ? AND ip_address = ? AND status = ?", subnet.ID, address, domain.AllocationStatusAllocated).
			First(&holder).Error
		switch {
		case err == nil && holder.Username == username:
			return setFramedIPAddress(tx, username, address)
		case err == nil:
			return fmt.Errorf("%w: %s is allocated to %s", domain.ErrNoCapacity, address, holder.Username)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check address holder: %w", err)
		}

		var current []schema.IPAllocation
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("username = ? AND status = ?", username, domain.AllocationStatusAllocated).
			Order("id ASC").
			Find(&current).Error
		if err != nil {
			return fmt.Errorf("failed to lock current allocations: %w", err)
		}

		mac, err := subscriberMAC(tx, username, current)
		if err != nil {
			return err
		}
		for i := range current {
			if err := releaseAllocation(tx, &current[i]); err != nil {
				return err
			}
		}

		if _, err := createAllocation(tx, subnet.ID, address, mac, username, nil); err != nil {
			return err
		}
		return setFramedIPAddress(tx, username, address)
	})

	return wrapTxError("restore subscriber address", err)
}

func subscriberMAC(tx *gorm.DB, username string, current []schema.IPAllocation) (string, error) {
	if len(current) > 0 {
		return current[0].MACAddress, nil
	}

	var user schema.NetworkUser
	err := tx.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: subscriber %s", domain.ErrAllocationNotFound, username)
		}
		return "", fmt.Errorf("failed to load subscriber %s: %w", username, err)
	}
	if user.MACAddress == nil || *user.MACAddress == "" {
		return "", fmt.Errorf("%w: no MAC address on record for %s", domain.ErrInvalidMACAddress, username)
	}
	return *user.MACAddress, nil
}

// CreateMigrationRun indexes a new run. The partial unique indexes on active runs turn a
// concurrent run for the same profile or destination pool into a no-op insert.
func (s *pgStore) CreateMigrationRun(ctx context.Context, input CreateMigrationRunInput) error {
	run := &schema.MigrationRun{
		RunID:     input.RunID,
		OldPoolID: input.OldPoolID,
		NewPoolID: input.NewPoolID,
		ProfileID: input.ProfileID,
		Status:    domain.MigrationStatusInitializing,
		StartedAt: input.StartedAt,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(run)
	if result.Error != nil {
		return domain.NewInfrastructureError("create migration run", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMigrationConflict
	}
	return nil
}

// GetMigrationRun retrieves a run, retrying on the primary when a replica lags
func (s *pgStore) GetMigrationRun(ctx context.Context, runID string) (*schema.MigrationRun, error) {
	var run schema.MigrationRun

	err := s.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error
	if err == nil {
		return &run, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewInfrastructureError("get migration run", err)
	}
	if !hasDBResolver(s.db) {
		return nil, nil
	}

	err = s.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("run_id = ?", runID).
		First(&run).Error
	if err == nil {
		return &run, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, domain.NewInfrastructureError("get migration run", err)
}

// ListMigrationRuns returns the latest runs
func (s *pgStore) ListMigrationRuns(ctx context.Context, limit int) ([]schema.MigrationRun, error) {
	var runs []schema.MigrationRun
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(normalizeLimit(limit)).
		Find(&runs).Error
	if err != nil {
		return nil, domain.NewInfrastructureError("list migration runs", err)
	}
	return runs, nil
}

// TransitionMigrationRunStatus is a compare-and-set on the indexed status of a run
func (s *pgStore) TransitionMigrationRunStatus(ctx context.Context, runID string, from []domain.MigrationStatus, status domain.MigrationStatus, summary datatypes.JSON) (bool, error) {
	if len(from) == 0 {
		return false, fmt.Errorf("no source status for run %s", runID)
	}

	updates := map[string]interface{}{
		"status": status,
	}
	if status.IsTerminal() {
		updates["finished_at"] = time.Now().UTC()
	}
	if summary != nil {
		updates["summary"] = summary
	}

	result := s.db.WithContext(ctx).
		Model(&schema.MigrationRun{}).
		Where("run_id = ? AND status IN ?", runID, from).
		Updates(updates)
	if result.Error != nil {
		return false, domain.NewInfrastructureError("transition migration run status", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// the run may be newer than a lagging replica
	q := s.db.WithContext(ctx)
	if hasDBResolver(s.db) {
		q = q.Clauses(dbresolver.Write)
	}
	var count int64
	err := q.Model(&schema.MigrationRun{}).
		Where("run_id = ?", runID).
		Count(&count).Error
	if err != nil {
		return false, domain.NewInfrastructureError("transition migration run status", err)
	}
	if count == 0 {
		return false, fmt.Errorf("%w: %s", domain.ErrMigrationNotFound, runID)
	}
	return false, nil
}

// SetMigrationRunWorkflow records the workflow executing a run
func (s *pgStore) SetMigrationRunWorkflow(ctx context.Context, runID string, workflowID string, workflowRunID string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.MigrationRun{}).
		Where("run_id = ?", runID).
		Updates(map[string]interface{}{
			"workflow_id":     workflowID,
			"workflow_run_id": workflowRunID,
		})
	if result.Error != nil {
		return domain.NewInfrastructureError("set migration run workflow", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrMigrationNotFound, runID)
	}
	return nil
}
