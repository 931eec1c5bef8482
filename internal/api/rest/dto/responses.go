package dto

import (
	"time"

	"github.com/ispcore/ipam/internal/coordination"
	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/store/schema"
)

// PoolResponse represents a pool
type PoolResponse struct {
	ID          uint64                `json:"id"`
	Name        string                `json:"name"`
	Description *string               `json:"description,omitempty"`
	StartIP     string                `json:"start_ip"`
	EndIP       string                `json:"end_ip"`
	Gateway     *string               `json:"gateway,omitempty"`
	DNSServers  []string              `json:"dns_servers"`
	UsageClass  string                `json:"usage_class"`
	VLANID      *int                  `json:"vlan_id,omitempty"`
	Status      domain.ResourceStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// SubnetResponse represents a subnet
type SubnetResponse struct {
	ID           uint64                `json:"id"`
	PoolID       uint64                `json:"pool_id"`
	Network      string                `json:"network"`
	PrefixLength int                   `json:"prefix_length"`
	CIDR         string                `json:"cidr"`
	Gateway      *string               `json:"gateway,omitempty"`
	VLANID       *int                  `json:"vlan_id,omitempty"`
	Description  *string               `json:"description,omitempty"`
	Status       domain.ResourceStatus `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// AllocationResponse represents an allocation
type AllocationResponse struct {
	ID          uint64                  `json:"id"`
	SubnetID    uint64                  `json:"subnet_id"`
	IPAddress   string                  `json:"ip_address"`
	MACAddress  string                  `json:"mac_address"`
	Username    string                  `json:"username"`
	Status      domain.AllocationStatus `json:"status"`
	AllocatedAt time.Time               `json:"allocated_at"`
	ReleasedAt  *time.Time              `json:"released_at,omitempty"`
	ExpiresAt   *time.Time              `json:"expires_at,omitempty"`
}

// AllocationHistoryResponse is one history row
type AllocationHistoryResponse struct {
	ID           uint64               `json:"id"`
	AllocationID uint64               `json:"allocation_id"`
	Action       domain.HistoryAction `json:"action"`
	IPAddress    string               `json:"ip_address"`
	MACAddress   string               `json:"mac_address"`
	Username     string               `json:"username"`
	CreatedAt    time.Time            `json:"created_at"`
}

// AllocationListResponse is a page of allocations
type AllocationListResponse struct {
	Allocations []AllocationResponse `json:"allocations"`
	Total       uint64               `json:"total"`
	Offset      uint64               `json:"offset"`
}

// AvailableIPsResponse lists the free hosts of a subnet
type AvailableIPsResponse struct {
	SubnetID  uint64   `json:"subnet_id"`
	Count     int      `json:"count"`
	Addresses []string `json:"addresses"`
}

// ReleaseResponse reports the outcome of a release
type ReleaseResponse struct {
	Released bool `json:"released"`
}

// StartMigrationResponse carries the generated run id
type StartMigrationResponse struct {
	RunID string `json:"run_id"`
}

// MigrationStateResponse is the live view of a run
type MigrationStateResponse struct {
	RunID    string                     `json:"run_id"`
	Progress *coordination.Progress     `json:"progress"`
	Status   *coordination.StatusRecord `json:"status"`
	Metadata *coordination.Metadata     `json:"metadata"`
}

// CancelMigrationResponse reports whether the cancellation was recorded
type CancelMigrationResponse struct {
	Cancelled bool `json:"cancelled"`
}

func NewPoolResponse(p *schema.IPPool) PoolResponse {
	dns := []string(p.DNSServers)
	if dns == nil {
		dns = []string{}
	}
	return PoolResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartIP:     p.StartIP,
		EndIP:       p.EndIP,
		Gateway:     p.Gateway,
		DNSServers:  dns,
		UsageClass:  p.UsageClass,
		VLANID:      p.VLANID,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewPoolListResponse(pools []schema.IPPool) []PoolResponse {
	out := make([]PoolResponse, 0, len(pools))
	for i := range pools {
		out = append(out, NewPoolResponse(&pools[i]))
	}
	return out
}

func NewSubnetResponse(s *schema.IPSubnet) SubnetResponse {
	return SubnetResponse{
		ID:           s.ID,
		PoolID:       s.PoolID,
		Network:      s.Network,
		PrefixLength: s.PrefixLength,
		CIDR:         s.CIDR(),
		Gateway:      s.Gateway,
		VLANID:       s.VLANID,
		Description:  s.Description,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func NewSubnetListResponse(subnets []schema.IPSubnet) []SubnetResponse {
	out := make([]SubnetResponse, 0, len(subnets))
	for i := range subnets {
		out = append(out, NewSubnetResponse(&subnets[i]))
	}
	return out
}

func NewAllocationResponse(a *schema.IPAllocation) AllocationResponse {
	return AllocationResponse{
		ID:          a.ID,
		SubnetID:    a.SubnetID,
		IPAddress:   a.IPAddress,
		MACAddress:  a.MACAddress,
		Username:    a.Username,
		Status:      a.Status,
		AllocatedAt: a.AllocatedAt,
		ReleasedAt:  a.ReleasedAt,
		ExpiresAt:   a.ExpiresAt,
	}
}

func NewAllocationListResponse(allocations []schema.IPAllocation, total, offset uint64) AllocationListResponse {
	out := make([]AllocationResponse, 0, len(allocations))
	for i := range allocations {
		out = append(out, NewAllocationResponse(&allocations[i]))
	}
	return AllocationListResponse{Allocations: out, Total: total, Offset: offset}
}

func NewAllocationHistoryResponse(rows []schema.IPAllocationHistory) []AllocationHistoryResponse {
	out := make([]AllocationHistoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, AllocationHistoryResponse{
			ID:           r.ID,
			AllocationID: r.AllocationID,
			Action:       r.Action,
			IPAddress:    r.IPAddress,
			MACAddress:   r.MACAddress,
			Username:     r.Username,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}
