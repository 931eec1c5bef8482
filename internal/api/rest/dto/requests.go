package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/store"
)

// CreatePoolRequest is the body of POST /api/v1/ipam/pools
type CreatePoolRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description *string               `json:"description"`
	StartIP     string                `json:"start_ip" binding:"required"`
	EndIP       string                `json:"end_ip" binding:"required"`
	Gateway     *string               `json:"gateway"`
	DNSServers  []string              `json:"dns_servers"`
	UsageClass  string                `json:"usage_class"`
	VLANID      *int                  `json:"vlan_id"`
	Status      domain.ResourceStatus `json:"status"`
}

func (r CreatePoolRequest) ToInput() store.CreatePoolInput {
	return store.CreatePoolInput{
		Name:        r.Name,
		Description: r.Description,
		StartIP:     r.StartIP,
		EndIP:       r.EndIP,
		Gateway:     r.Gateway,
		DNSServers:  r.DNSServers,
		UsageClass:  r.UsageClass,
		VLANID:      r.VLANID,
		Status:      r.Status,
	}
}

// UpdatePoolRequest is the body of PUT /api/v1/ipam/pools/:id. Omitted fields are unchanged.
type UpdatePoolRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Gateway     *string                `json:"gateway"`
	DNSServers  []string               `json:"dns_servers"`
	UsageClass  *string                `json:"usage_class"`
	VLANID      *int                   `json:"vlan_id"`
	Status      *domain.ResourceStatus `json:"status"`
}

func (r UpdatePoolRequest) ToInput() store.UpdatePoolInput {
	return store.UpdatePoolInput{
		Name:        r.Name,
		Description: r.Description,
		Gateway:     r.Gateway,
		DNSServers:  r.DNSServers,
		UsageClass:  r.UsageClass,
		VLANID:      r.VLANID,
		Status:      r.Status,
	}
}

// CreateSubnetRequest is the body of POST /api/v1/ipam/subnets
type CreateSubnetRequest struct {
	PoolID       uint64                `json:"pool_id" binding:"required"`
	Network      string                `json:"network" binding:"required"`
	PrefixLength int                   `json:"prefix_length" binding:"required"`
	Gateway      *string               `json:"gateway"`
	VLANID       *int                  `json:"vlan_id"`
	Description  *string               `json:"description"`
	Status       domain.ResourceStatus `json:"status"`
}

func (r CreateSubnetRequest) ToInput() store.CreateSubnetInput {
	return store.CreateSubnetInput{
		PoolID:       r.PoolID,
		Network:      r.Network,
		PrefixLength: r.PrefixLength,
		Gateway:      r.Gateway,
		VLANID:       r.VLANID,
		Description:  r.Description,
		Status:       r.Status,
	}
}

// UpdateSubnetRequest is the body of PUT /api/v1/ipam/subnets/:id
type UpdateSubnetRequest struct {
	Gateway     *string                `json:"gateway"`
	VLANID      *int                   `json:"vlan_id"`
	Description *string                `json:"description"`
	Status      *domain.ResourceStatus `json:"status"`
}

func (r UpdateSubnetRequest) ToInput() store.UpdateSubnetInput {
	return store.UpdateSubnetInput{
		Gateway:     r.Gateway,
		VLANID:      r.VLANID,
		Description: r.Description,
		Status:      r.Status,
	}
}

// AllocateRequest is the body of POST /api/v1/ipam/allocations
type AllocateRequest struct {
	SubnetID   uint64 `json:"subnet_id" binding:"required"`
	MACAddress string `json:"mac_address" binding:"required"`
	Username   string `json:"username" binding:"required"`
	// LeaseSeconds overrides the default lease; zero keeps the default
	LeaseSeconds int64 `json:"lease_seconds"`
}

// Validate validates the allocate request
func (r AllocateRequest) Validate() error {
	if r.LeaseSeconds < 0 {
		return errors.New("lease_seconds must not be negative")
	}
	return nil
}

func (r AllocateRequest) Options() ipam.AllocateOptions {
	return ipam.AllocateOptions{LeaseDuration: time.Duration(r.LeaseSeconds) * time.Second}
}

// MigrationRequest is the body of POST /api/v1/ipam/migrations and /migrations/validate
type MigrationRequest struct {
	OldPoolID uint64 `json:"old_pool_id" binding:"required"`
	NewPoolID uint64 `json:"new_pool_id" binding:"required"`
	ProfileID uint64 `json:"profile_id" binding:"required"`
}

// Validate validates the migration request
func (r MigrationRequest) Validate() error {
	if r.OldPoolID == r.NewPoolID {
		return fmt.Errorf("old_pool_id and new_pool_id must differ")
	}
	return nil
}
