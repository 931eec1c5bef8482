package schema

import (
	"fmt"
	"time"

	"github.com/ispcore/ipam/internal/domain"
)

// IPSubnet represents the ip_subnets table
type IPSubnet struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PoolID references the owning pool
	PoolID uint64 `gorm:"column:pool_id;not null;index"`
	// Network is the masked network address
	Network string `gorm:"column:network;type:varchar(45);not null"`
	// PrefixLength is the CIDR prefix length
	PrefixLength int `gorm:"column:prefix_length;not null"`
	// Gateway is the subnet gateway, if any
	Gateway *string `gorm:"column:gateway;type:varchar(45)"`
	// VLANID is the 802.1Q tag of the subnet, if any
	VLANID *int `gorm:"column:vlan_id"`
	// Description is free-form operator text
	Description *string `gorm:"column:description"`
	// Status is the admin state; only active subnets hand out addresses
	Status domain.ResourceStatus `gorm:"column:status;not null;default:'active'"`
	// CreatedAt is the timestamp when the subnet was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when the subnet was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the IPSubnet model
func (IPSubnet) TableName() string {
	return "ip_subnets"
}

// CIDR returns the subnet in network/prefix notation
func (s IPSubnet) CIDR() string {
	return fmt.Sprintf("%s/%d", s.Network, s.PrefixLength)
}
