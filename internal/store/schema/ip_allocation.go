package schema

import (
	"time"

	"github.com/ispcore/ipam/internal/domain"
)

// IPAllocation represents the ip_allocations table.
// A partial unique index guarantees at most one allocated row per (subnet_id, ip_address).
type IPAllocation struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// SubnetID references the subnet the address was taken from
	SubnetID uint64 `gorm:"column:subnet_id;not null"`
	// IPAddress is the bound address
	IPAddress string `gorm:"column:ip_address;type:varchar(45);not null"`
	// MACAddress is the consumer's hardware address
	MACAddress string `gorm:"column:mac_address;not null"`
	// Username is the consumer's session or account key
	Username string `gorm:"column:username;not null"`
	// Status is the lifecycle state of the allocation
	Status domain.AllocationStatus `gorm:"column:status;not null"`
	// AllocatedAt is the timestamp when the address was bound
	AllocatedAt time.Time `gorm:"column:allocated_at;not null"`
	// ReleasedAt is set once the allocation is released or expired
	ReleasedAt *time.Time `gorm:"column:released_at"`
	// ExpiresAt is the lease end; nil means the lease never expires
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when the row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the IPAllocation model
func (IPAllocation) TableName() string {
	return "ip_allocations"
}
