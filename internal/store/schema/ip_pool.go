package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/ispcore/ipam/internal/domain"
)

// IPPool represents the ip_pools table
type IPPool struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the unique operator-facing pool name
	Name string `gorm:"column:name;not null;uniqueIndex"`
	// Description is free-form operator text
	Description *string `gorm:"column:description"`
	// StartIP is the first address of the pool range (inclusive)
	StartIP string `gorm:"column:start_ip;type:varchar(45);not null"`
	// EndIP is the last address of the pool range (inclusive)
	EndIP string `gorm:"column:end_ip;type:varchar(45);not null"`
	// Gateway is the default gateway handed to subscribers
	Gateway *string `gorm:"column:gateway;type:varchar(45)"`
	// DNSServers are the resolvers handed to subscribers
	DNSServers datatypes.JSONSlice[string] `gorm:"column:dns_servers;type:jsonb;not null;default:'[]'"`
	// UsageClass is the protocol or usage class of the pool (pppoe, hotspot, static)
	UsageClass string `gorm:"column:usage_class;not null;default:'pppoe'"`
	// VLANID is the 802.1Q tag of the pool, if any
	VLANID *int `gorm:"column:vlan_id"`
	// Status is the admin state of the pool
	Status domain.ResourceStatus `gorm:"column:status;not null;default:'active'"`
	// CreatedAt is the timestamp when the pool was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when the pool was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the IPPool model
func (IPPool) TableName() string {
	return "ip_pools"
}
