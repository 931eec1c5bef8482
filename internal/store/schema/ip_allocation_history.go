package schema

import (
	"time"

	"github.com/ispcore/ipam/internal/domain"
)

// IPAllocationHistory represents the append-only ip_allocation_history table
type IPAllocationHistory struct {
	ID           uint64               `gorm:"column:id;primaryKey;autoIncrement"`
	AllocationID uint64               `gorm:"column:allocation_id;not null;index"`
	SubnetID     uint64               `gorm:"column:subnet_id;not null"`
	IPAddress    string               `gorm:"column:ip_address;type:varchar(45);not null"`
	MACAddress   string               `gorm:"column:mac_address;not null"`
	Username     string               `gorm:"column:username;not null"`
	Action       domain.HistoryAction `gorm:"column:action;not null"`
	AllocatedAt  time.Time            `gorm:"column:allocated_at;not null"`
	ReleasedAt   *time.Time           `gorm:"column:released_at"`
	CreatedAt    time.Time            `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the IPAllocationHistory model
func (IPAllocationHistory) TableName() string {
	return "ip_allocation_history"
}

// NewAllocationHistory snapshots an allocation for the given transition
func NewAllocationHistory(a *IPAllocation, action domain.HistoryAction) *IPAllocationHistory {
	return &IPAllocationHistory{
		AllocationID: a.ID,
		SubnetID:     a.SubnetID,
		IPAddress:    a.IPAddress,
		MACAddress:   a.MACAddress,
		Username:     a.Username,
		Action:       action,
		AllocatedAt:  a.AllocatedAt,
		ReleasedAt:   a.ReleasedAt,
	}
}
