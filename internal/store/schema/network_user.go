package schema

import "time"

// NetworkUser represents a subscriber row of the network_users table.
// The IP lifecycle core only reads it to find who belongs to a service profile.
type NetworkUser struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Username   string    `gorm:"column:username;not null;uniqueIndex"`
	MACAddress *string   `gorm:"column:mac_address"`
	ProfileID  *uint64   `gorm:"column:profile_id;index"`
	Status     string    `gorm:"column:status;not null;default:'active'"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the NetworkUser model
func (NetworkUser) TableName() string {
	return "network_users"
}
