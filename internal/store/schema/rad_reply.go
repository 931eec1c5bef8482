package schema

// RadReply represents a row of the RADIUS radreply table.
// Framed-IP-Address rows mirror the subscriber's allocated address and are
// rewritten whenever the allocation store changes it.
type RadReply struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string `gorm:"column:username;not null;index"`
	Attribute string `gorm:"column:attribute;not null"`
	Op        string `gorm:"column:op;not null;default:':='"`
	Value     string `gorm:"column:value;not null"`
}

// TableName specifies the table name for the RadReply model
func (RadReply) TableName() string {
	return "radreply"
}
