package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType names an IPAM event; the NATS subject is "ipam." + EventType
type EventType string

const (
	EventAllocationAllocated EventType = "allocation.allocated"
	EventAllocationReleased  EventType = "allocation.released"
	EventAllocationExpired   EventType = "allocation.expired"
	EventMigrationStarted    EventType = "migration.started"
	EventMigrationCompleted  EventType = "migration.completed"
	EventMigrationCancelled  EventType = "migration.cancelled"
	EventMigrationFailed     EventType = "migration.failed"
	EventMigrationRolledBack EventType = "migration.rolled_back"
)

// EventSubjectPrefix prefixes every published subject
const EventSubjectPrefix = "ipam."

// AllocationEvent is the payload of allocation.* events
type AllocationEvent struct {
	AllocationID uint64 `json:"allocation_id"`
	SubnetID     uint64 `json:"subnet_id"`
	IPAddress    string `json:"ip_address"`
	MACAddress   string `json:"mac_address"`
	Username     string `json:"username"`
}

// MigrationEvent is the payload of migration.* events
type MigrationEvent struct {
	RunID     string          `json:"run_id"`
	OldPoolID uint64          `json:"old_pool_id"`
	NewPoolID uint64          `json:"new_pool_id"`
	ProfileID uint64          `json:"profile_id"`
	Status    MigrationStatus `json:"status"`
	Processed int             `json:"processed,omitempty"`
	Failed    int             `json:"failed,omitempty"`
}

// Event is an IPAM state change published to downstream consumers
type Event struct {
	ID         string           `json:"id"`
	Type       EventType        `json:"type"`
	OccurredAt time.Time        `json:"occurred_at"`
	Allocation *AllocationEvent `json:"allocation,omitempty"`
	Migration  *MigrationEvent  `json:"migration,omitempty"`
}

// Subject returns the NATS subject of the event
func (e *Event) Subject() string {
	return EventSubjectPrefix + string(e.Type)
}

// NewAllocationEvent builds an allocation.* event
func NewAllocationEvent(eventType EventType, at time.Time, payload AllocationEvent) *Event {
	return &Event{
		ID:         ulid.Make().String(),
		Type:       eventType,
		OccurredAt: at,
		Allocation: &payload,
	}
}

// NewMigrationEvent builds a migration.* event
func NewMigrationEvent(eventType EventType, at time.Time, payload MigrationEvent) *Event {
	return &Event{
		ID:         ulid.Make().String(),
		Type:       eventType,
		OccurredAt: at,
		Migration:  &payload,
	}
}

// MigrationEventType maps a terminal status to its event type
func MigrationEventType(status MigrationStatus) EventType {
	switch status {
	case MigrationStatusCompleted:
		return EventMigrationCompleted
	case MigrationStatusCancelled:
		return EventMigrationCancelled
	case MigrationStatusRollbackComplete:
		return EventMigrationRolledBack
	case MigrationStatusFailed:
		return EventMigrationFailed
	}
	return EventMigrationStarted
}
