package domain

import "regexp"

// AllocationStatus is the lifecycle state of an allocation
type AllocationStatus string

const (
	AllocationStatusAllocated AllocationStatus = "allocated"
	AllocationStatusReleased  AllocationStatus = "released"
	AllocationStatusExpired   AllocationStatus = "expired"
)

// HistoryAction is the transition recorded in allocation history
type HistoryAction string

const (
	HistoryActionAllocated HistoryAction = "allocated"
	HistoryActionReleased  HistoryAction = "released"
	HistoryActionExpired   HistoryAction = "expired"
)

// ResourceStatus is the admin state of pools and subnets
type ResourceStatus string

const (
	ResourceStatusActive   ResourceStatus = "active"
	ResourceStatusInactive ResourceStatus = "inactive"
)

// IsValidResourceStatus checks if a pool/subnet status is valid
func IsValidResourceStatus(s ResourceStatus) bool {
	return s == ResourceStatusActive || s == ResourceStatusInactive
}

// MigrationStatus is the state of a pool migration run
type MigrationStatus string

const (
	MigrationStatusInitializing     MigrationStatus = "initializing"
	MigrationStatusRunning          MigrationStatus = "running"
	MigrationStatusCancelling       MigrationStatus = "cancelling"
	MigrationStatusCompleted        MigrationStatus = "completed"
	MigrationStatusCancelled        MigrationStatus = "cancelled"
	MigrationStatusFailed           MigrationStatus = "failed"
	MigrationStatusRollbackComplete MigrationStatus = "rollback_complete"
)

// IsActive reports whether the run still holds its migration lock.
// A cancelling run keeps the lock until its worker acknowledges the cancellation.
func (s MigrationStatus) IsActive() bool {
	switch s {
	case MigrationStatusInitializing, MigrationStatusRunning, MigrationStatusCancelling:
		return true
	}
	return false
}

// IsTerminal reports whether the worker has stopped touching the run
func (s MigrationStatus) IsTerminal() bool {
	switch s {
	case MigrationStatusCompleted, MigrationStatusCancelled, MigrationStatusFailed, MigrationStatusRollbackComplete:
		return true
	}
	return false
}

const (
	// FramedIPAddressAttribute is the RADIUS reply attribute carrying a subscriber's address
	FramedIPAddressAttribute = "Framed-IP-Address"

	// MaxUsernameLength bounds subscriber usernames
	MaxUsernameLength = 255

	// MinVLANID and MaxVLANID bound 802.1Q VLAN ids
	MinVLANID = 1
	MaxVLANID = 4094

	// MinSubnetPrefix and MaxSubnetPrefix bound the subnets operators may create.
	// A /16 caps a subnet at 65534 hosts, which keeps host walks and listings in memory.
	MinSubnetPrefix = 16
	MaxSubnetPrefix = 32
)

var macAddressPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)

// IsValidMACAddress checks colon or dash separated MAC notation
func IsValidMACAddress(mac string) bool {
	return macAddressPattern.MatchString(mac)
}

// IsValidUsername checks a subscriber username
func IsValidUsername(username string) bool {
	return username != "" && len(username) <= MaxUsernameLength
}
