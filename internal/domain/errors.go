package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolNotFound is returned when a pool does not exist
	ErrPoolNotFound = errors.New("pool not found")

	// ErrSubnetNotFound is returned when a subnet does not exist or is not active
	ErrSubnetNotFound = errors.New("subnet not found")

	// ErrAllocationNotFound is returned when an allocation does not exist
	ErrAllocationNotFound = errors.New("allocation not found")

	// ErrBackupNotFound is returned when a migration run has no backup snapshot
	ErrBackupNotFound = errors.New("migration backup not found")

	// ErrMigrationNotFound is returned when a migration run is unknown
	ErrMigrationNotFound = errors.New("migration not found")

	// ErrNoCapacity is returned when a subnet or pool has no free address left
	ErrNoCapacity = errors.New("no addresses available")

	// ErrAlreadyReleased is returned when releasing an allocation that is no longer active
	ErrAlreadyReleased = errors.New("allocation already released")

	// ErrInvalidRange is returned for malformed or unsupported address ranges
	ErrInvalidRange = errors.New("invalid address range")

	// ErrInvalidMACAddress is returned when a MAC address is malformed
	ErrInvalidMACAddress = errors.New("invalid MAC address")

	// ErrInvalidUsername is returned when a username is empty or too long
	ErrInvalidUsername = errors.New("invalid username")

	// ErrSubnetOverlap is returned when a new subnet overlaps an existing one
	ErrSubnetOverlap = errors.New("subnet overlaps with existing subnet")

	// ErrPoolNameTaken is returned when a pool name is already in use
	ErrPoolNameTaken = errors.New("pool name already exists")

	// ErrPoolInUse is returned when deleting a pool that still has active allocations
	ErrPoolInUse = errors.New("cannot delete pool with active allocations")

	// ErrSubnetInUse is returned when deleting a subnet that still has active allocations
	ErrSubnetInUse = errors.New("cannot delete subnet with active allocations")

	// ErrMigrationConflict is returned when another migration already holds the profile or destination pool
	ErrMigrationConflict = errors.New("another migration is already in progress for this profile or destination pool")

	// ErrInfrastructure marks failures of the backing stores, never a business outcome
	ErrInfrastructure = errors.New("infrastructure failure")
)

// InfrastructureError wraps a store or lock failure so callers can tell it apart from
// business outcomes such as ErrNoCapacity.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// Is reports ErrInfrastructure as a match in addition to the wrapped chain
func (e *InfrastructureError) Is(target error) bool {
	return target == ErrInfrastructure
}

// NewInfrastructureError wraps err, returning nil for a nil err
func NewInfrastructureError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &InfrastructureError{Op: op, Err: err}
}

// NoCapacityError carries the subnet that ran out of addresses
type NoCapacityError struct {
	SubnetID uint64
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("no addresses available in subnet %d", e.SubnetID)
}

func (e *NoCapacityError) Unwrap() error {
	return ErrNoCapacity
}
