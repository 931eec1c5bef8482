package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ispcore/ipam/internal/domain"
	"github.com/ispcore/ipam/internal/store"
)

const MAX_PAGE_SIZE = 500

// ListAllocationsQueryParams holds query parameters for GET /allocations
type ListAllocationsQueryParams struct {
	SubnetID *uint64 `form:"subnet_id"`
	Status   *string `form:"status"`
	Username *string `form:"username"`
	Limit    int     `form:"limit,default=50"`
	Offset   uint64  `form:"offset,default=0"`
}

// Validate validates the list allocations query parameters
func (p *ListAllocationsQueryParams) Validate() error {
	if p.Limit < 1 || p.Limit > MAX_PAGE_SIZE {
		return fmt.Errorf("limit must be between 1 and %d", MAX_PAGE_SIZE)
	}
	if p.Status != nil {
		switch domain.AllocationStatus(*p.Status) {
		case domain.AllocationStatusAllocated, domain.AllocationStatusReleased, domain.AllocationStatusExpired:
		default:
			return fmt.Errorf("unknown status %q", *p.Status)
		}
	}
	return nil
}

// Filter converts the query into a store filter
func (p *ListAllocationsQueryParams) Filter() store.AllocationFilter {
	filter := store.AllocationFilter{
		SubnetID: p.SubnetID,
		Username: p.Username,
		Limit:    p.Limit,
		Offset:   p.Offset,
	}
	if p.Status != nil {
		status := domain.AllocationStatus(*p.Status)
		filter.Status = &status
	}
	return filter
}

// ParseListAllocationsQuery parses query parameters for GET /allocations
func ParseListAllocationsQuery(c *gin.Context) (*ListAllocationsQueryParams, error) {
	var params ListAllocationsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ListSubnetsQueryParams holds query parameters for GET /subnets
type ListSubnetsQueryParams struct {
	PoolID *uint64 `form:"pool_id"`
}

// MigrationHistoryQueryParams holds query parameters for GET /migrations
type MigrationHistoryQueryParams struct {
	Limit int `form:"limit,default=50"`
}

// Validate validates the migration history query parameters
func (p *MigrationHistoryQueryParams) Validate() error {
	if p.Limit < 1 || p.Limit > MAX_PAGE_SIZE {
		return fmt.Errorf("limit must be between 1 and %d", MAX_PAGE_SIZE)
	}
	return nil
}

// parseIDParam reads a positive numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, c.Param(name))
	}
	return id, nil
}
