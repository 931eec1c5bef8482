package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ispcore/ipam/internal/api/rest/dto"
	"github.com/ispcore/ipam/internal/ipam"
	"github.com/ispcore/ipam/internal/migration"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListPools lists every pool
	// GET /api/v1/ipam/pools
	ListPools(c *gin.Context)

	// CreatePool creates a pool
	// POST /api/v1/ipam/pools
	CreatePool(c *gin.Context)

	// GetPool retrieves a pool
	// GET /api/v1/ipam/pools/:id
	GetPool(c *gin.Context)

	// UpdatePool changes the mutable fields of a pool
	// PUT /api/v1/ipam/pools/:id
	UpdatePool(c *gin.Context)

	// DeletePool removes a pool without allocated addresses
	// DELETE /api/v1/ipam/pools/:id
	DeletePool(c *gin.Context)

	// GetPoolUtilization aggregates usage over the pool's subnets
	// GET /api/v1/ipam/pools/:id/utilization
	GetPoolUtilization(c *gin.Context)

	// ListSubnets lists subnets
	// GET /api/v1/ipam/subnets?pool_id=<id>
	ListSubnets(c *gin.Context)

	// CreateSubnet creates a subnet
	// POST /api/v1/ipam/subnets
	CreateSubnet(c *gin.Context)

	// GetSubnet retrieves a subnet
	// GET /api/v1/ipam/subnets/:id
	GetSubnet(c *gin.Context)

	// UpdateSubnet changes the mutable fields of a subnet
	// PUT /api/v1/ipam/subnets/:id
	UpdateSubnet(c *gin.Context)

	// DeleteSubnet removes a subnet without allocated addresses
	// DELETE /api/v1/ipam/subnets/:id
	DeleteSubnet(c *gin.Context)

	// GetAvailableIPs lists the free hosts of a subnet
	// GET /api/v1/ipam/subnets/:id/available-ips
	GetAvailableIPs(c *gin.Context)

	// ListAllocations lists allocations
	// GET /api/v1/ipam/allocations?subnet_id=<id>&status=<status>&username=<username>&limit=<limit>&offset=<offset>
	ListAllocations(c *gin.Context)

	// AllocateIP binds a free address to a consumer
	// POST /api/v1/ipam/allocations
	AllocateIP(c *gin.Context)

	// ReleaseIP releases an allocation
	// DELETE /api/v1/ipam/allocations/:id
	ReleaseIP(c *gin.Context)

	// GetAllocationHistory lists the transitions of an allocation
	// GET /api/v1/ipam/allocations/:id/history
	GetAllocationHistory(c *gin.Context)

	// ValidateMigration checks destination capacity without side effects
	// POST /api/v1/ipam/migrations/validate
	ValidateMigration(c *gin.Context)

	// StartMigration starts a migration run
	// POST /api/v1/ipam/migrations
	StartMigration(c *gin.Context)

	// ListMigrations lists recent runs
	// GET /api/v1/ipam/migrations?limit=<limit>
	ListMigrations(c *gin.Context)

	// GetMigration returns progress, status and metadata of a run
	// GET /api/v1/ipam/migrations/:id
	GetMigration(c *gin.Context)

	// CancelMigration requests cancellation of a run
	// POST /api/v1/ipam/migrations/:id/cancel
	CancelMigration(c *gin.Context)

	// RollbackMigration restores the addresses backed up by a run
	// POST /api/v1/ipam/migrations/:id/rollback
	RollbackMigration(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	engine       ipam.Engine
	orchestrator migration.Orchestrator
}

// NewHandler creates a new REST API handler
func NewHandler(engine ipam.Engine, orchestrator migration.Orchestrator) Handler {
	return &handler{
		engine:       engine,
		orchestrator: orchestrator,
	}
}

func (h *handler) ListPools(c *gin.Context) {
	pools, err := h.engine.ListPools(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPoolListResponse(pools))
}

func (h *handler) CreatePool(c *gin.Context) {
	var req dto.CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	pool, err := h.engine.CreatePool(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err, zap.String("name", req.Name))
		return
	}
	c.JSON(http.StatusCreated, dto.NewPoolResponse(pool))
}

func (h *handler) GetPool(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid pool id", err.Error())
		return
	}

	pool, err := h.engine.GetPool(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, zap.Uint64("poolID", id))
		return
	}
	c.JSON(http.StatusOK, dto.NewPoolResponse(pool))
}

func (h *handler) UpdatePool(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid pool id", err.Error())
		return
	}

	var req dto.UpdatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	pool, err := h.engine.UpdatePool(c.Request.Context(), id, req.ToInput())
	if err != nil {
		respondError(c, err, zap.Uint64("poolID", id))
		return
	}
	c.JSON(http.StatusOK, dto.NewPoolResponse(pool))
}

func (h *handler) DeletePool(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid pool id", err.Error())
		return
	}

	if err := h.engine.DeletePool(c.Request.Context(), id); err != nil {
		respondError(c, err, zap.Uint64("poolID", id))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) GetPoolUtilization(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid pool id", err.Error())
		return
	}

	utilization, err := h.engine.GetPoolUtilization(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, zap.Uint64("poolID", id))
		return
	}
	c.JSON(http.StatusOK, utilization)
}

func (h *handler) ListSubnets(c *gin.Context) {
	var query ListSubnetsQueryParams
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	subnets, err := h.engine.ListSubnets(c.Request.Context(), query.PoolID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSubnetListResponse(subnets))
}

func (h *handler) CreateSubnet(c *gin.Context) {
	var req dto.CreateSubnetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	subnet, err := h.engine.CreateSubnet(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err, zap.Uint64("poolID", req.PoolID), zap.String("network", req.Network))
		return
	}
	c.JSON(http.StatusCreated, dto.NewSubnetResponse(subnet))
}

func (h *handler) GetSubnet(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid subnet id", err.Error())
		return
	}

	subnet, err := h.engine.GetSubnet(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, zap.Uint64("subnetID", id))
		return
	}
	c.JSON(http.StatusOK, dto.NewSubnetResponse(subnet))
}

func (h *handler) UpdateSubnet(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid subnet id", err.Error())
		return
	}

	var req dto.UpdateSubnetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	subnet, err := h.engine.UpdateSubnet(c.Request.Context(), id, req.ToInput())
	if err != nil {
		respondError(c, err, zap.Uint64("subnetID", id))
		return
	}
	c.JSON(http.StatusOK, dto.NewSubnetResponse(subnet))
}

func (h *handler) DeleteSubnet(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid subnet id", err.Error())
		return
	}

	if err := h.engine.DeleteSubnet(c.Request.Context(), id); err != nil {
		respondError(c, err, zap.Uint64("subnetID", id))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) GetAvailableIPs(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid subnet id", err.Error())
		return
	}

	addresses, err := h.engine.GetAvailableIPs(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, zap.Uint64("subnetID", id))
		return
	}
	c.JSON(http.StatusOK, dto.AvailableIPsResponse{
		SubnetID:  id,
		Count:     len(addresses),
		Addresses: addresses,
	})
}

func (h *handler) ListAllocations(c *gin.Context) {
	query, err := ParseListAllocationsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := query.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	allocations, total, err := h.engine.ListAllocations(c.Request.Context(), query.Filter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAllocationListResponse(allocations, total, query.Offset))
}

func (h *handler) AllocateIP(c *gin.Context) {
	var req dto.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	allocation, err := h.engine.AllocateIP(c.Request.Context(), req.SubnetID, req.MACAddress, req.Username, req.Options())
	if err != nil {
		respondError(c, err, zap.Uint64("subnetID", req.SubnetID), zap.String("username", req.Username))
		return
	}
	c.JSON(http.StatusCreated, dto.NewAllocationResponse(allocation))
}

func (h *handler) ReleaseIP(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid allocation id", err.Error())
		return
	}

	released, err := h.engine.ReleaseIP(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, zap.Uint64("allocationID", id))
		return
	}
	c.JSON(http.StatusOK, dto.ReleaseResponse{Released: released})
}

func (h *handler) GetAllocationHistory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, "Invalid allocation id", err.Error())
		return
	}

	rows, err := h.engine.GetAllocationHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, zap.Uint64("allocationID", id))
		return
	}
	c.JSON(http.StatusOK, dto.NewAllocationHistoryResponse(rows))
}

// ValidateMigration always answers 200; an invalid migration is a result, not an error
func (h *handler) ValidateMigration(c *gin.Context) {
	var req dto.MigrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	result := h.orchestrator.ValidateMigration(c.Request.Context(), req.OldPoolID, req.NewPoolID, req.ProfileID)
	c.JSON(http.StatusOK, result)
}

func (h *handler) StartMigration(c *gin.Context) {
	var req dto.MigrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	runID, err := h.orchestrator.StartMigration(c.Request.Context(), req.OldPoolID, req.NewPoolID, req.ProfileID)
	if err != nil {
		respondError(c, err, zap.Uint64("profileID", req.ProfileID))
		return
	}
	c.JSON(http.StatusAccepted, dto.StartMigrationResponse{RunID: runID})
}

func (h *handler) ListMigrations(c *gin.Context) {
	var query MigrationHistoryQueryParams
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := query.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	entries, err := h.orchestrator.GetMigrationHistory(c.Request.Context(), query.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *handler) GetMigration(c *gin.Context) {
	runID := c.Param("id")
	ctx := c.Request.Context()

	progress, err := h.orchestrator.GetProgress(ctx, runID)
	if err != nil {
		respondError(c, err, zap.String("runID", runID))
		return
	}
	status, err := h.orchestrator.GetStatus(ctx, runID)
	if err != nil {
		respondError(c, err, zap.String("runID", runID))
		return
	}
	metadata, err := h.orchestrator.GetMetadata(ctx, runID)
	if err != nil {
		respondError(c, err, zap.String("runID", runID))
		return
	}

	if progress == nil && status == nil && metadata == nil {
		respondNotFound(c, "Migration not found", "unknown or expired run "+runID)
		return
	}

	c.JSON(http.StatusOK, dto.MigrationStateResponse{
		RunID:    runID,
		Progress: progress,
		Status:   status,
		Metadata: metadata,
	})
}

func (h *handler) CancelMigration(c *gin.Context) {
	runID := c.Param("id")

	cancelled, err := h.orchestrator.CancelMigration(c.Request.Context(), runID)
	if err != nil {
		respondError(c, err, zap.String("runID", runID))
		return
	}
	c.JSON(http.StatusOK, dto.CancelMigrationResponse{Cancelled: cancelled})
}

func (h *handler) RollbackMigration(c *gin.Context) {
	runID := c.Param("id")

	result, err := h.orchestrator.Rollback(c.Request.Context(), runID)
	if err != nil {
		respondError(c, err, zap.String("runID", runID))
		return
	}
	c.JSON(http.StatusOK, result)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ipam-api",
	})
}
