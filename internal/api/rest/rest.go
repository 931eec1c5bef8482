package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/ispcore/ipam/internal/api/middleware"
)

// SetupRoutes configures all REST API routes. Reads are public; every mutation requires auth.
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	requireAuth := middleware.Auth(auth)

	v1 := router.Group("/api/v1/ipam")
	{
		v1.GET("/pools", handler.ListPools)
		v1.POST("/pools", requireAuth, handler.CreatePool)
		v1.GET("/pools/:id", handler.GetPool)
		v1.PUT("/pools/:id", requireAuth, handler.UpdatePool)
		v1.DELETE("/pools/:id", requireAuth, handler.DeletePool)
		v1.GET("/pools/:id/utilization", handler.GetPoolUtilization)

		v1.GET("/subnets", handler.ListSubnets)
		v1.POST("/subnets", requireAuth, handler.CreateSubnet)
		v1.GET("/subnets/:id", handler.GetSubnet)
		v1.PUT("/subnets/:id", requireAuth, handler.UpdateSubnet)
		v1.DELETE("/subnets/:id", requireAuth, handler.DeleteSubnet)
		v1.GET("/subnets/:id/available-ips", handler.GetAvailableIPs)

		v1.GET("/allocations", handler.ListAllocations)
		v1.POST("/allocations", requireAuth, handler.AllocateIP)
		v1.DELETE("/allocations/:id", requireAuth, handler.ReleaseIP)
		v1.GET("/allocations/:id/history", handler.GetAllocationHistory)

		// validation has no side effects but reveals subscriber counts
		v1.POST("/migrations/validate", requireAuth, handler.ValidateMigration)
		v1.POST("/migrations", requireAuth, handler.StartMigration)
		v1.GET("/migrations", handler.ListMigrations)
		v1.GET("/migrations/:id", handler.GetMigration)
		v1.POST("/migrations/:id/cancel", requireAuth, handler.CancelMigration)
		v1.POST("/migrations/:id/rollback", requireAuth, handler.RollbackMigration)
	}
}
