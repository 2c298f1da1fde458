package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/smart-parking-system/internal/config"
	"github.com/iliyamo/smart-parking-system/internal/handler"
	"github.com/iliyamo/smart-parking-system/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The health endpoint is used by load balancers and monitoring systems
	// to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the admin login endpoint.  There is a single
// operator account; the handler verifies its password against the bcrypt
// hash computed at startup and issues a short-lived access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/v1/auth/login", a.Login)
}

// RegisterParking wires the parking API.  Driver-facing routes under /v1
// are open; topology changes, slot recycling, rollback and reset live under
// /v1/admin behind JWT authentication and the ADMIN role.  Read-only status
// routes additionally go through the Redis response cache to absorb
// dashboard polling.
func RegisterParking(e *echo.Echo, p *handler.ParkingHandler, jwtSecret string, rdb *redis.Client) {
	v1 := e.Group("/v1")

	// Cached read-only views.  The cache middleware is a no-op when Redis
	// is not configured.
	cached := v1.Group("")
	cached.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	cached.GET("/zones", p.ListZones)
	cached.GET("/zones/:zone_id", p.GetZone)
	cached.GET("/status", p.SystemStatus)
	cached.GET("/analytics", p.Analytics)
	cached.GET("/trips", p.ListTrips)

	// Driver-facing lifecycle routes.
	v1.POST("/vehicles", p.RegisterVehicle)
	v1.GET("/vehicles/:vehicle_id", p.GetVehicle)
	v1.POST("/requests", p.CreateRequest)
	v1.GET("/requests", p.ListRequests)
	v1.GET("/requests/:request_id", p.GetRequest)
	v1.POST("/requests/:request_id/allocate", p.AllocateRequest)
	v1.POST("/requests/:request_id/occupy", p.OccupyRequest)
	v1.POST("/requests/:request_id/release", p.ReleaseRequest)
	v1.POST("/requests/:request_id/cancel", p.CancelRequest)
	v1.GET("/queue", p.QueueStatus)
	v1.POST("/queue/process", p.ProcessNextPending)

	// Admin-only topology and recovery routes.
	admin := v1.Group("/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(handler.AdminRole))
	admin.POST("/zones", p.CreateZone)
	admin.POST("/zones/:zone_id/areas", p.CreateArea)
	admin.POST("/areas/:area_id/slots", p.CreateSlot)
	admin.POST("/slots/:slot_id/recycle", p.RecycleSlot)
	admin.POST("/rollback", p.Rollback)
	admin.GET("/operations", p.RecentOperations)
	admin.POST("/reset", p.Reset)
}
