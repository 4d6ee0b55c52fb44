package router

import (
	"github.com/relief-next/internal/http/handlers"
	"github.com/relief-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// New 构建路由
// 读路径允许匿名访问（可见性按匿名操作者收敛），写路径要求登录。
func New(container *provider.Container) *gin.Engine {
	if container.Cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggerMiddleware(),
		CORSMiddleware(&container.Cfg.CORS),
	)

	h := handlers.NewHandler(container)
	api := engine.Group("/api/v1")

	api.POST("/auth/login", h.Login)

	public := api.Group("")
	public.Use(OptionalAuthMiddleware(container.AuthService))
	{
		public.GET("/stations", h.SearchStations)
		public.GET("/stations/:id", h.GetStation)
		public.GET("/stations/:id/inventory", h.ListStationInventory)
		public.GET("/map/stations", h.StationMap)
		public.GET("/supply-types", h.ListSupplyTypes)
	}

	authed := api.Group("")
	authed.Use(AuthMiddleware(container.AuthService))
	{
		authed.GET("/auth/profile", h.Profile)

		authed.POST("/stations", h.CreateStation)
		authed.PUT("/stations/:id", h.UpdateStation)
		authed.DELETE("/stations/:id", h.DeleteStation)

		authed.POST("/stations/:id/inventory", h.CreateInventoryItem)
		authed.POST("/stations/:id/inventory/bulk", h.BulkUpdateInventory)
		authed.PUT("/inventory/:item_id", h.UpdateInventoryItem)
		authed.DELETE("/inventory/:item_id", h.DeleteInventoryItem)

		authed.POST("/reservations", h.CreateReservation)
		authed.GET("/reservations", h.ListReservations)
		authed.GET("/reservations/:id", h.GetReservation)
		authed.PUT("/reservations/:id", h.UpdateReservation)
		authed.POST("/reservations/:id/confirm", h.ConfirmReservation)
		authed.PUT("/reservations/:id/status", h.UpdateReservationStatus)
		authed.POST("/reservations/:id/cancel", h.CancelReservation)

		authed.POST("/supply-types", h.CreateSupplyType)
		authed.GET("/stats/overview", h.StatsOverview)
	}

	return engine
}
