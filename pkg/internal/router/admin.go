package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Karin-Goldin/wedding-app/pkg/configs"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/handle"
	"github.com/Karin-Goldin/wedding-app/pkg/middleware"
)

// RegisterAdminRoutes registers login plus the session-gated admin routes.
func RegisterAdminRoutes(g *gin.RouterGroup) {
	authCfg := configs.GetConfig().Auth

	authRoutes := g.Group("/auth")
	{
		authRoutes.POST("/login", handle.Login)
		authRoutes.POST("/logout", handle.Logout)
	}

	adminRoutes := g.Group("/", middleware.AdminAuthMiddleware(authCfg))
	{
		adminRoutes.GET("/export", handle.Export)
		adminRoutes.GET("/export/archive", handle.ExportArchive)
		adminRoutes.GET("/storage-usage", handle.StorageUsage)
		adminRoutes.GET("/jobs", handle.SchedulerJobs)
	}
}
