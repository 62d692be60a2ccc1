// Package router binds paths to handlers on the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAll mounts every API route under /api.
func RegisterAll(engine *gin.Engine) {
	api := engine.Group("/api")
	{
		RegisterMediaRoutes(api)
		RegisterAdminRoutes(api)
		RegisterHealthCheckRoute(api)
	}
}
