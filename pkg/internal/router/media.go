package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/handle"
)

// RegisterMediaRoutes registers the guest-facing routes: upload, gallery and
// deletion.
func RegisterMediaRoutes(g *gin.RouterGroup) {
	// upload and gallery
	g.POST("/upload", handle.Upload)
	g.GET("/gallery", handle.Gallery)
	g.GET("/gallery/preview", handle.GalleryPreview)

	// deletion: free within the grace period, password-gated afterward
	g.DELETE("/media/:key", handle.DeleteMedia)
	g.POST("/verify-password", handle.VerifyPassword)
}
