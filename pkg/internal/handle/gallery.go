package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Karin-Goldin/wedding-app/pkg/log"
)

const defaultPreviewCount = 6

// Gallery lists all stored media, newest first.
func Gallery(c *gin.Context) {
	svc := newMediaService(c.Request.Context())

	resp, err := svc.Gallery(c.Request.Context())
	if err != nil {
		log.Logger().Error().Err(err).Msg("gallery listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load gallery"})

		return
	}

	c.JSON(http.StatusOK, resp)
}

// GalleryPreview returns the first few items plus the total count, polled by
// the landing page.
func GalleryPreview(c *gin.Context) {
	limit := defaultPreviewCount
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	svc := newMediaService(c.Request.Context())

	resp, err := svc.Preview(c.Request.Context(), limit)
	if err != nil {
		log.Logger().Error().Err(err).Msg("gallery preview failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load gallery"})

		return
	}

	c.JSON(http.StatusOK, resp)
}
