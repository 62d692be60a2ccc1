package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Karin-Goldin/wedding-app/pkg/log"
)

// StorageUsage sums stored bytes and object count for the admin dashboard.
func StorageUsage(c *gin.Context) {
	svc := newMediaService(c.Request.Context())

	resp, err := svc.Usage(c.Request.Context())
	if err != nil {
		log.Logger().Error().Err(err).Msg("storage usage failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load storage usage"})

		return
	}

	c.JSON(http.StatusOK, resp)
}
