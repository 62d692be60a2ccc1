package handle

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
	"github.com/Karin-Goldin/wedding-app/pkg/log"
)

// DeleteMedia removes one object. Within the grace period no password is
// needed; afterward the body must carry the admin password.
func DeleteMedia(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing object key"})
		return
	}

	// the body is optional: grace-period deletes send none
	var req types.DeleteRequest
	_ = c.ShouldBindJSON(&req)

	svc := newMediaService(c.Request.Context())

	err := svc.Delete(c.Request.Context(), key, req.Password, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, types.ErrObjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		case errors.Is(err, types.ErrCredentialMissing):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "password required", "requiresPassword": true})
		case errors.Is(err, types.ErrCredentialInvalid):
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid password"})
		default:
			log.Logger().Error().Err(err).Str("key", key).Msg("delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		}

		return
	}

	c.JSON(http.StatusOK, types.DeleteResponse{Deleted: true, Key: key})
}
