package handle

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Karin-Goldin/wedding-app/pkg/log"
)

// Export returns the download manifest: every object with URL, caption and
// upload time.
func Export(c *gin.Context) {
	svc := newMediaService(c.Request.Context())

	resp, err := svc.Export(c.Request.Context(), time.Now())
	if err != nil {
		log.Logger().Error().Err(err).Msg("export manifest failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})

		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportArchive streams the whole gallery as one zip download.
func ExportArchive(c *gin.Context) {
	svc := newMediaService(c.Request.Context())

	filename := fmt.Sprintf("wedding-media-%s.zip", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := svc.ExportArchive(c.Request.Context(), c.Writer); err != nil {
		// headers are already out; all we can do is log and cut the stream
		log.Logger().Error().Err(err).Msg("export archive failed")
		c.Abort()
	}
}
