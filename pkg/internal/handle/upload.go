package handle

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
	"github.com/Karin-Goldin/wedding-app/pkg/log"
	"github.com/Karin-Goldin/wedding-app/pkg/middleware"
)

// Upload accepts a multipart upload with a `file` part and an optional
// `message` caption, runs it through the admission gate and stores it.
func Upload(c *gin.Context) {
	l := log.Logger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error().Err(err).Msg("open multipart file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})

		return
	}
	defer file.Close()

	candidate := types.UploadCandidate{
		FileName:         fileHeader.Filename,
		DeclaredMIMEType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:        fileHeader.Size,
		Caption:          c.PostForm("message"),
	}

	svc := newMediaService(c.Request.Context())
	clientID := middleware.ClientIP(c)

	resp, decision, err := svc.Upload(c.Request.Context(), clientID, candidate, file, time.Now())
	if err != nil {
		var (
			rateLimited *types.RateLimitedError
			invalidFile *types.InvalidFileError
		)

		switch {
		case errors.As(err, &rateLimited):
			setRateLimitHeaders(c, rateLimited.Remaining, rateLimited.ResetAt)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many uploads, please wait before trying again"})
		case errors.As(err, &invalidFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidFile.Reason})
		default:
			l.Error().Err(err).Str("client", clientID).Msg("upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		}

		return
	}

	setRateLimitHeaders(c, decision.Remaining, decision.ResetAt)
	c.JSON(http.StatusOK, resp)
}
