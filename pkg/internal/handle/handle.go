// Package handle implements the HTTP request handlers.
package handle

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/service"
)

// newMediaService builds the per-request service; tests swap it for one
// backed by in-memory fakes.
var newMediaService = service.NewMediaService

func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// setRateLimitHeaders reports the client's window state on every upload
// response, admitted or not.
func setRateLimitHeaders(c *gin.Context, remaining int, resetAt time.Time) {
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
}
