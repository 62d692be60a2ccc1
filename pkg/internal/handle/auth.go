package handle

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Karin-Goldin/wedding-app/pkg/configs"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
	"github.com/Karin-Goldin/wedding-app/pkg/log"
	"github.com/Karin-Goldin/wedding-app/pkg/middleware"
)

// VerifyPassword is the pre-check the UI calls before a credentialed delete.
// It only reports validity; it grants nothing by itself.
func VerifyPassword(c *gin.Context) {
	var req types.VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	svc := newMediaService(c.Request.Context())

	c.JSON(http.StatusOK, types.VerifyPasswordResponse{Valid: svc.VerifyPassword(req.Password)})
}

// Login checks the admin password and issues the session cookie gating the
// admin endpoints.
func Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	cfg := configs.GetConfig().Auth
	if req.Password != cfg.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, err := middleware.IssueAdminToken(cfg, time.Now())
	if err != nil {
		log.Logger().Error().Err(err).Msg("sign admin token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})

		return
	}

	maxAge := int(cfg.GetTokenTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", cfg.SecureCookie, true)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears the admin session cookie.
func Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", configs.GetConfig().Auth.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
