package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Karin-Goldin/wedding-app/pkg/configs"
)

// AuthCookieName is the HTTP-only cookie carrying the admin session token.
const AuthCookieName = "auth-token"

// IssueAdminToken signs a session token for a successful admin login.
func IssueAdminToken(cfg configs.AuthConfig, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"authenticated": true,
		"iat":           now.Unix(),
		"exp":           now.Add(cfg.GetTokenTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(cfg.JWTSecret))
}

// AdminAuthMiddleware gates admin-only routes (export, usage) on a valid
// session cookie issued by the login endpoint.
func AdminAuthMiddleware(cfg configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(AuthCookieName)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !verifyAdminToken(cfg, raw) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}

func verifyAdminToken(cfg configs.AuthConfig, raw string) bool {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	authenticated, ok := claims["authenticated"].(bool)

	return ok && authenticated
}
