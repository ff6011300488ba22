package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"workbridge/internal/core/auth"
	"workbridge/internal/core/session"
	resp "workbridge/internal/transport/http/response"
)

// Context keys set for downstream handlers.
const (
	KeyUserID = "userId"
	KeyRole   = "role"
	KeyJTI    = "jti"
)

// AuthJWT validates the Bearer token, rejects revoked ones, and optionally
// requires a role.
func AuthJWT(j *auth.JWTer, revoker session.Revoker, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error("Missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error("Invalid token"))
			return
		}
		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil || revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error("Invalid token"))
				return
			}
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error("Forbidden"))
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Set(KeyJTI, claims.ID)
		c.Set("claims", claims)
		c.Next()
	}
}
