package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workbridge/internal/core/auth"
	"workbridge/internal/core/session"
	"workbridge/internal/domain"
	mdw "workbridge/internal/transport/http/middleware"
)

// NewAdminEngine builds the admin-plane engine. Everything under /admin/v1
// requires an admin-role token.
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, revoker session.Revoker) *gin.Engine {
	r := gin.New()

	r.Use(
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, revoker, domain.RoleAdmin))
	MountAllAdmin(admin)

	return r
}
