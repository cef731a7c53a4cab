package audit

import (
	"github.com/gin-gonic/gin"

	"go-leavehub/internal/middleware"
	"go-leavehub/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.List)
		logs.GET("/export", middleware.RBACAuthorize(rbacService, "audit", "export"), handler.Export)
	}
}
