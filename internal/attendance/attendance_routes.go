package attendance

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
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/clock-in", middleware.RBACAuthorize(rbacService, "attendance", "check_in"), handler.ClockIn)
		attendances.POST("/clock-out", middleware.RBACAuthorize(rbacService, "attendance", "check_out"), handler.ClockOut)
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetAll)
	}
}
