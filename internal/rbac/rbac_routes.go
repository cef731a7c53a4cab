package rbac

import (
	"github.com/gin-gonic/gin"

	"go-leavehub/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	rb := r.Group("/rbac")
	rb.Use(middleware.AuthMiddleware())
	{
		rb.POST("/enforce", middleware.RBACAuthorize(service, "audit", "read"), handler.Enforce)
	}
}
