package auth

import (
	"github.com/gin-gonic/gin"

	"go-leavehub/internal/middleware"
	"go-leavehub/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", handler.Logout)

		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/change-password", middleware.AuthMiddleware(), middleware.RateLimitByUser(0.5, 3), handler.ChangePassword)

		// Pembuatan akun dibatasi untuk HR/Admin
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RBACAuthorize(rbacService, "employee", "create"),
			handler.Register,
		)
	}
}
