package leave

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-leavehub/internal/middleware"
	"go-leavehub/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	if rdb != nil {
		requests.Use(middleware.Idempotency(rdb))
	}
	{
		requests.POST("", middleware.RBACAuthorize(rbacService, "leave_request", "create"), handler.Create)
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.List)
		requests.GET("/pending-approvals", middleware.RBACAuthorize(rbacService, "leave_request", "decide_manager"), handler.PendingApprovals)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetById)

		requests.POST("/:id/manager-approve", middleware.RBACAuthorize(rbacService, "leave_request", "decide_manager"), handler.ManagerApprove)
		requests.POST("/:id/manager-reject", middleware.RBACAuthorize(rbacService, "leave_request", "decide_manager"), handler.ManagerReject)
		requests.POST("/:id/hr-approve", middleware.RBACAuthorize(rbacService, "leave_request", "decide_hr"), handler.HRApprove)
		requests.POST("/:id/hr-reject", middleware.RBACAuthorize(rbacService, "leave_request", "decide_hr"), handler.HRReject)
		requests.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave_request", "cancel"), handler.Cancel)
	}

	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "leave_balance", "read_self"), handler.Balances)
	}
}
