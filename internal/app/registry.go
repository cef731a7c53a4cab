package app

import (
	"database/sql"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-leavehub/internal/attendance"
	"go-leavehub/internal/audit"
	"go-leavehub/internal/auth"
	"go-leavehub/internal/employee"
	"go-leavehub/internal/leave"
	"go-leavehub/internal/leavetype"
	"go-leavehub/internal/messaging/kafka"
	"go-leavehub/internal/middleware"
	"go-leavehub/internal/rbac"
	"go-leavehub/internal/rbac/infra"
	"go-leavehub/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	directory := employee.NewDirectory(employeeRepo)
	authService := auth.NewService(authRepo, employeeRepo, auditService, auth.TokenConfig{
		Secret: []byte(os.Getenv("JWT_SECRET")),
	})
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, auditService)
	balanceCache := leave.NewBalanceCache(rdb, 10*time.Minute)
	leaveService := leave.NewService(db, leaveRepo, leaveTypeRepo, directory, outboxRepo, auditService, balanceCache)
	attendanceService := attendance.NewService(db, attendanceRepo)

	// --- Handlers ---
	isProd := os.Getenv("APP_ENV") == "production"
	authHandler := auth.NewHandler(authService, isProd)
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveHandler := leave.NewHandler(leaveService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	auditHandler := audit.NewHandler(auditService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		audit.RegisterRoutes(api, auditHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
