package app

import (
	"go-empdir/internal/auth"
	"go-empdir/internal/company"
	"go-empdir/internal/department"
	"go-empdir/internal/employee"
	"go-empdir/internal/identity"
	"go-empdir/internal/messaging/kafka"
	"go-empdir/internal/middleware"
	"go-empdir/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	userRepo := identity.NewRepository(db)
	companyRepo := company.NewRepository(db)
	departmentRepo := department.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	tokenStore := auth.NewTokenStore(rdb)
	authService := auth.NewService(userRepo, employeeRepo, tokenStore)
	companyService := company.NewService(db, companyRepo)
	departmentService := department.NewService(db, departmentRepo, outboxRepo)
	employeeService := employee.NewService(db, employeeRepo, userRepo, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
	}

	return nil
}
