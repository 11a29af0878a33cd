package app

import (
	"go-bms/internal/adminuser"
	"go-bms/internal/auth"
	"go-bms/internal/company"
	"go-bms/internal/department"
	"go-bms/internal/employee"
	"go-bms/internal/middleware"
	"go-bms/internal/shared/counter"
	"go-bms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	userRepo := user.NewRepository(db)
	companyRepo := company.NewRepository(db)
	departmentRepo := department.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	counterRepo := counter.NewRepository(db)

	// --- Services ---
	authService := auth.NewService(db, userRepo, companyRepo, logger)
	companyService := company.NewService(companyRepo, logger)
	departmentService := department.NewService(departmentRepo, rdb, logger)
	employeeService := employee.NewService(
		db, employeeRepo, userRepo, companyRepo, departmentRepo, counterRepo, logger,
	)
	adminUserService := adminuser.NewService(db, userRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandlerWithRedis(authService, rdb, logger)
	companyHandler := company.NewHandler(companyService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	adminUserHandler := adminuser.NewHandler(adminUserService, logger)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rdb)
		company.RegisterRoutes(api, companyHandler, authService, logger)
		department.RegisterRoutes(api, departmentHandler, authService, logger)
		employee.RegisterRoutes(api, employeeHandler, authService, logger)
		adminuser.RegisterRoutes(api, adminUserHandler, authService, logger)
	}

	return nil
}
