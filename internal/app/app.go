package app

import (
	"os"

	"go-bms/internal/company"
	"go-bms/internal/department"
	"go-bms/internal/employee"
	"go-bms/internal/shared/connection"
	"go-bms/internal/shared/counter"
	"go-bms/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure, migrates the schema and mounts
// every module's routes on the router.
func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	db, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := migrate(db); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	return registerModules(router, db, rdb, logger)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&company.Company{},
		&department.Department{},
		&employee.Employee{},
		&counter.CompanyCounter{},
	)
}
