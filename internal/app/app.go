package app

import (
	"os"

	"go-empdir/internal/company"
	"go-empdir/internal/department"
	"go-empdir/internal/employee"
	"go-empdir/internal/identity"
	"go-empdir/internal/messaging/kafka"
	"go-empdir/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
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
	zap.L().Info("database connection established")

	if err := db.AutoMigrate(
		&identity.User{},
		&company.Company{},
		&department.Department{},
		&employee.Employee{},
		&kafka.OutboxEvent{},
	); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	return registerModules(router, db, redisClient)
}
