package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-leavehub/internal/app"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunWorker(); err != nil {
		logger.Fatal("outbox worker failed", zap.Error(err))
	}
}
