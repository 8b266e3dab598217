package main

import (
	"os"

	"bookstore-storefront/internal/config"
	"bookstore-storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env is for local development; deployments use real env vars
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(config.AppEnvDev, "info")
		logger.Error("failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		logger.Debug("no .env file found, using system environment variables", nil)
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.App.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve(cfg)
}
