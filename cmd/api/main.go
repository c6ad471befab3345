package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"catalog-backend/pkg/logger"
)

func main() {
	// .env is optional; production uses the real environment
	envErr := godotenv.Load()

	env := getEnv("APP_ENV", "development")
	logger.Init(env, os.Getenv("LOG_LEVEL"))

	if envErr != nil {
		logger.Debug("No .env file found, using system environment variables")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting catalog API", map[string]interface{}{"env": env})

	Serve()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
