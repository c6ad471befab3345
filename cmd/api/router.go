package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/middleware"
	"catalog-backend/internal/shared/response"
	"catalog-backend/internal/shared/validation"
	"catalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	validation.RegisterJSONTagNames()
	response.SetExposeInternals(!c.Config.App.IsProduction())

	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.Fail(ctx, apperror.NotFound("Route", "path", ctx.Request.Method+" "+ctx.Request.URL.Path))
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		c.AuthorHandler.RegisterRoutes(v1)
		c.BookHandler.RegisterRoutes(v1)
	}

	return router
}

// pinger is satisfied by *database.PostgresDB.
type pinger interface {
	Ping(ctx context.Context) error
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	var db pinger
	if appCtx.DB != nil {
		db = appCtx.DB
	}
	return healthCheck(appCtx.Config.App.Version, db)
}

func healthCheck(version string, db pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   version,
		}

		dbStatus := "ok"
		if db == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				dbStatus = "error: " + err.Error()
			}
		}

		if dbStatus != "ok" {
			health["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
		health["services"] = gin.H{"database": dbStatus}

		c.JSON(status, health)
	}
}
