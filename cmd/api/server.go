package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-backend/pkg/container"
	"catalog-backend/pkg/logger"
)

func Serve() {
	appContainer, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer appContainer.Cleanup()

	// stopMonitor runs before Cleanup, so the monitor exits before the pool closes.
	stopMonitor := startPoolMonitor(appContainer.DB, time.Minute)
	defer stopMonitor()

	if !appContainer.Config.App.IsProduction() {
		logger.Warn("Unexpected error causes are included in responses", map[string]interface{}{
			"env": appContainer.Config.App.Environment,
		})
	}

	router := SetupRouter(appContainer)

	port := appContainer.Config.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server starting", map[string]interface{}{
			"addr":   srv.Addr,
			"health": fmt.Sprintf("http://localhost:%s/api/v1/health", port),
		})

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Debug("Server exited gracefully")
}

type poolMonitor interface {
	MonitorPoolHealth(ctx context.Context, interval time.Duration)
}

// startPoolMonitor runs m in the background. The returned stop cancels it and
// blocks until it has returned.
func startPoolMonitor(m poolMonitor, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.MonitorPoolHealth(ctx, interval)
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}
