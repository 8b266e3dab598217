package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore-storefront/internal/config"
	"bookstore-storefront/pkg/container"
	"bookstore-storefront/pkg/logger"
)

func Serve(cfg *config.Config) {
	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	appContainer, err := container.NewContainer(cfg)
	if err != nil {
		logger.Error("failed to initialize container", err)
		os.Exit(1)
	}
	defer appContainer.Cleanup()

	// ========================================
	// 2. SETUP ROUTER + SWEEPER
	// ========================================
	router := SetupRouter(appContainer)

	sweeper, err := startSweeper(appContainer)
	if err != nil {
		logger.Error("failed to start session sweeper", err)
		os.Exit(1)
	}

	// ========================================
	// 3. CONFIGURE HTTP SERVER
	// ========================================
	// WriteTimeout must outlive a slow catalog call
	port := cfg.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   cfg.Catalog.Timeout + 10*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// ========================================
	// 4. START SERVER (NON-BLOCKING)
	// ========================================
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", map[string]interface{}{
			"port":    port,
			"env":     cfg.App.Environment,
			"catalog": cfg.Catalog.BaseURL,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// ========================================
	// 5. GRACEFUL SHUTDOWN
	// ========================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		logger.Error("server failed", err)
	}

	logger.Info("shutting down server", nil)
	<-sweeper.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", err)
	}

	logger.Info("server exited gracefully", nil)
}
