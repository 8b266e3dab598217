package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bookstore-storefront/internal/shared/middleware"
	"bookstore-storefront/pkg/container"
	"bookstore-storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// ClientIP only honours X-Forwarded-For from these peers
	if err := router.SetTrustedProxies(c.Config.App.TrustedProxies); err != nil {
		logger.Warn("invalid trusted proxies, trusting none", map[string]interface{}{"error": err.Error()})
		_ = router.SetTrustedProxies(nil)
	}

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.SessionMiddleware(c.CookieCfg),
		middleware.AuthMiddleware(c.ResolveUser),
		middleware.Logger(),
	)

	if c.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupBookRoutes(v1, c)
		setupCartRoutes(v1, c)
		setupNavigationRoutes(v1, c)
		setupAuthRoutes(v1, c)

		v1.DELETE("/session", c.Sessions.EndSession)
	}

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/view", c.BookHandler.GetListingView)
		books.GET("/:id", c.BookHandler.GetBookDetail)
		books.POST("/:id/quantity", c.BookHandler.AdjustQuantity)
		books.POST("/:id/add-to-cart", c.BookHandler.AddToCart)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cart := v1.Group("/cart")
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PUT("/items/:book_id", c.CartHandler.UpdateQuantity)
		cart.DELETE("/items/:book_id", c.CartHandler.RemoveBook)
		cart.DELETE("/lines/:line_id", c.CartHandler.RemoveLine)
		cart.DELETE("", c.CartHandler.Clear)
	}
}

// ========================================
// NAVIGATION ROUTES
// ========================================
func setupNavigationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/search", c.NavigationHandler.Search)
	v1.POST("/filters", c.NavigationHandler.ApplyFilters)
	v1.POST("/filters/reset", c.NavigationHandler.ResetFilters)
	v1.GET("/nav", c.NavigationHandler.Shell)
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.LoginLimits.Middleware(), c.AuthHandler.Login)
		auth.POST("/logout", c.AuthHandler.Logout)
		auth.GET("/me", c.AuthHandler.Me)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"redis": redisStatus,
		}

		statusCode := http.StatusOK
		if health["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
