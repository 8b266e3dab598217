package container

import (
	"context"
	"fmt"

	"bookstore-storefront/internal/config"
	infraCache "bookstore-storefront/internal/infrastructure/cache"
	"bookstore-storefront/internal/shared/middleware"
	"bookstore-storefront/pkg/cache"
	"bookstore-storefront/pkg/jwt"
	"bookstore-storefront/pkg/logger"
	"bookstore-storefront/pkg/metrics"

	authClient "bookstore-storefront/internal/domains/auth/client"
	authHandler "bookstore-storefront/internal/domains/auth/handler"
	authRepo "bookstore-storefront/internal/domains/auth/repository"
	authService "bookstore-storefront/internal/domains/auth/service"
	"bookstore-storefront/internal/domains/book/catalog"
	bookHandler "bookstore-storefront/internal/domains/book/handler"
	bookService "bookstore-storefront/internal/domains/book/service"
	"bookstore-storefront/internal/domains/book/view"
	cartHandler "bookstore-storefront/internal/domains/cart/handler"
	cartRepo "bookstore-storefront/internal/domains/cart/repository"
	cartService "bookstore-storefront/internal/domains/cart/service"
	"bookstore-storefront/internal/domains/navigation"
	"bookstore-storefront/internal/domains/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Registry    *prometheus.Registry
	Metrics     *metrics.StorefrontMetrics
	Catalog     catalog.Client
	AuthClient  authClient.Client
	CookieCfg   middleware.SessionMiddlewareConfig
	LoginLimits *middleware.RateLimiter

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	CartRepo cartRepo.RepositoryInterface
	AuthRepo authRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	CartService cartService.ServiceInterface
	BookService bookService.ServiceInterface
	AuthService authService.ServiceInterface
	Views       *view.Registry
	Sessions    *session.Manager

	// ========================================
	// HANDLER LAYER
	// ========================================
	BookHandler       *bookHandler.Handler
	CartHandler       *cartHandler.Handler
	AuthHandler       *authHandler.AuthHandler
	NavigationHandler *navigation.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer connects to Redis and builds the graph.
// Order: infrastructure, repositories, services, handlers.
func NewContainer(cfg *config.Config) (*Container, error) {
	logger.Info("initializing container", map[string]interface{}{"env": cfg.App.Environment})

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		// carts degrade to memory-only and login answers 503 until redis is back;
		// catalog browsing still works
		logger.Warn("redis connection failed (non-critical)", map[string]interface{}{
			"host":  cfg.Redis.Host,
			"error": err.Error(),
		})
	} else {
		logger.Info("redis connected", map[string]interface{}{"host": cfg.Redis.Host})
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return Build(cfg, redisCache, reg)
}

// Build wires the graph on top of an existing cache and metrics registry.
func Build(cfg *config.Config, c cache.Cache, reg *prometheus.Registry) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	ct := &Container{
		Config:   cfg,
		Cache:    c,
		Registry: reg,
	}

	ct.initInfrastructure()
	ct.initRepositories()
	ct.initServices()
	ct.initHandlers()

	logger.Info("container initialized", nil)
	return ct, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure() {
	if c.Registry != nil {
		c.Metrics = metrics.NewStorefrontMetrics(c.Registry)
	}
	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessTokenExpiry)
	c.Catalog = catalog.NewHTTPClient(c.Config.Catalog.BaseURL, c.Config.Catalog.Timeout, c.Metrics)
	c.AuthClient = authClient.NewHTTPClient(c.Config.Auth.BaseURL, c.Config.Auth.Timeout)

	c.CookieCfg = middleware.DefaultSessionMiddlewareConfig()
	c.CookieCfg.CookieSecure = c.Config.Session.CookieSecure
	c.CookieCfg.CookieDomain = c.Config.Session.CookieDomain
	c.CookieCfg.MaxAge = int(c.Config.Session.TTL.Seconds())

	c.LoginLimits = middleware.NewRateLimiter(c.Config.RateLimit.LoginPerMinute, c.Config.RateLimit.LoginBurst)
}

func (c *Container) initRepositories() {
	c.CartRepo = cartRepo.NewCacheRepository(c.Cache, c.Config.Session.TTL)
	c.AuthRepo = authRepo.NewCacheRepository(c.Cache)
}

func (c *Container) initServices() {
	c.CartService = cartService.NewCartService(c.CartRepo, c.Metrics)
	c.BookService = bookService.NewService(c.Catalog)
	c.AuthService = authService.NewAuthService(c.AuthClient, c.AuthRepo, c.JWTManager, c.Config.Session.TTL)
	c.Views = view.NewRegistry(c.Metrics)
	c.Sessions = session.NewManager(c.CartService, c.AuthService, c.Views, c.CookieCfg)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService, c.CartService, c.Views)
	c.CartHandler = cartHandler.NewHandler(c.CartService, c.Catalog)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService, c.Sessions, c.CookieCfg)
	c.NavigationHandler = navigation.NewHandler(c.AuthService, c.CartService)
}

// ResolveUser feeds middleware.AuthMiddleware.
func (c *Container) ResolveUser(ctx context.Context, sessionID string) (string, bool) {
	s := c.AuthService.Current(ctx, sessionID)
	return s.UserID, s.IsAuthenticated()
}

// SweepIdle evicts in-memory state of idle sessions and login limiter entries.
func (c *Container) SweepIdle() {
	idle := c.Config.Session.IdleEviction
	c.Sessions.Sweep(idle)
	c.LoginLimits.Sweep(idle)
}

// Cleanup releases infrastructure resources.
func (c *Container) Cleanup() {
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("failed to close redis", err)
			return
		}
		logger.Info("redis connections closed", nil)
	}
}
