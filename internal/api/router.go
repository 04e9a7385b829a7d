package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/pipeboard/roster-console/docs"
	"github.com/pipeboard/roster-console/internal/api/handler"
	"github.com/pipeboard/roster-console/internal/api/middleware"
	"github.com/pipeboard/roster-console/internal/core/domain"
	"github.com/pipeboard/roster-console/internal/core/service"
	mongodb "github.com/pipeboard/roster-console/internal/infrastructure/db/mongo"
	redisdb "github.com/pipeboard/roster-console/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the router needs beyond its stores.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("roster"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	revoker := redisdb.NewRevocationList(rdb)

	userService := service.NewUserService(userRepo, log)
	authService := service.NewAuthService(userRepo, revoker, cfg.JWTSecret, cfg.TokenTTL)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(cfg.JWTSecret, revoker)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Roster ---
	// Route-level role sets mirror the authorization predicate; the service
	// layer enforces the same table independently.
	users := e.Group("/users", authMiddleware)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create, middleware.RequireRoles(domain.RoleAdmin, domain.RoleViewer))
	users.PUT("/:id", userHandler.Update, middleware.RequireRoles(domain.RoleAdmin))
	users.DELETE("/:id", userHandler.Delete, middleware.RequireRoles(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
