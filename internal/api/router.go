package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/farmapay/admin-api/docs"
	"github.com/farmapay/admin-api/internal/api/handler"
	"github.com/farmapay/admin-api/internal/api/middleware"
	"github.com/farmapay/admin-api/internal/core/domain"
	"github.com/farmapay/admin-api/internal/core/ports"
)

// loginPath is the unauthenticated entry point; the session guard redirects
// browser navigations here with the original destination in ?next=.
const loginPath = "/login"

// Deps carries the wired collaborators the router needs. Construction happens
// in cmd/api so the process lifecycle (dispatcher workers, store connections)
// stays in one place.
type Deps struct {
	Auth        ports.AuthService
	Provisioner ports.Provisioner
	Sessions    ports.SessionVerifier
	Dispatcher  handler.ProvisionDispatcher
	Mongo       *mongo.Database
	Redis       *redis.Client
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("farmapay"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	adminHandler := handler.NewAdminHandler(deps.Provisioner, deps.Dispatcher)
	viewHandler := handler.NewViewHandler()

	// --- Unauthenticated surface ---
	e.POST("/auth/login", authHandler.Login)
	e.GET(loginPath, authHandler.LoginEntry)

	// --- Protected surface: session guard first, capability gates below ---
	protected := e.Group("/v1", middleware.Session(deps.Sessions, loginPath))
	protected.GET("/me", viewHandler.Me)
	protected.GET("/views/:view", viewHandler.View)

	admin := protected.Group("/admin", middleware.RequireCapability(domain.CapManageUsers))
	admin.POST("/users", adminHandler.Provision)
	admin.POST("/users/batch", adminHandler.ProvisionBatch)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
