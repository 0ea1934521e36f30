package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/complaintdesk/complaints-api/docs"
	"github.com/complaintdesk/complaints-api/internal/api/handler"
	"github.com/complaintdesk/complaints-api/internal/api/middleware"
	"github.com/complaintdesk/complaints-api/internal/core/ports"
)

// Dependencies carries everything the router needs. Registerer and Gatherer
// default to the Prometheus default registry.
type Dependencies struct {
	Auth           ports.AuthService
	Complaints     ports.ComplaintService
	Checks         map[string]handler.PingFunc
	Logger         zerolog.Logger
	RequestTimeout time.Duration
	Registerer     prometheus.Registerer
	Gatherer       prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "complaints",
		Subsystem:  "http",
		Registerer: registerer,
	}))
	if deps.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeout(deps.RequestTimeout))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	complaintHandler := handler.NewComplaintHandler(deps.Complaints)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	// --- Public routes ---
	e.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	complaints := e.Group("/complaints", middleware.Auth(deps.Auth))
	complaints.POST("", complaintHandler.Create)
	complaints.GET("", complaintHandler.List)
	complaints.PUT("/:id", complaintHandler.Update)
	complaints.DELETE("/:id", complaintHandler.Delete)

	// --- Operations (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
