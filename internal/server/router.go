// Package server wires the HTTP routes of the problemjson demo service.
package server

import (
	"net/http"

	"github.com/JonnyWalker81/problemjson/internal/bind"
	"github.com/JonnyWalker81/problemjson/internal/config"
	"github.com/JonnyWalker81/problemjson/internal/handlers"
	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/JonnyWalker81/problemjson/internal/metrics"
	"github.com/JonnyWalker81/problemjson/internal/middleware"
	"github.com/JonnyWalker81/problemjson/internal/problemhttp"
	"github.com/JonnyWalker81/problemjson/internal/repository"
	"github.com/JonnyWalker81/problemjson/internal/service"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine. The returned function releases
// background resources and must be called once the engine is no longer used.
func NewRouter(cfg *config.Config, log logger.Logger, reg *metrics.Registry) (*gin.Engine, func()) {
	switch cfg.Server.Env {
	case config.EnvDevelopment:
		gin.SetMode(gin.DebugMode)
	case config.EnvTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// before any handler binds a request
	bind.RegisterTagNames()

	problems := problemhttp.NewWriter(reg.Problems())

	// Initialize repositories
	personRepo := repository.NewMemoryPersonRepository()
	idempotencyRepo := repository.NewMemoryIdempotencyRepository(cfg.Idempotency.TTL)

	// Initialize services and handlers
	personService := service.NewPersonService(personRepo)
	personHandler := handlers.NewPersonHandler(personService, problems)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RequestID(log))
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery(problems))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(problems, cfg.CORS.AllowedOrigins))

	cleanup := func() {}
	if cfg.RateLimit.Requests > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, "general")
		router.Use(middleware.RateLimit(problems, limiter))
		cleanup = limiter.Close
	}

	router.NoRoute(problems.NoRoute)
	router.NoMethod(problems.NoMethod)

	router.GET("/metrics", gin.WrapH(reg.Handler()))
	router.GET("/health", handlers.Health(cfg.Server.Env))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		people := v1.Group("/people")
		people.POST("",
			bind.RequireContentType(problems, "application/json"),
			middleware.Idempotency(problems, idempotencyRepo),
			personHandler.CreatePerson,
		)
		people.GET("/:id", personHandler.GetPerson)
	}

	router.GET("/favicon.ico", func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return router, cleanup
}
