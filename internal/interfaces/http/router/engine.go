package router

import (
	"context"
	"time"

	propertyapp "github.com/attcrm/backend/internal/application/property"
	"github.com/attcrm/backend/internal/infrastructure/config"
	"github.com/attcrm/backend/internal/infrastructure/logger"
	"github.com/attcrm/backend/internal/infrastructure/telemetry"
	"github.com/attcrm/backend/internal/interfaces/http/dto"
	"github.com/attcrm/backend/internal/interfaces/http/handler"
	"github.com/attcrm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the HTTP engine is built from
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	Service *propertyapp.PropertyService
	// Metrics is nil when metrics are disabled
	Metrics *telemetry.Metrics
}

// NewEngine builds the gin engine with the full middleware stack and every
// route. ctx bounds background work such as rate-limiter cleanup.
func NewEngine(ctx context.Context, deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger

	middleware.SetupValidator()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Metrics - outermost so recovered panics count as 500
	// 3. Recovery - Catch panics
	// 4. Logger - Log requests
	// 5. Tracing - server span plus path attributes
	// 6. Security headers and CORS
	// Body limit and rate limit apply to API routes only.
	engine.Use(middleware.RequestID())
	if deps.Metrics != nil {
		engine.Use(middleware.Metrics(deps.Metrics, cfg.Metrics.Path))
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanAttributes())
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}))

	r := NewRouter(engine, WithBasePath(APIBasePath))
	r.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(ctx, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		r.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	systemHandler := handler.NewSystemHandler(deps.Service)
	engine.GET("/", systemHandler.Root)
	engine.GET("/health", systemHandler.Health)
	if deps.Metrics != nil {
		engine.GET(cfg.Metrics.Path, handler.Metrics(deps.Metrics.Registry()))
	}

	r.Register(PropertyRoutes(handler.NewPropertyHandler(deps.Service)))
	r.Setup()

	engine.NoRoute(errorRoute(dto.ErrCodeRouteNotFound, "Not found."))
	engine.NoMethod(errorRoute(dto.ErrCodeMethodNotAllowed, "Method not allowed."))

	return engine
}

// PropertyRoutes maps every property operation to its endpoint under /properties
func PropertyRoutes(h *handler.PropertyHandler) *DomainGroup {
	properties := NewDomainGroup("properties", "/properties")
	properties.GET("", h.List)
	properties.POST("", h.Create)
	properties.GET("/:id", h.Get)
	properties.DELETE("/:id", h.Delete)
	properties.POST("/:id/phases", h.CreatePhase)

	units := properties.Group("units", "/:id/units")
	units.POST("", h.AddUnit)
	units.GET("/:unitId", h.GetUnit)
	units.PATCH("/:unitId", h.UpdateUnit)
	units.DELETE("/:unitId", h.DeleteUnit)
	units.POST("/:unitId/milestones", h.AddMilestone)
	units.PATCH("/:unitId/milestones", h.UpdateMilestone)

	return properties
}

func errorRoute(code, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
	}
}
