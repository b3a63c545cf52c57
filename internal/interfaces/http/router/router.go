package router

import (
	"net/http"

	"github.com/catering/backend/internal/infrastructure/config"
	"github.com/catering/backend/internal/infrastructure/logger"
	"github.com/catering/backend/internal/interfaces/http/dto"
	"github.com/catering/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
	root       []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g. "v1")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a registrar mounted under /api/<version>
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// RegisterRoot adds a registrar mounted at the engine root, e.g. /health
func (r *Router) RegisterRoot(registrars ...RouteRegistrar) *Router {
	r.root = append(r.root, registrars...)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	for _, registrar := range r.root {
		registrar.RegisterRoutes(&r.engine.RouterGroup)
	}
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// EngineOption adjusts the middleware chain built by NewEngine
type EngineOption func(*engineOptions)

type engineOptions struct {
	tracing     bool
	serviceName string
	provider    trace.TracerProvider
}

// WithTracing opens a server span per request on the given provider
func WithTracing(serviceName string, provider trace.TracerProvider) EngineOption {
	return func(o *engineOptions) {
		o.tracing = true
		o.serviceName = serviceName
		o.provider = provider
	}
}

// NewEngine builds a gin engine with the standard middleware chain:
// request id, tracing when enabled, access log, panic recovery, CORS and
// body limit. Unknown routes answer with the JSON error envelope.
func NewEngine(cfg config.HTTPConfig, log *zap.Logger, opts ...EngineOption) (*gin.Engine, error) {
	middleware.SetupValidator()

	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	engine.Use(middleware.RequestID())
	if o.tracing {
		engine.Use(middleware.Tracing(o.serviceName, o.provider), middleware.TraceAttributes())
	}
	engine.Use(
		logger.AccessLog(log),
		logger.Recovery(log),
		middleware.CORS(cfg.CORSAllowOrigins),
		middleware.BodyLimit(cfg.MaxBodySize),
	)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c),
		))
	})
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeBadRequest, "Method not allowed", middleware.GetRequestID(c),
		))
	})
	return engine, nil
}
