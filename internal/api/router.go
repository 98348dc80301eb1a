package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/transformer1234/job-application-tracker/internal/config"
	"github.com/transformer1234/job-application-tracker/internal/service"
)

// Options configures the router.
type Options struct {
	// DefaultPageSize is used when a list request has no page_size.
	DefaultPageSize int

	// MaxPageSize caps page_size; larger requests are clamped.
	MaxPageSize int

	// Logger receives one access log line per request. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// RequestIDs assigns ids to requests without an X-Request-ID header.
	// Defaults to UUIDv7Generator.
	RequestIDs IDGenerator
}

// Handler serves the HTTP routes.
type Handler struct {
	svc             *service.Service
	defaultPageSize int
	maxPageSize     int
}

// NewRouter builds a gin engine with every route registered.
func NewRouter(svc *service.Service, opts Options) *gin.Engine {
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = config.DefaultPageSize
	}
	if opts.MaxPageSize < 1 {
		opts.MaxPageSize = config.DefaultMaxPageSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RequestIDs == nil {
		opts.RequestIDs = UUIDv7Generator{}
	}

	h := &Handler{
		svc:             svc,
		defaultPageSize: opts.DefaultPageSize,
		maxPageSize:     opts.MaxPageSize,
	}

	router := gin.New()
	router.Use(RequestID(opts.RequestIDs), AccessLog(opts.Logger), gin.Recovery())

	router.GET("/health", h.Health)

	apps := router.Group("/applications")
	apps.POST("", h.Create)
	apps.GET("", h.List)
	apps.GET("/all", h.ListAll)
	apps.GET("/stats", h.Stats)
	apps.GET("/export", h.Export)
	apps.POST("/compact", h.Compact)
	apps.GET("/:id", h.Get)
	apps.PUT("/:id", h.UpdateStatus)
	apps.DELETE("/:id", h.Delete)

	return router
}
