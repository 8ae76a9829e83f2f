package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/taxdesk/tds-calculator/internal/bulk"
	"github.com/taxdesk/tds-calculator/internal/calculation"
	"github.com/taxdesk/tds-calculator/internal/telemetry"
)

// RouterConfig carries the dependencies of the HTTP API. Metrics may be nil.
type RouterConfig struct {
	Engine         *calculation.Engine
	Processor      *bulk.Processor
	Metrics        *telemetry.Metrics
	Logger         zerolog.Logger
	MaxUploadBytes int64
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg RouterConfig) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(RequestID())
	r.Use(Logger(cfg.Logger))
	r.Use(Recovery())
	if cfg.Metrics != nil {
		r.Use(Metrics(cfg.Metrics))
	}

	processor := cfg.Processor
	if processor == nil {
		processor = bulk.NewProcessor(cfg.Engine, 0)
	}

	healthH := NewHealthHandler(cfg.Engine.Registry)
	sectionH := NewSectionHandler(cfg.Engine.Registry)
	calcH := NewCalculationHandler(cfg.Engine)
	bulkH := NewBulkHandler(processor, cfg.MaxUploadBytes)

	r.GET("/healthz", healthH.Liveness)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	v1.GET("/rules", healthH.Rules)

	sections := v1.Group("/sections")
	sections.GET("", sectionH.List)
	sections.GET("/:code", sectionH.Get)

	calc := v1.Group("/calculate")
	calc.POST("", calcH.Calculate)
	calc.POST("/batch", calcH.CalculateBatch)

	bulkG := v1.Group("/bulk")
	bulkG.POST("", bulkH.Upload)
	bulkG.GET("/template", bulkH.Template)

	return r
}
