package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fertiplan/internal/server/handlers"
)

// Handlers groups the HTTP adapters. Webhook is nil when WhatsApp is not configured.
type Handlers struct {
	Recommendations *handlers.RecommendationHandler
	Catalog         *handlers.CatalogHandler
	Webhook         *handlers.WebhookHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api/v1")
	{
		api.POST("/recommendations", h.Recommendations.Create)
		api.GET("/recommendations", h.Recommendations.List)
		api.GET("/recommendations/:id", h.Recommendations.Get)
		api.POST("/weather/analysis", h.Recommendations.AnalyzeWeather)

		api.GET("/crops", h.Catalog.ListCrops)
		api.GET("/crops/:id", h.Catalog.GetCrop)
		api.GET("/fertilizers", h.Catalog.ListFertilizers)
		api.GET("/regions", h.Catalog.ListRegions)
	}

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
		r.POST("/send-message", h.Webhook.SendMessage)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logger.Info("router initialized", zap.Bool("whatsapp", h.Webhook != nil))

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request completed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}
