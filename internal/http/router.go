package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"veda-core/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	verifier *service.TokenVerifier,
	constitutionH *ConstitutionHandler,
	contentH *ContentHandler,
	analyticsH *AnalyticsHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/constitution/compute", constitutionH.Compute)

	content := r.Group("/content")
	content.GET("/meals", contentH.Meals)
	content.GET("/suggestions", contentH.Suggestions)
	content.GET("/suggestions/:id", contentH.Suggestion)

	foods := r.Group("/foods")
	foods.GET("", contentH.Foods)
	foods.GET("/:id/impact", contentH.FoodImpact)

	subjects := r.Group("/subjects/:subjectID", JWTAuthMiddleware(verifier))
	subjects.POST("/assessments", constitutionH.Assess)
	subjects.GET("/assessments", constitutionH.ListAssessments)
	subjects.GET("/profile", constitutionH.GetProfile)
	subjects.POST("/food-log", analyticsH.RecordFood)
	subjects.GET("/analytics/daily", analyticsH.Daily)
	subjects.GET("/analytics/weekly", analyticsH.Weekly)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
