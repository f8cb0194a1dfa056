package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"veda-core/internal/domain"
	"veda-core/internal/service"
)

// writeError traduce errores de dominio a respuestas HTTP.
func writeError(c *gin.Context, logger *zap.Logger, err error, op string) {
	var invalid *domain.InvalidAnswerError
	var limited *service.RateLimitError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid answer",
			"trait":  invalid.Trait,
			"value":  invalid.Value,
			"reason": invalid.Reason,
		})
	case errors.Is(err, domain.ErrDegenerateScore):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "degenerate score"})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	case errors.Is(err, domain.ErrUnknownContent):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &limited):
		retry := int(math.Ceil(limited.RetryAfter.Seconds()))
		if retry > 0 {
			c.Header("Retry-After", strconv.Itoa(retry))
		}
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests", "retry_after_seconds": retry})
	case errors.Is(err, service.ErrAssessmentRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	case errors.Is(err, service.ErrInvalidSubject), errors.Is(err, service.ErrInvalidMealType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not " + op})
	}
}
