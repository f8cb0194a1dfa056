package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"veda-core/internal/domain"
	"veda-core/internal/service"
)

const dateLayout = "2006-01-02"

// AnalyticsHandler registra consumos y sirve los resumenes de balance.
type AnalyticsHandler struct {
	logger    *zap.Logger
	analytics *service.AnalyticsService
	now       func() time.Time
}

func NewAnalyticsHandler(logger *zap.Logger, analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		logger:    logger,
		analytics: analytics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RecordFood maneja POST /subjects/:subjectID/food-log.
func (h *AnalyticsHandler) RecordFood(c *gin.Context) {
	var req struct {
		FoodID     string     `json:"food_id" binding:"required"`
		Servings   float64    `json:"servings"`
		MealType   string     `json:"meal_type"`
		ConsumedAt *time.Time `json:"consumed_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid food log request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	in := service.FoodLogInput{
		FoodID:   req.FoodID,
		Servings: req.Servings,
		MealType: req.MealType,
	}
	if req.ConsumedAt != nil {
		in.ConsumedAt = *req.ConsumedAt
	}
	entry, err := h.analytics.RecordFood(c.Request.Context(), c.Param("subjectID"), in)
	if err != nil {
		writeError(c, h.logger, err, "record food")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// Daily maneja GET /subjects/:subjectID/analytics/daily?date=YYYY-MM-DD.
func (h *AnalyticsHandler) Daily(c *gin.Context) {
	h.summary(c, domain.PeriodDaily, "date")
}

// Weekly maneja GET /subjects/:subjectID/analytics/weekly?week_start=YYYY-MM-DD.
func (h *AnalyticsHandler) Weekly(c *gin.Context) {
	h.summary(c, domain.PeriodWeekly, "week_start")
}

func (h *AnalyticsHandler) summary(c *gin.Context, kind domain.PeriodKind, dateParam string) {
	ref := h.now()
	if raw := c.Query(dateParam); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + dateParam})
			return
		}
		ref = parsed
	} else if kind == domain.PeriodWeekly {
		// Por defecto la semana que termina hoy.
		ref = ref.AddDate(0, 0, -6)
	}

	var override domain.Dosha
	if raw := c.Query("dosha"); raw != "" {
		d, err := domain.ParseDosha(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dosha"})
			return
		}
		override = d
	}

	summary, err := h.analytics.Summary(c.Request.Context(), c.Param("subjectID"), kind, ref, override)
	if err != nil {
		writeError(c, h.logger, err, "summarize "+string(kind))
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
