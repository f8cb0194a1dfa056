package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"veda-core/internal/catalog"
	"veda-core/internal/domain"
	"veda-core/internal/service"
)

// ContentHandler sirve platos, sugerencias y alimentos del catalogo.
type ContentHandler struct {
	logger   *zap.Logger
	selector *service.ContentSelector
	catalog  *catalog.Catalog
}

func NewContentHandler(logger *zap.Logger, selector *service.ContentSelector, c *catalog.Catalog) *ContentHandler {
	return &ContentHandler{
		logger:   logger,
		selector: selector,
		catalog:  c,
	}
}

// Meals maneja GET /content/meals.
func (h *ContentHandler) Meals(c *gin.Context) {
	q, ok := parseContentQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": h.selector.SelectMeals(q)})
}

// Suggestions maneja GET /content/suggestions.
func (h *ContentHandler) Suggestions(c *gin.Context) {
	q, ok := parseContentQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": h.selector.SelectSuggestions(q)})
}

// Suggestion maneja GET /content/suggestions/:id.
func (h *ContentHandler) Suggestion(c *gin.Context) {
	sg, err := h.selector.SuggestionByID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err, "load suggestion")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": sg})
}

// Foods maneja GET /foods.
func (h *ContentHandler) Foods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"foods": h.catalog.Foods()})
}

// FoodImpact maneja GET /foods/:id/impact. Con ?dosha= devuelve solo ese dosha.
func (h *ContentHandler) FoodImpact(c *gin.Context) {
	food, ok := h.catalog.Food(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if raw := c.Query("dosha"); raw != "" {
		d, err := domain.ParseDosha(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dosha"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"food":   food,
			"dosha":  d,
			"impact": service.ClassifyFoodImpact(food.Effect, d),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"food":    food,
		"impacts": service.FoodImpacts(food.Effect),
	})
}

// parseContentQuery escribe 400 y devuelve false si algun filtro es invalido.
func parseContentQuery(c *gin.Context) (domain.ContentQuery, bool) {
	d, err := domain.ParseDosha(c.Query("dosha"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dosha"})
		return domain.ContentQuery{}, false
	}
	q := domain.ContentQuery{
		Primary:  d,
		Category: strings.ToLower(strings.TrimSpace(c.Query("category"))),
		Priority: domain.Priority(strings.ToLower(strings.TrimSpace(c.Query("priority")))),
		Season:   strings.ToLower(strings.TrimSpace(c.Query("season"))),
	}
	if q.Priority != "" && !q.Priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
		return domain.ContentQuery{}, false
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return domain.ContentQuery{}, false
		}
		q.Limit = n
	}
	return q, true
}
