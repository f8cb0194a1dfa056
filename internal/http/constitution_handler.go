package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"veda-core/internal/catalog"
	"veda-core/internal/domain"
	"veda-core/internal/service"
)

// ConstitutionHandler expone el calculo de constitucion y los perfiles.
type ConstitutionHandler struct {
	logger   *zap.Logger
	engine   *service.ConstitutionEngine
	profiles *service.ProfileService
	catalog  *catalog.Catalog
}

func NewConstitutionHandler(logger *zap.Logger, engine *service.ConstitutionEngine, profiles *service.ProfileService, c *catalog.Catalog) *ConstitutionHandler {
	return &ConstitutionHandler{
		logger:   logger,
		engine:   engine,
		profiles: profiles,
		catalog:  c,
	}
}

type answersRequest struct {
	Answers domain.AnswerSet `json:"answers" binding:"required"`
}

// Compute maneja POST /constitution/compute. No guarda nada.
func (h *ConstitutionHandler) Compute(c *gin.Context) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid compute request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	classification, err := h.engine.ComputeConstitution(req.Answers)
	if err != nil {
		writeError(c, h.logger, err, "compute constitution")
		return
	}

	resp := gin.H{"classification": classification}
	if info, ok := h.catalog.DoshaInfo(classification.Primary); ok {
		resp["dosha"] = info
	}
	c.JSON(http.StatusOK, resp)
}

// Assess maneja POST /subjects/:subjectID/assessments.
func (h *ConstitutionHandler) Assess(c *gin.Context) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid assessment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.profiles.LoadOrCreateProfile(c.Request.Context(), c.Param("subjectID"), req.Answers)
	if err != nil {
		writeError(c, h.logger, err, "assess constitution")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":   profile,
		"imbalance": h.profiles.Detector().Detect(profile),
	})
}

// GetProfile maneja GET /subjects/:subjectID/profile.
func (h *ConstitutionHandler) GetProfile(c *gin.Context) {
	profile, report, err := h.profiles.GetProfile(c.Request.Context(), c.Param("subjectID"))
	if err != nil {
		writeError(c, h.logger, err, "load profile")
		return
	}

	resp := gin.H{
		"profile":   profile,
		"imbalance": report,
	}
	if info, ok := h.catalog.DoshaInfo(profile.PrimaryType); ok {
		resp["dosha"] = info
	}
	c.JSON(http.StatusOK, resp)
}

// ListAssessments maneja GET /subjects/:subjectID/assessments?limit=&order=baseline.
func (h *ConstitutionHandler) ListAssessments(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	nearest := c.Query("order") == "baseline"

	history, err := h.profiles.History(c.Request.Context(), c.Param("subjectID"), limit, nearest)
	if err != nil {
		writeError(c, h.logger, err, "list assessments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": history})
}
