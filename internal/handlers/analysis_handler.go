package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/loteriainsights/megasena-backend/internal/analysis"
	"github.com/loteriainsights/megasena-backend/internal/models"
	"github.com/loteriainsights/megasena-backend/internal/services"
)

// AnalysisHandler serves frequency, repeat-detection and suggestion
// endpoints.
type AnalysisHandler struct {
	analysisService services.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// GetSummary handles GET /analysis/summary
func (h *AnalysisHandler) GetSummary(c *gin.Context) {
	summary, err := h.analysisService.Summary()
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetFrequencies handles GET /analysis/frequencies
func (h *AnalysisHandler) GetFrequencies(c *gin.Context) {
	table, err := h.analysisService.Frequencies()
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// RankNumbers handles GET /analysis/frequencies/rank?k=10&direction=most
func (h *AnalysisHandler) RankNumbers(c *gin.Context) {
	k, err := strconv.Atoi(c.DefaultQuery("k", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid k parameter: " + c.Query("k")})
		return
	}
	direction := models.RankDirection(c.DefaultQuery("direction", string(models.RankMost)))
	if direction != models.RankMost && direction != models.RankLeast {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid direction (most or least): " + string(direction)})
		return
	}

	ranking, err := h.analysisService.RankNumbers(k, direction)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"k": k, "direction": direction, "numbers": ranking})
}

// GetRepeats handles GET /analysis/repeats
func (h *AnalysisHandler) GetRepeats(c *gin.Context) {
	repeats, total, err := h.analysisService.Repeats()
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalRepeats": total, "combinations": repeats})
}

// CheckCombination handles POST /analysis/combinations/check
type CheckCombinationRequest struct {
	Numbers []int `json:"numbers" binding:"required"`
}

func (h *AnalysisHandler) CheckCombination(c *gin.Context) {
	var request CheckCombinationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contests, err := h.analysisService.CheckCombination(request.Numbers)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"numbers":            models.NormalizeCombination(request.Numbers),
		"previouslyDrawn":    len(contests) > 0,
		"historicalContests": contests,
	})
}

// Suggest handles POST /analysis/suggestions
type SuggestRequest struct {
	Strategy      string `json:"strategy" binding:"required"`
	Count         int    `json:"count"`
	UniqueInBatch bool   `json:"uniqueInBatch"`
}

func (h *AnalysisHandler) Suggest(c *gin.Context) {
	var request SuggestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	strategy, err := models.ParseStrategy(request.Strategy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count := request.Count
	if count == 0 {
		count = 1
	}

	suggestions, err := h.analysisService.Suggest(strategy, count, request.UniqueInBatch)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"strategy": strategy, "suggestions": suggestions})
}

// respondAnalysisError maps engine and snapshot errors onto HTTP statuses.
func respondAnalysisError(c *gin.Context, err error) {
	var rangeErr *analysis.InvalidRangeError
	var combinationErr *analysis.InvalidCombinationError
	var poolErr *analysis.InsufficientPoolError
	var stateErr *analysis.UnknownStateError

	switch {
	case errors.Is(err, services.ErrHistoryNotLoaded), errors.Is(err, services.ErrDrawHistoryUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &rangeErr), errors.As(err, &combinationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &poolErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
