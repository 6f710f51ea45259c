package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loteriainsights/megasena-backend/internal/repositories"
	"github.com/loteriainsights/megasena-backend/internal/services"
)

// HistoryHandler serves the stored draw history and the protected refresh
// endpoint.
type HistoryHandler struct {
	historyService services.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// Refresh handles POST /history/refresh
func (h *HistoryHandler) Refresh(c *gin.Context) {
	summary, err := h.historyService.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh draw history: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draw history refreshed", "summary": summary})
}

// GetDraws handles GET /history/draws?start=2020-01-01&end=2021-01-01
func (h *HistoryHandler) GetDraws(c *gin.Context) {
	var startDate, endDate time.Time
	var err error
	if raw := c.Query("start"); raw != "" {
		startDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format (YYYY-MM-DD): " + raw})
			return
		}
	}
	if raw := c.Query("end"); raw != "" {
		endDate, err = time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format (YYYY-MM-DD): " + raw})
			return
		}
	}

	draws, err := h.historyService.GetDraws(c.Request.Context(), startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve draws: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(draws), "draws": draws})
}

// GetDrawByContest handles GET /history/draws/:contest
func (h *HistoryHandler) GetDrawByContest(c *gin.Context) {
	contest, err := strconv.Atoi(c.Param("contest"))
	if err != nil || contest <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contest number: " + c.Param("contest")})
		return
	}

	draw, err := h.historyService.GetDrawByContest(c.Request.Context(), contest)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No draw found for contest " + c.Param("contest")})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve draw: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, draw)
}
