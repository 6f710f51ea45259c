package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/loteriainsights/megasena-backend/internal/services"
)

// GeographyHandler serves the prize-geography rankings.
type GeographyHandler struct {
	analysisService services.AnalysisService
}

// NewGeographyHandler creates a new GeographyHandler.
func NewGeographyHandler(analysisService services.AnalysisService) *GeographyHandler {
	return &GeographyHandler{
		analysisService: analysisService,
	}
}

// GetTopMunicipalities handles GET /geography/municipalities?limit=10
func (h *GeographyHandler) GetTopMunicipalities(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter: " + c.Query("limit")})
		return
	}

	ranking, err := h.analysisService.TopMunicipalities(limit)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"limit": limit, "municipalities": ranking})
}

// GetStateRanking handles GET /geography/states
func (h *GeographyHandler) GetStateRanking(c *gin.Context) {
	ranking, err := h.analysisService.StateRanking()
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"states": ranking})
}

// GetStateMunicipalities handles GET /geography/states/:uf/municipalities?k=8
func (h *GeographyHandler) GetStateMunicipalities(c *gin.Context) {
	state := c.Param("uf")
	k, err := strconv.Atoi(c.DefaultQuery("k", "8"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid k parameter: " + c.Query("k")})
		return
	}

	ranking, err := h.analysisService.RankMunicipalitiesByState(state, k)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state, "k": k, "municipalities": ranking})
}
