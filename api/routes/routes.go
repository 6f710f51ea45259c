package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/loteriainsights/megasena-backend/internal/config"
	"github.com/loteriainsights/megasena-backend/internal/handlers"
	"github.com/loteriainsights/megasena-backend/internal/middleware"
)

// HandlerDependencies bundles the handlers the router wires up.
type HandlerDependencies struct {
	AuthHandler      *handlers.AuthHandler
	AnalysisHandler  *handlers.AnalysisHandler
	GeographyHandler *handlers.GeographyHandler
	HistoryHandler   *handlers.HistoryHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}

		analysis := public.Group("/analysis")
		{
			analysis.GET("/summary", deps.AnalysisHandler.GetSummary)
			analysis.GET("/frequencies", deps.AnalysisHandler.GetFrequencies)
			analysis.GET("/frequencies/rank", deps.AnalysisHandler.RankNumbers)
			analysis.GET("/repeats", deps.AnalysisHandler.GetRepeats)
			analysis.POST("/combinations/check", deps.AnalysisHandler.CheckCombination)
			analysis.POST("/suggestions", deps.AnalysisHandler.Suggest)
		}

		geography := public.Group("/geography")
		{
			geography.GET("/municipalities", deps.GeographyHandler.GetTopMunicipalities)
			geography.GET("/states", deps.GeographyHandler.GetStateRanking)
			geography.GET("/states/:uf/municipalities", deps.GeographyHandler.GetStateMunicipalities)
		}

		public.GET("/history/draws", deps.HistoryHandler.GetDraws)
		public.GET("/history/draws/:contest", deps.HistoryHandler.GetDrawByContest)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/history/refresh", deps.HistoryHandler.Refresh)
	}

	return router
}
