package routes

import (
	"hv_maint/internal/controllers"

	"github.com/gin-gonic/gin"
)

func AIRoutes(r *gin.Engine, ac *controllers.AIController) {
	ai := r.Group("/ai")
	{
		ai.POST("/improve-text", ac.ImproveText)
		ai.POST("/analyze-image", ac.AnalyzeImage)
		ai.POST("/generate-image", ac.GenerateImage)
		ai.POST("/summary", ac.GenerateSummary)
	}
}
