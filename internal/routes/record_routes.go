package routes

import (
	"hv_maint/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RecordRoutes(r *gin.Engine, rc *controllers.RecordController) {
	records := r.Group("/records")
	{
		records.POST("", rc.CreateRecord)
		records.GET("", rc.ListRecords)
		records.GET("/:id", rc.GetRecord)
		records.PUT("/:id", rc.UpdateRecord)
		records.DELETE("/:id", rc.DeleteRecord)
		records.POST("/:id/clone", rc.CloneRecord)

		records.POST("/:id/edit-session", rc.OpenEditSession)
		records.DELETE("/:id/edit-session", rc.CloseEditSession)

		records.PUT("/:id/stages/:stageId/images/:slot", rc.SetStageImage)
		records.DELETE("/:id/stages/:stageId/images/:slot", rc.ClearStageImage)
	}
}
