package routes

import (
	"hv_maint/internal/controllers"

	"github.com/gin-gonic/gin"
)

func ReportRoutes(r *gin.Engine, rp *controllers.ReportController) {
	reports := r.Group("/reports")
	{
		reports.GET("/search", rp.SearchReports)
		reports.GET("/export/csv", rp.ExportCSV)
		reports.GET("/export/xlsx", rp.ExportXLSX)
		reports.GET("/export/pptx", rp.ExportPPTX)
	}
}
