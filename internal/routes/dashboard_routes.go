package routes

import (
	"hv_maint/internal/controllers"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(r *gin.Engine, dc *controllers.DashboardController) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("", dc.GetDashboard)
		dashboard.GET("/municipality/:id", dc.GetMunicipalityDrilldown)
	}
}
