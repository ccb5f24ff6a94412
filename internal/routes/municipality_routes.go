package routes

import (
	"hv_maint/internal/controllers"

	"github.com/gin-gonic/gin"
)

func MunicipalityRoutes(r *gin.Engine, mc *controllers.MunicipalityController) {
	municipalities := r.Group("/municipalities")
	{
		municipalities.GET("", mc.ListMunicipalities)
		municipalities.GET("/geojson", mc.GetMunicipalitiesGeoJSON)
	}
}
