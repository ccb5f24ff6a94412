package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hv_maint/internal/controllers"
)

// Controllers bundles every handler group the router mounts.
type Controllers struct {
	Records        *controllers.RecordController
	Dashboard      *controllers.DashboardController
	Reports        *controllers.ReportController
	AI             *controllers.AIController
	Municipalities *controllers.MunicipalityController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.New()

	// Recovery + request logging before any route registration
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger(ginlog.WithDefaultLevel(zerolog.InfoLevel)))

	RecordRoutes(r, ctrl.Records)
	DashboardRoutes(r, ctrl.Dashboard)
	ReportRoutes(r, ctrl.Reports)
	AIRoutes(r, ctrl.AI)
	MunicipalityRoutes(r, ctrl.Municipalities)

	return r
}
