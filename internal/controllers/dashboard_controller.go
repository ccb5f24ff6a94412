package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hv_maint/internal/models"
	"hv_maint/internal/repository"
	"hv_maint/internal/views"
)

// DashboardController serves the filtered views behind the two dashboard
// tabs and the municipality drill-down.
type DashboardController struct {
	Repo *repository.Repository
}

func NewDashboardController(repo *repository.Repository) *DashboardController {
	return &DashboardController{Repo: repo}
}

// GetDashboard returns the records for the active tab, narrowed by the
// municipality filter when one is set. The tab counts always cover the full
// collection regardless of that filter.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	status := models.MaintenanceStatus(c.DefaultQuery("status", string(models.StatusPending)))
	if !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido: " + string(status)})
		return
	}

	all := dc.Repo.List(nil)
	pending, completed := views.TabCounts(all)
	filtered := views.ByStatusAndMunicipality(all, status, c.Query("municipality_id"))

	c.JSON(http.StatusOK, gin.H{
		"records":         filtered,
		"pending_count":   pending,
		"completed_count": completed,
	})
}

// GetMunicipalityDrilldown partitions one municipality's records by status.
func (dc *DashboardController) GetMunicipalityDrilldown(c *gin.Context) {
	grouped := views.ByMunicipalityGrouped(dc.Repo.List(nil), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"grouped": grouped})
}
