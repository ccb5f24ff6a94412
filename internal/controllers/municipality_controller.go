package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hv_maint/internal/models"
)

// MunicipalityController serves the static municipality reference data.
type MunicipalityController struct {
	Municipalities []models.Municipality
}

func NewMunicipalityController(municipalities []models.Municipality) *MunicipalityController {
	return &MunicipalityController{Municipalities: municipalities}
}

// ListMunicipalities returns the reference set.
func (mc *MunicipalityController) ListMunicipalities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"municipalities": mc.Municipalities})
}

// GetMunicipalitiesGeoJSON feeds the interactive map a FeatureCollection of
// municipality points.
func (mc *MunicipalityController) GetMunicipalitiesGeoJSON(c *gin.Context) {
	payload, err := models.MunicipalitiesGeoJSON(mc.Municipalities)
	if err != nil {
		logrus.WithError(err).Error("GetMunicipalitiesGeoJSON: encoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao gerar GeoJSON"})
		return
	}
	c.Data(http.StatusOK, "application/geo+json", payload)
}
