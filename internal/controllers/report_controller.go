package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hv_maint/internal/models"
	"hv_maint/internal/reports"
	"hv_maint/internal/repository"
	"hv_maint/internal/views"
)

// ReportController runs the report search and the export downloads.
type ReportController struct {
	Repo           *repository.Repository
	Municipalities []models.Municipality
}

func NewReportController(repo *repository.Repository, municipalities []models.Municipality) *ReportController {
	return &ReportController{Repo: repo, Municipalities: municipalities}
}

func (rp *ReportController) selectRecords(c *gin.Context) ([]models.MaintenanceRecord, bool) {
	var criteria views.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return views.ByReportCriteria(rp.Repo.List(nil), criteria), true
}

// SearchReports returns the records matching the report criteria.
func (rp *ReportController) SearchReports(c *gin.Context) {
	records, ok := rp.selectRecords(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// ExportCSV streams the tabular report as a BOM-prefixed CSV download.
func (rp *ReportController) ExportCSV(c *gin.Context) {
	records, ok := rp.selectRecords(c)
	if !ok {
		return
	}

	table := reports.BuildTable(records, rp.Municipalities)
	var buf bytes.Buffer
	if err := reports.WriteCSV(&buf, table); err != nil {
		logrus.WithError(err).Error("ExportCSV: serialization failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao gerar CSV"})
		return
	}

	sendAttachment(c, reports.ExportFilename("csv", time.Now()), "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX streams the tabular report as a two-sheet workbook.
func (rp *ReportController) ExportXLSX(c *gin.Context) {
	records, ok := rp.selectRecords(c)
	if !ok {
		return
	}

	table := reports.BuildTable(records, rp.Municipalities)
	var buf bytes.Buffer
	if err := reports.WriteXLSX(&buf, table); err != nil {
		logrus.WithError(err).Error("ExportXLSX: serialization failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao gerar planilha"})
		return
	}

	sendAttachment(c, reports.ExportFilename("xlsx", time.Now()),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportPPTX streams the slide-deck report.
func (rp *ReportController) ExportPPTX(c *gin.Context) {
	records, ok := rp.selectRecords(c)
	if !ok {
		return
	}

	deck := reports.BuildDeck(records, rp.Municipalities, time.Now())
	var buf bytes.Buffer
	if err := reports.WritePPTX(&buf, deck); err != nil {
		logrus.WithError(err).Error("ExportPPTX: serialization failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao gerar apresentação"})
		return
	}

	sendAttachment(c, reports.ExportFilename("pptx", time.Now()),
		"application/vnd.openxmlformats-officedocument.presentationml.presentation", buf.Bytes())
}

func sendAttachment(c *gin.Context, filename, contentType string, payload []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, payload)
}
