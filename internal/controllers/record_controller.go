package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hv_maint/internal/ai"
	"hv_maint/internal/models"
	"hv_maint/internal/repository"
	"hv_maint/internal/sessions"
)

// RecordController handles the maintenance-record CRUD surface.
type RecordController struct {
	Repo           *repository.Repository
	Sessions       *sessions.Registry
	Municipalities []models.Municipality
	Applier        *ai.NoteApplier // nil when the AI bridge is not configured
}

func NewRecordController(repo *repository.Repository, reg *sessions.Registry, municipalities []models.Municipality, applier *ai.NoteApplier) *RecordController {
	return &RecordController{Repo: repo, Sessions: reg, Municipalities: municipalities, Applier: applier}
}

// recordInput is the save payload. Title/Nature carry the catalog selection;
// the custom fields carry the companion free text when "Outro" is picked.
type recordInput struct {
	MunicipalityID string                    `json:"municipality_id" binding:"required"`
	Title          string                    `json:"title" binding:"required"`
	CustomTitle    string                    `json:"custom_title"`
	Nature         string                    `json:"nature" binding:"required"`
	CustomNature   string                    `json:"custom_nature"`
	Description    string                    `json:"description"`
	Date           string                    `json:"date"`
	Status         models.MaintenanceStatus  `json:"status"`
	Stages         []models.MaintenanceStage `json:"stages"`
	Technician     string                    `json:"technician"`
	IsLegacy       bool                      `json:"is_legacy"`
	LegacyFileName string                    `json:"legacy_file_name"`
}

// CreateRecord saves a new maintenance record.
func (rc *RecordController) CreateRecord(c *gin.Context) {
	var input recordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRecord: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Status != "" && !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido: " + string(input.Status)})
		return
	}

	title, err := models.ResolveServiceTitle(models.ServiceType(input.Title), input.CustomTitle)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	nature, err := models.ResolveNature(models.MaintenanceNature(input.Nature), input.CustomNature)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	candidate := models.MaintenanceRecord{MunicipalityID: input.MunicipalityID, Title: title, Nature: nature}
	if err := models.ValidateRecord(candidate, rc.Municipalities); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	rec := rc.Repo.Create(repository.CreateInput{
		MunicipalityID: input.MunicipalityID,
		Title:          title,
		Nature:         nature,
		Description:    input.Description,
		Date:           input.Date,
		Status:         input.Status,
		Stages:         input.Stages,
		Technician:     input.Technician,
		IsLegacy:       input.IsLegacy,
		LegacyFileName: input.LegacyFileName,
	})
	c.JSON(http.StatusCreated, gin.H{"record": rec})
}

// ListRecords returns the full collection, most-recent-first.
func (rc *RecordController) ListRecords(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"records": rc.Repo.List(nil)})
}

// GetRecord returns a single record by id.
func (rc *RecordController) GetRecord(c *gin.Context) {
	rec, err := rc.Repo.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// UpdateRecord merges a partial patch over an existing record. Id and
// creation date are never patchable.
func (rc *RecordController) UpdateRecord(c *gin.Context) {
	var input struct {
		MunicipalityID *string                    `json:"municipality_id"`
		Title          *string                    `json:"title"`
		CustomTitle    string                     `json:"custom_title"`
		Nature         *string                    `json:"nature"`
		CustomNature   string                     `json:"custom_nature"`
		Description    *string                    `json:"description"`
		Date           *string                    `json:"date"`
		Status         *models.MaintenanceStatus  `json:"status"`
		Stages         *[]models.MaintenanceStage `json:"stages"`
		Technician     *string                    `json:"technician"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRecord: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := repository.UpdateInput{
		MunicipalityID: input.MunicipalityID,
		Description:    input.Description,
		Date:           input.Date,
		Stages:         input.Stages,
		Technician:     input.Technician,
	}

	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido: " + string(*input.Status)})
			return
		}
		patch.Status = input.Status
	}
	if input.Title != nil {
		title, err := models.ResolveServiceTitle(models.ServiceType(*input.Title), input.CustomTitle)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		patch.Title = &title
	}
	if input.Nature != nil {
		nature, err := models.ResolveNature(models.MaintenanceNature(*input.Nature), input.CustomNature)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		patch.Nature = &nature
	}
	if input.MunicipalityID != nil {
		if _, ok := models.FindMunicipality(rc.Municipalities, *input.MunicipalityID); !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": models.ErrIncompleteRecord.Error()})
			return
		}
	}

	rec, err := rc.Repo.Update(c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
		} else {
			logrus.WithError(err).Error("UpdateRecord: update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// DeleteRecord removes a record with all its stages and images. If the record
// is open in the form view, its edit session is closed along with it.
func (rc *RecordController) DeleteRecord(c *gin.Context) {
	id := c.Param("id")
	if err := rc.Repo.Remove(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
		return
	}
	rc.Sessions.Close(id)
	c.JSON(http.StatusOK, gin.H{"message": "Registro excluído"})
}

// CloneRecord duplicates a record as a fresh pending activity.
func (rc *RecordController) CloneRecord(c *gin.Context) {
	dup, err := rc.Repo.Clone(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"record": dup})
}

// OpenEditSession marks a record as open in the form view.
func (rc *RecordController) OpenEditSession(c *gin.Context) {
	id := c.Param("id")
	if _, err := rc.Repo.Get(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": rc.Sessions.Open(id)})
}

// CloseEditSession ends the edit session for a record.
func (rc *RecordController) CloseEditSession(c *gin.Context) {
	rc.Sessions.Close(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada"})
}

// SetStageImage attaches evidence to one slot of one stage. With ?analyze=1
// and a configured AI bridge, an image analysis is fired off the request
// path; its result lands on the record only if the record still exists.
func (rc *RecordController) SetStageImage(c *gin.Context) {
	slot := models.SlotKind(c.Param("slot"))
	if !models.ValidSlot(slot) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Posição de evidência inválida: " + string(slot)})
		return
	}

	var input struct {
		Data        string `json:"data" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordID := c.Param("id")
	img := models.MaintenanceImage{Data: input.Data, Description: input.Description}
	rec, err := rc.Repo.SetStageImage(recordID, c.Param("stageId"), slot, img)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro ou etapa não encontrado"})
		return
	}

	if c.Query("analyze") == "1" && rc.Applier != nil {
		if mime, raw, ok := img.DecodePayload(); ok {
			rc.Applier.AnalyzeAsync(recordID, raw, mime, rec.Description)
		}
	}

	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// ClearStageImage empties one evidence slot.
func (rc *RecordController) ClearStageImage(c *gin.Context) {
	slot := models.SlotKind(c.Param("slot"))
	if !models.ValidSlot(slot) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Posição de evidência inválida: " + string(slot)})
		return
	}

	rec, err := rc.Repo.ClearStageImage(c.Param("id"), c.Param("stageId"), slot)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registro ou etapa não encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}
