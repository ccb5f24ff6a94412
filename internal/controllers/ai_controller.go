package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hv_maint/internal/ai"
	"hv_maint/internal/models"
	"hv_maint/internal/repository"
)

// AIController exposes the assistive endpoints. Bridge may be nil when no API
// key was configured; every handler then degrades to 503 instead of failing
// at startup.
type AIController struct {
	Bridge ai.Bridge
	Repo   *repository.Repository
}

func NewAIController(bridge ai.Bridge, repo *repository.Repository) *AIController {
	return &AIController{Bridge: bridge, Repo: repo}
}

func (ac *AIController) ready(c *gin.Context) bool {
	if ac.Bridge == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistente de IA não configurado"})
		return false
	}
	return true
}

func aiFailure(c *gin.Context, err error) {
	logrus.WithError(err).Warn("AI request failed")
	switch {
	case errors.Is(err, ai.ErrNoImage):
		c.JSON(http.StatusBadGateway, gin.H{"error": ai.ErrNoImage.Error()})
	case errors.Is(err, ai.ErrUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": ai.ErrUnavailable.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ImproveText returns a corrected version of free-form technical prose.
func (ac *AIController) ImproveText(c *gin.Context) {
	if !ac.ready(c) {
		return
	}

	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	improved, err := ac.Bridge.ImproveText(c.Request.Context(), input.Text)
	if err != nil {
		aiFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": improved})
}

// AnalyzeImage produces a technical note for a base64 image payload.
func (ac *AIController) AnalyzeImage(c *gin.Context) {
	if !ac.ready(c) {
		return
	}

	var input struct {
		ImageData string `json:"image_data" binding:"required"`
		Context   string `json:"context"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img := models.MaintenanceImage{Data: input.ImageData}
	mime, raw, ok := img.DecodePayload()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Imagem inválida ou não decodificável"})
		return
	}

	note, err := ac.Bridge.AnalyzeImage(c.Request.Context(), raw, mime, input.Context)
	if err != nil {
		aiFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": note})
}

// GenerateImage renders an illustration and returns it base64-encoded.
func (ac *AIController) GenerateImage(c *gin.Context) {
	if !ac.ready(c) {
		return
	}

	var input struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, mime, err := ac.Bridge.GenerateImage(c.Request.Context(), input.Prompt)
	if err != nil {
		aiFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mime_type":  mime,
		"image_data": base64.StdEncoding.EncodeToString(data),
	})
}

// GenerateSummary writes an executive summary over all current records.
func (ac *AIController) GenerateSummary(c *gin.Context) {
	if !ac.ready(c) {
		return
	}

	summary, err := ac.Bridge.GenerateSummary(c.Request.Context(), ac.Repo.List(nil))
	if err != nil {
		aiFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
