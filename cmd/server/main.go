package main

import (
	"context"
	"log"
	"net/http"

	"hv_maint/internal/ai"
	"hv_maint/internal/config"
	"hv_maint/internal/controllers"
	"hv_maint/internal/logger"
	"hv_maint/internal/middleware"
	"hv_maint/internal/models"
	"hv_maint/internal/repository"
	"hv_maint/internal/routes"
	"hv_maint/internal/sessions"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	logger.Setup(cfg.LogFile)

	var seed []models.MaintenanceRecord
	if cfg.SeedDemoData {
		seed = models.SeedRecords()
	}
	repo := repository.New(seed...)
	registry := sessions.NewRegistry()

	// The AI bridge is optional; without an API key the endpoints answer 503
	var bridge ai.Bridge
	var applier *ai.NoteApplier
	if cfg.GeminiAPIKey != "" {
		gb, err := ai.NewGeminiBridge(context.Background(), ai.Config{
			APIKey:     cfg.GeminiAPIKey,
			TextModel:  cfg.GeminiTextModel,
			ImageModel: cfg.GeminiImgModel,
		})
		if err != nil {
			logrus.WithError(err).Warn("AI bridge disabled")
		} else {
			bridge = gb
			applier = ai.NewNoteApplier(gb, repo)
		}
	} else {
		logrus.Warn("GEMINI_API_KEY not set – AI endpoints disabled")
	}

	municipalities := models.AmazonasMunicipalities

	r := routes.SetupRouter(routes.Controllers{
		Records:        controllers.NewRecordController(repo, registry, municipalities, applier),
		Dashboard:      controllers.NewDashboardController(repo),
		Reports:        controllers.NewReportController(repo, municipalities),
		AI:             controllers.NewAIController(bridge, repo),
		Municipalities: controllers.NewMunicipalityController(municipalities),
	})

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :" + cfg.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, handler))
}
