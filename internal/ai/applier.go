package ai

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"hv_maint/internal/models"
	"hv_maint/internal/repository"
)

// NoteApplier runs evidence analysis off the request path and merges the
// result back as a record note. Results are tagged with the target record id
// and only applied if that record still exists when the call resolves; a
// record deleted mid-flight just drops the note. Failures leave the record
// untouched and surface as a log notice only.
type NoteApplier struct {
	bridge  Bridge
	repo    *repository.Repository
	timeout time.Duration
}

func NewNoteApplier(bridge Bridge, repo *repository.Repository) *NoteApplier {
	return &NoteApplier{bridge: bridge, repo: repo, timeout: 2 * time.Minute}
}

// AnalyzeAsync fires the analysis and returns immediately.
func (a *NoteApplier) AnalyzeAsync(recordID string, imageData []byte, mimeType, contextText string) {
	go a.analyze(recordID, imageData, mimeType, contextText)
}

func (a *NoteApplier) analyze(recordID string, imageData []byte, mimeType, contextText string) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	note, err := a.bridge.AnalyzeImage(ctx, imageData, mimeType, contextText)
	if err != nil {
		logrus.WithError(err).WithField("record_id", recordID).Warn("análise de imagem pela IA falhou")
		return
	}
	if note == "" {
		return
	}

	if err := a.repo.AppendAINote(recordID, note); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// The record was deleted while the call was in flight.
			logrus.WithField("record_id", recordID).Debug("registro removido antes da análise concluir, nota descartada")
			return
		}
		logrus.WithError(err).WithField("record_id", recordID).Warn("falha ao aplicar nota da IA")
	}
}
