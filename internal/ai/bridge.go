// Package ai is the boundary to the generative text/image service. Every
// capability here is optional for the core: failures are non-fatal notices
// and must never corrupt the record being edited.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"hv_maint/internal/models"
)

var (
	// ErrUnavailable wraps network/quota failures of the remote service.
	ErrUnavailable = errors.New("serviço de IA indisponível")
	// ErrNoImage means the remote response carried no image payload.
	ErrNoImage = errors.New("nenhuma imagem gerada pela IA")
)

// Bridge is the consumed AI capability set.
type Bridge interface {
	ImproveText(ctx context.Context, text string) (string, error)
	AnalyzeImage(ctx context.Context, imageData []byte, mimeType, contextText string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (data []byte, mimeType string, err error)
	GenerateSummary(ctx context.Context, records []models.MaintenanceRecord) (string, error)
}

// Config selects the remote models.
type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
}

// GeminiBridge implements Bridge against the Gemini API.
type GeminiBridge struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGeminiBridge builds the bridge. The API key is required; model names
// fall back to the service defaults.
func NewGeminiBridge(ctx context.Context, cfg Config) (*GeminiBridge, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("chave de API do Gemini não configurada")
	}
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-3-flash-preview"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "gemini-2.5-flash-image"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("falha ao criar cliente Gemini: %w", err)
	}
	return &GeminiBridge{client: client, textModel: cfg.TextModel, imageModel: cfg.ImageModel}, nil
}

// ImproveText fixes spelling, grammar and technical terminology. Text under
// three characters is returned unchanged without any remote call.
func (b *GeminiBridge) ImproveText(ctx context.Context, text string) (string, error) {
	if len(strings.TrimSpace(text)) < 3 {
		return text, nil
	}

	prompt := fmt.Sprintf(`Você é um revisor técnico especializado em engenharia elétrica e manutenção de subestações.
Corrija a ortografia, gramática e pontuação do seguinte texto em português.
Mantenha o tom profissional e técnico. Se encontrar termos técnicos escritos de forma errada (ex: fuzivel, dijuntor, fase errada), corrija-os para a norma técnica.
RETORNE APENAS O TEXTO CORRIGIDO, sem explicações adicionais.

Texto: "%s"`, text)

	resp, err := b.client.Models.GenerateContent(ctx, b.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:    genai.Ptr[float32](0.2),
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return text, nil
	}
	return out, nil
}

// AnalyzeImage produces a technical note about a piece of evidence, guided by
// the activity description.
func (b *GeminiBridge) AnalyzeImage(ctx context.Context, imageData []byte, mimeType, contextText string) (string, error) {
	prompt := fmt.Sprintf(`Você é um engenheiro eletricista analisando evidências fotográficas de manutenção em alta tensão.
Contexto da atividade: %s
Descreva tecnicamente o que a foto evidencia (estado dos equipamentos, sinais de desgaste, conformidade do serviço), em português, em um parágrafo curto.`, contextText)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(imageData, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.textModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// GenerateImage renders a technical illustration for a report.
func (b *GeminiBridge) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	full := fmt.Sprintf("Crie uma imagem técnica de alta qualidade para um relatório de manutenção elétrica: %s. Estilo: Foto realista, iluminação de campo, detalhado.", prompt)

	resp, err := b.client.Models.GenerateContent(ctx, b.imageModel, genai.Text(full), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: "16:9"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType, nil
			}
		}
	}
	return nil, "", ErrNoImage
}

// GenerateSummary writes an executive summary over the full record set.
// There is no structural contract on the prose that comes back.
func (b *GeminiBridge) GenerateSummary(ctx context.Context, records []models.MaintenanceRecord) (string, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Gere um resumo executivo profissional para um supervisor de manutenção.
Considere os seguintes registros: %s.
Foque em estatísticas (pendentes vs concluídas), destaques técnicos e recomendações estratégicas para a região do Amazonas.`, payload)

	resp, err := b.client.Models.GenerateContent(ctx, b.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
