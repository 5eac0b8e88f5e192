package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"kliernav-crm/internal/common/models"

	"go.uber.org/zap"
)

type AIMode string

const (
	ModeFast      AIMode = "fast"
	ModeSearch    AIMode = "search"
	ModeReasoning AIMode = "reasoning"
)

const (
	modelFlash = "gemini-3-flash-preview"
	modelPro   = "gemini-3-pro-preview"

	reasoningBudget = 32768

	fallbackText = "Error al conectar con la inteligencia artificial."
)

const systemInstruction = `Eres KlierNav, un asistente experto para KlierNav Innovations, una agencia digital boutique liderada por Sergio Callier.

TU NEGOCIO:
- Servicios principales: Landing SAME-DAY, E-commerce Express, CRM Setup, Apps Web y Automatización.
- Diferenciador: Soluciones rápidas con alta calidad estética y funcional.
- Tono: Profesional, ejecutivo, eficiente.`

// VisibleLeadsSource supplies the leads the actor may see, used as grounding
// context for the chat. Satisfied by the lead service via an adapter in main.
type VisibleLeadsSource interface {
	VisibleLeads(ctx context.Context, actor *models.User) ([]models.Lead, error)
}

type Answer struct {
	Text    string      `json:"text"`
	Sources []WebSource `json:"sources"`
}

type LeadAnalysis struct {
	NextSteps      string `json:"nextSteps"`
	WinProbability int    `json:"winProbability"`
	ContactTone    string `json:"contactTone"`
}

type AssistantService interface {
	Generate(ctx context.Context, actor *models.User, prompt string, mode AIMode) *Answer
	AnalyzeLead(ctx context.Context, lead *models.Lead) *LeadAnalysis
	SuggestReply(ctx context.Context, conversation, leadContext string) (string, bool)
}

type AssistantServiceImpl struct {
	Client *Client
	Leads  VisibleLeadsSource
	Logger *zap.Logger
}

func NewAssistantService(client *Client, leads VisibleLeadsSource, logger *zap.Logger) AssistantService {
	return &AssistantServiceImpl{
		Client: client,
		Leads:  leads,
		Logger: logger,
	}
}

// leadContext condenses the actor's visible leads into the JSON snapshot the
// model receives as grounding.
func (s *AssistantServiceImpl) leadContext(ctx context.Context, actor *models.User) string {
	leads, err := s.Leads.VisibleLeads(ctx, actor)
	if err != nil || len(leads) == 0 {
		return ""
	}

	type leadSummary struct {
		Company   string             `json:"company"`
		Value     float64            `json:"value"`
		Status    string             `json:"status"`
		Service   models.ServiceType `json:"service"`
		IsSameDay bool               `json:"isSameDay"`
	}
	summaries := make([]leadSummary, 0, len(leads))
	for _, l := range leads {
		summaries = append(summaries, leadSummary{
			Company:   l.Company,
			Value:     l.Value,
			Status:    l.Status,
			Service:   l.ServiceType,
			IsSameDay: l.IsSameDay,
		})
	}
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// Generate answers a chat prompt. Provider failures degrade to a fixed
// apologetic answer instead of an error so the chat never breaks.
func (s *AssistantServiceImpl) Generate(ctx context.Context, actor *models.User, prompt string, mode AIMode) *Answer {
	instruction := systemInstruction
	if leadCtx := s.leadContext(ctx, actor); leadCtx != "" {
		instruction += "\n\nContexto actual:\n" + leadCtx
	}

	req := GenerateRequest{
		SystemInstruction: &Content{Parts: []Part{{Text: instruction}}},
		Contents:          []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
	}

	model := modelFlash
	switch mode {
	case ModeReasoning:
		model = modelPro
		req.GenerationConfig = &GenerationConfig{
			ThinkingConfig: &ThinkingConfig{ThinkingBudget: reasoningBudget},
		}
	case ModeSearch:
		req.Tools = []Tool{{GoogleSearch: &struct{}{}}}
	}

	resp, err := s.Client.GenerateContent(ctx, model, req)
	if err != nil {
		s.Logger.Warn("assistant generate failed", zap.String("mode", string(mode)), zap.Error(err))
		return &Answer{Text: fallbackText, Sources: []WebSource{}}
	}

	text := resp.Text()
	if text == "" {
		text = "No hay respuesta disponible."
	}
	return &Answer{Text: text, Sources: resp.Sources()}
}

// AnalyzeLead asks for a structured read on a single lead. Returns nil when
// the provider fails or answers with something unparseable.
func (s *AssistantServiceImpl) AnalyzeLead(ctx context.Context, lead *models.Lead) *LeadAnalysis {
	leadData, err := json.Marshal(lead)
	if err != nil {
		return nil
	}

	req := GenerateRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{
			Text: fmt.Sprintf("Analiza este lead para KlierNav Innovations:\n%s", leadData),
		}}}},
		GenerationConfig: &GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"nextSteps":      map[string]any{"type": "STRING"},
					"winProbability": map[string]any{"type": "INTEGER"},
					"contactTone":    map[string]any{"type": "STRING"},
				},
			},
		},
	}

	resp, err := s.Client.GenerateContent(ctx, modelFlash, req)
	if err != nil {
		s.Logger.Warn("lead analysis failed", zap.String("leadId", lead.ID), zap.Error(err))
		return nil
	}

	var analysis LeadAnalysis
	if err := json.Unmarshal([]byte(resp.Text()), &analysis); err != nil {
		s.Logger.Warn("lead analysis unparseable", zap.String("leadId", lead.ID), zap.Error(err))
		return nil
	}
	return &analysis
}

// SuggestReply drafts a short sales reply for a conversation. The second
// return reports whether a suggestion is available.
func (s *AssistantServiceImpl) SuggestReply(ctx context.Context, conversation, leadContext string) (string, bool) {
	req := GenerateRequest{
		SystemInstruction: &Content{Parts: []Part{{
			Text: "Eres un experto en ventas digitales. Tu estilo es persuasivo y directo. Máximo 20 palabras.",
		}}},
		Contents: []Content{{Role: "user", Parts: []Part{{
			Text: fmt.Sprintf("Sugiere una respuesta profesional y breve para esta conversación de KlierNav Innovations.\n\nContexto: %s\n\nChat:\n%s", leadContext, conversation),
		}}}},
	}

	resp, err := s.Client.GenerateContent(ctx, modelFlash, req)
	if err != nil {
		s.Logger.Warn("reply suggestion failed", zap.Error(err))
		return "", false
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", false
	}
	return text, true
}
