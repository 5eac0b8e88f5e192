package assistant

import (
	"context"
	"fmt"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// LeadReader resolves a lead under the actor's visibility rules. Satisfied by
// the lead service via an adapter in main.
type LeadReader interface {
	GetLead(ctx context.Context, actor *models.User, id string) (*models.Lead, error)
}

// ThreadSource supplies the conversation history behind a reply suggestion.
type ThreadSource interface {
	Conversation(ctx context.Context, leadID string) (*models.Conversation, error)
}

type AssistantController struct {
	AssistantService AssistantService
	Leads            LeadReader
	Threads          ThreadSource
}

func NewAssistantController(assistantService AssistantService, leads LeadReader, threads ThreadSource) *AssistantController {
	return &AssistantController{
		AssistantService: assistantService,
		Leads:            leads,
		Threads:          threads,
	}
}

type ChatRequest struct {
	Prompt string `json:"prompt"`
	Mode   AIMode `json:"mode,omitempty"`
}

func (ctrl *AssistantController) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Prompt == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Prompt is required")
	}
	if req.Mode == "" {
		req.Mode = ModeFast
	}

	answer := ctrl.AssistantService.Generate(c.Context(), middleware.CurrentUser(c), req.Prompt, req.Mode)
	return c.JSON(answer)
}

func (ctrl *AssistantController) AnalyzeLead(c *fiber.Ctx) error {
	lead, err := ctrl.Leads.GetLead(c.Context(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}

	analysis := ctrl.AssistantService.AnalyzeLead(c.Context(), lead)
	return c.JSON(fiber.Map{"analysis": analysis})
}

func (ctrl *AssistantController) SuggestReply(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	leadID := c.Params("leadId")

	lead, err := ctrl.Leads.GetLead(c.Context(), actor, leadID)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	conv, err := ctrl.Threads.Conversation(c.Context(), leadID)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}

	history := ""
	messages := conv.Messages
	if len(messages) > 5 {
		messages = messages[len(messages)-5:]
	}
	for _, m := range messages {
		history += fmt.Sprintf("%s: %s\n", m.SenderID, m.Text)
	}
	leadContext := fmt.Sprintf("Empresa: %s, Servicio: %s, Valor: %.0f", lead.Company, lead.ServiceType, lead.Value)

	suggestion, ok := ctrl.AssistantService.SuggestReply(c.Context(), history, leadContext)
	if !ok {
		return c.JSON(fiber.Map{"suggestion": nil})
	}
	return c.JSON(fiber.Map{"suggestion": suggestion})
}
