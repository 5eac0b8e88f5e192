package lead

import (
	"strconv"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type LeadController struct {
	LeadService LeadService
}

func NewLeadController(leadService LeadService) *LeadController {
	return &LeadController{LeadService: leadService}
}

type CreateLeadRequest struct {
	Title       string             `json:"title"`
	Company     string             `json:"company"`
	Value       float64            `json:"value"`
	Status      string             `json:"status,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	OwnerID     string             `json:"ownerId,omitempty"`
	ServiceType models.ServiceType `json:"serviceType,omitempty"`
	IsSameDay   bool               `json:"isSameDay,omitempty"`
	LeadSource  string             `json:"leadSource,omitempty"`
}

type MoveLeadRequest struct {
	Status string `json:"status"`
}

type StageRequest struct {
	Name string `json:"name"`
}

func (ctrl *LeadController) listFilter(c *fiber.Ctx) ListFilter {
	minValue, _ := strconv.ParseFloat(c.Query("minValue", "0"), 64)
	maxValue, _ := strconv.ParseFloat(c.Query("maxValue", "0"), 64)
	return ListFilter{
		Query:       c.Query("q"),
		OwnerID:     c.Query("ownerId"),
		ServiceType: models.ServiceType(c.Query("serviceType")),
		MinValue:    minValue,
		MaxValue:    maxValue,
		SameDayOnly: c.QueryBool("sameDay"),
		Status:      c.Query("status"),
	}
}

func (ctrl *LeadController) ListLeads(c *fiber.Ctx) error {
	leads, err := ctrl.LeadService.ListLeads(c.Context(), middleware.CurrentUser(c), ctrl.listFilter(c))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(fiber.Map{"leads": leads})
}

func (ctrl *LeadController) GetLead(c *fiber.Ctx) error {
	lead, err := ctrl.LeadService.GetLead(c.Context(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(lead)
}

func (ctrl *LeadController) CreateLead(c *fiber.Ctx) error {
	var req CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	lead, err := ctrl.LeadService.CreateLead(c.Context(), middleware.CurrentUser(c), CreateLeadInput{
		Title:       req.Title,
		Company:     req.Company,
		Value:       req.Value,
		Status:      req.Status,
		Tags:        req.Tags,
		OwnerID:     req.OwnerID,
		ServiceType: req.ServiceType,
		IsSameDay:   req.IsSameDay,
		LeadSource:  req.LeadSource,
	})
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(lead)
}

func (ctrl *LeadController) UpdateLead(c *fiber.Ctx) error {
	var patch LeadPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	lead, err := ctrl.LeadService.UpdateLead(c.Context(), middleware.CurrentUser(c), c.Params("id"), patch)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(lead)
}

func (ctrl *LeadController) MoveLead(c *fiber.Ctx) error {
	var req MoveLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	lead, err := ctrl.LeadService.MoveLead(c.Context(), middleware.CurrentUser(c), c.Params("id"), req.Status)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(lead)
}

func (ctrl *LeadController) DeleteLead(c *fiber.Ctx) error {
	if err := ctrl.LeadService.DeleteLead(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportLeads streams the acting user's visible leads as an xlsx download.
func (ctrl *LeadController) ExportLeads(c *fiber.Ctx) error {
	leads, err := ctrl.LeadService.ListLeads(c.Context(), middleware.CurrentUser(c), ctrl.listFilter(c))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}

	data, err := ExportToExcel(leads)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="leads.xlsx"`)
	return c.Send(data)
}

func (ctrl *LeadController) ListStages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"stages": ctrl.LeadService.ListStages(c.Context())})
}

func (ctrl *LeadController) AddStage(c *fiber.Ctx) error {
	var req StageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	stage, err := ctrl.LeadService.AddStage(c.Context(), middleware.CurrentUser(c), req.Name)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(stage)
}

func (ctrl *LeadController) RenameStage(c *fiber.Ctx) error {
	var req StageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	stage, err := ctrl.LeadService.RenameStage(c.Context(), middleware.CurrentUser(c), c.Params("id"), req.Name)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(stage)
}

func (ctrl *LeadController) RemoveStage(c *fiber.Ctx) error {
	if err := ctrl.LeadService.RemoveStage(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
