package service_catalog

import (
	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ServiceController struct {
	CatalogService CatalogService
}

func NewServiceController(catalogService CatalogService) *ServiceController {
	return &ServiceController{CatalogService: catalogService}
}

type CreateServiceRequest struct {
	Type        models.ServiceType `json:"type,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	BasePrice   float64            `json:"basePrice,omitempty"`
	SLAHours    int                `json:"slaHours,omitempty"`
	Features    []string           `json:"features,omitempty"`
}

func (ctrl *ServiceController) ListServices(c *fiber.Ctx) error {
	services, err := ctrl.CatalogService.ListServices(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch services")
	}
	return c.JSON(fiber.Map{"services": services})
}

func (ctrl *ServiceController) CreateService(c *fiber.Ctx) error {
	var req CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	service, err := ctrl.CatalogService.CreateService(c.Context(), middleware.CurrentUser(c), CreateServiceInput{
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		SLAHours:    req.SLAHours,
		Features:    req.Features,
	})
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

func (ctrl *ServiceController) UpdateService(c *fiber.Ctx) error {
	var patch ServicePatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	service, err := ctrl.CatalogService.UpdateService(c.Context(), middleware.CurrentUser(c), c.Params("id"), patch)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(service)
}

func (ctrl *ServiceController) ToggleService(c *fiber.Ctx) error {
	service, err := ctrl.CatalogService.ToggleService(c.Context(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(service)
}

func (ctrl *ServiceController) DeleteService(c *fiber.Ctx) error {
	if err := ctrl.CatalogService.DeleteService(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
