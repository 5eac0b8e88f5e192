package role

import (
	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RoleController struct {
	RoleService RoleService
}

func NewRoleController(roleService RoleService) *RoleController {
	return &RoleController{RoleService: roleService}
}

type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func (ctrl *RoleController) ListRoles(c *fiber.Ctx) error {
	roles, err := ctrl.RoleService.ListRoles(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch roles")
	}
	return c.JSON(fiber.Map{"roles": roles})
}

func (ctrl *RoleController) GetRole(c *fiber.Ctx) error {
	role, err := ctrl.RoleService.GetRole(c.Context(), c.Params("id"))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(role)
}

func (ctrl *RoleController) CreateRole(c *fiber.Ctx) error {
	var req CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	role, err := ctrl.RoleService.CreateRole(c.Context(), middleware.CurrentUser(c), req.Name, req.Description, req.Permissions)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(role)
}

func (ctrl *RoleController) UpdateRole(c *fiber.Ctx) error {
	var patch RolePatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	role, err := ctrl.RoleService.UpdateRole(c.Context(), middleware.CurrentUser(c), c.Params("id"), patch)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(role)
}

func (ctrl *RoleController) DeleteRole(c *fiber.Ctx) error {
	if err := ctrl.RoleService.DeleteRole(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
