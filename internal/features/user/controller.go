package user

import (
	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	UserService UserService
}

func NewUserController(userService UserService) *UserController {
	return &UserController{UserService: userService}
}

type CreateUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	RoleID    string `json:"roleId,omitempty"`
	Status    string `json:"status,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func (ctrl *UserController) ListUsers(c *fiber.Ctx) error {
	users, err := ctrl.UserService.ListUsers(c.Context(), ListFilter{
		Query:  c.Query("q"),
		RoleID: c.Query("roleId"),
		Status: models.UserStatus(c.Query("status")),
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch users")
	}
	return c.JSON(fiber.Map{"users": users})
}

func (ctrl *UserController) GetUser(c *fiber.Ctx) error {
	user, err := ctrl.UserService.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(user)
}

func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := ctrl.UserService.CreateUser(c.Context(), middleware.CurrentUser(c), CreateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		RoleID:    req.RoleID,
		Status:    models.UserStatus(req.Status),
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	var patch UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := ctrl.UserService.UpdateUser(c.Context(), middleware.CurrentUser(c), c.Params("id"), patch)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(user)
}

func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	if err := ctrl.UserService.DeleteUser(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
