package auth

import (
	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	AuthService AuthService
}

func NewAuthController(authService AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type LoginRequest struct {
	Email string `json:"email"`
}

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := ctrl.AuthService.Login(c.Context(), req.Email)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(result)
}

func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	user, permissions := ctrl.AuthService.Profile(c.Context(), middleware.CurrentUser(c))
	return c.JSON(fiber.Map{
		"user":        user,
		"permissions": permissions,
	})
}
