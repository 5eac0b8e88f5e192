package auth

import (
	"kliernav-crm/internal/config"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
	users      middleware.UserResolver
}

func NewAuthApi(controller *AuthController, cfg *config.Config, users middleware.UserResolver) *AuthApi {
	return &AuthApi{
		controller: controller,
		config:     cfg,
		users:      users,
	}
}

func (h *AuthApi) Setup(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/login", h.controller.Login)
	authGroup.Get("/me", middleware.AuthMiddleware(h.config.SkipAuth, h.users), h.controller.Me)
}
