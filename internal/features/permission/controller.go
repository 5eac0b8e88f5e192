package permission

import (
	"github.com/gofiber/fiber/v2"
)

type PermissionController struct {
	Catalog *Catalog
}

func NewPermissionController(catalog *Catalog) *PermissionController {
	return &PermissionController{Catalog: catalog}
}

// ListPermissions returns the full catalog in definition order, for rendering
// role permission matrices.
func (ctrl *PermissionController) ListPermissions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"permissions": ctrl.Catalog.List(),
	})
}
