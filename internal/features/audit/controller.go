package audit

import (
	"strconv"

	"kliernav-crm/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	AuditService AuditService
}

func NewAuditController(auditService AuditService) *AuditController {
	return &AuditController{AuditService: auditService}
}

// ListLogs returns recent audit entries, newest first, optionally filtered by
// module and actor.
func (ctrl *AuditController) ListLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	logs, err := ctrl.AuditService.ListLogs(c.Context(), ListFilter{
		Module: models.Module(c.Query("module")),
		UserID: c.Query("userId"),
		Limit:  limit,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch audit logs")
	}

	return c.JSON(fiber.Map{
		"logs": logs,
	})
}
