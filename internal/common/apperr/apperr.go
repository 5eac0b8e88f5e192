package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors for the failure modes the services can produce. Services
// wrap these with fmt.Errorf("%w: ...") so callers can test with errors.Is
// while the HTTP layer maps them to status codes.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrRoleInUse        = errors.New("role in use")
	ErrStageNotEmpty    = errors.New("stage not empty")
	ErrSelfDeletion     = errors.New("users cannot delete themselves")
	ErrValidation       = errors.New("validation failed")
	ErrExternalService  = errors.New("external service failure")
)

// HTTPStatus maps a service error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrRoleInUse), errors.Is(err, ErrStageNotEmpty), errors.Is(err, ErrSelfDeletion):
		return fiber.StatusConflict
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrExternalService):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
