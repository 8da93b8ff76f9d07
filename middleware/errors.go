package middleware

import (
	"errors"
	"learnhub/services"

	"github.com/gofiber/fiber/v2"
)

// ServiceError maps a business-rule failure from the services layer onto the
// HTTP status taxonomy. 404 is returned both for missing resources and for
// resources hidden from the principal, so existence is not leaked.
func ServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	case errors.Is(err, services.ErrRoleNotAllowed):
		return JsonResponse(c, fiber.StatusForbidden, false, err.Error(), nil)
	case errors.Is(err, services.ErrForbidden):
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to perform this action!", nil)
	case errors.Is(err, services.ErrDuplicateEnrollment), errors.Is(err, services.ErrDuplicateResource):
		return JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrInvalidInput):
		return JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	default:
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
