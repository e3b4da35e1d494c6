package handlers

import (
	"fmt"
	"log"
	"strconv"

	"storefront/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a domain error onto the HTTP status it represents and
// writes the standard message envelope. Unknown errors become 500s and are
// logged; their details stay out of the response body.
func respondError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case apperrors.IsNotFound(err):
		status = fiber.StatusNotFound
	case apperrors.IsForbidden(err):
		status = fiber.StatusForbidden
	case apperrors.IsInvalidInput(err), apperrors.IsUpstreamRejected(err):
		status = fiber.StatusBadRequest
	case apperrors.IsConflict(err):
		status = fiber.StatusConflict
	case apperrors.IsGatewayUnavailable(err):
		status = fiber.StatusBadGateway
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// respondValidationError writes a 400 with one message per failed field.
func respondValidationError(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// paramID parses the ":id" route parameter as a positive integer.
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewInvalidInput("invalid id %q", c.Params("id"))
	}
	return uint(id), nil
}

// pageQuery reads page/limit query parameters with the listing defaults.
func pageQuery(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
