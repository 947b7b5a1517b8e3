package validation

import (
	"encoding/json"

	fxvalidation "github.com/go-core-fx/fiberfx/validation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DecorateWithBodyEx rejects an empty or malformed JSON body with 400, then
// parses and validates it into T. Field errors are rendered by
// fxvalidation.Middleware.
func DecorateWithBodyEx[T any](v *validator.Validate, next func(c *fiber.Ctx, req *T) error) fiber.Handler {
	decorated := fxvalidation.DecorateWithBodyEx(v, next)

	return func(c *fiber.Ctx) error {
		body := c.Body()
		if len(body) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "request body is required")
		}
		if !json.Valid(body) {
			return fiber.NewError(fiber.StatusBadRequest, "request body is not valid JSON")
		}

		return decorated(c)
	}
}
