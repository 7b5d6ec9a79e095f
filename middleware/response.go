package middleware

import "github.com/gofiber/fiber/v2"

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// Detail writes the {"detail": ...} body the API uses for non-field errors.
func Detail(c *fiber.Ctx, statusCode int, detail string) error {
	return c.Status(statusCode).JSON(fiber.Map{"detail": detail})
}

// ValidationErrorResponse writes field errors as {"field": ["message"]}.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	body := make(map[string][]string, len(errors))
	for field, msg := range errors {
		body[field] = []string{msg}
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
