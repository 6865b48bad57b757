package api

import (
	"github.com/gofiber/fiber/v3"
)

// jsonSuccess returns a 200 response carrying a message plus any payload
// fields.
func jsonSuccess(c fiber.Ctx, message string, data fiber.Map) error {
	resp := fiber.Map{"message": message}
	for k, v := range data {
		resp[k] = v
	}
	return c.JSON(resp)
}

// jsonCreated is jsonSuccess with a 201 status.
func jsonCreated(c fiber.Ctx, message string, data fiber.Map) error {
	resp := fiber.Map{"message": message}
	for k, v := range data {
		resp[k] = v
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// jsonErrorDetails returns an error response with a details field for
// validation feedback.
func jsonErrorDetails(c fiber.Ctx, status int, message, details string) error {
	return c.Status(status).JSON(fiber.Map{"message": message, "details": details})
}
