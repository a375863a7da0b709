package handlers

import "github.com/gofiber/fiber/v2"

// RegisterSystemRoutes registers the index and health-check endpoints.
// The health check is a liveness probe only; it does not touch the
// database or the message broker.
func RegisterSystemRoutes(app fiber.Router) {
	app.Get("/", handleIndex)
	app.Get("/health", handleHealth)
}

func handleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "Product Catalog REST API Service",
		"version": "1.0.0",
		"paths":   fiber.Map{"products": "/api/v1/products"},
	})
}

func handleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "OK"})
}
