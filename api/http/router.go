package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashdeck/backend/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. The three API
// endpoints are envelope-dispatched: the operation is named inside the
// POST body, not in the path.
func Register(app *fiber.App, auth *handlers.AuthHandler, users *handlers.UsersHandler, cards *handlers.CardsHandler, health *handlers.HealthHandler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	v1.Post("/auth", auth.Handle)
	v1.Post("/auth/", auth.Handle)

	v1.Post("/users", users.Handle)
	v1.Post("/users/", users.Handle)

	v1.Post("/cards", cards.Handle)
	v1.Post("/cards/", cards.Handle)
}
