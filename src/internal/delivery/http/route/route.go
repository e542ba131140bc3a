package route

import (
	"trip-service/src/internal/delivery/http"
	"trip-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App            *fiber.App
	TripController *http.TripController
	AuthMiddleware fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.SetupAuthRoute()
}

func (c *RouteConfig) SetupAuthRoute() {
	c.App.Use(c.AuthMiddleware)

	trips := c.App.Group("/trips/v1")
	trips.Get("/:tripCode", c.TripController.GetTrip)
	trips.Post("/:tripCode/status/edit", c.TripController.EditStatus)
	trips.Put("/:tripCode/bill-of-ladings", c.TripController.UpdateBillOfLading)
}
