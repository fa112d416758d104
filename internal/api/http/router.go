package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/http/handlers"
	"github.com/spec-kit/parking-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Parking        *handlers.ParkingHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	vehicles := app.Group("/vehicles", cfg.AuthMiddleware.Handle, auth.RequireDriver())
	vehicles.Post("/", cfg.Users.AddVehicle)

	// availability is public; the rest of /parking carries per-route guards
	// because driver and any-role routes share the prefix.
	parking := app.Group("/parking")
	parking.Get("/availability", cfg.Parking.Availability)
	parking.Post("/park", cfg.AuthMiddleware.Handle, auth.RequireDriver(), cfg.Parking.Park)
	parking.Post("/reservations", cfg.AuthMiddleware.Handle, auth.RequireDriver(), cfg.Parking.Reserve)
	parking.Post("/payments", cfg.AuthMiddleware.Handle, auth.RequireDriver(), cfg.Parking.Pay)
	parking.Post("/spaces/:id/vacate", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Parking.Vacate)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle, auth.RequireOperator())
	reports.Get("/occupancy", cfg.Reports.Occupancy)
	reports.Get("/revenue", cfg.Reports.Revenue)
}
