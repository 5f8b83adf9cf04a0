package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Complaints *handlers.ComplaintsHandler
	Users      *handlers.UsersHandler
	Tickets    *handlers.TicketsHandler
	Metrics    *handlers.MetricsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)

	api := app.Group("/api")
	api.Get("/health", cfg.Health.Health)
	api.Get("/health/ready", cfg.Health.Ready)
	api.Get("/metrics", cfg.Metrics.Snapshot)

	complaints := api.Group("/complaints")
	complaints.Get("/", cfg.Complaints.ListComplaints)
	complaints.Post("/", cfg.Complaints.CreateComplaint)
	complaints.Patch("/:id", cfg.Complaints.UpdateComplaint)

	users := api.Group("/users")
	users.Get("/", cfg.Users.ListUsers)
	users.Post("/", cfg.Users.CreateUser)

	tickets := api.Group("/tickets")
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/export", cfg.Tickets.ExportTickets)
	tickets.Get("/summary", cfg.Tickets.TicketSummary)
}

// NewApp builds the fiber application with middlewares and routes attached.
func NewApp(appName string, mw MiddlewareConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: ErrorHandler(mw.Logger, mw.Metrics),
	})
	RegisterMiddlewares(app, mw)
	RegisterRoutes(app, routes)
	return app
}
