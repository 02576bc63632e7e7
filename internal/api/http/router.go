package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/owenj053/netone-backend/internal/api/http/handlers"
	"github.com/owenj053/netone-backend/internal/auth"
	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Assets         *handlers.AssetsHandler
	Tickets        *handlers.TicketsHandler
	Permits        *handlers.PermitsHandler
	Dispatch       *handlers.DispatchHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.Middleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Post("/auth/login", cfg.Users.Login)
	app.Post("/auth/register", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleManager), cfg.Users.Register)

	api := app.Group("", cfg.AuthMiddleware.Handle)

	users := api.Group("/users", auth.RequireRole(domain.RoleManager))
	users.Get("", cfg.Users.ListUsers)
	users.Put("/:id", cfg.Users.UpdateUser)

	assets := api.Group("/assets")
	assets.Get("", auth.RequireRole(), cfg.Assets.ListAssets)
	assets.Post("", auth.RequireRole(domain.RoleManager), cfg.Assets.CreateAsset)
	assets.Delete("/:id", auth.RequireRole(domain.RoleManager), cfg.Assets.DeleteAsset)

	tickets := api.Group("/tickets", auth.RequireRole())
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Get("/:id/logs", cfg.Tickets.ListLogs)

	permits := api.Group("/permits")
	permits.Post("/ticket/:ticket_id", auth.RequireRole(domain.RoleManager), cfg.Permits.IssuePermit)
	permits.Put("/:permit_id/acknowledge", auth.RequireRole(domain.RoleEngineer), cfg.Permits.AcknowledgePermit)

	dispatch := api.Group("/dispatch")
	dispatch.Post("/location", auth.RequireRole(domain.RoleEngineer), cfg.Dispatch.ReportLocation)
	dispatch.Get("/ticket/:ticket_id", auth.RequireRole(domain.RoleManager), cfg.Dispatch.RankEngineers)

	reports := api.Group("/reports", auth.RequireRole(domain.RoleManager))
	reports.Get("/summary", cfg.Reports.TeamSummary)
	reports.Get("/user/:user_id", cfg.Reports.UserReport)
}
