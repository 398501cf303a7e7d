package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/lodge-registration/internal/api/http/handlers"
	"github.com/spec-kit/lodge-registration/internal/auth"
	"github.com/spec-kit/lodge-registration/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Rules          *handlers.RulesHandler
	Applications   *handlers.ApplicationsHandler
	Users          *handlers.UsersHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	app.Get("/rules", cfg.Rules.Get)

	// Public registration flow: submit and look up status by reference.
	app.Post("/applications", cfg.Applications.Submit)
	app.Get("/applications/reference/:reference", cfg.Applications.GetByReference)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Users.Register)
	authGroup.Post("/users/login", cfg.Users.Login)
	authGroup.Post("/admin/login", cfg.Admin.Login)
	authGroup.Post("/admin/setup", cfg.Admin.Setup)
	authGroup.Get("/users/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)
	authGroup.Post("/users/logout", cfg.AuthMiddleware.Handle, cfg.Users.Logout)

	me := app.Group("/me", cfg.AuthMiddleware.Handle, auth.RequireUser())
	me.Get("/applications", cfg.Users.MyApplications)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/applications", cfg.Admin.ListApplications)
	admin.Get("/applications/:id", cfg.Admin.GetApplication)
	admin.Patch("/applications/:id/status", cfg.Admin.UpdateStatus)
	admin.Get("/stats", cfg.Admin.Stats)
}
