package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/depomarket/retail-service/internal/api/http/handlers"
	"github.com/depomarket/retail-service/internal/auth"
	"github.com/depomarket/retail-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Records        *handlers.RecordsHandler
	AdminRecords   *handlers.AdminRecordsHandler
	AdminAuth      *handlers.AdminAuthHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	submit := api.Group("")
	if cfg.RateLimiter != nil {
		submit = api.Group("", cfg.RateLimiter)
	}
	submit.Post("/orders", cfg.Records.SubmitOrder)
	submit.Post("/sell-requests", cfg.Records.SubmitSellRequest)
	submit.Post("/service-requests", cfg.Records.SubmitServiceRequest)
	submit.Post("/moving-requests", cfg.Records.SubmitMovingRequest)
	api.Get("/track/:number", cfg.Records.Track)

	adminAuth := app.Group("/admin/auth")
	adminAuth.Post("/login", cfg.AdminAuth.Login)
	adminAuth.Post("/password/reset/request", cfg.AdminAuth.RequestPasswordReset)
	adminAuth.Post("/password/reset/confirm", cfg.AdminAuth.ConfirmPasswordReset)
	adminAuth.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireRole(), cfg.AdminAuth.ChangePassword)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole())
	admin.Get("/records/:kind", cfg.AdminRecords.List)
	admin.Get("/records/:kind/:id", cfg.AdminRecords.Get)
	admin.Patch("/records/:kind/:id/status", cfg.AdminRecords.UpdateStatus)
	admin.Post("/records/:kind/:id/notes", cfg.AdminRecords.AddNote)
	admin.Delete("/records/:kind/:id", cfg.AdminRecords.Delete)
	admin.Delete("/records/:kind", auth.RequireRole(domain.AdminRoleOwner), cfg.AdminRecords.Purge)
	admin.Get("/reports/status-summary", cfg.AdminRecords.StatusSummary)
}
