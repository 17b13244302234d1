// Package routes defines the API routing configuration. It wires
// repositories into services, services into handlers, and groups routes
// behind the auth and admin middleware.
package routes

import (
	"voucherdesk/internal/handlers"
	"voucherdesk/internal/middleware"
	"voucherdesk/internal/models"
	"voucherdesk/internal/repositories"
	"voucherdesk/internal/services/agent"
	"voucherdesk/internal/services/auth"
	"voucherdesk/internal/services/dashboard"
	"voucherdesk/internal/services/guard"
	"voucherdesk/internal/services/retailerview"
	"voucherdesk/internal/services/terminal"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	terminalRepo := repositories.NewTerminalRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	reader := repositories.NewConsoleReader(db)

	// Services
	authService := auth.NewService()
	adminGuard := guard.New("admin")
	terminalService := terminal.NewService(terminalRepo)
	agentService := agent.NewService(agentRepo)
	dashboardController := dashboard.NewController(adminGuard, reader, repositories.CacheService)
	detailRegistry := retailerview.NewRegistry(reader, terminalService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardController)
	retailerHandler := handlers.NewRetailerHandler(detailRegistry)
	terminalHandler := handlers.NewTerminalHandler(detailRegistry)
	agentHandler := handlers.NewAgentHandler(agentService)
	reportHandler := handlers.NewReportHandler(reportRepo)

	// Public routes
	app.Get("/health", handlers.HealthCheck)
	api := app.Group("/api")
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Authenticated routes
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authenticated := api.Group("/", authMiddleware.Handler)
	authenticated.Post("/logout", authHandler.Logout)

	// Admin console routes; the capability check runs before any data load.
	admin := authenticated.Group("/admin", middleware.RequireAdmin(adminGuard))

	admin.Get("/dashboard", dashboardHandler.GetDashboard)

	admin.Get("/retailers", middleware.HasPermission(models.PermissionRetailerRead), retailerHandler.ListRetailers)
	admin.Get("/retailers/:id", middleware.HasPermission(models.PermissionRetailerRead), retailerHandler.GetRetailerDetail)
	admin.Put("/retailers/:id/expanded", retailerHandler.SetExpandedSection)

	admin.Post("/retailers/:id/terminals", middleware.HasPermission(models.PermissionTerminalWrite), terminalHandler.CreateTerminal)
	admin.Patch("/retailers/:id/terminals/:terminalId/status", middleware.HasPermission(models.PermissionTerminalWrite), terminalHandler.ToggleTerminal)
	admin.Delete("/retailers/:id/terminals/:terminalId", middleware.HasPermission(models.PermissionTerminalWrite), terminalHandler.DeleteTerminal)

	admin.Get("/agents", middleware.HasPermission(models.PermissionAgentRead), agentHandler.ListAgents)
	admin.Post("/agents", middleware.HasPermission(models.PermissionAgentWrite), agentHandler.CreateAgent)

	admin.Get("/reports/sales", middleware.HasPermission(models.PermissionReportRead), reportHandler.SalesReport)
	admin.Get("/reports/earnings", middleware.HasPermission(models.PermissionReportRead), reportHandler.EarningsSummary)
	admin.Get("/reports/inventory", middleware.HasPermission(models.PermissionReportRead), reportHandler.InventoryReport)
}
