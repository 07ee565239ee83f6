// Package router wires middleware and handlers onto the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/chatforge/backend/internal/infrastructure/cache"
	"github.com/chatforge/backend/internal/infrastructure/config"
	"github.com/chatforge/backend/internal/infrastructure/logger"
	"github.com/chatforge/backend/internal/interfaces/http/handler"
	"github.com/chatforge/backend/internal/interfaces/http/middleware"
)

// Dependencies carries everything the route table needs
type Dependencies struct {
	Config        *config.Config
	Logger        *zap.Logger
	JWTConfig     middleware.JWTMiddlewareConfig
	SettingsCache cache.SettingsCache
	Maintenance   middleware.MaintenanceReader

	System         *handler.SystemHandler
	Approval       *handler.ApprovalHandler
	Reconciliation *handler.ReconciliationHandler
	Diagnostics    *handler.DiagnosticsHandler
	Contact        *handler.ContactHandler
	BuildRequest   *handler.BuildRequestHandler
	Template       *handler.TemplateHandler
	Settings       *handler.SettingsHandler
	Audit          *handler.AuditHandler
}

// New builds the gin engine with the full route table
func New(deps Dependencies) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.RequestID())
	// The tracing middleware runs before the request logger so log lines
	// carry the active trace and span IDs.
	if deps.Config.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(deps.Config.Telemetry.ServiceName))
	}
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: deps.Config.HTTP.CORSAllowOrigins,
		AllowMethods: deps.Config.HTTP.CORSAllowMethods,
		AllowHeaders: deps.Config.HTTP.CORSAllowHeaders,
		MaxAge:       middleware.DefaultCORSConfig().MaxAge,
	}))

	engine.GET("/health", deps.System.Health)

	maintenanceGate := middleware.MaintenanceGate(deps.SettingsCache, deps.Maintenance, deps.Logger)

	public := engine.Group("/api/v1/public", maintenanceGate)
	{
		public.POST("/contact", deps.Contact.Submit)
		public.POST("/build-requests", deps.BuildRequest.Submit)
		public.GET("/build-requests/features", deps.BuildRequest.Features)
		public.GET("/templates", deps.Template.ListActive)
	}

	// Maintenance mode still admits allowlisted roles, so the gate
	// runs after authentication here.
	admin := engine.Group("/api/v1/admin", middleware.JWTAuth(deps.JWTConfig), maintenanceGate)
	requireAdmin := middleware.RequireAdmin()
	{
		admin.GET("/system/info", deps.System.Info)

		admin.GET("/companies/pending", deps.Approval.ListPending)
		admin.GET("/companies/counts", deps.Approval.Counts)
		admin.GET("/companies/status/:status", deps.Approval.ListByStatus)
		admin.POST("/companies/:id/approve", deps.Approval.Approve)
		admin.POST("/companies/:id/reject", deps.Approval.Reject)
		admin.POST("/companies/approve-all", deps.Approval.ApproveAllPending)
		admin.POST("/companies/reset-all", requireAdmin, deps.Approval.ResetAllToPending)
		admin.DELETE("/companies/:id", requireAdmin, deps.Approval.DeleteCompany)
		admin.POST("/companies/probe", deps.Approval.CreateSyntheticCompany)

		admin.GET("/reconciliation/scan", deps.Reconciliation.Scan)
		admin.POST("/reconciliation/users/:id/fix", deps.Reconciliation.FixOrphanUser)
		admin.POST("/reconciliation/fix-all", deps.Reconciliation.FixAllOrphans)
		admin.DELETE("/reconciliation/orphan-companies", requireAdmin, deps.Reconciliation.DeleteOrphanCompanies)
		admin.POST("/reconciliation/companies", deps.Reconciliation.CreateCompanyForEmail)

		admin.GET("/diagnostics/statistics", deps.Diagnostics.Statistics)
		admin.GET("/diagnostics/integrity", deps.Diagnostics.Integrity)
		admin.GET("/diagnostics/export", deps.Diagnostics.ExportSnapshot)

		admin.GET("/contact-messages", deps.Contact.List)
		admin.GET("/contact-messages/unread-count", deps.Contact.UnreadCount)
		admin.POST("/contact-messages/:id/read", deps.Contact.MarkRead)
		admin.DELETE("/contact-messages/:id", deps.Contact.Delete)

		admin.GET("/build-requests", deps.BuildRequest.List)
		admin.GET("/build-requests/:id", deps.BuildRequest.Get)
		admin.POST("/build-requests/:id/transition", deps.BuildRequest.Transition)
		admin.GET("/build-requests/:id/export", deps.BuildRequest.ExportProjectDetail)

		admin.POST("/templates", deps.Template.Create)
		admin.GET("/templates", deps.Template.ListAll)
		admin.PUT("/templates/:id", deps.Template.Update)
		admin.PATCH("/templates/:id/published", deps.Template.SetPublished)
		admin.DELETE("/templates/:id", deps.Template.Delete)

		admin.GET("/settings/security", deps.Settings.GetSecurity)
		admin.PUT("/settings/security", requireAdmin, deps.Settings.UpdateSecurity)
		admin.GET("/settings/maintenance", deps.Settings.GetMaintenance)
		admin.PUT("/settings/maintenance", requireAdmin, deps.Settings.UpdateMaintenance)

		admin.GET("/audit", deps.Audit.ListRecent)
	}

	return engine
}
