package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arflow/backend/internal/domain/identity"
	"github.com/arflow/backend/internal/infrastructure/auth"
	"github.com/arflow/backend/internal/infrastructure/logger"
	"github.com/arflow/backend/internal/interfaces/http/handler"
	"github.com/arflow/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Permission *handler.PermissionHandler
	Customer   *handler.CustomerHandler
	Invoice    *handler.InvoiceHandler
	Payment    *handler.PaymentHandler
	Ticket     *handler.TicketHandler
	Email      *handler.EmailHandler
	File       *handler.FileHandler
	Sync       *handler.SyncHandler
	Dashboard  *handler.DashboardHandler
	System     *handler.SystemHandler
}

// Config carries the cross-cutting dependencies of the HTTP layer.
type Config struct {
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	// Matrix resolves per-user permission matrices for route guards.
	Matrix middleware.MatrixProvider
	// AllowOrigins is the CORS whitelist. Empty means same-origin only.
	AllowOrigins []string
}

// New builds the gin engine with the full middleware chain and every
// route mounted. The order of the global middleware matters: the
// request ID must exist before the logger annotates it, and recovery
// must wrap everything that can panic.
func New(cfg Config, h Handlers) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.AllowOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))

	jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtCfg.TokenBlacklist = cfg.TokenBlacklist
	jwtCfg.Logger = cfg.Logger
	// Inbound email is posted by the mail provider, not a logged-in user.
	jwtCfg.SkipPathPrefixes = append(jwtCfg.SkipPathPrefixes, "/api/v1/webhooks/")
	engine.Use(middleware.JWTAuthWithConfig(jwtCfg))

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")
	registerAuthRoutes(api, h)
	registerUserRoutes(api, cfg, h)
	registerCustomerRoutes(api, cfg, h)
	registerReceivableRoutes(api, cfg, h)
	registerTicketRoutes(api, cfg, h)
	registerMailRoutes(api, cfg, h)
	registerSyncRoutes(api, cfg, h)
	registerDashboardRoutes(api, cfg, h)

	return engine
}

// can is shorthand for the permission guard.
func can(cfg Config, key identity.PermissionKey, action identity.Action) gin.HandlerFunc {
	return middleware.RequirePermission(cfg.Matrix, key, action)
}

func registerAuthRoutes(api *gin.RouterGroup, h Handlers) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.POST("/password", h.Auth.ChangePassword)
		authGroup.GET("/me", h.Auth.Me)
	}
}

func registerUserRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	users := api.Group("/users")
	{
		users.POST("", can(cfg, identity.PermUsers, identity.ActionCreate), h.User.Create)
		users.GET("", can(cfg, identity.PermUsers, identity.ActionView), h.User.List)
		users.GET("/:id", can(cfg, identity.PermUsers, identity.ActionView), h.User.Get)
		users.PUT("/:id/role", can(cfg, identity.PermUsers, identity.ActionEdit), h.User.ChangeRole)
		users.PUT("/:id/active", can(cfg, identity.PermUsers, identity.ActionEdit), h.User.SetActive)
	}

	perms := api.Group("/permissions")
	{
		// Every authenticated user may read the catalog and their own matrix.
		perms.GET("/catalog", h.Permission.Catalog)
		perms.GET("/me", h.Permission.MyMatrix)

		perms.GET("/users/:id", can(cfg, identity.PermPermissions, identity.ActionView), h.Permission.UserMatrix)
		perms.PUT("/users/:id/overrides", can(cfg, identity.PermPermissions, identity.ActionEdit), h.Permission.SetOverride)
		perms.DELETE("/users/:id/overrides/:key", can(cfg, identity.PermPermissions, identity.ActionDelete), h.Permission.DeleteOverride)
		perms.POST("/consolidate", can(cfg, identity.PermPermissions, identity.ActionEdit), h.Permission.Consolidate)
	}
}

func registerCustomerRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	customers := api.Group("/customers")
	{
		customers.GET("", can(cfg, identity.PermCustomers, identity.ActionView), h.Customer.List)
		customers.GET("/:customer_id", can(cfg, identity.PermCustomers, identity.ActionView), h.Customer.Get)
		customers.PUT("/:customer_id/settings", can(cfg, identity.PermCustomers, identity.ActionEdit), h.Customer.UpdateSettings)
		customers.GET("/:customer_id/balance", can(cfg, identity.PermCustomers, identity.ActionView), h.Customer.Balance)
		customers.GET("/:customer_id/invoices", can(cfg, identity.PermInvoices, identity.ActionView), h.Customer.Invoices)
	}
}

func registerReceivableRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	invoices := api.Group("/invoices")
	{
		invoices.GET("", can(cfg, identity.PermInvoices, identity.ActionView), h.Invoice.Search)
		invoices.GET("/quick-search", can(cfg, identity.PermInvoices, identity.ActionView), h.Invoice.QuickSearch)
		invoices.GET("/:reference", can(cfg, identity.PermInvoices, identity.ActionView), h.Invoice.Get)
		invoices.POST("/:reference/touch", can(cfg, identity.PermInvoices, identity.ActionEdit), h.Invoice.Touch)
		invoices.PUT("/:reference/memo", can(cfg, identity.PermInvoiceMemos, identity.ActionEdit), h.Invoice.UpdateMemo)
		invoices.PUT("/:reference/color", can(cfg, identity.PermInvoiceColor, identity.ActionEdit), h.Invoice.SetColorStatus)
		invoices.GET("/:reference/color-history", can(cfg, identity.PermInvoiceColor, identity.ActionView), h.Invoice.ColorHistory)
	}

	payments := api.Group("/payments")
	{
		payments.GET("/:reference", can(cfg, identity.PermPayments, identity.ActionView), h.Payment.Get)
	}
}

func registerTicketRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	tickets := api.Group("/tickets")
	{
		tickets.POST("", can(cfg, identity.PermTickets, identity.ActionCreate), h.Ticket.Create)
		tickets.GET("", can(cfg, identity.PermTickets, identity.ActionView), h.Ticket.List)
		tickets.GET("/:id", can(cfg, identity.PermTickets, identity.ActionView), h.Ticket.Get)
		tickets.POST("/:id/invoices", can(cfg, identity.PermAssignments, identity.ActionCreate), h.Ticket.AddInvoice)
		tickets.PUT("/:id/collector", can(cfg, identity.PermTickets, identity.ActionEdit), h.Ticket.Reassign)
		tickets.POST("/:id/start", can(cfg, identity.PermTickets, identity.ActionEdit), h.Ticket.Start)
		tickets.POST("/:id/resolve", can(cfg, identity.PermTickets, identity.ActionEdit), h.Ticket.Resolve)
		tickets.POST("/:id/close", can(cfg, identity.PermTickets, identity.ActionEdit), h.Ticket.Close)
		tickets.POST("/:id/reopen", can(cfg, identity.PermTickets, identity.ActionEdit), h.Ticket.Reopen)
	}

	activities := api.Group("/activities")
	{
		activities.POST("", can(cfg, identity.PermActivities, identity.ActionCreate), h.Ticket.LogActivity)
		activities.GET("", can(cfg, identity.PermActivities, identity.ActionView), h.Ticket.ListActivities)
	}

	api.GET("/collectors/performance", can(cfg, identity.PermPerformance, identity.ActionView), h.Ticket.Performance)
}

func registerMailRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	api.POST("/webhooks/email", h.Email.Ingest)

	emails := api.Group("/emails")
	{
		emails.GET("", can(cfg, identity.PermEmails, identity.ActionView), h.Email.List)
		emails.GET("/search", can(cfg, identity.PermEmails, identity.ActionView), h.Email.Search)
		emails.POST("/:id/file", can(cfg, identity.PermEmails, identity.ActionEdit), h.Email.File)
		emails.PUT("/:id/folder", can(cfg, identity.PermEmails, identity.ActionEdit), h.Email.Move)
		emails.POST("/:id/labels", can(cfg, identity.PermEmailLabels, identity.ActionEdit), h.Email.ApplyLabel)
	}

	api.POST("/email-labels", can(cfg, identity.PermEmailLabels, identity.ActionCreate), h.Email.CreateLabel)

	templates := api.Group("/email-templates")
	{
		templates.POST("", can(cfg, identity.PermEmailTemplates, identity.ActionCreate), h.Email.CreateTemplate)
		templates.GET("", can(cfg, identity.PermEmailTemplates, identity.ActionView), h.Email.ListTemplates)
		templates.POST("/:id/render", can(cfg, identity.PermEmailTemplates, identity.ActionView), h.Email.RenderTemplate)
		templates.PUT("/:id/active", can(cfg, identity.PermEmailTemplates, identity.ActionEdit), h.Email.SetTemplateActive)
	}

	files := api.Group("/files")
	{
		files.POST("", can(cfg, identity.PermCustomerFiles, identity.ActionCreate), h.File.Register)
		files.GET("", can(cfg, identity.PermCustomerFiles, identity.ActionView), h.File.ListBucket)
		files.GET("/:id/download", can(cfg, identity.PermCustomerFiles, identity.ActionView), h.File.DownloadURL)
		files.DELETE("/:id", can(cfg, identity.PermCustomerFiles, identity.ActionDelete), h.File.Delete)
	}
}

func registerSyncRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	syncGroup := api.Group("/sync")
	{
		// Batch upserts pushed by the sync worker.
		syncGroup.POST("/customers", can(cfg, identity.PermSync, identity.ActionCreate), h.Customer.UpsertBatch)
		syncGroup.POST("/invoices", can(cfg, identity.PermSync, identity.ActionCreate), h.Invoice.UpsertBatch)
		syncGroup.POST("/payments", can(cfg, identity.PermSync, identity.ActionCreate), h.Payment.UpsertBatch)
		syncGroup.PUT("/payments/:reference/applications", can(cfg, identity.PermSync, identity.ActionCreate), h.Payment.ReplaceApplications)

		syncGroup.GET("/status", can(cfg, identity.PermSync, identity.ActionView), h.Sync.Status)
		syncGroup.POST("/trigger", can(cfg, identity.PermSync, identity.ActionCreate), h.Sync.Trigger)
		syncGroup.PUT("/entities/:kind", can(cfg, identity.PermSync, identity.ActionEdit), h.Sync.UpdateSchedule)
		syncGroup.PUT("/credentials", can(cfg, identity.PermSync, identity.ActionEdit), h.Sync.SetCredentials)
		syncGroup.GET("/entities/:kind/logs", can(cfg, identity.PermSyncLogs, identity.ActionView), h.Sync.Logs)
		syncGroup.GET("/drift", can(cfg, identity.PermSyncLogs, identity.ActionView), h.Sync.Drift)

		syncGroup.POST("/jobs", can(cfg, identity.PermSync, identity.ActionCreate), h.Sync.EnqueueJob)
		syncGroup.GET("/jobs", can(cfg, identity.PermSync, identity.ActionView), h.Sync.ListJobs)
		syncGroup.GET("/jobs/:id", can(cfg, identity.PermSync, identity.ActionView), h.Sync.GetJob)
	}
}

func registerDashboardRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	api.GET("/dashboard", can(cfg, identity.PermDashboard, identity.ActionView), h.Dashboard.Dashboard)
	api.GET("/search", can(cfg, identity.PermReports, identity.ActionView), h.Dashboard.Search)
}
