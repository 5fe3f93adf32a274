package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	collectionapp "github.com/arflow/backend/internal/application/collection"
	identityapp "github.com/arflow/backend/internal/application/identity"
	mailapp "github.com/arflow/backend/internal/application/mail"
	partnerapp "github.com/arflow/backend/internal/application/partner"
	receivableapp "github.com/arflow/backend/internal/application/receivable"
	reportapp "github.com/arflow/backend/internal/application/report"
	syncapp "github.com/arflow/backend/internal/application/sync"
	"github.com/arflow/backend/internal/infrastructure/auth"
	"github.com/arflow/backend/internal/infrastructure/cache"
	"github.com/arflow/backend/internal/infrastructure/config"
	"github.com/arflow/backend/internal/infrastructure/event"
	"github.com/arflow/backend/internal/infrastructure/gateway"
	"github.com/arflow/backend/internal/infrastructure/logger"
	"github.com/arflow/backend/internal/infrastructure/persistence"
	"github.com/arflow/backend/internal/infrastructure/scheduler"
	"github.com/arflow/backend/internal/infrastructure/storage"
	"github.com/arflow/backend/internal/infrastructure/telemetry"
	"github.com/arflow/backend/internal/interfaces/http/handler"
	"github.com/arflow/backend/internal/interfaces/http/router"
)

var version = "dev" // overridden at build time via -ldflags

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ArFlow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs the token blacklist and the sync dispatch lease. In
	// development it is optional; in-memory fallbacks keep a single
	// instance working without it.
	var (
		blacklist auth.TokenBlacklist
		lease     syncapp.DispatchLease
	)
	redisClient, err := cache.NewRedisClient(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist and dispatch lease", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
		lease = cache.NewInMemoryDispatchLease()
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		lease = cache.NewRedisDispatchLeaseWithClient(redisClient, "arflow:sync")
		log.Info("Redis connected")
	}

	// Object storage for customer file buckets
	var objectStorage mailapp.ObjectStorageService
	if cfg.Storage.Provider == "s3" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("S3 object storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Using stub object storage, presigned URLs are not real")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	permRepo := persistence.NewGormPermissionRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	applicationRepo := persistence.NewGormApplicationRepository(db.DB)
	colorLogRepo := persistence.NewGormColorStatusLogRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	emailRepo := persistence.NewGormEmailRepository(db.DB)
	labelRepo := persistence.NewGormLabelRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	fileRepo := persistence.NewGormFileRepository(db.DB)
	syncEntityRepo := persistence.NewGormSyncEntityRepository(db.DB)
	syncLogRepo := persistence.NewGormSyncLogRepository(db.DB)
	syncJobRepo := persistence.NewGormSyncJobRepository(db.DB)
	credentialsRepo := persistence.NewGormCredentialsRepository(db.DB)

	// Event bus and cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(collectionapp.NewAssignmentSyncHandler(assignmentRepo, log))
	eventBus.Subscribe(collectionapp.NewSettlementHandler(ticketRepo, eventBus, log))
	eventBus.Subscribe(receivableapp.NewColorAuditHandler(colorLogRepo, log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	permissionService := identityapp.NewPermissionService(userRepo, permRepo, log)

	// Mirror and collection services
	customerService := partnerapp.NewCustomerService(customerRepo, eventBus)
	reconciliationService := receivableapp.NewReconciliationService(invoiceRepo, paymentRepo, applicationRepo, eventBus)
	escalationService := receivableapp.NewStatusEscalationService(invoiceRepo, customerRepo, colorLogRepo, eventBus, log)
	searchService := receivableapp.NewInvoiceSearchService(invoiceRepo)
	ticketService := collectionapp.NewTicketService(ticketRepo, activityRepo, invoiceRepo, eventBus)
	performanceService := collectionapp.NewPerformanceService(
		ticketRepo, activityRepo, assignmentRepo, applicationRepo, invoiceRepo, paymentRepo)

	// Mail and file services
	filingService := mailapp.NewFilingService(emailRepo, labelRepo, customerRepo, eventBus, log)
	templateService := mailapp.NewTemplateService(templateRepo)
	fileService := mailapp.NewFileService(fileRepo, emailRepo, objectStorage, log)

	// Sync dispatch against the Acumatica master sync function
	erpGateway := gateway.NewAcumaticaGateway(cfg.Sync.RequestTimeout, log)
	dispatchService := syncapp.NewDispatchService(syncEntityRepo, syncLogRepo, credentialsRepo, lease, erpGateway, log)
	reminderService := syncapp.NewReminderService(syncLogRepo, credentialsRepo, lease, erpGateway, log)
	healthService := syncapp.NewHealthService(paymentRepo, applicationRepo, log)
	jobService := syncapp.NewJobService(syncJobRepo)

	// Reporting
	dashboardService := reportapp.NewDashboardService(
		customerRepo, invoiceRepo, ticketRepo, emailRepo, syncEntityRepo, log)
	globalSearchService := reportapp.NewSearchService(customerRepo, invoiceRepo, ticketRepo, emailRepo)

	// Background maintenance: escalation sweep, email filing passes,
	// sync log pruning, payment drift checks and reminder dispatches run
	// through the job scheduler; the poller drives ERP sync dispatch.
	if cfg.Scheduler.Enabled {
		maintenanceScheduler, err := scheduler.NewScheduler(scheduler.Config{
			Enabled:           cfg.Scheduler.Enabled,
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}, scheduler.NewMaintenanceExecutor(
			escalationService,
			filingService,
			dispatchService,
			healthService,
			reminderService,
			cfg.Sync.PendingEmails,
			cfg.Sync.LogRetention,
			log,
		), log)
		if err != nil {
			log.Fatal("Failed to create scheduler", zap.Error(err))
		}
		if err := maintenanceScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := maintenanceScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()

		trigger, err := scheduler.NewMaintenanceTrigger(scheduler.TriggerConfig{
			EscalationSchedule: cfg.Scheduler.EscalationSchedule,
		}, maintenanceScheduler, log)
		if err != nil {
			log.Fatal("Failed to create maintenance trigger", zap.Error(err))
		}
		if err := trigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start maintenance trigger", zap.Error(err))
		}
		defer func() {
			if err := trigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping maintenance trigger", zap.Error(err))
			}
		}()

		poller := scheduler.NewSyncPoller(dispatchService, cfg.Sync.PollInterval, log)
		if err := poller.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sync poller", zap.Error(err))
		}
		defer func() {
			if err := poller.Stop(context.Background()); err != nil {
				log.Error("Error stopping sync poller", zap.Error(err))
			}
		}()
		log.Info("Background maintenance started",
			zap.String("escalation_schedule", cfg.Scheduler.EscalationSchedule),
			zap.Duration("sync_poll_interval", cfg.Sync.PollInterval),
		)
	}

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Config{
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Matrix:         permissionService,
		AllowOrigins:   cfg.HTTP.CORSAllowOrigins,
	}, router.Handlers{
		Auth:       handler.NewAuthHandler(authService, userService),
		User:       handler.NewUserHandler(userService),
		Permission: handler.NewPermissionHandler(permissionService),
		Customer:   handler.NewCustomerHandler(customerService, reconciliationService),
		Invoice:    handler.NewInvoiceHandler(reconciliationService, escalationService, searchService),
		Payment:    handler.NewPaymentHandler(reconciliationService),
		Ticket:     handler.NewTicketHandler(ticketService, performanceService),
		Email:      handler.NewEmailHandler(filingService, templateService),
		File:       handler.NewFileHandler(fileService),
		Sync:       handler.NewSyncHandler(dispatchService, healthService, jobService),
		Dashboard:  handler.NewDashboardHandler(dashboardService, globalSearchService),
		System:     handler.NewSystemHandler(db.DB, version),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
