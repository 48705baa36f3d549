package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	assistantapp "github.com/stratix/backend/internal/application/assistant"
	eventapp "github.com/stratix/backend/internal/application/event"
	identityapp "github.com/stratix/backend/internal/application/identity"
	importapp "github.com/stratix/backend/internal/application/import"
	okrapp "github.com/stratix/backend/internal/application/okr"
	"github.com/stratix/backend/internal/infrastructure/analytics"
	"github.com/stratix/backend/internal/infrastructure/auth"
	"github.com/stratix/backend/internal/infrastructure/cache"
	"github.com/stratix/backend/internal/infrastructure/config"
	"github.com/stratix/backend/internal/infrastructure/event"
	"github.com/stratix/backend/internal/infrastructure/logger"
	"github.com/stratix/backend/internal/infrastructure/persistence"
	"github.com/stratix/backend/internal/infrastructure/scheduler"
	"github.com/stratix/backend/internal/infrastructure/telemetry"
	"github.com/stratix/backend/internal/interfaces/http/handler"
	"github.com/stratix/backend/internal/interfaces/http/middleware"
	"github.com/stratix/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/stratix/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Stratix Platform API
//	@version		1.0
//	@description	Multi-tenant OKR and initiative tracking platform API

//	@contact.name	API Support
//	@contact.url	https://github.com/stratix/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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

	log.Info("Starting Stratix Platform",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// OpenTelemetry tracing and metrics
	var meterProvider *telemetry.MeterProvider
	if cfg.Telemetry.Enabled {
		tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
			Enabled:           cfg.Telemetry.Enabled,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			SamplingRatio:     cfg.Telemetry.SamplingRatio,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize tracer provider", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()

		meterProvider, err = telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
			Enabled:           cfg.Telemetry.Enabled,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize meter provider", zap.Error(err))
		}
		defer func() {
			if err := meterProvider.Shutdown(context.Background()); err != nil {
				log.Error("Error shutting down meter provider", zap.Error(err))
			}
		}()

		if cfg.Telemetry.DBTraceEnabled {
			dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
				Enabled:         true,
				LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
				SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			}, log)
			if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
				log.Warn("Failed to register database tracing", zap.Error(err))
			}
		}

		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:       meterProvider.Meter("stratix.business"),
			Logger:      log,
			OKRProvider: telemetry.NewGormOKRMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize business metrics", zap.Error(err))
		} else {
			businessMetrics.StartPeriodicCollection(context.Background(), telemetry.NewGormTenantProvider(db.DB), 5*time.Minute)
			defer businessMetrics.Stop()
		}
	}

	// Continuous profiling via Pyroscope
	if cfg.Profiling.Enabled {
		profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
			Enabled:             true,
			ServerAddress:       cfg.Profiling.ServerAddress,
			ApplicationName:     cfg.App.Name,
			BasicAuthUser:       cfg.Profiling.AuthUser,
			BasicAuthPassword:   cfg.Profiling.AuthPassword,
			ProfileCPU:          true,
			ProfileAllocObjects: true,
			ProfileAllocSpace:   true,
			ProfileInuseObjects: true,
			ProfileInuseSpace:   true,
			ProfileGoroutines:   true,
		}, log)
		if err != nil {
			log.Warn("Failed to start profiler", zap.Error(err))
		} else {
			defer func() {
				if err := profiler.Stop(); err != nil {
					log.Error("Error stopping profiler", zap.Error(err))
				}
			}()
			log.Info("Continuous profiling started", zap.String("server", cfg.Profiling.ServerAddress))
		}
	}

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userProfileRepo := persistence.NewGormUserProfileRepository(db.DB)
	invitationRepo := persistence.NewGormInvitationRepository(db.DB)
	areaRepo := persistence.NewGormAreaRepository(db.DB)
	objectiveRepo := persistence.NewGormObjectiveRepository(db.DB)
	initiativeRepo := persistence.NewGormInitiativeRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	progressRepo := persistence.NewGormProgressEntryRepository(db.DB)
	importHistoryRepo := persistence.NewGormImportHistoryRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Initialize event serializer and register all event types
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)

	// Create outbox publisher for transactional event saving
	outboxPublisher := event.NewOutboxPublisher(eventSerializer)

	// Inject outbox publisher into repositories so domain events are saved
	// atomically with the aggregate changes
	tenantRepo.SetOutboxEventSaver(outboxPublisher)
	userProfileRepo.SetOutboxEventSaver(outboxPublisher)
	invitationRepo.SetOutboxEventSaver(outboxPublisher)
	areaRepo.SetOutboxEventSaver(outboxPublisher)
	objectiveRepo.SetOutboxEventSaver(outboxPublisher)
	initiativeRepo.SetOutboxEventSaver(outboxPublisher)
	activityRepo.SetOutboxEventSaver(outboxPublisher)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Analytics sink forwarding: outbox events -> signed webhook delivery.
	// The forwarder is wrapped in an idempotent handler so redelivered outbox
	// entries are not forwarded twice.
	if cfg.Analytics.Enabled {
		sinkClient := analytics.NewSinkClient(cfg.Analytics, analytics.WithSinkLogger(log))
		forwarder := analytics.NewForwarder(sinkClient, log)

		storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
		idempotencyStore, err := storeFactory.CreateStore()
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}

		idempotentForwarder := event.NewIdempotentHandler(forwarder, idempotencyStore, log)
		eventBus.Subscribe(idempotentForwarder)
		log.Info("Analytics forwarding enabled",
			zap.String("sink_url", cfg.Analytics.SinkURL),
			zap.Strings("event_types", forwarder.EventTypes()),
		)
	}

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize and start outbox processor for guaranteed event delivery.
	// The processor reads events from the outbox_events table and publishes
	// them to the event bus.
	if cfg.Event.ProcessorEnabled {
		outboxProcessorConfig := event.DefaultOutboxProcessorConfig()
		outboxProcessorConfig.BatchSize = cfg.Event.BatchSize
		outboxProcessorConfig.PollInterval = cfg.Event.PollInterval
		outboxProcessorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		outboxProcessorConfig.CleanupRetention = cfg.Event.CleanupRetention

		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, outboxProcessorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", outboxProcessorConfig.BatchSize),
			zap.Duration("poll_interval", outboxProcessorConfig.PollInterval),
		)
	}

	// JWT service and token blacklist (Redis-backed, in-memory fallback)
	jwtService := auth.NewJWTService(cfg.JWT)
	var tokenBlacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis token blacklist unavailable, using in-memory fallback", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = redisBlacklist
	}

	// Dashboard snapshot cache: tiered (in-memory L1 + Redis L2 with Pub/Sub
	// invalidation) when Redis is reachable, in-memory otherwise
	snapshotConfig := cache.DefaultSnapshotCacheConfig()
	if cfg.Dashboard.CacheTTL > 0 {
		snapshotConfig.SnapshotTTL = cfg.Dashboard.CacheTTL
	}
	cacheRedisConfig := cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	var snapshotCache cache.SnapshotCache
	if cfg.Dashboard.CacheEnabled {
		redisCache, err := cache.NewRedisSnapshotCache(cacheRedisConfig,
			cache.WithCacheConfig(snapshotConfig),
			cache.WithCacheLogger(log),
		)
		if err != nil {
			log.Warn("Redis snapshot cache unavailable, using in-memory cache", zap.Error(err))
			snapshotCache = cache.NewInMemorySnapshotCache(
				cache.WithInMemoryConfig(snapshotConfig),
				cache.WithInMemoryLogger(log),
			)
		} else {
			invalidator, err := cache.NewRedisSnapshotInvalidator(cacheRedisConfig,
				cache.WithInvalidatorLogger(log),
			)
			if err != nil {
				log.Warn("Snapshot invalidator unavailable, using Redis cache without L1", zap.Error(err))
				snapshotCache = redisCache
			} else {
				l1Cache := cache.NewInMemorySnapshotCache(
					cache.WithInMemoryConfig(snapshotConfig),
					cache.WithInMemoryLogger(log),
				)
				snapshotCache = cache.NewTieredSnapshotCache(l1Cache, redisCache, invalidator,
					cache.WithTieredConfig(snapshotConfig),
					cache.WithTieredLogger(log),
				)
			}
		}
	} else {
		snapshotCache = cache.NewInMemorySnapshotCache(
			cache.WithInMemoryConfig(snapshotConfig),
			cache.WithInMemoryLogger(log),
		)
	}
	defer func() {
		if err := snapshotCache.Close(); err != nil {
			log.Error("Error closing snapshot cache", zap.Error(err))
		}
	}()

	// Identity services
	authService := identityapp.NewAuthService(userProfileRepo, tenantRepo, jwtService, tokenBlacklist, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userProfileRepo, log)
	tenantService := identityapp.NewTenantService(tenantRepo, userProfileRepo, log)
	invitationService := identityapp.NewInvitationService(invitationRepo, userProfileRepo, tenantRepo, log)

	// OKR services
	areaService := okrapp.NewAreaService(areaRepo, initiativeRepo, objectiveRepo, tenantRepo, log)
	objectiveService := okrapp.NewObjectiveService(objectiveRepo, areaRepo, initiativeRepo, log)
	initiativeService := okrapp.NewInitiativeService(initiativeRepo, objectiveRepo, areaRepo, progressRepo, tenantRepo, log)
	activityService := okrapp.NewActivityService(activityRepo, initiativeRepo, log)
	dashboardService := okrapp.NewDashboardService(areaRepo, objectiveRepo, initiativeRepo, snapshotCache, snapshotConfig, log)

	// Mutations on areas, objectives and initiatives invalidate the cached
	// dashboard snapshots for the tenant
	areaService.SetDashboardInvalidator(snapshotCache)
	objectiveService.SetDashboardInvalidator(snapshotCache)
	initiativeService.SetDashboardInvalidator(snapshotCache)

	// Assistant, import and outbox administration services
	assistantService := assistantapp.NewAssistantService(initiativeRepo, areaRepo, objectiveRepo, userProfileRepo, cfg.Assistant.PlatformURL, log)
	importHistoryService := importapp.NewImportHistoryService(importHistoryRepo)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	// Background maintenance scheduler (invitation sweep, trial expiry,
	// daily progress reconciliation)
	if cfg.Scheduler.Enabled {
		schedulerConfig := scheduler.SchedulerConfig{
			Enabled:           cfg.Scheduler.Enabled,
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}
		maintenanceExecutor := scheduler.NewMaintenanceExecutor(invitationRepo, tenantRepo, objectiveRepo, initiativeRepo, log)
		maintenanceScheduler := scheduler.NewScheduler(schedulerConfig, maintenanceExecutor, log)
		if err := maintenanceScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start maintenance scheduler", zap.Error(err))
		}
		defer func() {
			if err := maintenanceScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping maintenance scheduler", zap.Error(err))
			}
		}()

		triggerConfig := scheduler.DefaultCronTriggerConfig()
		if cfg.Invitation.SweepInterval > 0 {
			triggerConfig.SweepInterval = cfg.Invitation.SweepInterval
		}
		cronTrigger := scheduler.NewCronTrigger(triggerConfig, maintenanceScheduler, telemetry.NewGormTenantProvider(db.DB), log)
		if err := cronTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start cron trigger", zap.Error(err))
		}
		defer func() {
			if err := cronTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping cron trigger", zap.Error(err))
			}
		}()
		log.Info("Maintenance scheduler started",
			zap.Int("max_concurrent_jobs", cfg.Scheduler.MaxConcurrentJobs),
			zap.Duration("sweep_interval", triggerConfig.SweepInterval),
		)
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	invitationHandler := handler.NewInvitationHandler(invitationService)
	areaHandler := handler.NewAreaHandler(areaService)
	objectiveHandler := handler.NewObjectiveHandler(objectiveService)
	initiativeHandler := handler.NewInitiativeHandler(initiativeService)
	activityHandler := handler.NewActivityHandler(activityService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	assistantHandler := handler.NewAssistantHandler(assistantService, cfg.Assistant)
	outboxHandler := handler.NewOutboxHandler(outboxService)
	importHistoryHandler := handler.NewImportHistoryHandler(importHistoryService)
	initiativeImportHandler := handler.NewInitiativeImportHandler(initiativeRepo, areaRepo, userProfileRepo, eventBus)
	defer initiativeImportHandler.Stop()
	userImportHandler := handler.NewUserImportHandler(userProfileRepo, invitationRepo, areaRepo, eventBus)
	defer userImportHandler.Stop()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. Tracing/Metrics/Profiling - Observability (if enabled)
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       meterProvider != nil,
		}))
	}
	if cfg.Profiling.Enabled {
		engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
			Enabled:          true,
			SkipPaths:        []string{"/health"},
			SkipPathPrefixes: []string{"/swagger"},
		}))
	}

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint (gated in production)
	if cfg.Swagger.Enabled {
		swaggerJWT := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: tokenBlacklist,
			Logger:         log,
		})
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(middleware.SwaggerConfig{
				Enabled:     cfg.Swagger.Enabled,
				RequireAuth: cfg.Swagger.RequireAuth,
				AllowedIPs:  cfg.Swagger.AllowedIPs,
			}, swaggerJWT),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes.
	// Public endpoints: login/refresh, tenant registration, invitation
	// acceptance and the assistant webhook (secret-checked in its handler).
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/tenants/register",
			"/api/v1/invitations/accept",
			"/api/v1/assistant/webhook",
			"/api/v1/ping",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Managers are scoped to their assigned area; the middleware loads the
	// scope into the request context for handlers and services to honor
	r.Use(middleware.AreaScopeMiddleware(userProfileRepo))

	// Auth routes (login/refresh are public via JWT skip paths)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimit(authLimiter))
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Tenant routes (registration is public; plan changes are CEO-only)
	tenantRoutes := router.NewDomainGroup("tenant", "/tenants")
	tenantRoutes.POST("/register", tenantHandler.Register)
	tenantRoutes.GET("/current", tenantHandler.GetCurrent)
	tenantRoutes.PUT("/current", middleware.RequireRole("admin", "ceo"), tenantHandler.UpdateCurrent)
	tenantRoutes.PUT("/current/plan", middleware.RequireRole("ceo"), tenantHandler.ChangePlan)

	// Invitation routes (acceptance is public; management is admin/ceo)
	invitationRoutes := router.NewDomainGroup("invitation", "/invitations")
	invitationRoutes.POST("/accept", invitationHandler.Accept)
	invitationRoutes.POST("", middleware.RequireRole("admin", "ceo"), invitationHandler.Create)
	invitationRoutes.GET("", middleware.RequireRole("admin", "ceo"), invitationHandler.List)
	invitationRoutes.GET("/:id", middleware.RequireRole("admin", "ceo"), invitationHandler.GetByID)
	invitationRoutes.POST("/:id/revoke", middleware.RequireRole("admin", "ceo"), invitationHandler.Revoke)

	// User management routes (admin/ceo only)
	userRoutes := router.NewDomainGroup("user", "/users")
	userRoutes.Use(middleware.RequireRole("admin", "ceo"))
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.GetByID)
	userRoutes.PUT("/:id", userHandler.Update)
	userRoutes.DELETE("/:id", userHandler.Delete)
	userRoutes.PUT("/:id/role", userHandler.SetRole)
	userRoutes.PUT("/:id/area", userHandler.AssignArea)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)
	userRoutes.POST("/:id/unlock", userHandler.Unlock)
	userRoutes.POST("/:id/reset-password", userHandler.ResetPassword)

	// Area routes (mutations are admin/ceo; KPIs honor manager area scope)
	areaRoutes := router.NewDomainGroup("area", "/areas")
	areaRoutes.POST("", middleware.RequireRole("admin", "ceo"), areaHandler.Create)
	areaRoutes.GET("", areaHandler.List)
	areaRoutes.GET("/:id", areaHandler.GetByID)
	areaRoutes.PUT("/:id", middleware.RequireRole("admin", "ceo"), areaHandler.Update)
	areaRoutes.DELETE("/:id", middleware.RequireRole("admin", "ceo"), areaHandler.Archive)
	areaRoutes.POST("/:id/restore", middleware.RequireRole("admin", "ceo"), areaHandler.Restore)
	areaRoutes.GET("/:id/kpis", middleware.RequireAreaParamAccess("id", log), areaHandler.GetKPIs)

	// Objective routes
	objectiveRoutes := router.NewDomainGroup("objective", "/objectives")
	objectiveRoutes.POST("", objectiveHandler.Create)
	objectiveRoutes.GET("", objectiveHandler.List)
	objectiveRoutes.GET("/:id", objectiveHandler.GetByID)
	objectiveRoutes.PUT("/:id", objectiveHandler.Update)
	objectiveRoutes.DELETE("/:id", objectiveHandler.Archive)
	objectiveRoutes.PATCH("/:id/status", objectiveHandler.ChangeStatus)
	objectiveRoutes.POST("/:id/recalculate", objectiveHandler.Recalculate)

	// Initiative routes (including per-initiative activities)
	initiativeRoutes := router.NewDomainGroup("initiative", "/initiatives")
	initiativeRoutes.POST("", initiativeHandler.Create)
	initiativeRoutes.GET("", initiativeHandler.List)
	initiativeRoutes.GET("/search", initiativeHandler.Search)
	initiativeRoutes.GET("/:id", initiativeHandler.GetByID)
	initiativeRoutes.PUT("/:id", initiativeHandler.Update)
	initiativeRoutes.DELETE("/:id", initiativeHandler.Cancel)
	initiativeRoutes.PATCH("/:id/progress", initiativeHandler.UpdateProgress)
	initiativeRoutes.PATCH("/:id/status", initiativeHandler.ChangeStatus)
	initiativeRoutes.GET("/:id/progress-history", initiativeHandler.GetProgressHistory)
	initiativeRoutes.POST("/:id/activities", activityHandler.Create)
	initiativeRoutes.GET("/:id/activities", activityHandler.ListByInitiative)

	// Activity routes
	activityRoutes := router.NewDomainGroup("activity", "/activities")
	activityRoutes.GET("/:id", activityHandler.GetByID)
	activityRoutes.PUT("/:id", activityHandler.Update)
	activityRoutes.DELETE("/:id", activityHandler.Delete)
	activityRoutes.PATCH("/:id/status", activityHandler.ChangeStatus)
	activityRoutes.PUT("/:id/assignee", activityHandler.Assign)

	// Dashboard routes (area dashboards honor manager area scope)
	dashboardRoutes := router.NewDomainGroup("dashboard", "/dashboard")
	dashboardRoutes.GET("/overview", dashboardHandler.GetOverview)
	dashboardRoutes.GET("/areas/:id", middleware.RequireAreaParamAccess("id", log), dashboardHandler.GetAreaDashboard)

	// Assistant routes (webhook is public with its own shared-secret check)
	assistantRoutes := router.NewDomainGroup("assistant", "/assistant")
	assistantRoutes.POST("/webhook", assistantHandler.Webhook)
	assistantRoutes.POST("/tool-call", assistantHandler.ToolCall)

	// System and outbox administration routes (admin/ceo only)
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.Use(middleware.RequireRole("admin", "ceo"))
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/outbox/dead", outboxHandler.GetDeadLetterEntries)
	systemRoutes.GET("/outbox/stats", outboxHandler.GetStats)
	systemRoutes.GET("/outbox/:id", outboxHandler.GetEntry)
	systemRoutes.POST("/outbox/:id/retry", outboxHandler.RetryDeadEntry)
	systemRoutes.POST("/outbox/dead/retry-all", outboxHandler.RetryAllDeadEntries)

	// Register all domain groups
	r.Register(authRoutes).
		Register(tenantRoutes).
		Register(invitationRoutes).
		Register(userRoutes).
		Register(areaRoutes).
		Register(objectiveRoutes).
		Register(initiativeRoutes).
		Register(activityRoutes).
		Register(dashboardRoutes).
		Register(assistantRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// CSV import routes (admin/ceo only), registered on a dedicated group so
	// the role check wraps every import endpoint
	importGroup := engine.Group("/api/v1",
		middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
		middleware.AreaScopeMiddleware(userProfileRepo),
		middleware.RequireRole("admin", "ceo"),
	)
	initiativeImportHandler.RegisterRoutes(importGroup)
	userImportHandler.RegisterRoutes(importGroup)
	importHistoryHandler.RegisterRoutes(importGroup)

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", systemHandler.Ping)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
