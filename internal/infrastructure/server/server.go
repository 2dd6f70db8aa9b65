package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/patroldesk/core/internal/adapters/http"
	"github.com/patroldesk/core/internal/adapters/mirror"
	"github.com/patroldesk/core/internal/adapters/repository"
	"github.com/patroldesk/core/internal/application/services"
	"github.com/patroldesk/core/internal/infrastructure/config"
	"github.com/patroldesk/core/internal/infrastructure/database"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo       *echo.Echo
	config     *config.Config
	logger     *logger.Logger
	db         *database.DB
	dispatcher *mirror.Dispatcher
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, generator ports.Generator, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize repositories
	store := repository.NewSQLStore(db, appLogger)
	taskRepo := repository.NewTaskRepo(store)
	regRepo := repository.NewRegistrationRepo(store)
	campaignRepo := repository.NewCampaignRepo(store)
	accidentRepo := repository.NewAccidentRepo(store)
	verificationRepo := repository.NewVerificationRepo(store)
	resultRepo := repository.NewResultRepo(store)
	documentRepo := repository.NewDocumentRepo(store)
	folderRepo := repository.NewFolderRepo(store)
	settingsRepo := repository.NewSettingsRepo(store)

	// Initialize mirror. The stored endpoint URL overrides the configured
	// one; with neither the mirror stays off.
	mirrorClient := mirror.NewClient(cfg.Mirror.HTTPTimeout, func(ctx context.Context) (string, error) {
		url, err := settingsRepo.SyncURL(ctx)
		if err != nil {
			return "", err
		}
		if url == "" {
			url = cfg.Mirror.URL
		}
		return url, nil
	})
	dispatcher := mirror.NewDispatcher(mirrorClient, cfg.Mirror.QueueSize, appLogger)

	// Initialize services
	taskService := services.NewTaskService(taskRepo, dispatcher, appLogger)
	regService := services.NewRegistrationService(regRepo, dispatcher, appLogger)
	campaignService := services.NewCampaignService(campaignRepo, dispatcher, appLogger)
	accidentService := services.NewAccidentService(accidentRepo, dispatcher, appLogger)
	resultService := services.NewResultService(resultRepo, dispatcher, appLogger)
	verificationService := services.NewVerificationService(verificationRepo, settingsRepo, generator, dispatcher, appLogger)
	documentService := services.NewDocumentService(documentRepo, folderRepo, settingsRepo, dispatcher, appLogger)
	reportService := services.NewReportService(accidentRepo, campaignRepo, regRepo, resultRepo, settingsRepo, generator, appLogger)
	syncService := services.NewSyncService(mirrorClient, settingsRepo, taskRepo, regRepo, campaignRepo, accidentRepo, verificationRepo, resultRepo, documentRepo, folderRepo, appLogger)

	// Initialize handlers
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)
	regHandler := httpHandlers.NewRegistrationHandler(regService, appLogger)
	campaignHandler := httpHandlers.NewCampaignHandler(campaignService, appLogger)
	accidentHandler := httpHandlers.NewAccidentHandler(accidentService, appLogger)
	resultHandler := httpHandlers.NewResultHandler(resultService, appLogger)
	verificationHandler := httpHandlers.NewVerificationHandler(verificationService, appLogger)
	documentHandler := httpHandlers.NewDocumentHandler(documentService, appLogger)
	reportHandler := httpHandlers.NewReportHandler(reportService, appLogger)
	syncHandler := httpHandlers.NewSyncHandler(syncService, appLogger)

	server := &Server{
		echo:       e,
		config:     cfg,
		logger:     appLogger,
		db:         db,
		dispatcher: dispatcher,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(
		taskHandler,
		regHandler,
		campaignHandler,
		accidentHandler,
		resultHandler,
		verificationHandler,
		documentHandler,
		reportHandler,
		syncHandler,
	)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware. Report generation waits on the AI model, so the
	// window is wider than a plain CRUD service would use.
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 120 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(
	taskHandler *httpHandlers.TaskHandler,
	regHandler *httpHandlers.RegistrationHandler,
	campaignHandler *httpHandlers.CampaignHandler,
	accidentHandler *httpHandlers.AccidentHandler,
	resultHandler *httpHandlers.ResultHandler,
	verificationHandler *httpHandlers.VerificationHandler,
	documentHandler *httpHandlers.DocumentHandler,
	reportHandler *httpHandlers.ReportHandler,
	syncHandler *httpHandlers.SyncHandler,
) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Task routes
	taskGroup := v1.Group("/tasks")
	taskGroup.GET("", taskHandler.ListTasks)
	taskGroup.POST("", taskHandler.CreateTask)
	taskGroup.GET("/day/:date", taskHandler.GetDayView)
	taskGroup.GET("/:id", taskHandler.GetTask)
	taskGroup.PUT("/:id", taskHandler.UpdateTask)
	taskGroup.DELETE("/:id", taskHandler.DeleteTask)

	// Vehicle registration routes
	regGroup := v1.Group("/registrations")
	regGroup.GET("", regHandler.ListRegistrations)
	regGroup.GET("/summary", regHandler.Summary)
	regGroup.PUT("/day/:date", regHandler.SaveDay)

	// Campaign routes
	campaignGroup := v1.Group("/campaigns")
	campaignGroup.GET("", campaignHandler.ListCampaigns)
	campaignGroup.POST("", campaignHandler.CreateCampaign)
	campaignGroup.GET("/:id", campaignHandler.GetCampaign)
	campaignGroup.PUT("/:id", campaignHandler.UpdateCampaign)
	campaignGroup.DELETE("/:id", campaignHandler.DeleteCampaign)
	campaignGroup.POST("/:id/progress", campaignHandler.LogProgress)

	// Accident routes
	accidentGroup := v1.Group("/accidents")
	accidentGroup.GET("", accidentHandler.ListAccidents)
	accidentGroup.POST("", accidentHandler.SaveAccident)
	accidentGroup.GET("/:id", accidentHandler.GetAccident)
	accidentGroup.DELETE("/:id", accidentHandler.DeleteAccident)

	// Work result routes
	resultGroup := v1.Group("/results")
	resultGroup.GET("", resultHandler.ListResults)
	resultGroup.POST("", resultHandler.SaveResult)
	resultGroup.GET("/:id", resultHandler.GetResult)
	resultGroup.DELETE("/:id", resultHandler.DeleteResult)

	// Verification routes
	verificationGroup := v1.Group("/verifications")
	verificationGroup.GET("", verificationHandler.ListVerifications)
	verificationGroup.POST("", verificationHandler.SaveVerification)
	verificationGroup.POST("/extract", verificationHandler.Extract)
	verificationGroup.GET("/:id", verificationHandler.GetVerification)
	verificationGroup.DELETE("/:id", verificationHandler.DeleteVerification)
	verificationGroup.POST("/:id/reconstruct", verificationHandler.Reconstruct)
	verificationGroup.POST("/:id/letter", verificationHandler.DraftLetter)

	// Document archive routes
	folderGroup := v1.Group("/folders")
	folderGroup.GET("", documentHandler.ListFolders)
	folderGroup.POST("", documentHandler.SaveFolder)
	folderGroup.DELETE("/:id", documentHandler.DeleteFolder)

	documentGroup := v1.Group("/documents")
	documentGroup.GET("", documentHandler.ListDocuments)
	documentGroup.POST("", documentHandler.SaveDocument)
	documentGroup.GET("/check-name", documentHandler.CheckName)
	documentGroup.GET("/:id", documentHandler.GetDocument)
	documentGroup.DELETE("/:id", documentHandler.DeleteDocument)

	// Template routes
	templateGroup := v1.Group("/templates")
	templateGroup.GET("/:name", documentHandler.GetTemplate)
	templateGroup.PUT("/:name", documentHandler.PutTemplate)

	// Report routes
	reportGroup := v1.Group("/reports")
	reportGroup.POST("/generate", reportHandler.Generate)
	reportGroup.GET("/directions", reportHandler.GetDirections)
	reportGroup.PUT("/directions", reportHandler.PutDirections)

	// Sync routes
	syncGroup := v1.Group("/sync")
	syncGroup.GET("/endpoint", syncHandler.GetEndpoint)
	syncGroup.PUT("/endpoint", syncHandler.PutEndpoint)
	syncGroup.POST("/pull", syncHandler.Pull)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration, mirror.DispatchTotal)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Database health check
	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server, draining the mirror queue
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	err := s.echo.Shutdown(ctx)
	s.dispatcher.Close()
	return err
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(*validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
