package routes

import (
	"time"

	"github.com/curlykit/PTLab2/internal/adapters/http/handlers"
	"github.com/curlykit/PTLab2/internal/adapters/http/middleware"
	"github.com/curlykit/PTLab2/internal/adapters/http/views"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/config"
	"github.com/curlykit/PTLab2/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Repositories groups the storage the services are built on
type Repositories struct {
	Employees repositories.EmployeeRepository
	Payments  repositories.PaymentRepository
	Users     repositories.UserRepository
	Snapshots repositories.SnapshotRepository
}

// GormRepositories builds the gorm backed repositories
func GormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Employees: repositories.NewEmployeeRepository(db),
		Payments:  repositories.NewPaymentRepository(db),
		Users:     repositories.NewUserRepository(db),
		Snapshots: repositories.NewSnapshotRepository(db),
	}
}

// Services holds every service the routes depend on
type Services struct {
	Auth      *services.AuthService
	Payroll   *services.PayrollService
	Analytics *services.AnalyticsService
	Employees *services.EmployeeService
	Payments  *services.PaymentService
	Snapshots *services.SnapshotService
	// PingDB backs the health check; nil reports the database as healthy
	PingDB func() error
}

// NewServices wires the services over repos
func NewServices(repos Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Auth:      services.NewAuthService(repos.Users, cfg, log),
		Payroll:   services.NewPayrollService(repos.Employees, repos.Payments, log),
		Analytics: services.NewAnalyticsService(repos.Employees, repos.Payments),
		Employees: services.NewEmployeeService(repos.Employees, log),
		Payments:  services.NewPaymentService(repos.Payments, repos.Employees, log),
		Snapshots: services.NewSnapshotService(repos.Employees, repos.Payments, repos.Snapshots, log),
	}
}

// NewApp creates the fiber app with views, error handler and middlewares
func NewApp(cfg *config.Config, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "PTLab2 Payroll",
		Views:        views.Engine(),
		ViewsLayout:  views.Layout,
		ErrorHandler: middleware.CustomErrorHandler(log),
	})

	middleware.Setup(app, cfg)
	return app
}

// Setup configures all routes for the application
func Setup(app *fiber.App, svc *Services, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, svc.PingDB)
	pageHandler := handlers.NewPageHandler(svc.Payroll, svc.Analytics)
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg)
	employeeHandler := handlers.NewEmployeeHandler(svc.Employees)
	paymentHandler := handlers.NewPaymentHandler(svc.Payments)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics, svc.Snapshots)

	// HTML pages
	app.Get("/", pageHandler.Index)
	app.Get("/buy/:employee_id", middleware.NoCacheHeaders(), pageHandler.PaymentForm)
	app.Post("/buy/:employee_id", middleware.NoCacheHeaders(), pageHandler.ProcessPayment)
	app.Get("/analytics", pageHandler.Analytics)

	// Health check
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, employeeHandler, paymentHandler, analyticsHandler, svc.Auth)

	// Unknown API paths answer in JSON through the error handler
	app.Use("/api", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	employeeHandler *handlers.EmployeeHandler,
	paymentHandler *handlers.PaymentHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	validator middleware.TokenValidator,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, validator)

	requireAuth := middleware.AuthMiddleware(validator)

	// Employee routes (authenticated)
	employeeRoutes := router.Group("/employees", requireAuth)
	setupEmployeeRoutes(employeeRoutes, employeeHandler)

	// Payment routes (authenticated)
	paymentRoutes := router.Group("/payments", requireAuth)
	setupPaymentRoutes(paymentRoutes, paymentHandler)

	// Analytics and snapshots
	router.Get("/analytics", requireAuth, middleware.ViewerOrAdmin(), analyticsHandler.Report)
	router.Get("/snapshots", requireAuth, middleware.ViewerOrAdmin(), middleware.PrivateCacheHeaders(time.Minute), analyticsHandler.Snapshots)
	router.Post("/snapshots", requireAuth, middleware.AdminOnly(), analyticsHandler.TakeSnapshot)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, validator middleware.TokenValidator) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(validator), handler.Me)
}

// setupEmployeeRoutes configures employee routes. Reads are open to viewers.
func setupEmployeeRoutes(router fiber.Router, handler *handlers.EmployeeHandler) {
	router.Get("/", middleware.ViewerOrAdmin(), handler.List)
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Post("/bulk-type", middleware.AdminOnly(), handler.BulkType)
	router.Get("/:id", middleware.ViewerOrAdmin(), handler.Get)
	router.Put("/:id", middleware.AdminOnly(), handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupPaymentRoutes configures payment routes
func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	router.Get("/", middleware.ViewerOrAdmin(), handler.List)
	router.Get("/export", middleware.ViewerOrAdmin(), handler.Export)
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Get("/:id", middleware.ViewerOrAdmin(), handler.Get)
}
