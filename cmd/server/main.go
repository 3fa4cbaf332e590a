package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/curlykit/PTLab2/internal/adapters/http/routes"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
	"github.com/curlykit/PTLab2/internal/config"
	"github.com/curlykit/PTLab2/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	_ "github.com/curlykit/PTLab2/docs" // Swagger docs
)

// @title PTLab2 Payroll API
// @version 1.0
// @description Employee payroll admin API: employees, payments, exports and salary analytics.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.AppMode,
		ServiceName: "ptlab2",
	})

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		appLog.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		appLog.Fatal().Err(err).Msg("failed to auto migrate")
	}
	appLog.Info().Msg("database migration completed")

	svc := routes.NewServices(routes.GormRepositories(db), cfg, appLog)
	svc.PingDB = config.HealthCheck

	// Seed the admin account
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	created, err := svc.Auth.EnsureAdmin(seedCtx)
	cancel()
	if err != nil {
		appLog.Warn().Err(err).Msg("failed to seed admin account")
	} else if created {
		appLog.Info().Str("username", cfg.Admin.Username).Msg("admin account seeded")
	}

	// Salary snapshot schedule
	if err := svc.Snapshots.Start(cfg.Snapshot.Cron); err != nil {
		appLog.Fatal().Err(err).Str("spec", cfg.Snapshot.Cron).Msg("invalid SNAPSHOT_CRON")
	}
	defer svc.Snapshots.Stop()

	// Create Fiber app
	app := routes.NewApp(cfg, appLog)

	// Setup routes
	routes.Setup(app, svc, cfg)

	// Graceful shutdown
	go gracefulShutdown(app, appLog)

	// Start server
	appLog.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Fatal().Err(err).Msg("failed to start server")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped")
}
