// Command resetadmin creates the admin account or resets its password.
//
//	resetadmin -username admin -password 'new-secret' [-purge]
//
// With -purge every other account is removed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/config"
	"github.com/curlykit/PTLab2/internal/core/services"
	"github.com/curlykit/PTLab2/internal/pkg/logger"
)

func main() {
	username := flag.String("username", "", "admin username (default ADMIN_USERNAME)")
	plain := flag.String("password", "", "new password (default ADMIN_PASSWORD)")
	purge := flag.Bool("purge", false, "remove every other account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *username == "" {
		*username = cfg.Admin.Username
	}
	if *plain == "" {
		*plain = cfg.Admin.Password
	}

	appLog := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.AppMode,
		ServiceName: "ptlab2-resetadmin",
		Output:      os.Stderr,
	})

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		appLog.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		appLog.Fatal().Err(err).Msg("failed to auto migrate")
	}

	authService := services.NewAuthService(repositories.NewUserRepository(db), cfg, appLog)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := authService.ResetAdmin(ctx, *username, *plain, *purge)
	if err != nil {
		appLog.Fatal().Err(err).Msg("failed to reset admin")
	}

	fmt.Printf("admin %q (id %d) is ready\n", user.Username, user.ID)
}
