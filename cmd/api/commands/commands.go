package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/patroldesk/core/internal/adapters/ai"
	"github.com/patroldesk/core/internal/adapters/repository"
	"github.com/patroldesk/core/internal/domain/template"
	"github.com/patroldesk/core/internal/infrastructure/config"
	"github.com/patroldesk/core/internal/infrastructure/database"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the PatrolDesk API server",
		Long:  "Start the PatrolDesk API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the built-in document templates",
		Long:  "Write the built-in document and report templates plus the default report directions into the record store, skipping keys the unit already customized",
		Run: func(cmd *cobra.Command, args []string) {
			runSeed()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print PatrolDesk version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("PatrolDesk Core v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db, err := database.New(cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	generator, err := ai.NewClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize AI client", "error", err)
	}
	defer generator.Close()

	srv, err := server.New(cfg, db, generator, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting PatrolDesk API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatal("Server failed to start", "error", err)
	}
}

func newMigrator() (*migrate.Migrate, func()) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	driver, err := sqlite3.WithInstance(db.DB.DB, &sqlite3.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"sqlite3",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	return m, func() { db.Close() }
}

func runMigration(direction string) {
	m, closeDB := newMigrator()
	defer closeDB()

	var err error
	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	m, closeDB := newMigrator()
	defer closeDB()

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func runSeed() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	settings := repository.NewSettingsRepo(repository.NewSQLStore(db, appLogger))

	seedTemplate := func(name, content string) {
		if _, exists, err := settings.Template(ctx, name); err != nil {
			log.Fatalf("Failed to read template %s: %v", name, err)
		} else if exists {
			fmt.Printf("Template %s already customized, skipping\n", name)
			return
		}
		if err := settings.SetTemplate(ctx, name, content); err != nil {
			log.Fatalf("Failed to seed template %s: %v", name, err)
		}
		fmt.Printf("Seeded template %s\n", name)
	}

	seedTemplate(template.NameDocument, template.DefaultDocumentTemplate)
	seedTemplate(template.NameReport, template.DefaultReportTemplate)

	directions, err := settings.ReportDirections(ctx)
	if err != nil {
		log.Fatalf("Failed to read report directions: %v", err)
	}
	if directions == "" {
		if err := settings.SetReportDirections(ctx, template.DefaultReportDirections); err != nil {
			log.Fatalf("Failed to seed report directions: %v", err)
		}
		fmt.Println("Seeded report directions")
	} else {
		fmt.Println("Report directions already customized, skipping")
	}
}
