package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/checkout-pricing-service/internal/config"
	"github.com/light-bringer/checkout-pricing-service/internal/logging"
)

var migrateDir string

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the Spanner instance and database if needed and apply DDL migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := logging.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
			return err
		}

		target, err := parseDatabasePath(cfg.Spanner.Database)
		if err != nil {
			return err
		}
		if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
			logrus.WithField("emulator_host", host).Info("Using Spanner emulator")
		}

		if err := run(cmd.Context(), target); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logrus.Info("Migrations completed successfully")
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&migrateDir, "migrations", "migrations", "Directory containing migration SQL files")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("Migrate failed")
	}
}

// databaseTarget is a parsed projects/P/instances/I/databases/D path.
type databaseTarget struct {
	Project  string
	Instance string
	Database string
}

func (t databaseTarget) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", t.Project, t.Instance)
}

func (t databaseTarget) databasePath() string {
	return fmt.Sprintf("%s/databases/%s", t.instancePath(), t.Database)
}

func parseDatabasePath(path string) (databaseTarget, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return databaseTarget{}, fmt.Errorf("invalid SPANNER_DATABASE %q, want projects/P/instances/I/databases/D", path)
	}
	for _, p := range []string{parts[1], parts[3], parts[5]} {
		if p == "" {
			return databaseTarget{}, fmt.Errorf("invalid SPANNER_DATABASE %q", path)
		}
	}
	return databaseTarget{Project: parts[1], Instance: parts[3], Database: parts[5]}, nil
}

func run(ctx context.Context, target databaseTarget) error {
	if err := ensureInstance(ctx, target); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}
	if err := ensureDatabase(ctx, target); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := applyMigrations(ctx, target); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func ensureInstance(ctx context.Context, target databaseTarget) error {
	logger := logrus.WithField("instance", target.Instance)
	logger.Info("Ensuring instance exists")

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: target.instancePath()})
	if err == nil {
		logger.Info("Instance already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		logger.WithError(err).Warn("Unexpected error checking instance")
		return nil
	}

	logger.Info("Creating instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", target.Project),
		InstanceId: target.Instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", target.Project),
			DisplayName: "Checkout Pricing",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create instance: %w", err)
		}
		logger.Info("Instance already exists")
		return nil
	}

	// The emulator may complete the operation before Wait is called.
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		logger.WithError(err).Warn("Instance creation did not report completion")
	}
	logger.Info("Instance created")
	return nil
}

func ensureDatabase(ctx context.Context, target databaseTarget) error {
	logger := logrus.WithField("database", target.Database)
	logger.Info("Ensuring database exists")

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: target.databasePath()})
	if err == nil {
		logger.Info("Database already exists")
		return nil
	}

	if status.Code(err) == codes.NotFound {
		logger.Info("Creating database")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          target.instancePath(),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", target.Database),
		})
		if err != nil {
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create database: %w", err)
			}
			logger.Info("Database already exists")
			return nil
		}
		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}
		logger.Info("Database created")
		return nil
	}

	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		logger.WithError(err).Warn("Proceeding with database in emulator mode")
		return nil
	}
	return fmt.Errorf("failed to check database: %w", err)
}

func applyMigrations(ctx context.Context, target databaseTarget) error {
	logrus.WithField("dir", migrateDir).Info("Applying migrations")

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	files, err := filepath.Glob(filepath.Join(migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		logrus.Warn("No migration files found")
		return nil
	}

	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		statements := splitDDLStatements(string(content))
		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   target.databasePath(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}

		logrus.WithFields(logrus.Fields{"migration": name, "statements": len(statements)}).Info("Applied migration")
	}
	return nil
}

// splitDDLStatements drops blank and comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}
