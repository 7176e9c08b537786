package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/rentcourt/ftpr/internal/pkg/env"
)

func main() {
	env.SetupEnvFile()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the SQL migrations in ./migrations to the MySQL database",
	}
	rootCmd.PersistentFlags().String("path", "migrations", "directory holding the migration files")

	rootCmd.AddCommand(upCmd(), downCmd(), gotoCmd(), statusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func databaseURL() string {
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true&parseTime=true",
		env.GetEnv("DB_USER", "ftpr"),
		env.GetEnv("DB_PASSWORD", "ftpr"),
		env.GetEnv("DB_HOST", "db"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", "ftpr_db"),
	)
}

// withMigrate opens the migrator for the duration of fn.
func withMigrate(cmd *cobra.Command, fn func(m *migrate.Migrate) error) error {
	path, _ := cmd.Flags().GetString("path")
	log.Infof("[Migrate] Connecting to %s@%s:%s/%s",
		env.GetEnv("DB_USER", "ftpr"),
		env.GetEnv("DB_HOST", "db"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", "ftpr_db"),
	)

	m, err := migrate.New("file://"+path, databaseURL())
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Warnf("[Migrate] Failed to close migration resources: %v, %v", sourceErr, dbErr)
		}
	}()
	return fn(m)
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrate(cmd, func(m *migrate.Migrate) error {
				err := m.Up()
				switch {
				case errors.Is(err, migrate.ErrNoChange):
					log.Info("[Migrate] No change: database is up to date")
				case err != nil:
					return fmt.Errorf("failed to apply migrations: %w", err)
				default:
					log.Info("[Migrate] Migrations applied")
				}
				return nil
			})
		},
	}
}

func downCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrate(cmd, func(m *migrate.Migrate) error {
				if err := m.Steps(-1); err != nil {
					return fmt.Errorf("failed to roll back: %w", err)
				}
				log.Info("[Migrate] Rolled back the last migration")
				return nil
			})
		},
	}
}

func gotoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goto VERSION",
		Short: "Migrate up or down to VERSION",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return withMigrate(cmd, func(m *migrate.Migrate) error {
				err := m.Migrate(uint(version))
				switch {
				case errors.Is(err, migrate.ErrNoChange):
					log.Infof("[Migrate] No change: database is already at version %d", version)
				case err != nil:
					return fmt.Errorf("failed to migrate to version %d: %w", version, err)
				default:
					log.Infof("[Migrate] Migrated to version %d", version)
				}
				return nil
			})
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrate(cmd, func(m *migrate.Migrate) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Println("No migrations have been applied")
					return nil
				}
				if err != nil {
					return fmt.Errorf("failed to read migration version: %w", err)
				}
				suffix := ""
				if dirty {
					suffix = " (dirty)"
				}
				fmt.Printf("Current version: %d%s\n", version, suffix)
				return nil
			})
		},
	}
}
