// Package main provides inkwellctl, the operator CLI for migrations,
// admin bootstrap and seeding.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/inkwell-api/internal/config"
	"github.com/inkwell-api/internal/database"
	"github.com/inkwell-api/internal/models"
	"github.com/inkwell-api/internal/repository"
	"github.com/inkwell-api/internal/service"
	"github.com/inkwell-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "inkwellctl",
		Short:        "Operate an Inkwell API deployment",
		SilenceUsage: true,
	}

	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(createAdminCmd())
	cmd.AddCommand(seedCmd())

	return cmd
}

// env is the wiring shared by commands that talk to the database
type env struct {
	cfg *config.Config
	db  *database.DB
	log zerolog.Logger
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithWriter(os.Stderr, cfg.Log.Level, cfg.Log.Format == "pretty")

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, db: db, log: log}, nil
}

func (e *env) services() *service.Services {
	return service.NewServices(repository.New(e.db), e.cfg, e.log)
}

func migrateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "Migrations directory (defaults to MIGRATIONS_PATH)")

	run := func(fn func(e *env, path string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()
			if path == "" {
				path = e.cfg.Server.MigrationsPath
			}
			return fn(e, path)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: run(func(e *env, path string) error {
			return e.db.RunMigrations(path)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: run(func(e *env, path string) error {
			return e.db.MigrateDown(path)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "to <version>",
		Short: "Migrate up or down to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return run(func(e *env, path string) error {
				return e.db.MigrateToVersion(path, uint(version))
			})(cmd, args)
		},
	})

	return cmd
}

func createAdminCmd() *cobra.Command {
	var in models.UserInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			in.Role = models.RoleAdmin
			user, err := e.services().User.Create(ctx, &in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Admin email")
	cmd.Flags().StringVar(&in.FullName, "name", "", "Admin full name")
	cmd.Flags().StringVar(&in.Password, "password", "", "Admin password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create categories and tags from a YAML file",
		Long: `Create categories and tags from a YAML file.

Entries that already exist are skipped, so the command can be re-run.

Example file:
  categories:
    - name: Engineering
      description: Articles about building software
  tags:
    - name: go
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			seed, err := loadSeed(f)
			if err != nil {
				return err
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.db.Close()

			result, err := applySeed(ctx, e.services(), seed, e.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Categories: %d created, %d skipped\nTags: %d created, %d skipped\n",
				result.CategoriesCreated, result.CategoriesSkipped, result.TagsCreated, result.TagsSkipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "Seed file")

	return cmd
}
