package migrate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/tracker/internal/infrastructure/config"
	"github.com/orris-inc/tracker/internal/infrastructure/database"
	"github.com/orris-inc/tracker/internal/infrastructure/migration"
	"github.com/orris-inc/tracker/internal/interfaces/cli/bootstrap"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

var (
	env    string
	name   string
	driver string
	steps  int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect schema migrations, or create new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new SQL migration",
		Long:  `Create an empty goose migration for one driver. Run from the repository root.`,
		RunE:  runCreate,
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVarP(&driver, "driver", "d", "", "Database driver (mysql or postgres); defaults to the configured one")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// gooseStrategy opens the database and returns its versioned strategy. Down and
// status only make sense for scripted drivers.
func gooseStrategy(cfg *config.Config, log logger.Interface) (*migration.GooseStrategy, error) {
	strategy, err := migration.StrategyFor(cfg.Database.Driver, log)
	if err != nil {
		return nil, err
	}
	goose, ok := strategy.(*migration.GooseStrategy)
	if !ok {
		return nil, fmt.Errorf("driver %s has no versioned migrations", cfg.Database.Driver)
	}
	return goose, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	e, err := bootstrap.InitWithDatabase(bootstrap.MapEnvToMode(env))
	if err != nil {
		return err
	}
	defer database.Close()

	manager, err := migration.NewManager(e.Config.Database.Driver, e.Log)
	if err != nil {
		return err
	}
	return manager.Migrate(database.Get())
}

func runDown(cmd *cobra.Command, args []string) error {
	e, err := bootstrap.InitWithDatabase(bootstrap.MapEnvToMode(env))
	if err != nil {
		return err
	}
	defer database.Close()

	goose, err := gooseStrategy(e.Config, e.Log)
	if err != nil {
		return err
	}
	if err := goose.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := bootstrap.InitWithDatabase(bootstrap.MapEnvToMode(env))
	if err != nil {
		return err
	}
	defer database.Close()

	goose, err := gooseStrategy(e.Config, e.Log)
	if err != nil {
		return err
	}

	current, err := goose.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Driver:          %s\n", e.Config.Database.Driver)
	fmt.Fprintf(out, "  Current Version: %d\n", current)

	return goose.Status(database.Get())
}

func runCreate(cmd *cobra.Command, args []string) error {
	e, err := bootstrap.Init(bootstrap.MapEnvToMode(env))
	if err != nil {
		return err
	}

	target := driver
	if target == "" {
		target = e.Config.Database.Driver
	}

	root, err := os.Getwd()
	if err != nil {
		return err
	}

	dir, err := migration.Create(root, target, name)
	if err != nil {
		return err
	}

	e.Log.Infow("migration created", "name", name, "dir", dir)
	return nil
}
