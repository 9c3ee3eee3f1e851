package migration

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/shared/logger"
)

//go:embed scripts
var scripts embed.FS

// ScriptsDir is where new migration files are written by Create, relative to the
// repository root.
const ScriptsDir = "internal/infrastructure/migration/scripts"

// Manager runs the strategy that fits a database driver: versioned goose scripts
// for mysql and postgres, model-driven AutoMigrate for sqlite.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

func NewManager(driver string, log logger.Interface) (*Manager, error) {
	strategy, err := StrategyFor(driver, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// StrategyFor returns the migration strategy for a database driver.
func StrategyFor(driver string, log logger.Interface) (Strategy, error) {
	switch strings.ToLower(driver) {
	case "sqlite":
		return NewGormAutoMigrateStrategy(log), nil
	case "mysql":
		return NewGooseStrategy(scripts, "scripts/mysql", goose.DialectMySQL, log), nil
	case "postgres":
		return NewGooseStrategy(scripts, "scripts/postgres", goose.DialectPostgres, log), nil
	default:
		return nil, fmt.Errorf("no migration strategy for driver %q", driver)
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// Create writes an empty SQL migration for driver under root/ScriptsDir. It works on
// the source tree, not on the embedded copy.
func Create(root, driver, name string) (string, error) {
	if strings.ToLower(driver) == "sqlite" {
		return "", fmt.Errorf("sqlite schema follows the models; no scripts to create")
	}
	dir := filepath.Join(root, ScriptsDir, strings.ToLower(driver))
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("scripts directory %s: %w", dir, err)
	}
	goose.SetBaseFS(nil)
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return "", fmt.Errorf("failed to create migration: %w", err)
	}
	return dir, nil
}
