// Package bootstrap loads configuration, logging and the database for CLI commands.
package bootstrap

import (
	"fmt"

	"github.com/orris-inc/tracker/internal/infrastructure/config"
	"github.com/orris-inc/tracker/internal/infrastructure/database"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// Env is what every command needs once startup succeeded.
type Env struct {
	Config *config.Config
	Log    logger.Interface
}

// Init loads config for mode and sets up the process logger.
func Init(mode string) (*Env, error) {
	cfg, err := config.Load(mode)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &Env{Config: cfg, Log: logger.NewLogger()}, nil
}

// InitWithDatabase is Init plus an open database connection. Callers close it with
// database.Close.
func InitWithDatabase(mode string) (*Env, error) {
	env, err := Init(mode)
	if err != nil {
		return nil, err
	}

	if err := database.Init(&env.Config.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	env.Log.Infow("database connected", "driver", env.Config.Database.Driver)
	return env, nil
}

// MapEnvToMode turns an environment name into a gin mode.
func MapEnvToMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	case "":
		return ""
	default:
		return "debug"
	}
}
