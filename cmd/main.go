package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/nobarhq/nobarctl/internal/session"
	"github.com/nobarhq/nobarctl/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	storage, err := newStorage(config)
	if err != nil {
		logger.Fatalf("failed to initialize session storage: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Store:  session.NewStore(storage, logger),
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "nobarctl",
		Usage:    "Browse tayangan & manage favorites from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}

// newStorage builds the durable credential store selected in config:
// a single-row table in the local SQLite database, or a JSON file.
func newStorage(config *shared.Config) (session.Storage, error) {
	switch config.Session.Backend {
	case "file":
		return session.NewFileStorage(shared.ExpandHome(config.Session.Path)), nil
	default:
		path := shared.ExpandHome(config.Database.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		db, err := shared.NewDatabase(path)
		if err != nil {
			return nil, err
		}
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		return session.NewSQLiteStorage(db)
	}
}
