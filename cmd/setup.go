package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/nobarhq/nobarctl/internal/session"
	"github.com/nobarhq/nobarctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter config file and initializes the local session
// database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		r.logger.Warnf("%v", err)
	} else {
		r.writePlain("✓ Created %s\n", configPath)
	}

	dbPath := shared.ExpandHome(r.config.Database.Path)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return err
	}

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := session.NewSQLiteStorage(db); err != nil {
		return err
	}

	return r.writePlain("✓ Initialized session database at %s\n", dbPath)
}
