package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nobarhq/nobarctl/internal/formatter"
	"github.com/nobarhq/nobarctl/internal/models"
	"github.com/nobarhq/nobarctl/internal/shared"
	"github.com/nobarhq/nobarctl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the user's favorites.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	favorites, err := r.client.ListFavorites(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(favorites, cmd.Bool("pretty"))
	}

	return r.printFavorites(favorites)
}

// FavoritesDelete deletes one favorite by timestamp and prints the
// backend's confirmation message plus the updated list.
func (r *Runner) FavoritesDelete(ctx context.Context, cmd *cli.Command) error {
	timestamp := cmd.StringArg("timestamp")
	if timestamp == "" {
		return fmt.Errorf("%w: timestamp", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	favorites, message, err := r.client.DeleteFavorite(ctx, timestamp)
	if err != nil {
		return err
	}

	if message != "" {
		r.writePlain("%s\n", message)
	}

	return r.printFavorites(favorites)
}

// FavoritesOpen opens a favorite's web detail page in the browser.
func (r *Runner) FavoritesOpen(ctx context.Context, cmd *cli.Command) error {
	timestamp := cmd.StringArg("timestamp")
	if timestamp == "" {
		return fmt.Errorf("%w: timestamp", shared.ErrMissingArgument)
	}

	canon, err := models.CanonicalTimestamp(timestamp)
	if err != nil {
		return err
	}

	url := r.config.API.WebURL + "/favorites/" + canon
	r.logger.Infof("opening %s", url)
	return shared.OpenBrowser(url)
}

// FavoritesExport writes the favorites list to a file in the requested
// format.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	favorites, err := r.client.ListFavorites(ctx)
	if err != nil {
		return err
	}

	format := cmd.String("format")
	data, err := formatter.Export(favorites, format)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		return r.writePlain("%s", string(data))
	}

	if err := formatter.WriteToFile(output, data); err != nil {
		return err
	}

	return r.writePlain("✓ Exported %d favorites to %s\n", len(favorites), output)
}

// FavoritesPrune bulk-deletes favorites older than the cutoff.
func (r *Runner) FavoritesPrune(ctx context.Context, cmd *cli.Command) error {
	before, err := time.Parse(time.RFC3339, cmd.String("before"))
	if err != nil {
		return fmt.Errorf("%w: --before must be RFC 3339: %v", shared.ErrInvalidFlag, err)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	prog := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			if update.Phase == tasks.DeleteFavorites {
				r.writePlain("deleting (%d/%d) %s\n", update.Step, update.Total, update.Message)
			}
		}
	}()

	result, err := r.engine.Prune(ctx, tasks.PruneOpts{
		Before:    before,
		RateLimit: cmd.Float("rate"),
		DryRun:    cmd.Bool("dry-run"),
	}, prog)
	close(prog)
	<-done

	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		return r.writePlain("%d favorites match the cutoff (dry run, nothing deleted)\n", result.Matched)
	}

	r.writePlain("✓ Deleted %d of %d favorites\n", result.Deleted, result.Matched)
	for _, failure := range result.Failures {
		r.writePlain("  ✗ %s: %v\n", failure.Favorite.Judul, failure.Err)
	}

	return nil
}

func (r *Runner) printFavorites(favorites []models.Favorite) error {
	if len(favorites) == 0 {
		return r.writePlain("No favorites added.\n")
	}

	for _, fav := range favorites {
		added := fav.Timestamp
		if t, err := fav.AddedAt(); err == nil {
			added = t.Format("2 Jan 2006 15:04")
		}
		canon, err := models.CanonicalTimestamp(fav.Timestamp)
		if err != nil {
			canon = fav.Timestamp
		}
		if err := r.writePlain("%s\n  added %s • key %s\n", fav.Judul, added, canon); err != nil {
			return err
		}
	}

	return nil
}
