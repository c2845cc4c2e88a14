package main

import (
	"context"
	"fmt"

	"github.com/nobarhq/nobarctl/internal/models"
	"github.com/nobarhq/nobarctl/internal/shared"
	"github.com/urfave/cli/v3"
)

// TayanganTop prints the ten most viewed tayangan of the week.
func (r *Runner) TayanganTop(ctx context.Context, cmd *cli.Command) error {
	items, err := r.client.TopTayangan(ctx)
	if err != nil {
		return err
	}
	return r.printTayangan(cmd, "Top 10 Tayangan", items)
}

// TayanganFilm prints the film catalog.
func (r *Runner) TayanganFilm(ctx context.Context, cmd *cli.Command) error {
	items, err := r.client.Films(ctx)
	if err != nil {
		return err
	}
	return r.printTayangan(cmd, "Film", items)
}

// TayanganSeries prints the series catalog.
func (r *Runner) TayanganSeries(ctx context.Context, cmd *cli.Command) error {
	items, err := r.client.Series(ctx)
	if err != nil {
		return err
	}
	return r.printTayangan(cmd, "Series", items)
}

// TayanganSearch searches the catalog by title.
func (r *Runner) TayanganSearch(ctx context.Context, cmd *cli.Command) error {
	judul := cmd.StringArg("judul")
	if judul == "" {
		return fmt.Errorf("%w: judul", shared.ErrMissingArgument)
	}

	items, err := r.client.SearchTayangan(ctx, judul)
	if err != nil {
		return err
	}
	return r.printTayangan(cmd, fmt.Sprintf("Hasil pencarian '%s'", judul), items)
}

func (r *Runner) printTayangan(cmd *cli.Command, title string, items []models.Tayangan) error {
	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", title)
	if len(items) == 0 {
		return r.writePlain("  (empty)\n")
	}

	for i, item := range items {
		if err := r.writePlain("%2d. %s\n", i+1, item.Judul); err != nil {
			return err
		}
	}

	return nil
}
