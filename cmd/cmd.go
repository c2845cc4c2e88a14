// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand creates the config file and initializes local storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize local storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path for the generated configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and persist the session credential",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Log out and clear the stored credential",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show current session state (validates the stored credential)",
				Action: r.AuthStatus,
			},
		},
	}
}

// favoritesCommand handles favorites operations
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage your favorites list",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List favorites",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "delete",
				Usage: "Delete a favorite by timestamp",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "timestamp"},
				},
				Action: r.FavoritesDelete,
			},
			{
				Name:  "open",
				Usage: "Open a favorite's detail page in the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "timestamp"},
				},
				Action: r.FavoritesOpen,
			},
			{
				Name:  "export",
				Usage: "Export favorites to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.FavoritesExport,
			},
			{
				Name:  "prune",
				Usage: "Delete all favorites added before a cutoff date",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "before",
						Usage:    "Cutoff instant (RFC 3339, e.g. 2024-01-01T00:00:00Z)",
						Required: true,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Delete requests per second",
						Value: 2,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Report matches without deleting",
					},
				},
				Action: r.FavoritesPrune,
			},
		},
	}
}

// tayanganCommand handles catalog listing operations
func tayanganCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tayangan",
		Usage: "Browse the tayangan catalog",
		Commands: []*cli.Command{
			{
				Name:   "top",
				Usage:  "Show the top 10 tayangan of the week",
				Flags:  listingFlags(),
				Action: r.TayanganTop,
			},
			{
				Name:   "film",
				Usage:  "List films",
				Flags:  listingFlags(),
				Action: r.TayanganFilm,
			},
			{
				Name:   "series",
				Usage:  "List series",
				Flags:  listingFlags(),
				Action: r.TayanganSeries,
			},
			{
				Name:  "search",
				Usage: "Search tayangan by title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "judul"},
				},
				Flags:  listingFlags(),
				Action: r.TayanganSearch,
			},
		},
	}
}

func listingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive TUI",
		Action:  r.TUI,
	}
}
