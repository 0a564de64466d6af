package main

import "github.com/urfave/cli/v3"

func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "browse",
		Usage:  "Open the movie browser (default)",
		Action: r.Browse,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Store a TMDB read access token in the config file",
		Action: r.Setup,
	}
}

// favoritesCommand manages the saved favorites without starting the TUI
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorite movies",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List favorite movies",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON",
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "export",
				Usage: "Export favorite movies as JSON or TOML",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (json or toml)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
				},
				Action: r.FavoritesExport,
			},
			{
				Name:   "clear",
				Usage:  "Remove every favorite movie",
				Action: r.FavoritesClear,
			},
		},
	}
}

func versionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Print the version",
		Action: r.Version,
	}
}
