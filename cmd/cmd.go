// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlag(value, usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   usage,
		Value:   value,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive TUI, optionally at a location such as /favorites",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Action: r.TUI,
	}
}

// showCommand summarizes one or more URLs
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"summarize"},
		Usage:     "Summarize recipe URLs",
		ArgsUsage: "<url> [url...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "title-hint",
				Usage: "Title to show while the page has no summary (single url only)",
			},
			formatFlag("text", "Output format: text, markdown or json"),
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Print the raw response",
			},
			&cli.StringFlag{
				Name:  "save",
				Usage: "Directory to save Markdown copies of the summaries to",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent requests when summarizing several URLs",
				Value: 3,
			},
		},
		Action: r.Show,
	}
}

func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "count",
			Usage: "Number of entries (default: api.list_count)",
		},
		formatFlag("text", "Output format: text, csv or json"),
	}
}

// recentCommand lists recently summarized pages
func recentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "recent",
		Usage:  "List recently summarized recipes",
		Flags:  listFlags(),
		Action: r.Recent,
	}
}

// favoritesCommand lists the most visited pages
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"favs"},
		Usage:   "List favorite recipes",
		Flags:   listFlags(),
		Action:  r.Favorites,
	}
}

// searchCommand searches summarized pages
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search summarized recipes",
		ArgsUsage: "<term>",
		Flags: []cli.Flag{
			formatFlag("text", "Output format: text, csv or json"),
		},
		Action: r.Search,
	}
}

// openCommand resolves free text the way the TUI navigation box does
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Resolve a URL or search term to a location",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "launch",
				Usage: "Open the TUI at the resolved location",
			},
		},
		Action: r.Open,
	}
}

// shareCommand handles content shared from another application
func shareCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "share",
		Usage: "Open shared content in the TUI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "text", Usage: "Shared text, summarized as the page link"},
			&cli.StringFlag{Name: "title", Usage: "Shared title, used as the title hint"},
			&cli.BoolFlag{Name: "print", Usage: "Print the resolved location instead of opening the TUI"},
		},
		Action: r.Share,
	}
}

// hitCommand records a visit
func hitCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "hit",
		Usage: "Record a visit to a URL",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Action: r.Hit,
	}
}

// apiCommand handles direct backend calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the recipes backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Authenticated GET, prints the response body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the Google sign-in",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with Google in the browser",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "token",
						Usage: "Store an existing ID token instead of signing in",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored sign-in",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the signed-in account",
				Action: r.AuthStatus,
			},
		},
	}
}

// setupCommand writes a config file and prepares the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage: "Create config.toml and initialize the database",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Revert the most recent database migration",
			},
		},
		Action: r.Setup,
	}
}
