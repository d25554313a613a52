// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Read lists from a JSON payload file instead of the API",
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "Base URL of the list API (overrides source.base_url)",
		},
	}
}

// tuiCommand launches the interactive merge screen
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Select two lists and build a new one interactively",
		Flags: append(sourceFlags(),
			&cli.StringFlag{
				Name:  "policy",
				Usage: "Where items moved out of the new list go: origin or positional",
			},
			&cli.BoolFlag{
				Name:  "no-delay",
				Usage: "Skip the artificial delay before loading",
			},
		),
		Action: r.TUI,
	}
}

// showCommand prints the lists as loaded from the source
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the lists from the configured source",
		Flags: append(sourceFlags(),
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text, markdown, csv, json or yaml",
				Value: "text",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print Markdown source even on a terminal",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to a file instead of stdout",
			},
		),
		Action: r.Show,
	}
}

// serveCommand runs the local fixture API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a list payload locally for development",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "JSON or YAML payload file to serve (default: built-in sample)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (overrides server.port)",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "Route for the payload (default: source.path)",
			},
			&cli.BoolFlag{
				Name:  "fail",
				Usage: "Answer 503 to every list request",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload --file whenever it changes",
			},
		},
		Action: r.Serve,
	}
}

// historyCommand reads the merge journal
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect committed merges recorded in the journal",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent merges, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of merges to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "show",
				Usage: "Show a merge and its items",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "sequence"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryShow,
			},
			{
				Name:  "delete",
				Usage: "Remove a merge from the journal",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "sequence"},
				},
				Action: r.HistoryDelete,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the journal database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config file populated with defaults",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the journal database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
