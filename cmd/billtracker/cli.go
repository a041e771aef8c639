package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
	"github.com/ulucaydin/virginia-bill-tracker/internal/feed"
	"github.com/ulucaydin/virginia-bill-tracker/internal/ops"
	"github.com/ulucaydin/virginia-bill-tracker/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "billtracker",
		Usage:   "Track Virginia General Assembly bills",
		Version: Version,
		Commands: []*cli.Command{
			syncCmd(db, cfg, baseDir),
			statusCmd(db, cfg),
			changesCmd(db),
			trackCmd(baseDir),
			untrackCmd(baseDir),
			reportCmd(db, cfg),
			exportCmd(db, cfg, baseDir),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// syncCmd creates the sync command.
func syncCmd(db *sql.DB, cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Fetch the LIS feeds and record bill changes since the last run",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bills-file", Usage: "Read the bill feed from a local CSV instead of fetching"},
			&cli.StringFlag{Name: "summaries-file", Usage: "Read the summaries feed from a local CSV instead of fetching"},
		},
		Action: func(c *cli.Context) error {
			tracked, err := config.LoadTrackedBills(baseDir)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			var rows []bill.RawBillRow
			var summaries []bill.RawSummaryRow

			if path := c.String("bills-file"); path != "" {
				rows, err = feed.ParseBillsFile(path)
				if err != nil {
					return outputError(err)
				}
				if path := c.String("summaries-file"); path != "" {
					summaries, err = feed.ParseSummariesFile(path)
					if err != nil {
						return outputError(err)
					}
				}
			} else {
				client := feed.NewClient()
				rows, err = client.FetchBills(c.Context, cfg.BillsFeedURL)
				if err != nil {
					return outputError(err)
				}
				summaries, err = client.FetchSummaries(c.Context, cfg.SummariesFeedURL)
				if err != nil {
					// Summaries are an enrichment; a failed download
					// degrades to description-based summaries.
					fmt.Fprintf(os.Stderr, "warning: summaries feed unavailable: %v\n", err)
					summaries = nil
				}
			}

			output, err := ops.Sync(db, cfg, ops.SyncInput{
				TrackedBills: tracked,
				BillRows:     rows,
				SummaryRows:  summaries,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// statusCmd creates the status command.
func statusCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Show the current status of tracked bills from the last sync",
		ArgsUsage: "[bill]",
		Action: func(c *cli.Context) error {
			input := ops.StatusInput{}
			if c.NArg() > 0 {
				input.BillID = c.Args().First()
			}

			output, err := ops.Status(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// changesCmd creates the changes command.
func changesCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "changes",
		Usage: "List recent bill changes, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultChangesLimit, Usage: "Maximum entries to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Entries to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Changes(db, ops.ChangesInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// trackCmd creates the track command.
func trackCmd(baseDir string) *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "Add bills to the tracked list",
		ArgsUsage: "<bill> [bill...]",
		Action: func(c *cli.Context) error {
			output, err := ops.Track(ops.TrackInput{
				BaseDir: baseDir,
				Bills:   c.Args().Slice(),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// untrackCmd creates the untrack command.
func untrackCmd(baseDir string) *cli.Command {
	return &cli.Command{
		Name:      "untrack",
		Usage:     "Remove bills from the tracked list",
		ArgsUsage: "<bill> [bill...]",
		Action: func(c *cli.Context) error {
			output, err := ops.Untrack(ops.TrackInput{
				BaseDir: baseDir,
				Bills:   c.Args().Slice(),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// reportCmd creates the report command.
func reportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print a markdown digest of tracked bills and recent changes",
		Action: func(c *cli.Context) error {
			output, err := ops.Report(db, cfg, ops.ReportInput{})
			if err != nil {
				return outputError(err)
			}

			fmt.Fprint(c.App.Writer, output.Markdown)
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the snapshot and change log to a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.billtracker/exports/<session>-<timestamp>.json)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(db, cfg, ops.ExportInput{
				Path:    c.String("path"),
				BaseDir: baseDir,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8799, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := err.(*errors.TrackerError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
