package main

import (
	"log"
	"os"

	generatecmd "github.com/presetsmith/presetsmith/internal/generate"
	indexcmd "github.com/presetsmith/presetsmith/internal/index"
	runscmd "github.com/presetsmith/presetsmith/internal/runs"
	searchcmd "github.com/presetsmith/presetsmith/internal/search"
	validatecmd "github.com/presetsmith/presetsmith/internal/validate"
	verifycmd "github.com/presetsmith/presetsmith/internal/verify"
	watchcmd "github.com/presetsmith/presetsmith/internal/watch"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "presetsmith",
		Usage: "maintain a catalog of vote-site, reward, and bundle presets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "repository root of the preset catalog",
				Value: ".",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "catalog layout config, relative to the root",
				Value: "catalog.yaml",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "rebuild the catalog index from every preset and bundle document",
				Action: indexcmd.IndexAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "check",
						Usage: "verify the index is up to date instead of writing it",
					},
				},
			},
			{
				Name:   "generate",
				Usage:  "create a new preset from an issue-form submission and reindex",
				Action: generatecmd.GenerateAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "kind",
						Usage:    "submission kind: votesite or reward",
						Required: true,
						EnvVars:  []string{"PRESET_KIND"},
					},
					&cli.Int64Flag{
						Name:     "issue",
						Usage:    "issue number of the submission",
						Required: true,
						EnvVars:  []string{"ISSUE_NUMBER"},
					},
					&cli.StringFlag{
						Name:    "body",
						Usage:   "raw submission body",
						EnvVars: []string{"ISSUE_BODY"},
					},
					&cli.StringFlag{
						Name:  "body-file",
						Usage: "file with the submission body, or - for stdin",
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "schema-validate every document and dry-run the index build",
				Action: validatecmd.ValidateAction,
			},
			{
				Name:      "search",
				Usage:     "full-text search over the catalog index",
				ArgsUsage: "<query>",
				Action:    searchcmd.SearchAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum number of matches",
						Value: 10,
					},
				},
			},
			{
				Name:   "verify",
				Usage:  "probe votesite domains and report reachability",
				Action: verifycmd.VerifyAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "only verify the entry with this preset id",
					},
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "per-request timeout in seconds",
						Value: 10,
					},
				},
			},
			{
				Name:   "watch",
				Usage:  "rebuild the index whenever preset or bundle files change",
				Action: watchcmd.WatchAction,
			},
			{
				Name:      "runs",
				Usage:     "list recent index and generation runs",
				ArgsUsage: "[run-id]",
				Action:    runscmd.RunsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum number of runs to list",
						Value: 20,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
