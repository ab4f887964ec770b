package index

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/presetsmith/presetsmith/internal/common"
	"github.com/presetsmith/presetsmith/internal/runs"
	"github.com/presetsmith/presetsmith/models"
	dbpkg "github.com/presetsmith/presetsmith/pkg/db"
	indexpkg "github.com/presetsmith/presetsmith/pkg/index"
	"github.com/urfave/cli/v2"
)

// IndexAction rebuilds the catalog index from scratch. With --check it
// only verifies that the index on disk matches the current file set.
func IndexAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config, err := models.LoadCatalogConfig(common.ConfigPath(c.String("root"), c.String("config")))
	if err != nil {
		return err
	}

	builder := indexpkg.NewBuilder(c.String("root"), config)

	if c.Bool("check") {
		doc, upToDate, err := builder.Check()
		if err != nil {
			return err
		}
		if !upToDate {
			return cli.Exit(fmt.Sprintf("index at %s is out of date, rerun 'presetsmith index'", builder.IndexPath()), 1)
		}
		fmt.Printf("Index up to date: %d entries\n", len(doc.Entries))
		return nil
	}

	start := time.Now()
	doc, err := builder.Run()
	runs.Record(logger, dbpkg.Run{
		Command:    "index",
		Status:     runs.Status(err),
		Detail:     runs.Detail(err, builder.IndexPath()),
		EntryCount: entryCount(doc),
		DurationMS: time.Since(start).Milliseconds(),
	}, nil)
	if err != nil {
		return err
	}

	logger.Info("index rebuilt", "entries", len(doc.Entries), "path", builder.IndexPath())
	fmt.Printf("Indexed %d entries -> %s\n", len(doc.Entries), builder.IndexPath())
	return nil
}

func entryCount(doc *models.IndexDocument) int {
	if doc == nil {
		return 0
	}
	return len(doc.Entries)
}
