package watch

import (
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/presetsmith/presetsmith/internal/common"
	"github.com/presetsmith/presetsmith/models"
	indexpkg "github.com/presetsmith/presetsmith/pkg/index"
	"github.com/urfave/cli/v2"
)

// debounceWindow batches bursts of file events into one rebuild.
const debounceWindow = 500 * time.Millisecond

// WatchAction keeps the index in sync with the preset and bundle roots,
// rebuilding after every burst of changes until interrupted.
func WatchAction(c *cli.Context) error {
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
	indexPath, err := filepath.Abs(builder.IndexPath())
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	roots := []string{
		filepath.Join(builder.Root, config.PresetsRoot),
		filepath.Join(builder.Root, config.BundlesRoot),
	}
	for _, root := range roots {
		if err := watchTree(watcher, root); err != nil {
			return err
		}
	}

	rebuild := func() {
		doc, err := builder.Run()
		if err != nil {
			// A broken intermediate state is expected while files are
			// being edited; keep watching.
			logger.Error("index rebuild failed", "error", err)
			return
		}
		logger.Info("index rebuilt", "entries", len(doc.Entries))
	}
	rebuild()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	var debounce <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if abs, err := filepath.Abs(event.Name); err == nil && abs == indexPath {
				continue
			}
			// New subdirectories need their own watch.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchTree(watcher, event.Name)
				}
			}
			debounce = time.After(debounceWindow)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		case <-debounce:
			debounce = nil
			rebuild()
		case <-sig:
			logger.Info("stopping watcher")
			return nil
		}
	}
}

// watchTree adds a directory and all its subdirectories to the watcher.
// A missing root is fine; it may appear later under a watched parent.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); err != nil {
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
