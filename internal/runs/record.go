package runs

import (
	"log/slog"

	dbpkg "github.com/presetsmith/presetsmith/pkg/db"
)

// Record stores a run in the history database. Best-effort: history
// must never fail the invocation it describes, so problems are only
// logged.
func Record(logger *slog.Logger, run dbpkg.Run, files []string) {
	database, err := dbpkg.Open()
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return
	}
	defer database.Close()

	if _, err := database.RecordRun(run, files); err != nil {
		logger.Warn("failed to record run", "error", err)
	}
}

// Status maps an error to the run status column.
func Status(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}

// Detail picks the error text on failure, the given detail otherwise.
func Detail(err error, onSuccess string) string {
	if err != nil {
		return err.Error()
	}
	return onSuccess
}
