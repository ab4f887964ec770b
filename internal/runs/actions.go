package runs

import (
	"fmt"
	"strings"

	dbpkg "github.com/presetsmith/presetsmith/pkg/db"
	"github.com/urfave/cli/v2"
)

// RunsAction lists recent toolchain invocations. With a run id argument
// it also prints the files that run produced.
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if runID := c.Args().First(); runID != "" {
		files, err := database.GetRunFiles(runID)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Printf("Run %s produced no files\n", runID)
			return nil
		}
		for _, file := range files {
			fmt.Println(file)
		}
		return nil
	}

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-36s %-20s %-10s %-8s %-7s %-8s %s\n",
		"ID", "Created", "Command", "Status", "Issue", "Entries", "Detail")
	fmt.Println(strings.Repeat("-", 120))

	for _, run := range runs {
		issue := ""
		if run.Issue > 0 {
			issue = fmt.Sprintf("#%d", run.Issue)
		}
		fmt.Printf("%-36s %-20s %-10s %-8s %-7s %-8d %s\n",
			run.RunID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Command,
			run.Status,
			issue,
			run.EntryCount,
			run.Detail,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'presetsmith runs <id>' to see produced files\n")
	return nil
}
