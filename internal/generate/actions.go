package generate

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/presetsmith/presetsmith/internal/common"
	"github.com/presetsmith/presetsmith/internal/runs"
	"github.com/presetsmith/presetsmith/models"
	dbpkg "github.com/presetsmith/presetsmith/pkg/db"
	"github.com/presetsmith/presetsmith/pkg/form"
	"github.com/presetsmith/presetsmith/pkg/preset"
	"github.com/urfave/cli/v2"
)

// GenerateAction turns one issue-form submission into a new preset and
// rebuilds the index. The kind, issue number, and body arrive as
// opaque strings from the invocation environment.
func GenerateAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	kind, err := preset.ParseKind(c.String("kind"))
	if err != nil {
		return err
	}

	issue := c.Int64("issue")
	if issue <= 0 {
		return fmt.Errorf("a positive issue number is required, got %d", issue)
	}

	body, err := submissionBody(c)
	if err != nil {
		return err
	}

	config, err := models.LoadCatalogConfig(common.ConfigPath(c.String("root"), c.String("config")))
	if err != nil {
		return err
	}

	fields := form.Parse(body)
	logger.Info("parsed submission", "issue", issue, "kind", string(kind), "fields", len(fields))

	generator := preset.NewGenerator(c.String("root"), config)

	start := time.Now()
	result, err := generator.Generate(kind, fields)

	run := dbpkg.Run{
		Command:    "generate",
		Status:     runs.Status(err),
		Issue:      issue,
		DurationMS: time.Since(start).Milliseconds(),
	}
	var produced []string
	if result != nil {
		run.Detail = runs.Detail(err, result.Meta.ID)
		run.EntryCount = len(result.Index.Entries)
		produced = append(produced, result.MetaPath)
		if result.FragmentPath != "" {
			produced = append(produced, result.FragmentPath)
		}
	} else {
		run.Detail = runs.Detail(err, "")
	}
	runs.Record(logger, run, produced)

	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.MetaPath)
	if result.FragmentPath != "" {
		fmt.Printf("Created %s\n", result.FragmentPath)
	}
	fmt.Printf("Indexed %d entries\n", len(result.Index.Entries))
	return nil
}

// submissionBody resolves the form body from --body, --body-file, or
// stdin ("-").
func submissionBody(c *cli.Context) (string, error) {
	if body := c.String("body"); body != "" {
		return body, nil
	}

	bodyFile := c.String("body-file")
	if bodyFile == "" {
		return "", fmt.Errorf("a submission body is required (--body or --body-file)")
	}
	if bodyFile == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(bodyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read body file: %w", err)
	}
	return string(data), nil
}
