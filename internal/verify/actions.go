package verify

import (
	"fmt"
	"time"

	"github.com/presetsmith/presetsmith/internal/common"
	"github.com/presetsmith/presetsmith/models"
	indexpkg "github.com/presetsmith/presetsmith/pkg/index"
	"github.com/presetsmith/presetsmith/pkg/sitecheck"
	"github.com/urfave/cli/v2"
)

// VerifyAction probes the domains of every votesite entry (or one
// entry via --id) and prints a reachability report. Read-only: the
// verified flag in the metadata stays a manual decision.
func VerifyAction(c *cli.Context) error {
	config, err := models.LoadCatalogConfig(common.ConfigPath(c.String("root"), c.String("config")))
	if err != nil {
		return err
	}

	doc, err := indexpkg.NewBuilder(c.String("root"), config).Build()
	if err != nil {
		return err
	}

	onlyID := c.String("id")
	checker := sitecheck.NewChecker(time.Duration(c.Int("timeout")) * time.Second)

	checked := 0
	for _, entry := range doc.Entries {
		if entry.Category != models.CategoryVoteSites {
			continue
		}
		if onlyID != "" && entry.ID != onlyID {
			continue
		}
		for _, domain := range entry.Domains {
			report := checker.Check(domain)
			checked++
			if report.Error != "" {
				fmt.Printf("%-30s %-25s %s\n", entry.ID, domain, report.Error)
				continue
			}
			title := report.Title
			if title == "" {
				title = "(no title)"
			}
			fmt.Printf("%-30s %-25s %d %s\n", entry.ID, domain, report.StatusCode, title)
		}
	}

	if checked == 0 {
		fmt.Println("No votesite domains to verify")
		return nil
	}
	fmt.Printf("\nChecked %d domains\n", checked)
	return nil
}
