package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/presetsmith/presetsmith/internal/common"
	"github.com/presetsmith/presetsmith/models"
	indexpkg "github.com/presetsmith/presetsmith/pkg/index"
	searchpkg "github.com/presetsmith/presetsmith/pkg/search"
	"github.com/presetsmith/presetsmith/pkg/storage"
	"github.com/urfave/cli/v2"
)

// SearchAction runs a discovery query over the catalog index. It
// prefers the index file on disk and falls back to an in-memory build
// when none exists yet.
func SearchAction(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	config, err := models.LoadCatalogConfig(common.ConfigPath(c.String("root"), c.String("config")))
	if err != nil {
		return err
	}

	builder := indexpkg.NewBuilder(c.String("root"), config)
	doc, err := loadIndex(builder)
	if err != nil {
		return err
	}

	idx, err := searchpkg.NewIndex(doc.Entries)
	if err != nil {
		return err
	}
	defer idx.Close()

	hits, err := idx.Search(query, c.Int("limit"))
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println("No matches")
		return nil
	}

	fmt.Printf("%-30s %-12s %-8s %s\n", "ID", "Category", "Score", "Name")
	fmt.Println(strings.Repeat("-", 80))
	for _, hit := range hits {
		fmt.Printf("%-30s %-12s %-8.3f %s\n",
			hit.Entry.ID, hit.Entry.Category, hit.Score, hit.Entry.Name)
	}
	fmt.Printf("\nTotal: %d matches\n", len(hits))
	return nil
}

func loadIndex(builder *indexpkg.Builder) (*models.IndexDocument, error) {
	store := &storage.Storage{}
	if data, err := store.ReadFile(builder.IndexPath()); err == nil {
		var doc models.IndexDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse index file: %w", err)
		}
		return &doc, nil
	}
	return builder.Build()
}
