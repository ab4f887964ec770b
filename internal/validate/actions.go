package validate

import (
	"fmt"

	"github.com/presetsmith/presetsmith/internal/common"
	"github.com/presetsmith/presetsmith/models"
	indexpkg "github.com/presetsmith/presetsmith/pkg/index"
	"github.com/presetsmith/presetsmith/pkg/schema"
	"github.com/presetsmith/presetsmith/pkg/storage"
	"github.com/urfave/cli/v2"
)

// ValidateAction runs every discovered document through the JSON
// Schemas and the index projection without writing anything. The first
// violation aborts, matching the build's all-or-nothing policy.
func ValidateAction(c *cli.Context) error {
	config, err := models.LoadCatalogConfig(common.ConfigPath(c.String("root"), c.String("config")))
	if err != nil {
		return err
	}

	builder := indexpkg.NewBuilder(c.String("root"), config)
	files, err := builder.Discover()
	if err != nil {
		return err
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return err
	}

	store := &storage.Storage{}
	for _, file := range files {
		data, err := store.ReadFile(file.Path)
		if err != nil {
			return err
		}
		if file.Kind == indexpkg.KindBundle {
			err = validator.ValidateBundle(data, file.RelPath)
		} else {
			err = validator.ValidatePreset(data, file.RelPath)
		}
		if err != nil {
			return err
		}
	}

	// Projection catches what the schemas can't: id collisions across files.
	doc, err := builder.Build()
	if err != nil {
		return err
	}

	fmt.Printf("Validated %d documents, %d index entries\n", len(files), len(doc.Entries))
	return nil
}
