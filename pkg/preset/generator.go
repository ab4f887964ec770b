// Package preset synthesizes new preset metadata documents from parsed
// issue-form submissions. Writes are create-only: an existing target
// path fails the whole request before anything touches disk.
package preset

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/presetsmith/presetsmith/models"
	indexpkg "github.com/presetsmith/presetsmith/pkg/index"
	"github.com/presetsmith/presetsmith/pkg/storage"
)

// Kind discriminates the two generation request shapes.
type Kind string

const (
	KindVoteSite Kind = "votesite"
	KindReward   Kind = "reward"
)

// ParseKind validates a raw kind string.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindVoteSite, KindReward:
		return Kind(raw), nil
	default:
		return "", invalidField("kind", fmt.Sprintf("unsupported kind %q (want votesite or reward)", raw))
	}
}

// Result describes one completed generation: the document, where it
// landed, and the index rebuilt afterwards.
type Result struct {
	Meta         *models.PresetMeta
	MetaPath     string // relative to the repository root, forward slashes
	FragmentPath string // empty for votesite requests
	Index        *models.IndexDocument
}

type Generator struct {
	Root   string
	Config models.CatalogConfig
	Store  *storage.Storage
	Now    func() time.Time
}

func NewGenerator(root string, config models.CatalogConfig) *Generator {
	return &Generator{
		Root:   root,
		Config: config,
		Store:  &storage.Storage{},
		Now:    time.Now,
	}
}

// plan is a fully validated request. Nothing touches disk until the
// whole plan exists, so validation failures leave no partial output.
type plan struct {
	meta            *models.PresetMeta
	metaPath        string
	fragmentPath    string
	fragmentContent []byte
}

// Generate validates the field mapping against the given kind, writes
// the new document(s), and rebuilds the catalog index in-process. An
// index rebuild failure propagates as the generator's own failure; the
// fresh files stay on disk and a standalone index run picks them up.
func (g *Generator) Generate(kind Kind, fields map[string]string) (*Result, error) {
	var p *plan
	var err error
	switch kind {
	case KindVoteSite:
		p, err = g.planVoteSite(fields)
	case KindReward:
		p, err = g.planReward(fields)
	default:
		return nil, invalidField("kind", fmt.Sprintf("unsupported kind %q", kind))
	}
	if err != nil {
		return nil, err
	}

	if err := g.write(p); err != nil {
		return nil, err
	}

	doc, err := indexpkg.NewBuilder(g.Root, g.Config).Run()
	if err != nil {
		return nil, fmt.Errorf("index rebuild after generation failed: %w", err)
	}

	return &Result{
		Meta:         p.meta,
		MetaPath:     p.metaPath,
		FragmentPath: p.fragmentPath,
		Index:        doc,
	}, nil
}

func (g *Generator) write(p *plan) error {
	metaAbs := filepath.Join(g.Root, filepath.FromSlash(p.metaPath))
	var fragmentAbs string
	if p.fragmentPath != "" {
		fragmentAbs = filepath.Join(g.Root, filepath.FromSlash(p.fragmentPath))
	}

	// Refuse to overwrite before writing anything, so a collision on
	// either target leaves no partial output.
	if g.Store.HasFile(metaAbs) {
		return fmt.Errorf("%w: %s", storage.ErrExists, p.metaPath)
	}
	if fragmentAbs != "" && g.Store.HasFile(fragmentAbs) {
		return fmt.Errorf("%w: %s", storage.ErrExists, p.fragmentPath)
	}

	if fragmentAbs != "" {
		if err := g.Store.CreateFile(fragmentAbs, p.fragmentContent); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(p.meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return g.Store.CreateFile(metaAbs, append(data, '\n'))
}

func (g *Generator) timestamp() string {
	return g.Now().UTC().Format(time.RFC3339)
}
