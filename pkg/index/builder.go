// Package index derives the aggregate catalog index from the preset and
// bundle metadata documents on disk. The build is all-or-nothing: any
// malformed document or duplicate id aborts the run before the index
// file is touched.
package index

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/presetsmith/presetsmith/internal/common"
	"github.com/presetsmith/presetsmith/models"
	"github.com/presetsmith/presetsmith/pkg/storage"
)

var (
	// ErrNoRoots means neither the presets root nor the bundles root exists.
	ErrNoRoots = errors.New("no preset or bundle root found")
	// ErrDuplicateID means two documents claim the same preset id.
	ErrDuplicateID = errors.New("duplicate preset id")
)

// Builder assembles the index for one repository. All accumulation
// state lives in the build call, so a Builder is reusable across runs.
type Builder struct {
	Root   string
	Config models.CatalogConfig
	Store  *storage.Storage
}

func NewBuilder(root string, config models.CatalogConfig) *Builder {
	return &Builder{
		Root:   root,
		Config: config,
		Store:  &storage.Storage{},
	}
}

// metaDoc and bundleDoc are deliberately loose read shapes: the builder
// validates field presence and types itself so it can name the
// offending file, rather than surfacing a decoder error.
type metaDoc struct {
	ID      any `json:"id"`
	Display struct {
		Name        any `json:"name"`
		Description any `json:"description"`
	} `json:"display"`
	Match struct {
		Domains  []any `json:"domains"`
		Keywords []any `json:"keywords"`
	} `json:"match"`
	Verified  any `json:"verified"`
	UpdatedAt any `json:"updatedAt"`
}

type bundleDoc struct {
	ID      any `json:"id"`
	Display struct {
		Name        any `json:"name"`
		Description any `json:"description"`
	} `json:"display"`
	Keywords  []any `json:"keywords"`
	Verified  any `json:"verified"`
	UpdatedAt any `json:"updatedAt"`
}

// Build discovers every source document, projects each to an index
// entry, enforces global id uniqueness, and returns the sorted index
// document. Nothing is written; use Run for the full pass.
func (b *Builder) Build() (*models.IndexDocument, error) {
	files, err := b.Discover()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(files)) // id -> RelPath of first holder
	entries := make([]models.IndexEntry, 0, len(files))

	for _, file := range files {
		entry, err := b.project(file)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[entry.ID]; dup {
			return nil, fmt.Errorf("%w: %q in %s (first seen in %s)", ErrDuplicateID, entry.ID, file.RelPath, first)
		}
		seen[entry.ID] = file.RelPath
		entries = append(entries, entry)
	}

	// Stable sort keeps discovery order for fully equal keys.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].ID < entries[j].ID
	})

	return &models.IndexDocument{
		SchemaVersion: models.IndexSchemaVersion,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Entries:       entries,
	}, nil
}

// project reads one source file and flattens it into an index entry.
func (b *Builder) project(file SourceFile) (models.IndexEntry, error) {
	data, err := b.Store.ReadFile(file.Path)
	if err != nil {
		return models.IndexEntry{}, err
	}

	if file.Kind == KindBundle {
		var doc bundleDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return models.IndexEntry{}, fmt.Errorf("failed to parse %s: %w", file.RelPath, err)
		}
		id, idOK := asString(doc.ID)
		name, nameOK := asString(doc.Display.Name)
		if !idOK || !nameOK {
			return models.IndexEntry{}, fmt.Errorf("bundle missing id/display.name: %s", file.RelPath)
		}
		return models.IndexEntry{
			ID:          id,
			Category:    file.Category,
			Name:        name,
			Description: stringOrEmpty(doc.Display.Description),
			Keywords:    common.NormalizeTokens(stringValues(doc.Keywords), false),
			Domains:     []string{},
			MetaPath:    file.RelPath,
			UpdatedAt:   optionalString(doc.UpdatedAt),
			Verified:    boolOrFalse(doc.Verified),
		}, nil
	}

	var doc metaDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.IndexEntry{}, fmt.Errorf("failed to parse %s: %w", file.RelPath, err)
	}
	id, idOK := asString(doc.ID)
	name, nameOK := asString(doc.Display.Name)
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if !idOK || !nameOK || id == "" || name == "" {
		return models.IndexEntry{}, fmt.Errorf("missing/invalid meta.id|display.name in %s", file.RelPath)
	}
	return models.IndexEntry{
		ID:          id,
		Category:    file.Category,
		Name:        name,
		Description: stringOrEmpty(doc.Display.Description),
		Keywords:    common.NormalizeTokens(stringValues(doc.Match.Keywords), false),
		Domains:     common.NormalizeTokens(stringValues(doc.Match.Domains), true),
		MetaPath:    file.RelPath,
		UpdatedAt:   optionalString(doc.UpdatedAt),
		Verified:    boolOrFalse(doc.Verified),
	}, nil
}

// Encode serializes the index document with a trailing newline for
// diff stability.
func Encode(doc *models.IndexDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal index: %w", err)
	}
	return append(data, '\n'), nil
}

// Write atomically replaces the index file with the given document.
func (b *Builder) Write(doc *models.IndexDocument) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return b.Store.ReplaceFile(b.IndexPath(), data)
}

// Run performs the full pass: build, then write. Returns the document
// that was written.
func (b *Builder) Run() (*models.IndexDocument, error) {
	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := b.Write(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Check rebuilds the index in memory and compares it against the file
// on disk, ignoring generatedAt. Returns the fresh document and whether
// the on-disk index is up to date. A missing index file counts as stale.
func (b *Builder) Check() (*models.IndexDocument, bool, error) {
	doc, err := b.Build()
	if err != nil {
		return nil, false, err
	}

	data, err := b.Store.ReadFile(b.IndexPath())
	if err != nil {
		return doc, false, nil
	}

	var existing models.IndexDocument
	if err := json.Unmarshal(data, &existing); err != nil {
		return doc, false, nil
	}

	existing.GeneratedAt = doc.GeneratedAt
	fresh, err := Encode(doc)
	if err != nil {
		return nil, false, err
	}
	onDisk, err := Encode(&existing)
	if err != nil {
		return nil, false, err
	}
	return doc, bytes.Equal(fresh, onDisk), nil
}

// IndexPath returns the canonical location of the index document.
func (b *Builder) IndexPath() string {
	return filepath.Join(b.Root, b.Config.IndexPath)
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}

func boolOrFalse(v any) bool {
	b, _ := v.(bool)
	return b
}

func optionalString(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}

func stringValues(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
