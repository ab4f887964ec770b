package index

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/presetsmith/presetsmith/models"
)

// SourceKind distinguishes the two document flavors found on disk.
type SourceKind int

const (
	KindPreset SourceKind = iota
	KindBundle
)

// SourceFile is one discovered metadata document. The category is
// resolved here, once, from the root the file was found under; nothing
// downstream pattern-matches the path again.
type SourceFile struct {
	Path     string // absolute or root-joined path, platform separators
	RelPath  string // path relative to the repository root, forward slashes
	Kind     SourceKind
	Category models.Category
}

// Discover enumerates every preset meta file under the presets root and
// every bundle file under the bundles root. Either root may be absent;
// both absent is fatal. Traversal order is the lexical order of
// filepath.WalkDir, which keeps discovery deterministic.
func (b *Builder) Discover() ([]SourceFile, error) {
	presetsRoot := filepath.Join(b.Root, b.Config.PresetsRoot)
	bundlesRoot := filepath.Join(b.Root, b.Config.BundlesRoot)

	presetsExist := dirExists(presetsRoot)
	bundlesExist := dirExists(bundlesRoot)
	if !presetsExist && !bundlesExist {
		return nil, fmt.Errorf("%w: %s, %s", ErrNoRoots, presetsRoot, bundlesRoot)
	}

	var files []SourceFile

	if presetsExist {
		err := filepath.WalkDir(presetsRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), b.Config.MetaSuffix) {
				return nil
			}
			relToRoot, err := filepath.Rel(presetsRoot, path)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(b.Root, path)
			if err != nil {
				return err
			}
			files = append(files, SourceFile{
				Path:     path,
				RelPath:  filepath.ToSlash(rel),
				Kind:     KindPreset,
				Category: models.CategoryForPresetPath(relToRoot),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan presets root: %w", err)
		}
	}

	if bundlesExist {
		err := filepath.WalkDir(bundlesRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), b.Config.BundleSuffix) {
				return nil
			}
			rel, err := filepath.Rel(b.Root, path)
			if err != nil {
				return err
			}
			files = append(files, SourceFile{
				Path:     path,
				RelPath:  filepath.ToSlash(rel),
				Kind:     KindBundle,
				Category: models.CategoryBundles,
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan bundles root: %w", err)
		}
	}

	return files, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
