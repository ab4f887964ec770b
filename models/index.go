package models

import "strings"

// IndexSchemaVersion is the schema version of the generated index document.
const IndexSchemaVersion = 1

// Category classifies an index entry by where its source document was
// discovered. It is assigned exactly once at discovery time and never
// re-derived from the path afterwards.
type Category string

const (
	CategoryVoteSites  Category = "votesites"
	CategoryRewards    Category = "rewards"
	CategoryMilestones Category = "milestones"
	CategoryBundles    Category = "bundles"
	CategoryOther      Category = "other"
)

// CategoryForPresetPath maps a path relative to the presets root to its
// category using the first path segment. Anything outside the known
// subdirectories is "other". Bundle files never pass through here; they
// are CategoryBundles unconditionally.
func CategoryForPresetPath(rel string) Category {
	rel = strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "/")
	segment, _, _ := strings.Cut(rel, "/")
	switch segment {
	case "votesites":
		return CategoryVoteSites
	case "rewards":
		return CategoryRewards
	case "milestones":
		return CategoryMilestones
	default:
		return CategoryOther
	}
}

// IndexEntry is the normalized, comparison-ready projection of one
// metadata document. Keywords and domains are trimmed, lowercased,
// deduplicated, and sorted; domains additionally drop one leading
// "www." prefix. MetaPath always uses forward slashes.
type IndexEntry struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Domains     []string `json:"domains"`
	MetaPath    string   `json:"metaPath"`
	UpdatedAt   *string  `json:"updatedAt"`
	Verified    bool     `json:"verified"`
}

// IndexDocument is the aggregate catalog index. It is a pure function
// of the metadata documents on disk and is wholly regenerated each run.
// Entries are sorted by category, then id, both ascending.
type IndexDocument struct {
	SchemaVersion int          `json:"schemaVersion"`
	GeneratedAt   string       `json:"generatedAt"`
	Entries       []IndexEntry `json:"entries"`
}
