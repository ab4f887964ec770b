package models

// MetaSchemaVersion is the schema version written into new metadata documents.
const MetaSchemaVersion = 1

// Display holds the human-facing name and description of a preset.
type Display struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Match describes how a preset is matched against a site.
type Match struct {
	Domains  []string `json:"domains,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Placeholder is a single templating slot consumed by the downstream
// renderer. Default is kept as a string; an empty default means "omit
// at render time".
type Placeholder struct {
	Type    string `json:"type"`
	Label   string `json:"label"`
	Default string `json:"default"`
}

// FragmentRef points at a YAML snippet and the config subtree it is
// spliced into. The snippet's contents are opaque to this toolchain.
type FragmentRef struct {
	Path      string `json:"path"`
	MergeInto string `json:"mergeInto"`
}

// PresetMeta is the source-of-truth document for one preset.
type PresetMeta struct {
	SchemaVersion int                    `json:"schemaVersion"`
	ID            string                 `json:"id"`
	Display       Display                `json:"display"`
	Match         Match                  `json:"match"`
	Placeholders  map[string]Placeholder `json:"placeholders,omitempty"`
	Fragments     []FragmentRef          `json:"fragments"`
	Verified      bool                   `json:"verified"`
	UpdatedAt     string                 `json:"updatedAt,omitempty"`
}

// BundleMeta is the lighter-weight bundle document. Bundles share the
// preset id uniqueness space but carry no domain matching.
type BundleMeta struct {
	ID        string   `json:"id"`
	Display   Display  `json:"display"`
	Keywords  []string `json:"keywords,omitempty"`
	Verified  bool     `json:"verified"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}
