package index

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/presetsmith/presetsmith/models"
)

func setupCatalog(t *testing.T) (string, *Builder) {
	t.Helper()
	root := t.TempDir()
	return root, NewBuilder(root, models.DefaultCatalogConfig())
}

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

const votesiteExample = `{
  "id": "votesite:example",
  "display": {"name": "Example"},
  "match": {
    "domains": ["WWW.Example.com ", "example.com"],
    "keywords": ["Foo", " foo"]
  }
}`

func TestBuild_VoteSiteProjection(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "presets/votesites/example_com.meta.json", votesiteExample)

	doc, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("Build() entries = %d, want 1", len(doc.Entries))
	}

	entry := doc.Entries[0]
	if entry.ID != "votesite:example" {
		t.Errorf("entry.ID = %q, want %q", entry.ID, "votesite:example")
	}
	if entry.Category != models.CategoryVoteSites {
		t.Errorf("entry.Category = %q, want %q", entry.Category, models.CategoryVoteSites)
	}
	if diff := cmp.Diff([]string{"example.com"}, entry.Domains); diff != "" {
		t.Errorf("entry.Domains mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"foo"}, entry.Keywords); diff != "" {
		t.Errorf("entry.Keywords mismatch (-want +got):\n%s", diff)
	}
	if entry.MetaPath != "presets/votesites/example_com.meta.json" {
		t.Errorf("entry.MetaPath = %q", entry.MetaPath)
	}
	if entry.UpdatedAt != nil {
		t.Errorf("entry.UpdatedAt = %v, want nil", *entry.UpdatedAt)
	}
	if entry.Verified {
		t.Error("entry.Verified = true, want false")
	}
}

func TestBuild_BundleProjection(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "bundles/starter.bundle.json", `{
	  "id": "bundle:starter",
	  "display": {"name": "Starter Pack", "description": "A bundle"},
	  "keywords": ["Basics", "basics"],
	  "verified": true,
	  "updatedAt": "2026-01-01T00:00:00Z"
	}`)

	doc, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	entry := doc.Entries[0]
	if entry.Category != models.CategoryBundles {
		t.Errorf("entry.Category = %q, want bundles", entry.Category)
	}
	if entry.Domains == nil || len(entry.Domains) != 0 {
		t.Errorf("entry.Domains = %v, want empty non-nil", entry.Domains)
	}
	if diff := cmp.Diff([]string{"basics"}, entry.Keywords); diff != "" {
		t.Errorf("entry.Keywords mismatch (-want +got):\n%s", diff)
	}
	if !entry.Verified {
		t.Error("entry.Verified = false, want true")
	}
	if entry.UpdatedAt == nil || *entry.UpdatedAt != "2026-01-01T00:00:00Z" {
		t.Errorf("entry.UpdatedAt = %v, want 2026-01-01T00:00:00Z", entry.UpdatedAt)
	}
}

func TestBuild_SortInvariant(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "presets/votesites/b.meta.json", `{"id": "votesite:b", "display": {"name": "B"}}`)
	writeDoc(t, root, "presets/votesites/a.meta.json", `{"id": "votesite:a", "display": {"name": "A"}}`)
	writeDoc(t, root, "presets/rewards/r.meta.json", `{"id": "reward:r", "display": {"name": "R"}}`)
	writeDoc(t, root, "bundles/z.bundle.json", `{"id": "bundle:z", "display": {"name": "Z"}}`)

	doc, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for i := 1; i < len(doc.Entries); i++ {
		a, b := doc.Entries[i-1], doc.Entries[i]
		if a.Category > b.Category || (a.Category == b.Category && a.ID > b.ID) {
			t.Errorf("entries out of order: %s/%s before %s/%s", a.Category, a.ID, b.Category, b.ID)
		}
	}

	gotIDs := make([]string, len(doc.Entries))
	for i, e := range doc.Entries {
		gotIDs[i] = e.ID
	}
	wantIDs := []string{"bundle:z", "reward:r", "votesite:a", "votesite:b"}
	if diff := cmp.Diff(wantIDs, gotIDs); diff != "" {
		t.Errorf("entry order mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_DuplicateIDAborts(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "presets/votesites/a.meta.json", `{"id": "votesite:dup", "display": {"name": "A"}}`)
	writeDoc(t, root, "bundles/b.bundle.json", `{"id": "votesite:dup", "display": {"name": "B"}}`)

	_, err := builder.Run()
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Run() error = %v, want ErrDuplicateID", err)
	}
	if _, statErr := os.Stat(builder.IndexPath()); !os.IsNotExist(statErr) {
		t.Error("index file written despite duplicate id")
	}
}

func TestRun_BundleMissingIDAborts(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "bundles/broken.bundle.json", `{"display": {"name": "No ID"}}`)

	_, err := builder.Run()
	if err == nil {
		t.Fatal("Run() error = nil, want bundle validation error")
	}
	if !strings.Contains(err.Error(), "bundles/broken.bundle.json") {
		t.Errorf("Run() error = %v, want path in message", err)
	}
	if _, statErr := os.Stat(builder.IndexPath()); !os.IsNotExist(statErr) {
		t.Error("index file written despite invalid bundle")
	}
}

func TestBuild_MetaMissingName(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "presets/votesites/bad.meta.json", `{"id": "votesite:bad", "display": {"name": "   "}}`)

	_, err := builder.Build()
	if err == nil || !strings.Contains(err.Error(), "presets/votesites/bad.meta.json") {
		t.Fatalf("Build() error = %v, want missing/invalid error naming the file", err)
	}
}

func TestDiscover_NoRoots(t *testing.T) {
	_, builder := setupCatalog(t)

	_, err := builder.Build()
	if !errors.Is(err, ErrNoRoots) {
		t.Fatalf("Build() error = %v, want ErrNoRoots", err)
	}
}

func TestDiscover_OneRootIsEnough(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "bundles/only.bundle.json", `{"id": "bundle:only", "display": {"name": "Only"}}`)

	doc, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(doc.Entries) != 1 {
		t.Errorf("Build() entries = %d, want 1", len(doc.Entries))
	}
}

func TestBuild_CategoryAssignment(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "presets/milestones/m.meta.json", `{"id": "milestone:m", "display": {"name": "M"}}`)
	writeDoc(t, root, "presets/misc/x.meta.json", `{"id": "misc:x", "display": {"name": "X"}}`)

	doc, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	categories := make(map[string]models.Category)
	for _, e := range doc.Entries {
		categories[e.ID] = e.Category
	}
	if categories["milestone:m"] != models.CategoryMilestones {
		t.Errorf("milestone category = %q, want milestones", categories["milestone:m"])
	}
	if categories["misc:x"] != models.CategoryOther {
		t.Errorf("misc category = %q, want other", categories["misc:x"])
	}
}

func TestRun_Idempotent(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "presets/votesites/example_com.meta.json", votesiteExample)

	first, err := builder.Run()
	if err != nil {
		t.Fatalf("Run() first error = %v", err)
	}
	second, err := builder.Run()
	if err != nil {
		t.Fatalf("Run() second error = %v", err)
	}

	if first.SchemaVersion != second.SchemaVersion {
		t.Errorf("schemaVersion changed between runs: %d vs %d", first.SchemaVersion, second.SchemaVersion)
	}
	if diff := cmp.Diff(first.Entries, second.Entries); diff != "" {
		t.Errorf("entries differ between runs (-first +second):\n%s", diff)
	}
}

func TestRun_OutputShape(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "presets/votesites/example_com.meta.json", votesiteExample)

	if _, err := builder.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(builder.IndexPath())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("index file missing trailing newline")
	}

	var doc models.IndexDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc.SchemaVersion != models.IndexSchemaVersion {
		t.Errorf("schemaVersion = %d, want %d", doc.SchemaVersion, models.IndexSchemaVersion)
	}
	if doc.GeneratedAt == "" {
		t.Error("generatedAt empty")
	}
}

func TestCheck(t *testing.T) {
	root, builder := setupCatalog(t)
	writeDoc(t, root, "presets/votesites/example_com.meta.json", votesiteExample)

	// No index on disk yet: stale.
	if _, upToDate, err := builder.Check(); err != nil || upToDate {
		t.Fatalf("Check() = (%v, %v), want stale with no error", upToDate, err)
	}

	if _, err := builder.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, upToDate, err := builder.Check(); err != nil || !upToDate {
		t.Fatalf("Check() after Run = (%v, %v), want up to date", upToDate, err)
	}

	writeDoc(t, root, "presets/rewards/new.meta.json", `{"id": "reward:new", "display": {"name": "New"}}`)
	if _, upToDate, err := builder.Check(); err != nil || upToDate {
		t.Fatalf("Check() after new file = (%v, %v), want stale", upToDate, err)
	}
}
