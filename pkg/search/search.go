// Package search offers full-text discovery over the entries of a
// generated catalog index. The bleve index is built in memory from the
// index document on demand; nothing is persisted.
package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/presetsmith/presetsmith/models"
)

// Hit pairs a matched entry with its relevance score.
type Hit struct {
	Entry models.IndexEntry
	Score float64
}

// Index is an in-memory search index over catalog entries.
type Index struct {
	index bleve.Index
	byID  map[string]models.IndexEntry
}

// entryDoc is the shape handed to bleve; only the searchable fields.
type entryDoc struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
	Domains     []string `json:"domains"`
}

// NewIndex builds a memory-only index over the given entries.
func NewIndex(entries []models.IndexEntry) (*Index, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	byID := make(map[string]models.IndexEntry, len(entries))
	batch := idx.NewBatch()
	for _, entry := range entries {
		byID[entry.ID] = entry
		doc := entryDoc{
			Name:        entry.Name,
			Description: entry.Description,
			Category:    string(entry.Category),
			Keywords:    entry.Keywords,
			Domains:     entry.Domains,
		}
		if err := batch.Index(entry.ID, doc); err != nil {
			idx.Close()
			return nil, fmt.Errorf("failed to index entry %s: %w", entry.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		idx.Close()
		return nil, fmt.Errorf("failed to index entries: %w", err)
	}

	return &Index{index: idx, byID: byID}, nil
}

// Search runs a match query over name, description, keywords, domains,
// and category, returning at most limit hits ordered by score.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit

	results, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(results.Hits))
	for _, hit := range results.Hits {
		entry, ok := i.byID[hit.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{Entry: entry, Score: hit.Score})
	}
	return hits, nil
}

func (i *Index) Close() error {
	return i.index.Close()
}
