package fleet

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Entry is one immutable classification record: canonical item name,
// owning series (may be empty for series-less items), and category.
type Entry struct {
	Name     string   `json:"name"`
	Series   string   `json:"series,omitempty"`
	Category Category `json:"category"`
}

// Document is the serialized catalog the index is built from.
type Document struct {
	Items []Entry `json:"items"`
}

// Index is a read-only lookup from item name to classification. The
// roster consumes it, never mutates it.
type Index struct {
	order          []string
	byName         map[string]Entry
	seriesCategory map[string]Category
}

// NewIndex builds an index from a catalog document. Item order in the
// document is the canonical ("master") catalog order. Duplicate names
// collapse to the first occurrence. A series mapped to two different
// categories is a catalog defect and rejected.
func NewIndex(doc Document) (*Index, error) {
	ix := &Index{
		byName:         make(map[string]Entry, len(doc.Items)),
		seriesCategory: make(map[string]Category),
	}
	for _, it := range doc.Items {
		key := Normalize(it.Name)
		if key == "" {
			continue
		}
		if _, ok := ix.byName[key]; ok {
			continue
		}
		if _, err := ParseCategory(string(it.Category)); err != nil {
			return nil, fmt.Errorf("fleet: item %q: %w", it.Name, err)
		}
		it.Name = key
		ix.byName[key] = it
		ix.order = append(ix.order, key)
		if it.Series != "" {
			if prev, ok := ix.seriesCategory[it.Series]; ok && prev != it.Category {
				return nil, fmt.Errorf("fleet: series %q mapped to both %q and %q", it.Series, prev, it.Category)
			}
			ix.seriesCategory[it.Series] = it.Category
		}
	}
	return ix, nil
}

// LoadDocument reads a catalog document from disk.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("fleet: read catalog: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("fleet: parse catalog: %w", err)
	}
	return doc, nil
}

// Lookup returns the classification entry for an item name, if known.
func (ix *Index) Lookup(name string) (Entry, bool) {
	e, ok := ix.byName[Normalize(name)]
	return e, ok
}

// SeriesFor returns the series an item belongs to, or "" when the item
// is unknown or series-less.
func (ix *Index) SeriesFor(name string) string {
	e, ok := ix.Lookup(name)
	if !ok {
		return ""
	}
	return e.Series
}

// CategoryFor returns the category for an item name, or "" when unknown.
func (ix *Index) CategoryFor(name string) Category {
	e, ok := ix.Lookup(name)
	if !ok {
		return ""
	}
	return e.Category
}

// CategoryOfSeries resolves a series name to its category.
func (ix *Index) CategoryOfSeries(series string) (Category, bool) {
	c, ok := ix.seriesCategory[series]
	return c, ok
}

// MasterOrder returns the canonical catalog order of normalized names.
func (ix *Index) MasterOrder() []string {
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}

// SeriesNames returns the distinct series names, sorted.
func (ix *Index) SeriesNames() []string {
	names := make([]string, 0, len(ix.seriesCategory))
	for s := range ix.seriesCategory {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}
