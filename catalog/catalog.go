// Package catalog organizes a list of sources into a sorted, indexed view.
package catalog

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/vidswitch/vidswitch/source"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/slices"
)

// ErrInvalidSource is returned by Build for a source that cannot be played at all.
var ErrInvalidSource = errors.New("invalid source")

// Index maps an attribute value to the sources sharing it.
// Keys iterate in the order they first appear in Catalog.Ordered.
type Index = orderedmap.OrderedMap[string, []*source.Source]

// Catalog is the grouped, sorted view over a source list. It is immutable once built.
type Catalog struct {
	ordered []*source.Source

	byLabel      *Index
	byResolution *Index
	byType       *Index
}

// Build sorts sources by descending resolution and groups them by label, resolution and type.
// The input slice is not modified.
func Build(sources []*source.Source) (*Catalog, error) {
	ordered := make([]*source.Source, 0, len(sources))
	for i, s := range sources {
		if s == nil {
			return nil, fmt.Errorf("source %d: %w: nil", i, ErrInvalidSource)
		}
		if s.URL == "" {
			return nil, fmt.Errorf("source %d (%s): %w: missing url", i, s.Label, ErrInvalidSource)
		}
		ordered = append(ordered, s)
	}

	slices.SortStableFunc(ordered, Compare)

	c := &Catalog{
		ordered:      ordered,
		byLabel:      orderedmap.New[string, []*source.Source](),
		byResolution: orderedmap.New[string, []*source.Source](),
		byType:       orderedmap.New[string, []*source.Source](),
	}

	for _, s := range ordered {
		appendTo(c.byLabel, s.Label, s)
		appendTo(c.byResolution, s.Res, s)
		appendTo(c.byType, s.Type, s)
	}

	return c, nil
}

// Compare orders sources by descending resolution. Sources without a numeric
// resolution count as 0, so a stable sort keeps them in input order at the tail.
func Compare(a, b *source.Source) int {
	av := a.Resolution().OrElse(0)
	bv := b.Resolution().OrElse(0)

	switch {
	case bv > av:
		return 1
	case bv < av:
		return -1
	default:
		return 0
	}
}

func appendTo(index *Index, k string, s *source.Source) {
	bucket, _ := index.Get(k)
	index.Set(k, append(bucket, s))
}

// Ordered returns all sources sorted by descending resolution.
func (c *Catalog) Ordered() []*source.Source {
	return c.ordered
}

// Len returns the number of sources in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// Empty reports whether the catalog holds no sources.
func (c *Catalog) Empty() bool {
	return len(c.ordered) == 0
}

// First returns the source with the highest resolution.
func (c *Catalog) First() (*source.Source, bool) {
	return lo.First(c.ordered)
}

// Last returns the source with the lowest resolution, or the last unresolved one.
func (c *Catalog) Last() (*source.Source, bool) {
	return lo.Last(c.ordered)
}

// ByLabel returns the label index. Menus are built from it.
func (c *Catalog) ByLabel() *Index {
	return c.byLabel
}

// ByResolution returns the resolution index keyed by the raw Res value.
func (c *Catalog) ByResolution() *Index {
	return c.byResolution
}

// ByType returns the mime type index.
func (c *Catalog) ByType() *Index {
	return c.byType
}

// Labels returns the label keys in menu order.
func (c *Catalog) Labels() []string {
	return Keys(c.byLabel)
}

// Lookup returns the bucket for a label.
func (c *Catalog) Lookup(label string) ([]*source.Source, bool) {
	return c.byLabel.Get(label)
}

// Keys returns the keys of an index in iteration order.
func Keys(index *Index) []string {
	keys := make([]string, 0, index.Len())
	for pair := index.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}
