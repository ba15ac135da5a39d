// Package index builds immutable, ordered snapshots of the content store.
// A snapshot is rebuilt wholesale whenever content changes; nothing mutates
// it after construction, so it is safe to read from concurrent requests.
package index

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/AphilSantos/magic-portfolio/internal/content"
)

// Index is an ordered view over one collection: most recent publishedAt
// first, ties broken by slug ascending. Callers must not modify the
// returned documents.
type Index struct {
	collection content.Collection
	docs       []*content.Document
	bySlug     map[string]*content.Document
}

// Build enumerates every .md/.mdx file under root/<collection>, parses each
// one and returns the ordered snapshot. The first malformed document aborts
// the whole build with its slug attached; a broken document must never
// silently vanish from listings.
func Build(root string, collection content.Collection) (*Index, error) {
	dir := filepath.Join(root, string(collection))
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("content directory %s not found", dir)
	}

	ix := &Index{
		collection: collection,
		bySlug:     make(map[string]*content.Document),
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isContentFile(d.Name()) {
			return nil
		}

		slug := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		if prev, ok := ix.bySlug[slug]; ok {
			return fmt.Errorf("%s: duplicate slug %q (already defined by %s)", path, slug, prev.SourcePath)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		doc, err := content.Parse(collection, raw)
		if err != nil {
			return fmt.Errorf("%s/%s: %w", collection, slug, err)
		}
		doc.Slug = slug
		doc.SourcePath = path

		ix.docs = append(ix.docs, doc)
		ix.bySlug[slug] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(ix.docs, func(i, j int) bool {
		a, b := ix.docs[i], ix.docs[j]
		if !a.PublishedAt.Equal(b.PublishedAt) {
			return a.PublishedAt.After(b.PublishedAt)
		}
		return a.Slug < b.Slug
	})

	return ix, nil
}

func isContentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

// Collection returns the collection this index covers.
func (ix *Index) Collection() content.Collection {
	return ix.collection
}

// Documents returns all documents in index order.
func (ix *Index) Documents() []*content.Document {
	return ix.docs
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// GetBySlug returns the document for slug or content.ErrNotFound.
func (ix *Index) GetBySlug(slug string) (*content.Document, error) {
	doc, ok := ix.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", ix.collection, slug, content.ErrNotFound)
	}
	return doc, nil
}

// FilterByTag returns the documents whose tag equals tag, preserving index
// order.
func (ix *Index) FilterByTag(tag string) []*content.Document {
	var out []*content.Document
	for _, doc := range ix.docs {
		if doc.Tag == tag {
			out = append(out, doc)
		}
	}
	return out
}

// Tags returns the distinct non-empty tags in index order of first
// appearance.
func (ix *Index) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, doc := range ix.docs {
		if doc.Tag == "" || seen[doc.Tag] {
			continue
		}
		seen[doc.Tag] = true
		tags = append(tags, doc.Tag)
	}
	return tags
}

// Search fuzzy-matches query against titles and summaries and returns the
// matching documents ranked best first.
func (ix *Index) Search(query string) []*content.Document {
	targets := make([]string, len(ix.docs))
	for i, doc := range ix.docs {
		targets[i] = doc.Title + " " + doc.Summary
	}

	matches := fuzzy.Find(query, targets)
	out := make([]*content.Document, 0, len(matches))
	for _, m := range matches {
		out = append(out, ix.docs[m.Index])
	}
	return out
}

// Site bundles the snapshots for every collection.
type Site struct {
	Posts    *Index
	Projects *Index
}

// BuildSite builds all collections from the content root, fail-fast.
func BuildSite(root string) (*Site, error) {
	posts, err := Build(root, content.Posts)
	if err != nil {
		return nil, err
	}
	projects, err := Build(root, content.Projects)
	if err != nil {
		return nil, err
	}
	return &Site{Posts: posts, Projects: projects}, nil
}

// ByCollection returns the index for c, or nil for an unknown collection.
func (s *Site) ByCollection(c content.Collection) *Index {
	switch c {
	case content.Posts:
		return s.Posts
	case content.Projects:
		return s.Projects
	}
	return nil
}
