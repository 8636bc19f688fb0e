package catalogs

import (
	"strings"

	"github.com/lucheestiy/bizcatalog/pkg/constants"
	"github.com/lucheestiy/bizcatalog/pkg/normalize"
)

// Index holds the taxonomy referenced by a set of catalog records.
// It is owned by a single import run and is not safe for concurrent use.
type Index struct {
	// Categories maps a category slug to its first-seen reference.
	Categories map[string]CategoryRef
	// Rubrics maps a rubric slug to its first-seen reference.
	Rubrics map[string]RubricRef
	// RubricsByName maps a normalized rubric name to the slugs of every
	// rubric carrying that name, in first-seen order.
	RubricsByName map[string][]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		Categories:    make(map[string]CategoryRef),
		Rubrics:       make(map[string]RubricRef),
		RubricsByName: make(map[string][]string),
	}
}

// BuildIndex indexes the categories and rubrics of companies.
func BuildIndex(companies []*Company) *Index {
	idx := NewIndex()
	for _, c := range companies {
		idx.Add(c)
	}
	return idx
}

// Add indexes the categories and rubrics of one record. References with an
// empty slug are ignored and the first reference seen for a slug wins.
func (idx *Index) Add(c *Company) {
	for _, cat := range c.Categories {
		slug := strings.TrimSpace(cat.Slug)
		if slug == "" {
			continue
		}
		if _, ok := idx.Categories[slug]; ok {
			continue
		}
		ref := CategoryRef{
			Slug: slug,
			Name: strings.TrimSpace(firstNonEmpty(cat.Name, slug)),
			URL:  strings.TrimSpace(firstNonEmpty(cat.URL, constants.CategoryURLPrefix+slug)),
		}
		idx.Categories[slug] = ref
	}

	for _, r := range c.Rubrics {
		slug := strings.TrimSpace(r.Slug)
		if slug == "" {
			continue
		}
		categorySlug := strings.TrimSpace(r.CategorySlug)
		name := strings.TrimSpace(firstNonEmpty(r.Name, slug))
		if _, ok := idx.Rubrics[slug]; !ok {
			idx.Rubrics[slug] = RubricRef{
				Slug:         slug,
				Name:         name,
				URL:          strings.TrimSpace(r.URL),
				CategorySlug: categorySlug,
				CategoryName: strings.TrimSpace(firstNonEmpty(r.CategoryName, categorySlug)),
			}
		}
		idx.addName(normalize.Key(name), slug)
	}
}

func (idx *Index) addName(key, slug string) {
	for _, s := range idx.RubricsByName[key] {
		if s == slug {
			return
		}
	}
	idx.RubricsByName[key] = append(idx.RubricsByName[key], slug)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
