// Package builder turns source directory rows into catalog records.
package builder

import (
	"sort"
	"strconv"

	"github.com/lucheestiy/bizcatalog/pkg/catalogs"
	"github.com/lucheestiy/bizcatalog/pkg/constants"
	"github.com/lucheestiy/bizcatalog/pkg/normalize"
	"github.com/lucheestiy/bizcatalog/pkg/sources"
	"github.com/lucheestiy/bizcatalog/pkg/taxonomy"
)

// SkipReason explains why a row produced no record.
type SkipReason string

// Skip reasons.
const (
	SkipMissingName     SkipReason = "missing_name"
	SkipMissingRubrics  SkipReason = "missing_rubrics"
	SkipNoMappedRubrics SkipReason = "no_mapped_rubrics"
)

// Builder builds catalog records for one source. It shares the Mapper's
// state and, like it, is not safe for concurrent use.
type Builder struct {
	source sources.ID
	mapper *taxonomy.Mapper
}

// New returns a Builder tagging records with source and placing their
// rubrics through mapper.
func New(source sources.ID, mapper *taxonomy.Mapper) *Builder {
	return &Builder{source: source, mapper: mapper}
}

// Build converts row into a record. A row without a name or without rubrics
// is rejected with the matching SkipReason.
func (b *Builder) Build(row sources.Row) (*catalogs.Company, SkipReason, bool) {
	name := normalize.Space(row.Name)
	address := normalize.Space(row.Address)
	if name == "" {
		return nil, SkipMissingName, false
	}
	if len(row.Rubrics) == 0 {
		return nil, SkipMissingRubrics, false
	}

	rubrics := make([]catalogs.RubricRef, 0, len(row.Rubrics))
	categories := make(map[string]catalogs.CategoryRef)
	for _, r := range row.Rubrics {
		res := b.mapper.Resolve(r.Name, r.URL)
		if res.HasCategory() {
			categories[res.Category.Slug] = res.Category
		}
		rubrics = append(rubrics, res.Rubric)
	}
	if len(rubrics) == 0 {
		return nil, SkipNoMappedRubrics, false
	}

	description := normalize.Space(row.Excerpt)
	if description == "" {
		description = normalize.Space(row.About)
	}

	c := &catalogs.Company{
		Source:      b.source.String(),
		SourceID:    b.source.String() + "-" + strconv.FormatInt(row.ID, 10),
		SourceURL:   "",
		Name:        name,
		Country:     constants.DefaultCountry,
		City:        normalize.City(address),
		Address:     address,
		Phones:      normalize.UniqueStrings(row.Phones),
		PhonesExt:   []catalogs.PhoneExt{},
		Emails:      normalize.Emails(row.Emails),
		Websites:    normalize.Websites(row.Websites),
		Description: normalize.StripDisallowedLinks(description),
		About:       normalize.StripDisallowedLinks(normalize.Space(row.About)),
		Categories:  sortedCategories(categories),
		Rubrics:     rubrics,
	}
	return c, "", true
}

func sortedCategories(m map[string]catalogs.CategoryRef) []catalogs.CategoryRef {
	out := make([]catalogs.CategoryRef, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
