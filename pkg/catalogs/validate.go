package catalogs

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/lucheestiy/bizcatalog/pkg/normalize"
)

// Rules checked by Validate.
const (
	RuleDisallowedWebsite = "disallowed_website"
	RuleDisallowedLink    = "disallowed_link"
	RuleCategoryMismatch  = "category_mismatch"
	RuleRubricConflict    = "rubric_slug_conflict"
	RuleMissingRubrics    = "missing_rubrics"
)

// Violation is one broken catalog invariant.
type Violation struct {
	Line     int    `json:"line" yaml:"line"`
	SourceID string `json:"source_id" yaml:"source_id"`
	Rule     string `json:"rule" yaml:"rule"`
	Detail   string `json:"detail" yaml:"detail"`
}

// Validate checks the invariants every published catalog must hold:
//   - no website or public text points at the source directory
//   - a record's categories are exactly the sorted, distinct categories of its rubrics
//   - no two different rubric objects share a slug
//   - every record carries at least one rubric
//
// Line is the record's line in the file it was loaded from; records built
// in memory report their 1-based position in companies.
func Validate(companies []*Company) []Violation {
	var out []Violation
	rubrics := make(map[string]RubricRef)

	for i, c := range companies {
		line := c.Line()
		if line == 0 {
			line = i + 1
		}
		add := func(rule, format string, args ...any) {
			out = append(out, Violation{Line: line, SourceID: c.SourceID, Rule: rule, Detail: fmt.Sprintf(format, args...)})
		}

		for _, w := range c.Websites {
			if normalize.IsDisallowedLink(w) {
				add(RuleDisallowedWebsite, "website %q", w)
			}
		}
		if normalize.IsDisallowedLink(c.SourceURL) {
			add(RuleDisallowedLink, "source_url %q", c.SourceURL)
		}
		if normalize.StripDisallowedLinks(c.Description) != normalize.Space(c.Description) {
			add(RuleDisallowedLink, "description")
		}
		if normalize.StripDisallowedLinks(c.About) != normalize.Space(c.About) {
			add(RuleDisallowedLink, "about")
		}

		if len(c.Rubrics) == 0 {
			add(RuleMissingRubrics, "no rubrics")
			continue
		}

		if want, got := rubricCategories(c.Rubrics), categorySlugs(c.Categories); !slices.Equal(want, got) {
			add(RuleCategoryMismatch, "categories [%s], rubrics imply [%s]",
				strings.Join(got, ", "), strings.Join(want, ", "))
		}

		for _, r := range c.Rubrics {
			prev, ok := rubrics[r.Slug]
			if !ok {
				rubrics[r.Slug] = r
				continue
			}
			if prev != r {
				add(RuleRubricConflict, "rubric %q has conflicting definitions", r.Slug)
			}
		}
	}
	return out
}

func rubricCategories(rubrics []RubricRef) []string {
	seen := make(map[string]struct{}, len(rubrics))
	out := make([]string, 0, len(rubrics))
	for _, r := range rubrics {
		if r.CategorySlug == "" {
			continue
		}
		if _, ok := seen[r.CategorySlug]; ok {
			continue
		}
		seen[r.CategorySlug] = struct{}{}
		out = append(out, r.CategorySlug)
	}
	sort.Strings(out)
	return out
}

func categorySlugs(categories []CategoryRef) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.Slug)
	}
	return out
}
