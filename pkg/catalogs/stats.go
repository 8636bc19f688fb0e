package catalogs

import "sort"

// Stats summarizes the content of a catalog.
type Stats struct {
	Total        int            `json:"total" yaml:"total"`
	BySource     map[string]int `json:"by_source" yaml:"by_source"`
	Categories   int            `json:"categories" yaml:"categories"`
	Rubrics      int            `json:"rubrics" yaml:"rubrics"`
	WithPhones   int            `json:"with_phones" yaml:"with_phones"`
	WithEmails   int            `json:"with_emails" yaml:"with_emails"`
	WithWebsites int            `json:"with_websites" yaml:"with_websites"`
	WithCity     int            `json:"with_city" yaml:"with_city"`

	// TopCategories lists categories by number of companies, largest first.
	TopCategories []CategoryCount `json:"top_categories" yaml:"top_categories"`
}

// CategoryCount is the number of companies attached to a category.
type CategoryCount struct {
	Slug      string `json:"slug" yaml:"slug"`
	Name      string `json:"name" yaml:"name"`
	Companies int    `json:"companies" yaml:"companies"`
}

// UnknownSource labels records without a source tag.
const UnknownSource = "unknown"

// Summarize computes Stats over companies.
func Summarize(companies []*Company) *Stats {
	st := &Stats{BySource: make(map[string]int)}
	idx := BuildIndex(companies)
	st.Categories = len(idx.Categories)
	st.Rubrics = len(idx.Rubrics)

	perCategory := make(map[string]int)
	for _, c := range companies {
		st.Total++
		src := c.Source
		if src == "" {
			src = UnknownSource
		}
		st.BySource[src]++
		if len(c.Phones) > 0 {
			st.WithPhones++
		}
		if len(c.Emails) > 0 {
			st.WithEmails++
		}
		if len(c.Websites) > 0 {
			st.WithWebsites++
		}
		if c.City != "" {
			st.WithCity++
		}
		seen := make(map[string]struct{}, len(c.Categories))
		for _, cat := range c.Categories {
			if _, ok := seen[cat.Slug]; ok || cat.Slug == "" {
				continue
			}
			seen[cat.Slug] = struct{}{}
			perCategory[cat.Slug]++
		}
	}

	for slug, n := range perCategory {
		name := slug
		if ref, ok := idx.Categories[slug]; ok {
			name = ref.Name
		}
		st.TopCategories = append(st.TopCategories, CategoryCount{Slug: slug, Name: name, Companies: n})
	}
	sort.Slice(st.TopCategories, func(i, j int) bool {
		a, b := st.TopCategories[i], st.TopCategories[j]
		if a.Companies != b.Companies {
			return a.Companies > b.Companies
		}
		return a.Slug < b.Slug
	})
	return st
}
