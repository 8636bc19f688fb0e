package taxonomy

import (
	"strconv"
	"strings"

	"github.com/lucheestiy/bizcatalog/pkg/catalogs"
	"github.com/lucheestiy/bizcatalog/pkg/constants"
	"github.com/lucheestiy/bizcatalog/pkg/normalize"
)

// Via tells how a rubric was resolved.
type Via string

const (
	// ViaCache means the source rubric URL was resolved earlier in the run.
	ViaCache Via = "cache"
	// ViaName means an existing catalog rubric carries the same name.
	ViaName Via = "name"
	// ViaFabricated means a new rubric slug was built for the source rubric.
	ViaFabricated Via = "fabricated"
)

// Resolution is the catalog placement of one source rubric.
type Resolution struct {
	Category catalogs.CategoryRef
	Rubric   catalogs.RubricRef
	Via      Via
}

// HasCategory reports whether the rubric belongs to a category.
func (r Resolution) HasCategory() bool {
	return r.Category.Slug != ""
}

// Mapper resolves source rubrics against a catalog index. It adds the
// categories it has to create to the index and is not safe for concurrent use.
type Mapper struct {
	index  *catalogs.Index
	used   map[string]struct{}
	byURL  map[string]catalogs.RubricRef
	counts map[Via]int
}

// NewMapper returns a Mapper over idx. Every rubric slug already in idx is
// considered taken.
func NewMapper(idx *catalogs.Index) *Mapper {
	if idx == nil {
		idx = catalogs.NewIndex()
	}
	m := &Mapper{
		index:  idx,
		used:   make(map[string]struct{}, len(idx.Rubrics)),
		byURL:  make(map[string]catalogs.RubricRef),
		counts: make(map[Via]int),
	}
	for slug := range idx.Rubrics {
		m.used[slug] = struct{}{}
	}
	return m
}

// Counts returns how many rubric resolutions went each way.
func (m *Mapper) Counts() map[Via]int {
	out := make(map[Via]int, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out
}

// EnsureCategory returns the known category for slug, creating one named
// after the slug with the default catalog URL when it is unknown.
func (m *Mapper) EnsureCategory(slug string) catalogs.CategoryRef {
	if ref, ok := m.index.Categories[slug]; ok {
		return ref
	}
	ref := catalogs.CategoryRef{
		Slug: slug,
		Name: slug,
		URL:  constants.CategoryURLPrefix + slug,
	}
	m.index.Categories[slug] = ref
	return ref
}

// UniqueSlug reserves base, or base-2, base-3, ... when base is taken.
func (m *Mapper) UniqueSlug(base string) string {
	slug := base
	for i := 2; ; i++ {
		if _, taken := m.used[slug]; !taken {
			break
		}
		slug = base + "-" + strconv.Itoa(i)
	}
	m.used[slug] = struct{}{}
	return slug
}

// Resolve places the source rubric with the given display name and canonical
// URL in the catalog taxonomy. It never fails: rubrics that match nothing get
// a fabricated slug under the category chosen by TargetCategory.
func (m *Mapper) Resolve(name, rawURL string) Resolution {
	key := strings.TrimSpace(rawURL)
	if ref, ok := m.byURL[key]; ok && key != "" {
		m.counts[ViaCache]++
		return m.resolution(ref, ViaCache)
	}

	name = normalize.Space(name)
	if name == "" {
		name = constants.UnnamedRubric
	}

	if slug, ok := m.matchName(name, key); ok {
		existing := m.index.Rubrics[slug]
		var cat catalogs.CategoryRef
		if existing.CategorySlug != "" {
			cat = m.EnsureCategory(existing.CategorySlug)
		}
		ref := catalogs.RubricRef{
			Slug:         existing.Slug,
			Name:         firstNonEmpty(existing.Name, name),
			URL:          existing.URL,
			CategorySlug: existing.CategorySlug,
			CategoryName: firstNonEmpty(existing.CategoryName, cat.Name),
		}
		m.remember(key, ref)
		m.counts[ViaName]++
		return Resolution{Category: cat, Rubric: ref, Via: ViaName}
	}

	sourceCategory, segment := ParseSourceRubricURL(key)
	categorySlug := TargetCategory(sourceCategory, name)
	cat := m.EnsureCategory(categorySlug)
	if segment == "" {
		segment = normalize.Slug(name)
	}

	base := categorySlug + "/" + segment
	if existing, ok := m.index.Rubrics[base]; ok && normalize.Key(existing.Name) != normalize.Key(name) {
		base += constants.CollisionSuffix
	}
	ref := catalogs.RubricRef{
		Slug:         m.UniqueSlug(base),
		Name:         name,
		URL:          "",
		CategorySlug: categorySlug,
		CategoryName: cat.Name,
	}
	m.remember(key, ref)
	m.counts[ViaFabricated]++
	return Resolution{Category: cat, Rubric: ref, Via: ViaFabricated}
}

// matchName finds an existing rubric whose normalized name equals name.
// Among several candidates the first one owned by the category the source
// rubric would map to wins, else the first candidate in index order.
func (m *Mapper) matchName(name, rawURL string) (string, bool) {
	candidates := m.index.RubricsByName[normalize.Key(name)]
	switch len(candidates) {
	case 0:
		return "", false
	case 1:
		_, ok := m.index.Rubrics[candidates[0]]
		return candidates[0], ok
	}

	sourceCategory, _ := ParseSourceRubricURL(rawURL)
	desired := TargetCategory(sourceCategory, name)
	for _, slug := range candidates {
		if ref, ok := m.index.Rubrics[slug]; ok && ref.CategorySlug == desired {
			return slug, true
		}
	}
	_, ok := m.index.Rubrics[candidates[0]]
	return candidates[0], ok
}

func (m *Mapper) resolution(ref catalogs.RubricRef, via Via) Resolution {
	res := Resolution{Rubric: ref, Via: via}
	if slug := strings.TrimSpace(ref.CategorySlug); slug != "" {
		res.Category = m.EnsureCategory(slug)
	}
	return res
}

func (m *Mapper) remember(key string, ref catalogs.RubricRef) {
	if key == "" {
		return
	}
	m.byURL[key] = ref
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
