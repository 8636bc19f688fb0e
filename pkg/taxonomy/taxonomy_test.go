package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucheestiy/bizcatalog/pkg/catalogs"
)

const transportURL = "https://www.belarusinfo.by/ru/company/transport-i-perevozki/transportnye-uslugi.html"

func TestParseSourceRubricURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantCategory string
		wantSegment  string
	}{
		{"canonical", transportURL, "transport-i-perevozki", "transportnye-uslugi"},
		{"upper html suffix", "https://belarusinfo.by/ru/company/torgovlya/opt/Optovaya.HTML", "torgovlya", "optovaya"},
		{"percent encoded", "https://belarusinfo.by/ru/company/torgovlya/%D0%BE%D0%BF%D1%82.html", "torgovlya", "opt"},
		{"too short", "https://belarusinfo.by/ru/company/torgovlya", "", ""},
		{"wrong prefix", "https://belarusinfo.by/en/company/torgovlya/opt.html", "", ""},
		{"unparsable", "http://[::1/ru/company/a/b.html", "", ""},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, segment := ParseSourceRubricURL(tt.url)
			assert.Equal(t, tt.wantCategory, category)
			assert.Equal(t, tt.wantSegment, segment)
		})
	}
}

func TestTargetCategory(t *testing.T) {
	tests := []struct {
		category string
		rubric   string
		want     string
	}{
		{"transport-i-perevozki", "Транспортные услуги", "transport-logistika-perevozki"},
		{"biznes-i-finansy-yurisprudentsiya", "Банки", "banki-birji-finansy"},
		{"biznes-i-finansy-yurisprudentsiya", "Юридические услуги", "biznes-uslugi-dlya-biznesa"},
		{"krasota-i-zdorove-meditsina", "Стоматология", "medicina-i-farmacevtika"},
		{"krasota-i-zdorove-meditsina", "Салоны красоты", "sport-zdorove-krasota"},
		{"sredstva-massovoy-informatsii", "Издательства", "poligrafiya-izdatelstvo-upakovka"},
		{"sredstva-massovoy-informatsii", "Радио", "reklamnaya-deyatelnost-smi"},
		{"stroitelstvo", "Кирпич", "strojmateriali-otdelochnie-materiali"},
		{"promyshlennost", "Хлебозаводы", "promyshlennost-pishchevaya"},
		{"promyshlennost", "Газовое оборудование", "himiya-energetika-syre"},
		{"promyshlennost", "Сварка", "metally-metalloobrabotka"},
		{"promyshlennost", "Обувь", "legkaya-promyshlennost"},
		{"promyshlennost", "Станки", "mashinostroenie-i-oborudovanie"},
		{"mebel-tovary-dlya-doma-i-ofisa", "Бытовая ТЕХНИКА", "dom-i-byt-bytovye-uslugi"},
		{"turizm-sport-otdyh-i-razvlecheniya", "SPA-салоны", "sport-zdorove-krasota"},
		{"turizm-sport-otdyh-i-razvlecheniya", "Гостиницы", "turizm-otdyh-dosug"},
		{"unknown-category", "Всё подряд", "uslugi-dlya-naseleniya"},
		{"", "Банки", "uslugi-dlya-naseleniya"},
	}
	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.rubric, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetCategory(tt.category, tt.rubric))
		})
	}
}

func TestRulesAreCopied(t *testing.T) {
	r := Rules()
	require.NotEmpty(t, r)
	r[0].Target = "changed"
	assert.Equal(t, "banki-birji-finansy", TargetCategory("biznes-i-finansy-yurisprudentsiya", "банк"))
}

func newIndex(companies ...*catalogs.Company) *catalogs.Index {
	return catalogs.BuildIndex(companies)
}

func TestResolveFabricates(t *testing.T) {
	m := NewMapper(newIndex())

	res := m.Resolve(" Транспортные  услуги ", transportURL)
	assert.Equal(t, ViaFabricated, res.Via)
	assert.Equal(t, "transport-logistika-perevozki", res.Category.Slug)
	assert.Equal(t, "transport-logistika-perevozki", res.Category.Name)
	assert.Equal(t, "https://ibiz.by/transport-logistika-perevozki", res.Category.URL)
	assert.Equal(t, catalogs.RubricRef{
		Slug:         "transport-logistika-perevozki/transportnye-uslugi",
		Name:         "Транспортные услуги",
		URL:          "",
		CategorySlug: "transport-logistika-perevozki",
		CategoryName: "transport-logistika-perevozki",
	}, res.Rubric)

	again := m.Resolve("другое имя", transportURL)
	assert.Equal(t, ViaCache, again.Via)
	assert.Equal(t, res.Rubric, again.Rubric)
	assert.Equal(t, map[Via]int{ViaFabricated: 1, ViaCache: 1}, m.Counts())
}

func TestResolveUnparsableURLUsesName(t *testing.T) {
	m := NewMapper(nil)
	res := m.Resolve("", "https://example.com/other")
	assert.Equal(t, "uslugi-dlya-naseleniya/rubric", res.Rubric.Slug)
	assert.Equal(t, "—", res.Rubric.Name)

	res = m.Resolve("Кафе & Бары", "https://example.com/cafe")
	assert.Equal(t, "uslugi-dlya-naseleniya/kafe-and-bary", res.Rubric.Slug)
}

func TestResolveReusesExistingByName(t *testing.T) {
	idx := newIndex(&catalogs.Company{
		Categories: []catalogs.CategoryRef{{Slug: "transport-logistika-perevozki", Name: "Транспорт", URL: "https://ibiz.by/transport"}},
		Rubrics: []catalogs.RubricRef{{
			Slug:         "transport-logistika-perevozki/gruzoperevozki",
			Name:         "Грузоперевозки",
			URL:          "https://ibiz.by/transport/gruzoperevozki",
			CategorySlug: "transport-logistika-perevozki",
		}},
	})
	m := NewMapper(idx)

	res := m.Resolve("ГРУЗОПЕРЕВОЗКИ", "https://belarusinfo.by/ru/company/transport-i-perevozki/gruz.html")
	assert.Equal(t, ViaName, res.Via)
	assert.Equal(t, "transport-logistika-perevozki/gruzoperevozki", res.Rubric.Slug)
	assert.Equal(t, "Грузоперевозки", res.Rubric.Name)
	assert.Equal(t, "https://ibiz.by/transport/gruzoperevozki", res.Rubric.URL)
	assert.Equal(t, "transport-logistika-perevozki", res.Rubric.CategoryName)
	assert.Equal(t, "Транспорт", res.Category.Name)
}

func TestResolveAmbiguousName(t *testing.T) {
	idx := newIndex(&catalogs.Company{
		Rubrics: []catalogs.RubricRef{
			{Slug: "torgovlya-logistika/magaziny", Name: "Магазины", CategorySlug: "torgovlya-logistika"},
			{Slug: "avtomobilnaya-tehnika-uslugi-transport/magaziny", Name: "Магазины", CategorySlug: "avtomobilnaya-tehnika-uslugi-transport"},
		},
	})

	m := NewMapper(idx)
	res := m.Resolve("Магазины", "https://belarusinfo.by/ru/company/avtomobili/magaziny.html")
	assert.Equal(t, "avtomobilnaya-tehnika-uslugi-transport/magaziny", res.Rubric.Slug)

	m = NewMapper(idx)
	res = m.Resolve("Магазины", "https://belarusinfo.by/ru/company/gosudarstvo/magaziny.html")
	assert.Equal(t, "torgovlya-logistika/magaziny", res.Rubric.Slug, "falls back to first candidate")
}

func TestResolveSlugCollision(t *testing.T) {
	idx := newIndex(&catalogs.Company{
		Rubrics: []catalogs.RubricRef{
			{Slug: "transport-logistika-perevozki/transportnye-uslugi", Name: "Перевозки", CategorySlug: "transport-logistika-perevozki"},
			{Slug: "transport-logistika-perevozki/transportnye-uslugi-bi", Name: "Другое", CategorySlug: "transport-logistika-perevozki"},
		},
	})
	m := NewMapper(idx)

	res := m.Resolve("Транспортные услуги", transportURL)
	assert.Equal(t, "transport-logistika-perevozki/transportnye-uslugi-bi-2", res.Rubric.Slug)

	res = m.Resolve("Транспортные услуги", transportURL+"?page=2")
	assert.Equal(t, "transport-logistika-perevozki/transportnye-uslugi-bi-3", res.Rubric.Slug)
}

func TestEnsureCategoryIsIdempotent(t *testing.T) {
	idx := newIndex()
	m := NewMapper(idx)

	first := m.EnsureCategory("nedvizhimost")
	second := m.EnsureCategory("nedvizhimost")
	assert.Equal(t, first, second)
	assert.Contains(t, idx.Categories, "nedvizhimost")
}

func TestUniqueSlug(t *testing.T) {
	m := NewMapper(newIndex(&catalogs.Company{Rubrics: []catalogs.RubricRef{{Slug: "a/b", Name: "B"}}}))
	assert.Equal(t, "a/b-2", m.UniqueSlug("a/b"))
	assert.Equal(t, "a/b-3", m.UniqueSlug("a/b"))
	assert.Equal(t, "a/c", m.UniqueSlug("a/c"))
}
