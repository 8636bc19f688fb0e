package catalogs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucheestiy/bizcatalog/pkg/errors"
	"github.com/lucheestiy/bizcatalog/pkg/logging"
)

const sampleCatalog = `{"source":"ibiz","source_id":"ibiz-1","source_url":"https://belarusinfo.by/company/1","name":"Альфа","address":"г. Минск, ул. Ленина 1","phones":["+375 29 111-22-33"],"emails":["info@alfa.by"],"websites":["alfa.by","https://www.belarusinfo.by/ru/company/alfa","mailto:info@alfa.by"],"description":"Сайт belarusinfo.by/company/1 и  текст","categories":[{"slug":"torgovlya-logistika","name":"Торговля"}],"rubrics":[{"slug":"torgovlya-logistika/opt","name":"Оптовая торговля","url":"https://ibiz.by/opt","category_slug":"torgovlya-logistika","category_name":"Торговля"}],"rating":4.5}

not json at all
{"source":"belarusinfo","source_id":"belarusinfo-7","name":"Old import","rubrics":[{"slug":"x/y","name":"Y","category_slug":"x"}]}
[1,2,3]
{"source":"ibiz","source_id":"ibiz-2","name":"Бета","categories":[{"slug":"torgovlya-logistika","name":"Другое имя"},{"slug":"nedvizhimost"}],"rubrics":[{"slug":"nedvizhimost/arenda","name":"  Аренда ","category_slug":"nedvizhimost"},{"slug":"torgovlya-logistika/opt-2","name":"оптовая   ТОРГОВЛЯ","category_slug":"torgovlya-logistika"}]}
`

func TestReadDropsSourceAndSanitizes(t *testing.T) {
	snap, err := Read(strings.NewReader(sampleCatalog), WithDroppedSource("belarusinfo"))
	require.NoError(t, err)

	require.Len(t, snap.Companies, 2)
	assert.Equal(t, 1, snap.Dropped)
	assert.Equal(t, 2, snap.Malformed)

	first := snap.Companies[0]
	assert.Equal(t, "", first.SourceURL)
	assert.Equal(t, []string{"https://alfa.by"}, first.Websites)
	assert.Equal(t, "Сайт и текст", first.Description)
	assert.Contains(t, first.Unknown, "rating")
}

func TestReadWithoutSanitize(t *testing.T) {
	snap, err := Read(strings.NewReader(sampleCatalog), WithoutSanitize())
	require.NoError(t, err)

	require.Len(t, snap.Companies, 3)
	assert.Equal(t, 0, snap.Dropped)
	assert.Equal(t, "https://belarusinfo.by/company/1", snap.Companies[0].SourceURL)
}

func TestReadKeepsRecordsWithUnexpectedFieldTypes(t *testing.T) {
	const catalog = `{"source":"ibiz","source_id":"n1","name":"A","unp":190000000}
{"source":"ibiz","source_id":"n2","name":"B","extra":{"lat":"53.9","lng":"27.5"}}
{"source":"ibiz","source_id":"n3","name":"C","work_hours":[]}
{"source":"ibiz","source_id":"n4","name":"D","work_hours":{"work_time":"9-18","days":"пн-пт"}}
`
	snap, err := Read(strings.NewReader(catalog), WithDroppedSource("belarusinfo"))
	require.NoError(t, err)
	require.Len(t, snap.Companies, 4)
	assert.Equal(t, 0, snap.Malformed)

	assert.Equal(t, "190000000", snap.Companies[0].UNP)
	assert.Nil(t, snap.Companies[1].Extra.Lat)
	assert.Equal(t, "9-18", snap.Companies[3].WorkHours.WorkTime)

	path := filepath.Join(t.TempDir(), "companies.jsonl")
	require.NoError(t, Write(path, snap.Companies))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"unp":190000000`)
	assert.Contains(t, out, `"extra":{"lat":"53.9","lng":"27.5"}`)
	assert.Contains(t, out, `"work_hours":[]`)
	assert.Contains(t, out, `"work_hours":{"work_time":"9-18","days":"пн-пт"}`)

	again, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, again.Companies, 4)
	assert.Equal(t, 0, again.Malformed)
}

func TestSanitizeRewritesOddlyTypedLinkFields(t *testing.T) {
	const catalog = `{"source":"ibiz","source_id":"w1","websites":"https://www.belarusinfo.by/ru/company/alfa","source_url":42}` + "\n"
	snap, err := Read(strings.NewReader(catalog))
	require.NoError(t, err)
	require.Len(t, snap.Companies, 1)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap.Companies))
	assert.Contains(t, buf.String(), `"websites":[]`)
	assert.Contains(t, buf.String(), `"source_url":"42"`)
	assert.NotContains(t, buf.String(), "belarusinfo")
}

func TestLoadLogsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.jsonl")
	catalog := sampleCatalog + `{"source":"ibiz","name":` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))

	testLogger := logging.NewTestLogger(t)
	snap, err := Load(path, WithLogger(testLogger.Logger))
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Malformed)

	assert.Len(t, testLogger.Lines(), 3)
	testLogger.AssertContains(t, "skipped malformed catalog line")
	testLogger.AssertContains(t, "parse error in jsonl at "+path+":3: not a JSON object")
	testLogger.AssertContains(t, path+":5: not a JSON object")
	testLogger.AssertContains(t, path+":7: unexpected end of JSON input")
	testLogger.AssertContains(t, `"line":7`)
}

func TestIndexFirstOccurrenceWins(t *testing.T) {
	snap, err := Read(strings.NewReader(sampleCatalog), WithDroppedSource("belarusinfo"))
	require.NoError(t, err)
	idx := snap.Index

	require.Contains(t, idx.Categories, "torgovlya-logistika")
	assert.Equal(t, "Торговля", idx.Categories["torgovlya-logistika"].Name)
	assert.Equal(t, "https://ibiz.by/torgovlya-logistika", idx.Categories["torgovlya-logistika"].URL)

	nedv := idx.Categories["nedvizhimost"]
	assert.Equal(t, "nedvizhimost", nedv.Name)
	assert.Equal(t, "https://ibiz.by/nedvizhimost", nedv.URL)

	arenda := idx.Rubrics["nedvizhimost/arenda"]
	assert.Equal(t, "Аренда", arenda.Name)
	assert.Equal(t, "nedvizhimost", arenda.CategoryName)

	assert.Equal(t, []string{"torgovlya-logistika/opt", "torgovlya-logistika/opt-2"}, idx.RubricsByName["оптовая торговля"])
	assert.NotContains(t, idx.Rubrics, "x/y")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestCompanyMarshalDefaults(t *testing.T) {
	c := &Company{Source: "belarusinfo", Name: "Кафе <Уют> & Co"}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []*Company{c}))

	s := buf.String()
	assert.Contains(t, s, `"phones":[]`)
	assert.Contains(t, s, `"phones_ext":[]`)
	assert.Contains(t, s, `"work_hours":{}`)
	assert.Contains(t, s, `"extra":{"lat":null,"lng":null}`)
	assert.Contains(t, s, `"rubrics":[]`)
	assert.Contains(t, s, "Кафе <Уют> & Co")
	assert.True(t, strings.HasPrefix(s, `{"source":"belarusinfo","source_id":""`))
}

func TestCompanyUnknownFieldsRoundTrip(t *testing.T) {
	in := `{"source":"ibiz","name":"A","zeta":{"k":1},"alpha":"x"}`
	var c Company
	require.NoError(t, json.Unmarshal([]byte(in), &c))
	require.Len(t, c.Unknown, 2)

	out, err := json.Marshal(c)
	require.NoError(t, err)
	s := string(out)
	assert.True(t, strings.HasSuffix(s, `,"alpha":"x","zeta":{"k":1}}`), s)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "A", back["name"])
}

func TestWriteIsAtomicAndOrdered(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "companies.jsonl")

	a := []*Company{{Source: "ibiz", SourceID: "a"}}
	b := []*Company{{Source: "belarusinfo", SourceID: "b"}, {Source: "belarusinfo", SourceID: "c"}}
	require.NoError(t, Write(path, a, b))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	snap, err := Load(path, WithoutSanitize())
	require.NoError(t, err)
	require.Len(t, snap.Companies, 3)
	assert.Equal(t, "a", snap.Companies[0].SourceID)
	assert.Equal(t, "c", snap.Companies[2].SourceID)
}

func TestEncodeOneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []*Company{{Name: "x"}, {Name: "y"}}))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "companies.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))

	at := utc.New(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.Equal(t, filepath.Join(dir, "companies.backup-20250102T030405Z.jsonl"), BackupPath(path, at))

	got, err := Backup(path, at)
	require.NoError(t, err)
	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	_, err = Backup(filepath.Join(dir, "missing.jsonl"), at)
	assert.True(t, errors.IsNotFound(err))
}

func TestSummarize(t *testing.T) {
	snap, err := Read(strings.NewReader(sampleCatalog), WithoutSanitize())
	require.NoError(t, err)

	st := Summarize(snap.Companies)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.BySource["ibiz"])
	assert.Equal(t, 1, st.BySource["belarusinfo"])
	assert.Equal(t, 2, st.Categories)
	assert.Equal(t, 1, st.WithPhones)
	require.NotEmpty(t, st.TopCategories)
	assert.Equal(t, "torgovlya-logistika", st.TopCategories[0].Slug)
	assert.Equal(t, 2, st.TopCategories[0].Companies)
}

func TestValidate(t *testing.T) {
	good := &Company{
		SourceID:   "ok",
		Websites:   []string{"https://vk.com/company1"},
		Categories: []CategoryRef{{Slug: "a"}, {Slug: "b"}},
		Rubrics: []RubricRef{
			{Slug: "b/one", Name: "One", CategorySlug: "b"},
			{Slug: "a/two", Name: "Two", CategorySlug: "a"},
		},
	}
	assert.Empty(t, Validate([]*Company{good}))

	bad := &Company{
		SourceID:   "bad",
		Websites:   []string{"https://belarusinfo.by/x"},
		Categories: []CategoryRef{{Slug: "b"}, {Slug: "a"}},
		Rubrics: []RubricRef{
			{Slug: "b/one", Name: "Other", CategorySlug: "b"},
			{Slug: "a/two", Name: "Two", CategorySlug: "a"},
		},
	}
	empty := &Company{SourceID: "empty"}

	violations := Validate([]*Company{good, bad, empty})
	rules := make(map[string]int)
	for _, v := range violations {
		rules[v.Rule]++
	}
	assert.Equal(t, 1, rules[RuleDisallowedWebsite])
	assert.Equal(t, 1, rules[RuleCategoryMismatch])
	assert.Equal(t, 1, rules[RuleRubricConflict])
	assert.Equal(t, 1, rules[RuleMissingRubrics])
	assert.Equal(t, 3, violations[len(violations)-1].Line)
}

func TestValidateReportsFileLines(t *testing.T) {
	const catalog = `{"source":"ibiz","source_id":"a","categories":[{"slug":"x"}],"rubrics":[{"slug":"x/y","name":"Y","category_slug":"x"}]}

not json
{"source":"ibiz","source_id":"b"}
`
	snap, err := Read(strings.NewReader(catalog), WithoutSanitize())
	require.NoError(t, err)
	require.Len(t, snap.Companies, 2)
	assert.Equal(t, 4, snap.Companies[1].Line())

	violations := Validate(snap.Companies)
	require.Len(t, violations, 1)
	assert.Equal(t, Violation{Line: 4, SourceID: "b", Rule: RuleMissingRubrics, Detail: "no rubrics"}, violations[0])
}
