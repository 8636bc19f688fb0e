package belarusinfo

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucheestiy/bizcatalog/pkg/errors"
	"github.com/lucheestiy/bizcatalog/pkg/logging"
	"github.com/lucheestiy/bizcatalog/pkg/sources"
)

const schema = `
CREATE TABLE companies (
	id INTEGER PRIMARY KEY,
	status TEXT,
	name TEXT,
	excerpt TEXT,
	about TEXT,
	address TEXT,
	phones_json TEXT,
	emails_json TEXT,
	websites_json TEXT
);
CREATE TABLE company_rubrics (
	company_id INTEGER,
	rubric_name TEXT,
	rubric_url TEXT
);`

// newTestDB creates a Belarusinfo database in a temp dir and returns its path.
func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "belarusinfo.sqlite3")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(schema)
	require.NoError(t, err)

	companies := []struct {
		id                       int
		status, name, excerpt    string
		phones, emails, websites any
	}{
		{2, "done", "Бета", "", `["+375 17 222-33-44"]`, `not json`, nil},
		{1, "done", "Альфа", "Грузоперевозки", `["+375 29 111-22-33", 80291112233]`, `["info@alfa.by"]`, `["alfa.by", null, {"x": 1}]`},
		{3, "pending", "Гамма", "", `[]`, `[]`, `[]`},
	}
	for _, c := range companies {
		_, err := db.Exec(`INSERT INTO companies (id, status, name, excerpt, about, address, phones_json, emails_json, websites_json)
			VALUES (?, ?, ?, ?, NULL, '220000, г. Минск', ?, ?, ?)`,
			c.id, c.status, c.name, c.excerpt, c.phones, c.emails, c.websites)
		require.NoError(t, err)
	}

	rubrics := [][3]any{
		{1, "Транспортные услуги", "https://www.belarusinfo.by/ru/company/transport-i-perevozki/transportnye-uslugi.html"},
		{1, "Автосервис", " https://www.belarusinfo.by/ru/company/avtomobili/avtoservis.html "},
		{1, "Без ссылки", ""},
		{2, "Торговля", nil},
	}
	for _, r := range rubrics {
		_, err := db.Exec(`INSERT INTO company_rubrics (company_id, rubric_name, rubric_url) VALUES (?, ?, ?)`, r[0], r[1], r[2])
		require.NoError(t, err)
	}
	return path
}

func TestOpenMissingDatabase(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.sqlite3"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestRubrics(t *testing.T) {
	src, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	got, err := src.Rubrics(context.Background())
	require.NoError(t, err)

	require.Len(t, got[1], 2)
	assert.Equal(t, "Автосервис", got[1][0].Name)
	assert.Equal(t, "https://www.belarusinfo.by/ru/company/avtomobili/avtoservis.html", got[1][0].URL)
	assert.Equal(t, "Транспортные услуги", got[1][1].Name)
	assert.Empty(t, got[2])
}

func TestEach(t *testing.T) {
	src, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = src.Close() }()
	assert.Equal(t, sources.BelarusinfoID, src.ID())

	var rows []sources.Row
	err = src.Each(context.Background(), func(r sources.Row) error {
		rows = append(rows, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, rows, 2, "only finished rows are visited")

	alfa := rows[0]
	assert.Equal(t, int64(1), alfa.ID)
	assert.Equal(t, "Альфа", alfa.Name)
	assert.Equal(t, "Грузоперевозки", alfa.Excerpt)
	assert.Equal(t, "", alfa.About)
	assert.Equal(t, []string{"+375 29 111-22-33", "80291112233"}, alfa.Phones)
	assert.Equal(t, []string{"info@alfa.by"}, alfa.Emails)
	assert.Equal(t, []string{"alfa.by"}, alfa.Websites)
	assert.Len(t, alfa.Rubrics, 2)

	beta := rows[1]
	assert.Equal(t, int64(2), beta.ID)
	assert.Empty(t, beta.Emails)
	assert.Empty(t, beta.Websites)
	assert.Empty(t, beta.Rubrics)
}

func TestEachLogsLoadedRubrics(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	src, err := Open(newTestDB(t), WithLogger(*testLogger.Logger))
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	err = src.Each(context.Background(), func(sources.Row) error { return nil })
	require.NoError(t, err)

	testLogger.AssertContains(t, "loaded rubrics")
	testLogger.AssertContains(t, `"companies":1`)
	testLogger.AssertContains(t, `"rubrics":2`)
}

func TestEachStops(t *testing.T) {
	src, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	calls := 0
	err = src.Each(context.Background(), func(sources.Row) error {
		calls++
		return sources.ErrStop
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestSourceIsReadOnly(t *testing.T) {
	src, err := Open(newTestDB(t))
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	_, err = src.db.Exec(`DELETE FROM companies`)
	assert.Error(t, err)
}

func TestDecodeList(t *testing.T) {
	assert.Nil(t, DecodeList(""))
	assert.Nil(t, DecodeList("{broken"))
	assert.Nil(t, DecodeList(`{"a": "b"}`))
	assert.Equal(t, []string{}, DecodeList("[]"))
	assert.Equal(t, []string{"a", "375291112233", "1.5"}, DecodeList(`["a", 375291112233, 1.5, true, null]`))
}
