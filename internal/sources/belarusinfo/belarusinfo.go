// Package belarusinfo reads the companies scraped from the Belarusinfo
// directory out of its SQLite database.
package belarusinfo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
	"github.com/rs/zerolog"

	"github.com/lucheestiy/bizcatalog/pkg/constants"
	"github.com/lucheestiy/bizcatalog/pkg/errors"
	"github.com/lucheestiy/bizcatalog/pkg/sources"
)

const (
	rubricsQuery   = `SELECT company_id, rubric_name, rubric_url FROM company_rubrics ORDER BY company_id, rubric_name`
	companiesQuery = `SELECT id, name, excerpt, about, address, phones_json, emails_json, websites_json FROM companies WHERE status = ? ORDER BY id`
)

// Source is a read-only view of a Belarusinfo database.
type Source struct {
	path        string
	busyTimeout time.Duration
	logger      zerolog.Logger
	db          *sql.DB
}

var _ sources.Source = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithBusyTimeout sets how long a read waits for a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.busyTimeout = d
	}
}

// WithLogger sets the logger used for load progress and skipped rows.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// Open opens the database at path read-only. A missing file is reported as
// a NotFoundError before any connection is made.
func Open(path string, opts ...Option) (*Source, error) {
	s := &Source{
		path:        path,
		busyTimeout: constants.SourceBusyTimeout,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("source database", path)
		}
		return nil, errors.WrapIO("stat", path, err)
	}
	if info.IsDir() {
		return nil, errors.NewValidationError("source_db", path, "is a directory")
	}

	db, err := sql.Open("sqlite3", s.dsn())
	if err != nil {
		return nil, errors.WrapResource("open", "source", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("open", "source", path, err)
	}
	s.db = db
	return s, nil
}

func (s *Source) dsn() string {
	return fmt.Sprintf("file:%s?mode=ro&_busy_timeout=%d", s.path, s.busyTimeout.Milliseconds())
}

// ID implements sources.Source.
func (s *Source) ID() sources.ID {
	return sources.BelarusinfoID
}

// Close implements sources.Source.
func (s *Source) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Rubrics returns the rubrics of every company keyed by company ID, in
// rubric name order. Associations without a URL are left out.
func (s *Source) Rubrics(ctx context.Context) (map[int64][]sources.Rubric, error) {
	rows, err := s.db.QueryContext(ctx, rubricsQuery)
	if err != nil {
		return nil, errors.WrapQuery("company_rubrics", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64][]sources.Rubric)
	for rows.Next() {
		var rawID, name, url sql.NullString
		if err := rows.Scan(&rawID, &name, &url); err != nil {
			return nil, errors.WrapQuery("company_rubrics", err)
		}
		id, ok := parseID(rawID)
		if !ok {
			s.logger.Debug().Str("company_id", rawID.String).Msg("skipping rubric with invalid company id")
			continue
		}
		u := strings.TrimSpace(url.String)
		if u == "" {
			continue
		}
		out[id] = append(out[id], sources.Rubric{Name: strings.TrimSpace(name.String), URL: u})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapQuery("company_rubrics", err)
	}
	return out, nil
}

// Each implements sources.Source. Rows whose status is not "done" are not
// visited; unreadable contact arrays are treated as empty.
func (s *Source) Each(ctx context.Context, fn func(sources.Row) error) error {
	rubrics, err := s.Rubrics(ctx)
	if err != nil {
		return err
	}
	companies, total := 0, 0
	for _, rs := range rubrics {
		if len(rs) > 0 {
			companies++
			total += len(rs)
		}
	}
	s.logger.Info().Int("companies", companies).Int("rubrics", total).Msg("loaded rubrics")

	rows, err := s.db.QueryContext(ctx, companiesQuery, constants.SourceDoneStatus)
	if err != nil {
		return errors.WrapQuery("companies", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			rawID                                sql.NullString
			name, excerpt, about, address        sql.NullString
			phonesJSON, emailsJSON, websitesJSON sql.NullString
		)
		if err := rows.Scan(&rawID, &name, &excerpt, &about, &address, &phonesJSON, &emailsJSON, &websitesJSON); err != nil {
			return errors.WrapQuery("companies", err)
		}
		id, ok := parseID(rawID)
		if !ok {
			s.logger.Warn().Str("id", rawID.String).Msg("skipping company with invalid id")
			continue
		}

		row := sources.Row{
			ID:       id,
			Name:     name.String,
			Excerpt:  excerpt.String,
			About:    about.String,
			Address:  address.String,
			Phones:   DecodeList(phonesJSON.String),
			Emails:   DecodeList(emailsJSON.String),
			Websites: DecodeList(websitesJSON.String),
			Rubrics:  rubrics[id],
		}
		if err := fn(row); err != nil {
			if errors.Is(err, sources.ErrStop) {
				return nil
			}
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return errors.WrapQuery("companies", err)
	}
	return nil
}

func parseID(raw sql.NullString) (int64, bool) {
	if !raw.Valid {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw.String), 10, 64)
	return id, err == nil
}

// DecodeList decodes a JSON array of strings. Numbers are kept in their
// shortest decimal form, other element types are dropped, and anything that
// is not a JSON array decodes to an empty list.
func DecodeList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	return out
}
