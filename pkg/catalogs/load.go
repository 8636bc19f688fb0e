package catalogs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/lucheestiy/bizcatalog/pkg/errors"
	"github.com/lucheestiy/bizcatalog/pkg/normalize"
)

// Snapshot is the retained content of an existing catalog.
type Snapshot struct {
	Path      string
	Companies []*Company
	Index     *Index

	// Dropped counts records discarded because of their source tag.
	Dropped int
	// Malformed counts lines that were not valid JSON or not an object.
	Malformed int
}

// Load reads the catalog at path. A missing file is reported as a
// NotFoundError; malformed lines are skipped and counted.
func Load(path string, opts ...Option) (*Snapshot, error) {
	f, err := os.Open(path) //nolint:gosec // catalog path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("catalog", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	snap, err := Read(f, append([]Option{withPath(path)}, opts...)...)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	snap.Path = path
	return snap, nil
}

// Read loads catalog records from r.
func Read(r io.Reader, opts ...Option) (*Snapshot, error) {
	o := loadDefaults().apply(opts...)
	snap := &Snapshot{Index: NewIndex()}

	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			snap.consume(n, line, o)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return snap, nil
}

func (s *Snapshot) consume(n int, line []byte, o *loadOptions) {
	raw := bytes.TrimSpace(line)
	if len(raw) == 0 {
		return
	}
	if raw[0] != '{' {
		s.skip(n, "not a JSON object", nil, o)
		return
	}
	c := new(Company)
	if err := json.Unmarshal(raw, c); err != nil {
		s.skip(n, err.Error(), err, o)
		return
	}
	c.line = n
	if o.dropSource != "" && c.Source == o.dropSource {
		s.Dropped++
		return
	}
	if o.sanitize {
		Sanitize(c)
	}
	s.Companies = append(s.Companies, c)
	s.Index.Add(c)
}

func (s *Snapshot) skip(n int, message string, err error, o *loadOptions) {
	s.Malformed++
	perr := &errors.ParseError{Format: "jsonl", File: o.path, Line: n, Message: message, Err: err}
	o.logger.Debug().Err(perr).Int("line", n).Msg("skipped malformed catalog line")
}

// Sanitize applies the public link policy to a record: source-directory
// links are removed from the website list, the description and the about
// text, and a source URL pointing at the directory is blanked. These fields
// are always written from their modeled values afterwards.
func Sanitize(c *Company) {
	c.Websites = normalize.Websites(c.Websites)
	if normalize.IsDisallowedLink(c.SourceURL) {
		c.SourceURL = ""
	}
	c.Description = normalize.StripDisallowedLinks(c.Description)
	c.About = normalize.StripDisallowedLinks(c.About)
	c.remodel("websites", "source_url", "description", "about")
}
